package jobstore

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"careerhub/client/internal/api"
	"careerhub/client/internal/config"
	"careerhub/client/internal/log"
)

func storeAgainst(t *testing.T, handler http.HandlerFunc) *Store {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, func() string { return "tok" }, log.Nop())
	return New(client, log.Nop())
}

func TestFetchAllPartitionsLatest(t *testing.T) {
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":"1","title":"Old","publishDate":"2023-01-15"},
			{"id":"2","title":"Fresh","publishDate":"2024-06-01"},
			{"id":"3","title":"Also Fresh","publishDate":"2024-06-01"}
		]}`))
	})
	s.now = func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) }

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	if len(s.Jobs()) != 3 {
		t.Errorf("expected full set of 3, got %d", len(s.Jobs()))
	}
	latest := s.Latest()
	if len(latest) != 2 {
		t.Fatalf("expected 2 latest jobs, got %d", len(latest))
	}
	for _, job := range latest {
		if job.PublishDate != "2024-06-01" {
			t.Errorf("non-today job in latest: %+v", job)
		}
	}
}

func TestFetchAllErrorState(t *testing.T) {
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	if err := s.FetchAll(context.Background()); err == nil {
		t.Fatal("expected error")
	}
	if s.Err() == nil {
		t.Error("error flag not set")
	}
	if s.Loading() {
		t.Error("loading flag stuck")
	}
}

func TestSetFiltersRecomputesSynchronously(t *testing.T) {
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[
			{"id":"1","salary":50},
			{"id":"2","salary":80},
			{"id":"3","salary":120}
		]}`))
	})

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}

	s.SetFilters(Filters{MinSalary: "60", MaxSalary: "100"})
	filtered := s.Filtered()
	if len(filtered) != 1 || filtered[0].ID != "2" {
		t.Errorf("expected only job 2, got %+v", filtered)
	}

	s.SetFilters(Filters{})
	if len(s.Filtered()) != 3 {
		t.Error("clearing filters did not restore full view")
	}
}

func TestFetchSuggestionsWithoutResume(t *testing.T) {
	var hits atomic.Int32
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(`{"data":[{"id":"1"}]}`))
	})

	if err := s.FetchSuggestions(context.Background(), ""); err != nil {
		t.Fatalf("FetchSuggestions: %v", err)
	}
	if hits.Load() != 0 {
		t.Error("no request should be issued without a resume reference")
	}
	if len(s.Suggested()) != 0 {
		t.Error("expected empty suggestions")
	}
}

func TestStaleFetchIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release // first request resolves late
			w.Write([]byte(`{"data":[{"id":"slow"}]}`))
			return
		}
		w.Write([]byte(`{"data":[{"id":"fast"}]}`))
	})

	done := make(chan struct{})
	go func() {
		_ = s.FetchAll(context.Background())
		close(done)
	}()

	// wait for the first request to be in flight, then race a second one
	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first request never started")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatalf("second FetchAll: %v", err)
	}

	close(release)
	<-done

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].ID != "fast" {
		t.Errorf("stale response overwrote fresh state: %+v", jobs)
	}
}

func TestOverlappingFetchKindsResolveIndependently(t *testing.T) {
	release := make(chan struct{})
	var allStarted atomic.Bool
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/jobs/all":
			allStarted.Store(true)
			<-release // full fetch resolves after the suggestion fetch
			w.Write([]byte(`{"data":[{"id":"full"}]}`))
		case "/jobs/match-jobs":
			w.Write([]byte(`{"data":[{"id":"matched"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	done := make(chan struct{})
	go func() {
		_ = s.FetchAll(context.Background())
		close(done)
	}()

	deadline := time.Now().Add(time.Second)
	for !allStarted.Load() {
		if time.Now().After(deadline) {
			t.Fatal("full fetch never started")
		}
		time.Sleep(5 * time.Millisecond)
	}
	if err := s.FetchSuggestions(context.Background(), "https://files.test/resume.pdf"); err != nil {
		t.Fatalf("FetchSuggestions: %v", err)
	}

	close(release)
	<-done

	jobs := s.Jobs()
	if len(jobs) != 1 || jobs[0].ID != "full" {
		t.Errorf("suggestion fetch invalidated the full fetch: %+v", jobs)
	}
	suggested := s.Suggested()
	if len(suggested) != 1 || suggested[0].ID != "matched" {
		t.Errorf("suggestion result lost: %+v", suggested)
	}
}

func TestRepartitionOnDayRollover(t *testing.T) {
	s := storeAgainst(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"1","publishDate":"2024-06-01"}]}`))
	})

	day := time.Date(2024, 6, 1, 23, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return day }

	if err := s.FetchAll(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(s.Latest()) != 1 {
		t.Fatal("job should be latest on its publish day")
	}

	day = day.Add(2 * time.Hour) // past midnight
	s.Repartition()
	if len(s.Latest()) != 0 {
		t.Error("latest partition should be empty after rollover")
	}
}
