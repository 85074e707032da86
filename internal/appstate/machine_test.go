package appstate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"careerhub/client/internal/api"
	"careerhub/client/internal/config"
	"careerhub/client/internal/log"
	"careerhub/client/internal/notify"
)

func machineAgainst(t *testing.T, handler http.Handler) (*Machine, *notify.Center) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := api.NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, func() string { return "tok" }, log.Nop())
	center := notify.NewCenter(time.Hour, log.Nop())
	return NewMachine(client, center, log.Nop()), center
}

func applicationsBody(apps ...api.Application) string {
	raw, _ := json.Marshal(map[string]any{"data": apps})
	return string(raw)
}

func TestCheckApplicationResolvesPhase(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationsBody(
			api.Application{ApplicationID: "a1", JobID: "5", ApplicantID: "9"},
		)))
	})
	m, _ := machineAgainst(t, mux)

	require.NoError(t, m.CheckApplication(context.Background(), "5", "9"))
	require.Equal(t, PhaseApplied, m.Phase())

	require.NoError(t, m.CheckApplication(context.Background(), "6", "9"))
	require.Equal(t, PhaseNotApplied, m.Phase())
}

func TestStaleCheckIsDiscarded(t *testing.T) {
	release := make(chan struct{})
	var calls atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			<-release
			// slow reply says job 5 is applied
			w.Write([]byte(applicationsBody(
				api.Application{ApplicationID: "a1", JobID: "5", ApplicantID: "9"},
			)))
			return
		}
		w.Write([]byte(applicationsBody())) // job 7: nothing
	})
	m, _ := machineAgainst(t, mux)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = m.CheckApplication(context.Background(), "5", "9")
	}()

	deadline := time.Now().Add(time.Second)
	for calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first check never started")
		}
		time.Sleep(5 * time.Millisecond)
	}

	require.NoError(t, m.CheckApplication(context.Background(), "7", "9"))
	close(release)
	wg.Wait()

	// final state reflects only job 7's result
	require.Equal(t, PhaseNotApplied, m.Phase())
}

func TestApplyHappyPath(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationsBody()))
	})
	mux.HandleFunc("POST /applications/upload", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"applicationId":"new","jobId":"5","applicantId":"9","applicationStatus":"Pending"}}`))
	})
	m, center := machineAgainst(t, mux)

	require.NoError(t, m.CheckApplication(context.Background(), "5", "9"))
	require.NoError(t, m.Apply(context.Background(), ApplyInput{ResumeURL: "cv.pdf"}))
	require.Equal(t, PhaseApplied, m.Phase())

	active := center.Active()
	require.Len(t, active, 1)
	require.Equal(t, notify.SeveritySuccess, active[0].Severity)
}

func TestApplyRejectionReturnsToNotApplied(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationsBody()))
	})
	mux.HandleFunc("POST /applications/upload", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"already applied"}`))
	})
	m, center := machineAgainst(t, mux)

	require.NoError(t, m.CheckApplication(context.Background(), "5", "9"))
	require.Error(t, m.Apply(context.Background(), ApplyInput{}))

	// retry is allowed from here
	require.Equal(t, PhaseNotApplied, m.Phase())

	active := center.Active()
	require.Len(t, active, 1)
	require.Equal(t, notify.SeverityError, active[0].Severity)
}

func TestDoubleApplyIssuesOneWrite(t *testing.T) {
	release := make(chan struct{})
	var writes atomic.Int32

	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationsBody()))
	})
	mux.HandleFunc("POST /applications/upload", func(w http.ResponseWriter, r *http.Request) {
		writes.Add(1)
		<-release
		w.Write([]byte(`{"data":{"applicationId":"new"}}`))
	})
	m, _ := machineAgainst(t, mux)
	require.NoError(t, m.CheckApplication(context.Background(), "5", "9"))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = m.Apply(context.Background(), ApplyInput{})
	}()

	deadline := time.Now().Add(time.Second)
	for writes.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("first apply never reached the backend")
		}
		time.Sleep(5 * time.Millisecond)
	}

	// second click while the first is pending
	err := m.Apply(context.Background(), ApplyInput{})
	require.ErrorIs(t, err, ErrNotReady)

	close(release)
	wg.Wait()

	require.Equal(t, int32(1), writes.Load())
	require.Equal(t, PhaseApplied, m.Phase())
}

func TestApplyFromUnknownIsRejected(t *testing.T) {
	m, _ := machineAgainst(t, http.NewServeMux())
	require.ErrorIs(t, m.Apply(context.Background(), ApplyInput{}), ErrNotReady)
}

func TestFetchAppliedJobsDegradesPerItem(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /applications/user/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(applicationsBody(
			api.Application{ApplicationID: "a1", JobID: "1", ApplicantID: "9"},
			api.Application{ApplicationID: "a2", JobID: "2", ApplicantID: "9"},
			api.Application{ApplicationID: "a3", JobID: "3", ApplicantID: "9"},
		)))
	})
	mux.HandleFunc("GET /jobs/{id}", func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "2" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`{"data":{"id":"` + id + `","title":"Job ` + id + `"}}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, func() string { return "tok" }, log.Nop())

	rows, err := FetchAppliedJobs(context.Background(), client, "9", log.Nop())
	require.NoError(t, err)
	require.Len(t, rows, 3)

	byJob := map[string]string{}
	for _, row := range rows {
		byJob[row.Application.JobID] = row.JobTitle
	}
	require.Equal(t, "Job 1", byJob["1"])
	require.Equal(t, FailedTitlePlaceholder, byJob["2"])
	require.Equal(t, "Job 3", byJob["3"])
	require.True(t, strings.HasPrefix(byJob["1"], "Job"))
}
