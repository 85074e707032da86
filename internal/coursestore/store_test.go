package coursestore

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"careerhub/client/internal/api"
	"careerhub/client/internal/config"
	"careerhub/client/internal/log"
	"careerhub/client/internal/notify"
)

func storeAgainst(t *testing.T, mux *http.ServeMux) *Store {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	client := api.NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, func() string { return "tok" }, log.Nop())
	return New(client, notify.NewCenter(time.Hour, log.Nop()), log.Nop())
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name             string
		completed, total int
		want             float64
	}{
		{"zero of zero", 0, 0, 0},
		{"none done", 0, 10, 0},
		{"half", 5, 10, 50},
		{"rounding", 1, 3, 33},
		{"all done", 10, 10, 100},
		{"overshoot clamps", 12, 10, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Progress(tt.completed, tt.total); got != tt.want {
				t.Errorf("Progress(%d, %d) = %v, want %v", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestEnrollCheckThenCreate(t *testing.T) {
	var writes atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /enroll/user/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"enrollmentId":"e1","courseId":"c1","userId":"9"}]}`))
	})
	mux.HandleFunc("POST /enroll", func(w http.ResponseWriter, r *http.Request) {
		writes.Add(1)
		w.Write([]byte(`{"data":{"enrollmentId":"e2","courseId":"c2","userId":"9"}}`))
	})

	s := storeAgainst(t, mux)
	require.NoError(t, s.FetchEnrollments(context.Background(), "9"))

	// existing enrollment: no write issued
	err := s.Enroll(context.Background(), "c1", "9")
	require.ErrorIs(t, err, ErrAlreadyEnrolled)
	require.Equal(t, int32(0), writes.Load())

	// new course: confirm-then-update
	require.NoError(t, s.Enroll(context.Background(), "c2", "9"))
	require.Equal(t, int32(1), writes.Load())
	require.Len(t, s.Enrollments(), 2)
}

func TestEnrollFailureLeavesListUntouched(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /enroll/user/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[]}`))
	})
	mux.HandleFunc("POST /enroll", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"course full"}`))
	})

	s := storeAgainst(t, mux)
	require.NoError(t, s.FetchEnrollments(context.Background(), "9"))

	require.Error(t, s.Enroll(context.Background(), "c1", "9"))
	require.Empty(t, s.Enrollments())
}

func TestCompleteLessonPushesDerivedProgress(t *testing.T) {
	var gotBody string
	mux := http.NewServeMux()
	mux.HandleFunc("GET /enroll/user/9", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"enrollmentId":"e1","courseId":"c1","userId":"9","completedLessons":4,"progress":40}]}`))
	})
	mux.HandleFunc("PUT /enroll/e1/progress", func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		w.WriteHeader(http.StatusOK)
	})

	s := storeAgainst(t, mux)
	require.NoError(t, s.FetchEnrollments(context.Background(), "9"))
	require.NoError(t, s.CompleteLesson(context.Background(), "e1", 10))

	require.Contains(t, gotBody, `"completedLessons":5`)
	require.Contains(t, gotBody, `"progress":50`)

	enrollments := s.Enrollments()
	require.Equal(t, 5, enrollments[0].CompletedLessons)
	require.Equal(t, float64(50), enrollments[0].Progress)
}

func TestFetchCourseContentDegradesPerModule(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /modules/course/c1", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"id":"m1","courseId":"c1","title":"Basics"},{"id":"m2","courseId":"c1","title":"Advanced"}]}`))
	})
	mux.HandleFunc("GET /lessons/module/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "m2" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"data":[{"id":"l1","moduleId":"m1","title":"Intro"},{"id":"l2","moduleId":"m1","title":"Setup"}]}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	client := api.NewClient(config.APIConfig{
		BaseURL:        srv.URL,
		RequestTimeout: 5 * time.Second,
		UploadTimeout:  5 * time.Second,
	}, func() string { return "tok" }, log.Nop())

	content, err := FetchCourseContent(context.Background(), client, "c1", log.Nop())
	require.NoError(t, err)
	require.Len(t, content, 2)

	require.False(t, content[0].Failed)
	require.Len(t, content[0].Lessons, 2)
	require.True(t, content[1].Failed)
	require.Empty(t, content[1].Lessons)

	require.Equal(t, 2, TotalLessons(content))
}
