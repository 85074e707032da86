// Package jobstore holds the fetched job collection: the full set, the
// "published today" subset, resume-based suggestions, and the client-side
// filtered view. All fetch results pass a staleness gate so a slow response
// can never overwrite a newer one.
package jobstore

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"careerhub/client/internal/api"
)

type Store struct {
	client *api.Client
	log    zerolog.Logger
	// now is injectable so tests can pin the calendar day.
	now func() time.Time

	mu        sync.Mutex
	jobs      []api.Job
	latest    []api.Job
	suggested []api.Job
	filters   Filters
	filtered  []api.Job
	loading   bool
	err       error
	// Staleness is judged per operation: a newer suggestion fetch must not
	// invalidate an in-flight full fetch, and vice versa.
	allGen     int
	suggestGen int
}

func New(client *api.Client, log zerolog.Logger) *Store {
	return &Store{
		client: client,
		log:    log,
		now:    time.Now,
	}
}

// FetchAll replaces the full job set and re-derives the latest partition
// and the filtered view. Overlapping calls resolve to the newest request;
// earlier responses are dropped.
func (s *Store) FetchAll(ctx context.Context) error {
	s.mu.Lock()
	s.allGen++
	gen := s.allGen
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	jobs, err := s.client.ListJobs(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.allGen != gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}

	s.jobs = jobs
	s.latest = s.partitionLatest(jobs)
	s.filtered = Apply(jobs, s.filters)
	return nil
}

// FetchSuggestions loads resume-matched jobs. It is meaningful only with a
// resume reference; callers without one get the empty set.
func (s *Store) FetchSuggestions(ctx context.Context, resumeURL string) error {
	if resumeURL == "" {
		s.mu.Lock()
		s.suggestGen++
		s.suggested = nil
		s.mu.Unlock()
		return nil
	}

	s.mu.Lock()
	s.suggestGen++
	gen := s.suggestGen
	s.loading = true
	s.err = nil
	s.mu.Unlock()

	jobs, err := s.client.MatchJobs(ctx, resumeURL)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.suggestGen != gen {
		return nil
	}
	s.loading = false
	if err != nil {
		s.err = err
		return err
	}
	s.suggested = jobs
	return nil
}

// SetFilters replaces the filter fields and recomputes the filtered view
// synchronously against the last-fetched set.
func (s *Store) SetFilters(f Filters) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = f
	s.filtered = Apply(s.jobs, f)
}

func (s *Store) Filters() Filters {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

func (s *Store) Jobs() []api.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Job(nil), s.jobs...)
}

// Latest is the subset of the full set published on the current calendar day.
func (s *Store) Latest() []api.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Job(nil), s.latest...)
}

func (s *Store) Suggested() []api.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Job(nil), s.suggested...)
}

func (s *Store) Filtered() []api.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]api.Job(nil), s.filtered...)
}

func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Store) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Store) partitionLatest(jobs []api.Job) []api.Job {
	today := s.now().Format("2006-01-02")
	var latest []api.Job
	for _, job := range jobs {
		if job.PublishDate == today {
			latest = append(latest, job)
		}
	}
	return latest
}

// Repartition re-derives the latest subset without a refetch. The refresh
// scheduler calls it when the calendar day rolls over.
func (s *Store) Repartition() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.latest = s.partitionLatest(s.jobs)
}
