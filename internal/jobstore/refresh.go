package jobstore

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"careerhub/client/internal/api"
)

// JobReporter receives jobs that newly entered the latest partition after a
// scheduled refresh. The Telegram reporter satisfies it.
type JobReporter interface {
	SendJob(job api.Job) error
}

// Refresher refetches the job set on a cron schedule and re-partitions the
// latest subset when the day rolls over. It is optional; interactive use
// refetches manually.
type Refresher struct {
	store    *Store
	cron     *cron.Cron
	reporter JobReporter
}

func NewRefresher(store *Store, reporter JobReporter) *Refresher {
	return &Refresher{
		store:    store,
		cron:     cron.New(cron.WithSeconds()),
		reporter: reporter,
	}
}

func (r *Refresher) Start(ctx context.Context, schedule string) error {
	if _, err := r.cron.AddFunc(schedule, func() { r.refresh(ctx) }); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

// Stop halts the schedule and waits briefly for a running refresh.
func (r *Refresher) Stop() {
	done := r.cron.Stop()
	select {
	case <-done.Done():
	case <-time.After(5 * time.Second):
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	seen := make(map[string]struct{})
	for _, job := range r.store.Latest() {
		seen[job.ID] = struct{}{}
	}

	if err := r.store.FetchAll(ctx); err != nil {
		r.store.log.Warn().Err(err).Msg("scheduled job refresh failed")
		return
	}
	r.store.Repartition()

	if r.reporter == nil {
		return
	}
	for _, job := range r.store.Latest() {
		if _, ok := seen[job.ID]; ok {
			continue
		}
		if err := r.reporter.SendJob(job); err != nil {
			r.store.log.Warn().Err(err).Str("job_id", job.ID).Msg("job alert failed")
		}
	}
}
