package appstate

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"careerhub/client/internal/api"
)

// FailedTitlePlaceholder stands in for a job whose title lookup failed.
// The rest of the batch renders normally.
const FailedTitlePlaceholder = "(failed to load)"

// AppliedJob is one row of the my-applications view: the application plus
// the resolved job title.
type AppliedJob struct {
	Application api.Application
	JobTitle    string
}

// FetchAppliedJobs loads the user's applications and resolves each job's
// title with one fan-out request per application. The whole batch completes
// before anything is returned, and one item's failure degrades that item
// only.
func FetchAppliedJobs(ctx context.Context, client *api.Client, userID string, log zerolog.Logger) ([]AppliedJob, error) {
	apps, err := client.ListUserApplications(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows := make([]AppliedJob, len(apps))
	var wg sync.WaitGroup
	for i, app := range apps {
		rows[i].Application = app

		wg.Add(1)
		go func(i int, jobID string) {
			defer wg.Done()
			job, err := client.GetJob(ctx, jobID)
			if err != nil {
				log.Warn().Err(err).Str("job_id", jobID).Msg("job title lookup failed")
				rows[i].JobTitle = FailedTitlePlaceholder
				return
			}
			rows[i].JobTitle = job.Title
		}(i, app.JobID)
	}
	wg.Wait()

	return rows, nil
}
