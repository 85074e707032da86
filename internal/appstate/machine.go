// Package appstate tracks one user's standing against one job posting:
// whether an application already exists and how an in-flight submission is
// progressing. Transitions are serialized so a double-click can never
// produce two network writes.
package appstate

import (
	"context"
	"errors"
	"sync"

	"github.com/rs/zerolog"
	"github.com/segmentio/ksuid"

	"careerhub/client/internal/api"
	"careerhub/client/internal/notify"
)

type Phase string

const (
	PhaseUnknown    Phase = "Unknown"
	PhaseChecking   Phase = "Checking"
	PhaseNotApplied Phase = "NotApplied"
	PhaseApplied    Phase = "Applied"
	PhaseSubmitting Phase = "Submitting"
)

// ErrNotReady rejects an Apply issued outside NotApplied: a submission is
// already in flight, already accepted, or the existence check has not
// resolved yet.
var ErrNotReady = errors.New("application not in a submittable state")

type Machine struct {
	client *api.Client
	center *notify.Center
	log    zerolog.Logger

	mu      sync.Mutex
	phase   Phase
	jobID   string
	userID  string
	lastErr error
	// gen tags each check request; a response whose tag is no longer
	// current belongs to a previous (job, user) view and is dropped.
	gen int
}

func NewMachine(client *api.Client, center *notify.Center, log zerolog.Logger) *Machine {
	return &Machine{
		client: client,
		center: center,
		log:    log,
		phase:  PhaseUnknown,
	}
}

func (m *Machine) Phase() Phase {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase
}

func (m *Machine) Err() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

// CheckApplication resolves whether an application exists for the pair.
// Re-targeting the machine at a different pair while a check is in flight
// invalidates the earlier response.
func (m *Machine) CheckApplication(ctx context.Context, jobID, userID string) error {
	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.jobID = jobID
	m.userID = userID
	m.phase = PhaseChecking
	m.lastErr = nil
	m.mu.Unlock()

	apps, err := m.client.ListApplications(ctx)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		return nil
	}
	if err != nil {
		m.phase = PhaseUnknown
		m.lastErr = err
		return err
	}

	m.phase = PhaseNotApplied
	for _, app := range apps {
		if app.JobID == jobID && app.ApplicantID == userID {
			m.phase = PhaseApplied
			break
		}
	}
	return nil
}

// ApplyInput is what the seeker submits alongside the (job, user) pair the
// machine is targeting.
type ApplyInput struct {
	ResumeURL string
	CoverNote string
}

// Apply submits the application. Valid only from NotApplied; any other
// phase is a no-op returning ErrNotReady. Acceptance lands in Applied with
// a transient success notification; rejection returns to NotApplied with
// the backend's message surfaced the same way.
func (m *Machine) Apply(ctx context.Context, input ApplyInput) error {
	m.mu.Lock()
	if m.phase != PhaseNotApplied {
		m.mu.Unlock()
		return ErrNotReady
	}
	m.phase = PhaseSubmitting
	m.lastErr = nil
	gen := m.gen
	jobID, userID := m.jobID, m.userID
	m.mu.Unlock()

	_, err := m.client.CreateApplication(ctx, api.ApplicationInput{
		SubmissionID: ksuid.New().String(),
		JobID:        jobID,
		ApplicantID:  userID,
		ResumeURL:    input.ResumeURL,
		CoverNote:    input.CoverNote,
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.gen != gen {
		// the view moved to another pair mid-submission; its outcome no
		// longer describes the machine's target
		return err
	}
	if err != nil {
		m.phase = PhaseNotApplied
		m.lastErr = err
		m.center.Error("Failed to submit application: " + err.Error())
		m.log.Warn().Err(err).Str("job_id", jobID).Msg("application rejected")
		return err
	}

	m.phase = PhaseApplied
	m.center.Success("Application submitted successfully!")
	return nil
}
