// Package session owns the authenticated identity: bootstrapping it from
// the persisted token, exchanging credentials for a new one, and tearing
// everything down on logout. Identity comes from the token alone; the
// profile is a separate fetch that may fail and be retried without
// affecting routing.
package session

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"careerhub/client/internal/api"
	"careerhub/client/internal/keystore"
	"careerhub/client/internal/token"
)

var (
	// ErrLoginFailed covers every login failure mode the caller does not
	// need to distinguish: bad credentials, transport errors, and tokens
	// that decode without a user id. The session is unchanged in all cases.
	ErrLoginFailed = errors.New("login failed")

	// ErrResumeUpload reports that the profile mutation succeeded but the
	// follow-up resume upload did not. The profile update stays applied.
	ErrResumeUpload = errors.New("resume upload failed")

	ErrNotAuthenticated = errors.New("not authenticated")
)

// State is a point-in-time snapshot for the UI.
type State struct {
	// Loading is true only during Init's decode step, never during the
	// profile fetch.
	Loading  bool
	Identity *token.Identity
	Profile  *api.Profile
	Resume   string
	// ProfileErr is set when the identity is trusted (decoded from the
	// token) but the profile fetch failed; the UI offers a retry.
	ProfileErr error
}

type Manager struct {
	store keystore.Store
	log   zerolog.Logger

	mu       sync.Mutex
	client   *api.Client
	loading  bool
	tok      string
	identity *token.Identity
	profile  *api.Profile
	resume   string
	profErr  error
	// gen increments on every login/logout; in-flight profile fetches
	// carry the gen they started under and discard their result if it
	// moved on.
	gen int
}

func NewManager(store keystore.Store, log zerolog.Logger) *Manager {
	return &Manager{store: store, log: log, loading: true}
}

// SetClient attaches the API client. Split from the constructor because
// the client's token source is this manager.
func (m *Manager) SetClient(c *api.Client) {
	m.mu.Lock()
	m.client = c
	m.mu.Unlock()
}

// Token is the api.TokenSource for the attached client.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.tok
}

func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := State{
		Loading:    m.loading,
		Resume:     m.resume,
		ProfileErr: m.profErr,
	}
	if m.identity != nil {
		id := *m.identity
		s.Identity = &id
	}
	if m.profile != nil {
		p := *m.profile
		s.Profile = &p
	}
	return s
}

// Init bootstraps the session from the persisted token. The decode attempt
// is synchronous and bounds the Loading window; the profile fetch runs in
// the background. A token that fails to decode means logged out, never an
// error, so a corrupted store cannot wedge startup.
func (m *Manager) Init(ctx context.Context) error {
	creds, err := m.store.Load(ctx)
	if err != nil {
		m.setLoaded()
		return err
	}

	if creds.Token == "" {
		m.setLoaded()
		return nil
	}

	identity, err := token.Decode(creds.Token)
	if err != nil {
		m.log.Warn().Msg("stored token failed to decode, treating as logged out")
		m.setLoaded()
		return nil
	}

	m.mu.Lock()
	m.tok = creds.Token
	m.identity = &identity
	m.loading = false
	gen := m.gen
	m.mu.Unlock()

	go m.fetchProfile(ctx, identity, gen)
	return nil
}

func (m *Manager) setLoaded() {
	m.mu.Lock()
	m.loading = false
	m.mu.Unlock()
}

// Login exchanges credentials for a token, persists token and role together
// before any dependent fetch starts, and returns the decoded role for the
// caller to route on. On any failure the session is left exactly as it was.
func (m *Manager) Login(ctx context.Context, email, password string) (token.Role, error) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return "", ErrLoginFailed
	}

	tok, err := client.Login(ctx, email, password)
	if err != nil {
		m.log.Warn().Err(err).Msg("login rejected")
		return "", ErrLoginFailed
	}

	identity, err := token.Decode(tok)
	if err != nil {
		m.log.Warn().Err(err).Msg("login token did not decode")
		return "", ErrLoginFailed
	}

	// Both persisted fields land in one write, so a concurrent reader can
	// never see a token without its role.
	creds := keystore.Credentials{Token: tok, Role: identity.Role}
	if err := m.store.Save(ctx, creds); err != nil {
		return "", ErrLoginFailed
	}

	m.mu.Lock()
	m.gen++
	gen := m.gen
	m.tok = tok
	m.identity = &identity
	m.profile = nil
	m.resume = ""
	m.profErr = nil
	m.mu.Unlock()

	m.fetchProfile(ctx, identity, gen)
	return identity.Role, nil
}

// Logout clears the persisted pair and the in-memory session in one step.
// There is no interim state where one survives the other.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Clear(ctx); err != nil {
		return err
	}

	m.mu.Lock()
	m.gen++
	m.tok = ""
	m.identity = nil
	m.profile = nil
	m.resume = ""
	m.profErr = nil
	m.mu.Unlock()
	return nil
}

// fetchProfile loads the user record for a decoded identity. Failure leaves
// the identity trusted for routing and records a retriable error. Results
// from a generation that has since been replaced are discarded.
func (m *Manager) fetchProfile(ctx context.Context, identity token.Identity, gen int) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()
	if client == nil {
		return
	}

	profile, err := client.GetProfile(ctx, identity.UserID)

	m.mu.Lock()
	if m.gen != gen {
		m.mu.Unlock()
		return
	}
	if err != nil {
		m.profErr = err
		m.mu.Unlock()
		m.log.Warn().Err(err).Str("user_id", identity.UserID).Msg("profile fetch failed")
		return
	}
	m.profile = &profile
	m.profErr = nil
	if identity.Role == token.RoleJobSeeker {
		m.resume = profile.ResumeURL
	}
	m.mu.Unlock()

	if identity.Role == token.RoleJobSeeker {
		m.refreshResume(ctx, identity, gen)
	}
}

// RetryProfile re-runs the profile fetch after a failure.
func (m *Manager) RetryProfile(ctx context.Context) error {
	m.mu.Lock()
	if m.identity == nil {
		m.mu.Unlock()
		return ErrNotAuthenticated
	}
	identity := *m.identity
	gen := m.gen
	m.mu.Unlock()

	m.fetchProfile(ctx, identity, gen)

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.profErr
}

// refreshResume asks the resume service for the current record; the profile
// copy is a fallback when the dedicated lookup fails.
func (m *Manager) refreshResume(ctx context.Context, identity token.Identity, gen int) {
	m.mu.Lock()
	client := m.client
	m.mu.Unlock()

	resumes, err := client.GetResumes(ctx, identity.UserID)
	if err != nil || len(resumes) == 0 {
		return
	}

	m.mu.Lock()
	if m.gen == gen {
		m.resume = resumes[0].ResumeURL
	}
	m.mu.Unlock()
}

// UpdateProfileInput mirrors the editable profile fields plus the two
// optional file attachments.
type UpdateProfileInput struct {
	Name           string
	Email          string
	Password       string
	ProfilePicture io.Reader
	PictureName    string
	Resume         io.Reader
	ResumeName     string
}

// UpdateProfile sends the profile mutation and, when a resume file is
// attached, uploads it afterwards. The two are independent side effects: a
// resume failure surfaces as ErrResumeUpload while the already-confirmed
// profile update stays applied.
func (m *Manager) UpdateProfile(ctx context.Context, input UpdateProfileInput) error {
	m.mu.Lock()
	client := m.client
	identity := m.identity
	gen := m.gen
	m.mu.Unlock()

	if identity == nil || client == nil {
		return ErrNotAuthenticated
	}

	updated, err := client.UpdateProfile(ctx, identity.UserID, api.ProfileUpdate{
		Name:                   input.Name,
		Email:                  input.Email,
		Password:               input.Password,
		ProfilePicture:         input.ProfilePicture,
		ProfilePictureFilename: input.PictureName,
	})
	if err != nil {
		return err
	}

	m.mu.Lock()
	if m.gen == gen {
		m.profile = &updated
	}
	m.mu.Unlock()

	if input.Resume == nil {
		return nil
	}

	resume, err := client.UploadResume(ctx, identity.UserID, input.ResumeName, input.Resume)
	if err != nil {
		m.log.Warn().Err(err).Msg("resume upload failed after profile update")
		return ErrResumeUpload
	}

	m.mu.Lock()
	if m.gen == gen {
		m.resume = resume.ResumeURL
	}
	m.mu.Unlock()
	return nil
}
