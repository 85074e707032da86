package routeguard

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"careerhub/client/internal/keystore"
	"careerhub/client/internal/token"
)

// Watcher tracks the current role and re-evaluates registered route groups
// whenever the persisted session changes under us (another process logging
// in or out). Registered callbacks receive the fresh decision; they rebuild
// their view rather than merging anything.
type Watcher struct {
	store keystore.Store
	log   zerolog.Logger

	mu     sync.Mutex
	role   token.Role
	groups []*group
}

type group struct {
	allowed []token.Role
	onEval  func(Decision)
}

func NewWatcher(store keystore.Store, log zerolog.Logger) *Watcher {
	return &Watcher{store: store, log: log}
}

// Run primes the role from the store and then follows change
// notifications until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	creds, err := w.store.Load(ctx)
	if err != nil {
		return err
	}
	w.setRole(creds.Role)

	changes, err := w.store.Watch(ctx)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case creds, ok := <-changes:
			if !ok {
				return nil
			}
			w.log.Debug().Str("role", string(creds.Role)).Msg("session changed externally")
			w.setRole(creds.Role)
		}
	}
}

// Register attaches a route group; onEval fires immediately with the
// current decision and again after every role change.
func (w *Watcher) Register(allowed []token.Role, onEval func(Decision)) {
	w.mu.Lock()
	g := &group{allowed: allowed, onEval: onEval}
	w.groups = append(w.groups, g)
	role := w.role
	w.mu.Unlock()

	onEval(CanActivate(allowed, role))
}

// Role returns the last observed role.
func (w *Watcher) Role() token.Role {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.role
}

func (w *Watcher) setRole(role token.Role) {
	w.mu.Lock()
	if w.role == role {
		w.mu.Unlock()
		return
	}
	w.role = role
	groups := append([]*group(nil), w.groups...)
	w.mu.Unlock()

	for _, g := range groups {
		g.onEval(CanActivate(g.allowed, role))
	}
}
