// Package keystore persists the two well-known session fields, bearer
// token and role, and notifies watchers when another process changes them.
// Token and role are always written and cleared together; there is no
// partial update surface.
package keystore

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"careerhub/client/internal/config"
	"careerhub/client/internal/token"
)

// Credentials is the persisted session pair. Zero value means logged out.
type Credentials struct {
	Token string     `json:"token"`
	Role  token.Role `json:"role"`
}

func (c Credentials) Empty() bool {
	return c.Token == "" && c.Role == ""
}

// Store owns the persisted pair. Save and Clear are atomic with respect to
// the two fields. Watch delivers the new value after an external change; a
// change is a re-authorization signal, never merged with local state.
type Store interface {
	Load(ctx context.Context) (Credentials, error)
	Save(ctx context.Context, creds Credentials) error
	Clear(ctx context.Context) error
	Watch(ctx context.Context) (<-chan Credentials, error)
	Close() error
}

// New builds the store selected by configuration.
func New(ctx context.Context, cfg config.KeystoreConfig, log zerolog.Logger) (Store, error) {
	switch cfg.Backend {
	case "file", "":
		return NewFileStore(cfg.Path, log), nil
	case "redis":
		return NewRedisStore(ctx, cfg, log)
	case "memory":
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown keystore backend %q", cfg.Backend)
	}
}

// normalize trims the stored role once at the load boundary so comparisons
// downstream never have to.
func normalize(creds Credentials) Credentials {
	creds.Role = token.NormalizeRole(string(creds.Role))
	return creds
}
