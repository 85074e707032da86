package keystore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// pollInterval is how often a file watcher re-stats the credentials file.
const pollInterval = 2 * time.Second

// FileStore persists the pair as a single JSON document. Both fields live
// in one file so a save or clear can never be observed half-applied.
// External changes are detected by polling the file's mtime.
type FileStore struct {
	path string
	log  zerolog.Logger
}

func NewFileStore(path string, log zerolog.Logger) *FileStore {
	return &FileStore{path: os.ExpandEnv(path), log: log}
}

func (s *FileStore) Load(ctx context.Context) (Credentials, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Credentials{}, nil
		}
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal(raw, &creds); err != nil {
		// A corrupted file means logged out, not a boot failure.
		s.log.Warn().Str("path", s.path).Msg("unreadable credentials file, treating as logged out")
		return Credentials{}, nil
	}
	return normalize(creds), nil
}

func (s *FileStore) Save(ctx context.Context, creds Credentials) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}

	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	// Write-then-rename keeps concurrent readers from seeing a torn file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

func (s *FileStore) Clear(ctx context.Context) error {
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *FileStore) Watch(ctx context.Context) (<-chan Credentials, error) {
	ch := make(chan Credentials, 8)

	last, _ := s.stat()

	go func() {
		defer close(ch)
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cur, _ := s.stat()
				if cur == last {
					continue
				}
				last = cur
				creds, err := s.Load(ctx)
				if err != nil {
					s.log.Warn().Err(err).Msg("credentials reload failed")
					continue
				}
				select {
				case ch <- creds:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

// stat identifies the current file revision by mtime+size; a missing file
// maps to the zero value so remove is seen as a change too.
func (s *FileStore) stat() (struct {
	mod  int64
	size int64
}, error) {
	var rev struct {
		mod  int64
		size int64
	}
	info, err := os.Stat(s.path)
	if err != nil {
		return rev, err
	}
	rev.mod = info.ModTime().UnixNano()
	rev.size = info.Size()
	return rev, nil
}

func (s *FileStore) Close() error { return nil }
