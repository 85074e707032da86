package keystore

import (
	"context"
	"sync"
)

// MemoryStore keeps the pair in process memory. Tests and short-lived
// commands that must not touch disk use it.
type MemoryStore struct {
	mu       sync.Mutex
	creds    Credentials
	watchers []chan Credentials
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return normalize(s.creds), nil
}

func (s *MemoryStore) Save(ctx context.Context, creds Credentials) error {
	s.mu.Lock()
	s.creds = creds
	watchers := append([]chan Credentials(nil), s.watchers...)
	s.mu.Unlock()

	for _, ch := range watchers {
		select {
		case ch <- normalize(creds):
		default:
		}
	}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	return s.Save(ctx, Credentials{})
}

func (s *MemoryStore) Watch(ctx context.Context) (<-chan Credentials, error) {
	ch := make(chan Credentials, 8)

	s.mu.Lock()
	s.watchers = append(s.watchers, ch)
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.mu.Lock()
		for i, w := range s.watchers {
			if w == ch {
				s.watchers = append(s.watchers[:i], s.watchers[i+1:]...)
				break
			}
		}
		s.mu.Unlock()
		close(ch)
	}()

	return ch, nil
}

func (s *MemoryStore) Close() error { return nil }
