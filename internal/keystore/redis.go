package keystore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"careerhub/client/internal/config"
)

const (
	redisKey     = "careerhub:session"
	redisChannel = "careerhub:session:changed"
)

// RedisStore keeps the pair in a single redis key and fans out changes over
// pub/sub, so every process holding a watcher re-authorizes immediately
// instead of waiting for a poll.
type RedisStore struct {
	client *redis.Client
	log    zerolog.Logger
}

func NewRedisStore(ctx context.Context, cfg config.KeystoreConfig, log zerolog.Logger) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &RedisStore{client: client, log: log}, nil
}

func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	raw, err := s.client.Get(ctx, redisKey).Result()
	if err != nil {
		if err == redis.Nil {
			return Credentials{}, nil
		}
		return Credentials{}, err
	}

	var creds Credentials
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		s.log.Warn().Msg("unreadable session key, treating as logged out")
		return Credentials{}, nil
	}
	return normalize(creds), nil
}

func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	raw, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	// SET is a single command, so token and role land together.
	if err := s.client.Set(ctx, redisKey, raw, 0).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, redisChannel, raw).Err()
}

func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, redisKey).Err(); err != nil {
		return err
	}
	return s.client.Publish(ctx, redisChannel, "{}").Err()
}

func (s *RedisStore) Watch(ctx context.Context) (<-chan Credentials, error) {
	sub := s.client.Subscribe(ctx, redisChannel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, fmt.Errorf("subscribe session channel: %w", err)
	}

	ch := make(chan Credentials, 8)

	go func() {
		defer close(ch)
		defer sub.Close()

		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-sub.Channel():
				if !ok {
					return
				}
				var creds Credentials
				if err := json.Unmarshal([]byte(msg.Payload), &creds); err != nil {
					s.log.Warn().Err(err).Msg("bad session change payload")
					continue
				}
				select {
				case ch <- normalize(creds):
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return ch, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
