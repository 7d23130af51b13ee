package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const interestKeyPrefix = "interests:"

// Store persists interest lists in Redis so they survive restarts. Lists are
// stored as JSON arrays under one key per user. Read-modify-write operations
// are serialized in-process by a mutex; the service runs as a single writer
// per deployment.
type Store struct {
	client *redis.Client
	mu     sync.Mutex
}

// Conn dials Redis and verifies the connection.
func Conn(ctx context.Context, host, port, pass string, db int, timeout time.Duration) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", host, port),
		DialTimeout: timeout,
		Password:    pass,
		DB:          db,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, err
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("expected PONG, got %s", pong)
	}

	return client, nil
}

func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

func (s *Store) Get(ctx context.Context, userID string) ([]string, error) {
	val, err := s.client.Get(ctx, interestKeyPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var interests []string
	if err := json.Unmarshal([]byte(val), &interests); err != nil {
		return nil, err
	}
	return interests, nil
}

func (s *Store) Add(ctx context.Context, userID, interest string) error {
	trimmed := strings.TrimSpace(interest)
	if trimmed == "" {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	normalized := strings.ToLower(trimmed)
	for _, existing := range interests {
		if strings.ToLower(existing) == normalized {
			return nil
		}
	}
	return s.save(ctx, userID, append(interests, trimmed))
}

func (s *Store) Remove(ctx context.Context, userID, interest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	interests, err := s.Get(ctx, userID)
	if err != nil {
		return err
	}
	normalized := strings.ToLower(interest)
	kept := interests[:0]
	for _, existing := range interests {
		if strings.ToLower(existing) != normalized {
			kept = append(kept, existing)
		}
	}
	return s.save(ctx, userID, kept)
}

func (s *Store) Set(ctx context.Context, userID string, interests []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, userID, interests)
}

func (s *Store) Clear(ctx context.Context, userID string) error {
	return s.client.Del(ctx, interestKeyPrefix+userID).Err()
}

func (s *Store) save(ctx context.Context, userID string, interests []string) error {
	if interests == nil {
		interests = []string{}
	}
	data, err := json.Marshal(interests)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, interestKeyPrefix+userID, data, 0).Err()
}
