package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"ratemyrep/internal/domain"
)

// LocationStore guarda la ultima ubicacion elegida por sesion de cliente.
type LocationStore interface {
	Save(sessionID string, saved domain.SavedLocation, ttl time.Duration) error
	Load(sessionID string) (domain.SavedLocation, bool, error)
	Delete(sessionID string) error
}

type memoryLocationStore struct {
	mu    sync.Mutex
	items map[string]memoryLocationEntry
}

type memoryLocationEntry struct {
	saved     domain.SavedLocation
	expiresAt time.Time
}

func NewMemoryLocationStore() LocationStore {
	return &memoryLocationStore{
		items: make(map[string]memoryLocationEntry),
	}
}

func (s *memoryLocationStore) Save(sessionID string, saved domain.SavedLocation, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	s.items[sessionID] = memoryLocationEntry{saved: saved, expiresAt: time.Now().UTC().Add(ttl)}
	return nil
}

func (s *memoryLocationStore) Load(sessionID string) (domain.SavedLocation, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.items[sessionID]
	if !ok {
		return domain.SavedLocation{}, false, nil
	}
	if time.Now().UTC().After(entry.expiresAt) {
		delete(s.items, sessionID)
		return domain.SavedLocation{}, false, nil
	}
	return entry.saved, true, nil
}

func (s *memoryLocationStore) Delete(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}

// redisKV es el subconjunto del cliente de Redis que usa el store.
type redisKV interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

type redisLocationStore struct {
	client redisKV
	prefix string
}

func NewRedisLocationStore(client *redis.Client) LocationStore {
	if client == nil {
		return nil
	}
	return &redisLocationStore{
		client: client,
		prefix: "session:location:",
	}
}

func (s *redisLocationStore) Save(sessionID string, saved domain.SavedLocation, ttl time.Duration) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	payload, err := json.Marshal(saved)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Set(ctx, s.prefix+sessionID, payload, ttl).Err()
}

func (s *redisLocationStore) Load(sessionID string) (domain.SavedLocation, bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return domain.SavedLocation{}, false, nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	raw, err := s.client.Get(ctx, s.prefix+sessionID).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.SavedLocation{}, false, nil
	}
	if err != nil {
		return domain.SavedLocation{}, false, err
	}
	var saved domain.SavedLocation
	if err := json.Unmarshal(raw, &saved); err != nil {
		return domain.SavedLocation{}, false, err
	}
	return saved, true, nil
}

func (s *redisLocationStore) Delete(sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()
	return s.client.Del(ctx, s.prefix+sessionID).Err()
}
