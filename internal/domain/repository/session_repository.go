package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

// SessionRepository holds in-progress submission forms.
type SessionRepository interface {
	Get(ctx context.Context, key model.SessionKey) (*model.SubmissionDraft, error)
	Save(ctx context.Context, key model.SessionKey, draft *model.SubmissionDraft) error
	Delete(ctx context.Context, key model.SessionKey) error
}

const sessionKeyPrefix = "intake:"

type redisSessionRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisSessionRepository(rdb *redis.Client, ttl time.Duration) SessionRepository {
	return &redisSessionRepository{rdb: rdb, ttl: ttl}
}

func (r *redisSessionRepository) Get(ctx context.Context, key model.SessionKey) (*model.SubmissionDraft, error) {
	raw, err := r.rdb.Get(ctx, sessionKeyPrefix+key.String()).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("redisSessionRepository.Get: %w", err)
	}
	draft := &model.SubmissionDraft{}
	if err := json.Unmarshal(raw, draft); err != nil {
		return nil, fmt.Errorf("redisSessionRepository.Get: decode: %w", err)
	}
	return draft, nil
}

func (r *redisSessionRepository) Save(ctx context.Context, key model.SessionKey, draft *model.SubmissionDraft) error {
	raw, err := json.Marshal(draft)
	if err != nil {
		return fmt.Errorf("redisSessionRepository.Save: encode: %w", err)
	}
	if err := r.rdb.Set(ctx, sessionKeyPrefix+key.String(), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Save: %w", err)
	}
	return nil
}

func (r *redisSessionRepository) Delete(ctx context.Context, key model.SessionKey) error {
	if err := r.rdb.Del(ctx, sessionKeyPrefix+key.String()).Err(); err != nil {
		return fmt.Errorf("redisSessionRepository.Delete: %w", err)
	}
	return nil
}

type memorySession struct {
	draft   model.SubmissionDraft
	expires time.Time
}

type memorySessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[model.SessionKey]memorySession
}

// NewMemorySessionRepository keeps forms in process memory; they are lost on restart.
func NewMemorySessionRepository(ttl time.Duration) SessionRepository {
	return &memorySessionRepository{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[model.SessionKey]memorySession),
	}
}

func (r *memorySessionRepository) Get(_ context.Context, key model.SessionKey) (*model.SubmissionDraft, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[key]
	if !ok {
		return nil, common.ErrNotFound
	}
	if r.now().After(s.expires) {
		delete(r.sessions, key)
		return nil, common.ErrNotFound
	}
	draft := s.draft
	return &draft, nil
}

func (r *memorySessionRepository) Save(_ context.Context, key model.SessionKey, draft *model.SubmissionDraft) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[key] = memorySession{draft: *draft, expires: r.now().Add(r.ttl)}
	return nil
}

func (r *memorySessionRepository) Delete(_ context.Context, key model.SessionKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.sessions, key)
	return nil
}
