package repository

import (
	"context"
	"testing"
	"time"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSessionRepository(t *testing.T, repo SessionRepository) {
	ctx := context.Background()
	alice := model.SessionKey{ChatID: 10, UserID: 1}
	bob := model.SessionKey{ChatID: 20, UserID: 2}

	_, err := repo.Get(ctx, alice)
	assert.ErrorIs(t, err, common.ErrNotFound)

	draft := &model.SubmissionDraft{Step: model.StepTimeComplexity, Name: "Two Sum", SolveMethod: "hash map"}
	require.NoError(t, repo.Save(ctx, alice, draft))

	got, err := repo.Get(ctx, alice)
	require.NoError(t, err)
	assert.Equal(t, draft, got)

	_, err = repo.Get(ctx, bob)
	assert.ErrorIs(t, err, common.ErrNotFound, "sessions must not leak across users")

	require.NoError(t, repo.Delete(ctx, alice))
	_, err = repo.Get(ctx, alice)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestRedisSessionRepository(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	testSessionRepository(t, NewRedisSessionRepository(rdb, time.Minute))
}

func TestRedisSessionRepository_Expiry(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	repo := NewRedisSessionRepository(rdb, time.Minute)
	key := model.SessionKey{ChatID: 1, UserID: 1}
	require.NoError(t, repo.Save(context.Background(), key, &model.SubmissionDraft{Name: "x"}))

	mr.FastForward(2 * time.Minute)

	_, err := repo.Get(context.Background(), key)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestMemorySessionRepository(t *testing.T) {
	testSessionRepository(t, NewMemorySessionRepository(time.Minute))
}

func TestMemorySessionRepository_Expiry(t *testing.T) {
	repo := NewMemorySessionRepository(time.Minute).(*memorySessionRepository)
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	key := model.SessionKey{ChatID: 1, UserID: 1}
	require.NoError(t, repo.Save(context.Background(), key, &model.SubmissionDraft{Name: "x"}))

	now = now.Add(2 * time.Minute)
	_, err := repo.Get(context.Background(), key)
	assert.ErrorIs(t, err, common.ErrNotFound)
}
