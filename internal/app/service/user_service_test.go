package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_EnsureUser_Idempotent(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewUserService(repo, testLogger)
	ctx := context.Background()

	res, err := svc.EnsureUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, UserCreated, res)

	res, err = svc.EnsureUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, UserAlreadyExists, res)

	users, _ := repo.List(ctx)
	assert.Len(t, users, 1)
	assert.Equal(t, 1, repo.creates)
}

func TestUserService_EnsureUser_ZeroRowsStillReportsCreated(t *testing.T) {
	repo := newFakeUserRepo()
	repo.createRows = rows(0)
	svc := NewUserService(repo, testLogger)

	res, err := svc.EnsureUser(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, UserCreated, res)
}

func TestUserService_EnsureUser_LookupError(t *testing.T) {
	repo := newFakeUserRepo()
	repo.findErr = errors.New("connection refused")
	svc := NewUserService(repo, testLogger)

	_, err := svc.EnsureUser(context.Background(), 42)
	assert.Error(t, err)
	assert.Zero(t, repo.creates)
}
