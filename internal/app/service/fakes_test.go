package service

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
)

var testLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[int64]model.User
	creates int
	// createRows overrides the affected row count when non-nil.
	createRows *int64
	findErr    error
}

func newFakeUserRepo(ids ...int64) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]model.User)}
	for _, id := range ids {
		r.users[id] = model.User{UserID: id}
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, userID int64) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[userID]
	if !ok {
		return nil, common.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) Create(_ context.Context, userID int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createRows != nil {
		return *r.createRows, nil
	}
	if _, ok := r.users[userID]; ok {
		return 0, common.ErrConflict
	}
	r.users[userID] = model.User{UserID: userID, CreatedAt: time.Now()}
	return 1, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.User
	for _, u := range r.users {
		out = append(out, u)
	}
	// Deterministic order, as the pg repository sorts by user_id.
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j].UserID < out[j-1].UserID; j-- {
			out[j], out[j-1] = out[j-1], out[j]
		}
	}
	return out, nil
}

type fakeSubmissionRepo struct {
	mu         sync.Mutex
	subs       []model.Submission
	now        func() time.Time
	createRows *int64
	ranges     []*model.DateRange
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{now: time.Now}
}

func (r *fakeSubmissionRepo) Create(_ context.Context, sub *model.Submission) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createRows != nil {
		return *r.createRows, nil
	}
	s := *sub
	s.ID = int64(len(r.subs) + 1)
	s.CreatedAt = r.now()
	r.subs = append(r.subs, s)
	return 1, nil
}

func (r *fakeSubmissionRepo) FindByUser(_ context.Context, userID int64, day *model.DateRange) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ranges = append(r.ranges, day)
	var out []model.Submission
	for _, s := range r.subs {
		if s.UserID != userID {
			continue
		}
		if day != nil && (s.CreatedAt.Before(day.From) || !s.CreatedAt.Before(day.To)) {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

type fakeMembers struct {
	members map[int64]model.Sender
	errs    map[int64]error
}

func (m *fakeMembers) ResolveMember(_ context.Context, _ int64, userID int64) (model.Sender, error) {
	if err, ok := m.errs[userID]; ok {
		return model.Sender{}, err
	}
	s, ok := m.members[userID]
	if !ok {
		return model.Sender{}, common.ErrMemberNotFound
	}
	return s, nil
}

func rows(n int64) *int64 { return &n }
