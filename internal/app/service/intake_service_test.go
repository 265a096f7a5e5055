package service

import (
	"context"
	"testing"
	"time"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/domain/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type intakeFixture struct {
	intake   *IntakeService
	users    *fakeUserRepo
	subs     *fakeSubmissionRepo
	sessions repository.SessionRepository
}

func newIntakeFixture() *intakeFixture {
	users := newFakeUserRepo()
	subs := newFakeSubmissionRepo()
	sessions := repository.NewMemorySessionRepository(time.Hour)
	submissions := NewSubmissionService(subs, NewUserService(users, testLogger), testLogger)
	return &intakeFixture{
		intake:   NewIntakeService(sessions, submissions, testLogger),
		users:    users,
		subs:     subs,
		sessions: sessions,
	}
}

func actions(p Prompt) []string {
	var out []string
	for _, b := range p.Buttons {
		out = append(out, b.Action)
	}
	return out
}

func TestIntake_FullFlow(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	key := model.SessionKey{ChatID: 42, UserID: 42}

	p, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "Leetcode Submission\n\nEnter Name of the problem", p.Text)
	assert.Equal(t, []string{ActionCancel}, actions(p))

	p, err = f.intake.Answer(ctx, key, "Two Sum")
	require.NoError(t, err)
	assert.Equal(t, "How did you solve it ?", p.Text)

	p, err = f.intake.Answer(ctx, key, "hash map")
	require.NoError(t, err)
	assert.Equal(t, "What is the time complexity ?", p.Text)

	p, err = f.intake.Answer(ctx, key, "O(n)")
	require.NoError(t, err)
	assert.Equal(t, "How did you find this problem ? (optional)", p.Text)
	assert.Equal(t, []string{ActionSkip, ActionCancel}, actions(p))

	p, err = f.intake.Answer(ctx, key, "easy")
	require.NoError(t, err)
	assert.Contains(t, p.Text, "Name of Problem : Two Sum")
	assert.Contains(t, p.Text, "Difficulty : easy")
	assert.Equal(t, []string{ActionSubmit, ActionCancel}, actions(p))

	p, err = f.intake.Act(ctx, key, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, MsgSubmissionSuccessful, p.Text)

	require.Len(t, f.subs.subs, 1)
	stored := f.subs.subs[0]
	assert.Equal(t, int64(42), stored.UserID)
	assert.Equal(t, "Two Sum", stored.Name)
	assert.Equal(t, "hash map", stored.SolveMethod)
	assert.Equal(t, "O(n)", stored.TimeComplexity)
	assert.Equal(t, "easy", stored.Difficulty)

	// Submitting creates the user row the submission references.
	_, err = f.users.FindByID(ctx, 42)
	assert.NoError(t, err)

	_, err = f.sessions.Get(ctx, key)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestIntake_SkipDifficultyStoresEmptyString(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	key := model.SessionKey{ChatID: 7, UserID: 7}

	_, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)
	for _, answer := range []string{"LRU Cache", "list + map", "O(1)"} {
		_, err = f.intake.Answer(ctx, key, answer)
		require.NoError(t, err)
	}

	p, err := f.intake.Act(ctx, key, ActionSkip)
	require.NoError(t, err)
	assert.Equal(t, []string{ActionSubmit, ActionCancel}, actions(p))

	p, err = f.intake.Act(ctx, key, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, MsgSubmissionSuccessful, p.Text)

	require.Len(t, f.subs.subs, 1)
	assert.Equal(t, "", f.subs.subs[0].Difficulty)
}

func TestIntake_RequiredFieldRePrompts(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	key := model.SessionKey{ChatID: 1, UserID: 1}

	_, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)

	p, err := f.intake.Answer(ctx, key, "   ")
	require.NoError(t, err)
	assert.Equal(t, "This field is required.\n\nEnter Name of the problem", p.Text)

	draft, err := f.sessions.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, model.StepName, draft.Step)
}

func TestIntake_SkipRequiredFieldRejected(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	key := model.SessionKey{ChatID: 1, UserID: 1}

	_, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)

	_, err = f.intake.Act(ctx, key, ActionSkip)
	assert.ErrorIs(t, err, common.ErrInvalidAction)

	_, err = f.intake.Act(ctx, key, ActionSubmit)
	assert.ErrorIs(t, err, common.ErrInvalidAction)
}

func TestIntake_Cancel(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	key := model.SessionKey{ChatID: 1, UserID: 1}

	_, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)
	_, err = f.intake.Answer(ctx, key, "Two Sum")
	require.NoError(t, err)

	p, err := f.intake.Act(ctx, key, ActionCancel)
	require.NoError(t, err)
	assert.Equal(t, MsgSubmissionCancelled, p.Text)
	assert.Empty(t, f.subs.subs)
	assert.Zero(t, f.users.creates)

	_, err = f.intake.Answer(ctx, key, "O(n)")
	assert.ErrorIs(t, err, common.ErrNoActiveForm)
}

func TestIntake_SessionsIsolatedPerUser(t *testing.T) {
	f := newIntakeFixture()
	ctx := context.Background()
	alice := model.SessionKey{ChatID: 1, UserID: 1}
	bob := model.SessionKey{ChatID: 2, UserID: 2}

	_, err := f.intake.Begin(ctx, alice)
	require.NoError(t, err)

	_, err = f.intake.Answer(ctx, bob, "Two Sum")
	assert.ErrorIs(t, err, common.ErrNoActiveForm)

	p, err := f.intake.Answer(ctx, alice, "Two Sum")
	require.NoError(t, err)
	assert.Equal(t, "How did you solve it ?", p.Text)
}

func TestIntake_ZeroRowsIsUnsuccessful(t *testing.T) {
	f := newIntakeFixture()
	f.subs.createRows = rows(0)
	ctx := context.Background()
	key := model.SessionKey{ChatID: 1, UserID: 1}

	_, err := f.intake.Begin(ctx, key)
	require.NoError(t, err)
	for _, answer := range []string{"a", "b", "c", "d"} {
		_, err = f.intake.Answer(ctx, key, answer)
		require.NoError(t, err)
	}

	p, err := f.intake.Act(ctx, key, ActionSubmit)
	require.NoError(t, err)
	assert.Equal(t, MsgSubmissionUnsuccessful, p.Text)
}

func TestIntake_UnknownAction(t *testing.T) {
	f := newIntakeFixture()
	_, err := f.intake.Act(context.Background(), model.SessionKey{}, "form:bogus")
	assert.ErrorIs(t, err, common.ErrInvalidAction)
}
