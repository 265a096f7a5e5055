package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
	"practice_tracker/internal/domain/repository"
	"practice_tracker/internal/platform/metrics"
)

const (
	reportBanner   = "*************************************"
	reportDateFmt  = "2006-01-02 15:04:05"
	MsgEmptyReport = "No submissions to show."
)

// MemberResolver looks a user up in a group chat. It returns
// common.ErrMemberNotFound when the user is not a current member.
type MemberResolver interface {
	ResolveMember(ctx context.Context, chatID, userID int64) (model.Sender, error)
}

type StatusService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	members        MemberResolver
	loc            *time.Location
	now            func() time.Time
	logger         *slog.Logger
}

func NewStatusService(
	userRepo repository.UserRepository,
	subRepo repository.SubmissionRepository,
	members MemberResolver,
	loc *time.Location,
	logger *slog.Logger,
) *StatusService {
	return &StatusService{
		userRepo:       userRepo,
		submissionRepo: subRepo,
		members:        members,
		loc:            loc,
		now:            time.Now,
		logger:         logger,
	}
}

// PrivateReport renders every submission userID has made, dated.
func (s *StatusService) PrivateReport(ctx context.Context, userID int64, name string) (string, error) {
	subs, err := s.submissionRepo.FindByUser(ctx, userID, nil)
	if err != nil {
		return "", fmt.Errorf("failed to fetch submissions: %w", err)
	}
	var b strings.Builder
	s.writeSection(&b, name, subs, true)
	return b.String(), nil
}

// GroupReport renders today's submissions of every registered user who is a
// member of chatID. Users that cannot be resolved are left out.
func (s *StatusService) GroupReport(ctx context.Context, chatID int64) (string, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to list users: %w", err)
	}
	today := model.DayOf(s.now().In(s.loc))

	var b strings.Builder
	for _, u := range users {
		member, err := s.members.ResolveMember(ctx, chatID, u.UserID)
		if err != nil {
			if errors.Is(err, common.ErrMemberNotFound) {
				metrics.MemberLookups.WithLabelValues("not_member").Inc()
				s.logger.DebugContext(ctx, "User not found in the group", "chat_id", chatID, "user_id", u.UserID)
			} else {
				metrics.MemberLookups.WithLabelValues("error").Inc()
				s.logger.WarnContext(ctx, "Failed to resolve group member", "chat_id", chatID, "user_id", u.UserID, "err", err)
			}
			continue
		}
		metrics.MemberLookups.WithLabelValues("member").Inc()

		subs, err := s.submissionRepo.FindByUser(ctx, u.UserID, &today)
		if err != nil {
			return "", fmt.Errorf("failed to fetch submissions for user %d: %w", u.UserID, err)
		}
		s.writeSection(&b, member.DisplayName(), subs, false)
	}

	if b.Len() == 0 {
		return MsgEmptyReport, nil
	}
	return b.String(), nil
}

func (s *StatusService) writeSection(b *strings.Builder, name string, subs []model.Submission, withDate bool) {
	b.WriteString(reportBanner + "\n")
	b.WriteString(name + " submissions: \n\n")
	for _, sub := range subs {
		if withDate {
			b.WriteString("Date : " + sub.CreatedAt.In(s.loc).Format(reportDateFmt) + "\n")
		}
		b.WriteString("Name of Problem : " + sub.Name + "\n")
		b.WriteString("Solution : " + sub.SolveMethod + "\n")
		b.WriteString("Time Complexity : " + sub.TimeComplexity + "\n")
		b.WriteString("Difficulty : " + sub.Difficulty + "\n")
		b.WriteString("\n")
	}
}
