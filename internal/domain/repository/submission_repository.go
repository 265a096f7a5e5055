package repository

import (
	"context"
	"database/sql"
	"fmt"

	"practice_tracker/internal/domain/model"
)

type SubmissionRepository interface {
	Create(ctx context.Context, sub *model.Submission) (int64, error)
	// FindByUser lists a user's submissions in insertion order. A nil day
	// returns every submission.
	FindByUser(ctx context.Context, userID int64, day *model.DateRange) ([]model.Submission, error)
}

const (
	createSubmissionQuery = `INSERT INTO submission ("user", name, solve_method, time_complexity, difficulty) VALUES ($1, $2, $3, $4, $5)`

	selectSubmissionColumns   = `SELECT id, "user", name, solve_method, time_complexity, difficulty, created_at FROM submission`
	findSubmissionsQuery      = selectSubmissionColumns + ` WHERE "user" = $1 ORDER BY id`
	findSubmissionsRangeQuery = selectSubmissionColumns + ` WHERE "user" = $1 AND created_at >= $2 AND created_at < $3 ORDER BY id`
)

type pgSubmissionRepository struct {
	db *sql.DB
}

func NewPgSubmissionRepository(db *sql.DB) SubmissionRepository {
	return &pgSubmissionRepository{db: db}
}

// Create returns the number of inserted rows.
func (r *pgSubmissionRepository) Create(ctx context.Context, sub *model.Submission) (int64, error) {
	res, err := r.db.ExecContext(ctx, createSubmissionQuery,
		sub.UserID, sub.Name, sub.SolveMethod, sub.TimeComplexity, sub.Difficulty,
	)
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.Create: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgSubmissionRepository.Create: rows affected: %w", err)
	}
	return n, nil
}

func (r *pgSubmissionRepository) FindByUser(ctx context.Context, userID int64, day *model.DateRange) ([]model.Submission, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if day == nil {
		rows, err = r.db.QueryContext(ctx, findSubmissionsQuery, userID)
	} else {
		rows, err = r.db.QueryContext(ctx, findSubmissionsRangeQuery, userID, day.From, day.To)
	}
	if err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.FindByUser: %w", err)
	}
	defer rows.Close()

	var subs []model.Submission
	for rows.Next() {
		var s model.Submission
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &s.SolveMethod, &s.TimeComplexity, &s.Difficulty, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgSubmissionRepository.FindByUser: scan: %w", err)
		}
		subs = append(subs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgSubmissionRepository.FindByUser: %w", err)
	}
	return subs, nil
}
