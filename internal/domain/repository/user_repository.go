package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"practice_tracker/internal/common"
	"practice_tracker/internal/domain/model"
)

type UserRepository interface {
	FindByID(ctx context.Context, userID int64) (*model.User, error)
	Create(ctx context.Context, userID int64) (int64, error)
	List(ctx context.Context) ([]model.User, error)
}

const (
	findUserByIDQuery = `SELECT user_id, created_at FROM "user" WHERE user_id = $1`
	createUserQuery   = `INSERT INTO "user" (user_id) VALUES ($1)`
	listUsersQuery    = `SELECT user_id, created_at FROM "user" ORDER BY user_id`
)

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

func (r *pgUserRepository) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, findUserByIDQuery, userID).Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

// Create returns the number of inserted rows.
func (r *pgUserRepository) Create(ctx context.Context, userID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, createUserQuery, userID)
	if err != nil {
		if common.IsUniqueViolation(err) {
			return 0, fmt.Errorf("user %d already exists: %w", userID, common.ErrConflict)
		}
		return 0, fmt.Errorf("pgUserRepository.Create: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("pgUserRepository.Create: rows affected: %w", err)
	}
	return n, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.UserID, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("pgUserRepository.List: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	return users, nil
}
