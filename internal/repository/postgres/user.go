package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	u := &domain.User{}
	query := `SELECT user_profile_id, full_name, short_name, email FROM users WHERE user_profile_id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(&u.ID, &u.FullName, &u.ShortName, &u.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}
