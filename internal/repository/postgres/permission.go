package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

type permissionRepository struct {
	db *sql.DB
}

func NewPermissionRepository(db *sql.DB) repository.PermissionRepository {
	return &permissionRepository{db: db}
}

// HasPermission reports whether any of the user's role rows grants the
// permission. Permission names come from domain constants and are mapped to
// a fixed query each, never interpolated.
func (r *permissionRepository) HasPermission(ctx context.Context, userID int32, permission string) (bool, error) {
	var query string
	switch permission {
	case domain.PermissionEditRota:
		query = `SELECT EXISTS (SELECT 1 FROM user_roles WHERE user_profile_id = $1 AND can_edit_rota = true)`
	default:
		return false, fmt.Errorf("unknown permission %q", permission)
	}

	var granted bool
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&granted); err != nil {
		return false, err
	}
	return granted, nil
}
