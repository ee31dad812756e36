package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

type roleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) repository.RoleRepository {
	return &roleRepository{db: db}
}

func (r *roleRepository) AutoApproveForShift(ctx context.Context, shiftID uuid.UUID) (bool, error) {
	var autoApprove bool
	query := `SELECT r.marketplace_auto_approve
	          FROM shifts s
	          INNER JOIN roles r ON s.role_id = r.id
	          WHERE s.uuid = $1`
	err := r.db.QueryRowContext(ctx, query, shiftID).Scan(&autoApprove)
	if errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("shift %s: %w", shiftID, domain.ErrNotFound)
	}
	if err != nil {
		return false, err
	}
	return autoApprove, nil
}
