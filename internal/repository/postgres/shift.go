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

type shiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) repository.ShiftRepository {
	return &shiftRepository{db: db}
}

func (r *shiftRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error) {
	s := &domain.Shift{}
	var (
		start, end sql.NullString
		ownerID    sql.NullInt32
	)
	query := `SELECT uuid, role_id, label, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), published, user_profile_id
	          FROM shifts WHERE uuid = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.UUID, &s.RoleID, &s.Label, &s.Date, &start, &end, &s.Published, &ownerID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("shift %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s.Start = strPtr(start)
	s.End = strPtr(end)
	s.OwnerID = int32Ptr(ownerID)
	return s, nil
}

func (r *shiftRepository) ListSwappable(ctx context.Context, roleID int32, year, month int) ([]domain.Shift, error) {
	query := `SELECT uuid, role_id, label, to_char(date, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'), published, user_profile_id
	          FROM shifts
	          WHERE role_id = $1
	            AND EXTRACT(YEAR FROM date) = $2
	            AND EXTRACT(MONTH FROM date) = $3
	            AND user_profile_id IS NOT NULL
	            AND published = true
	          ORDER BY date, start_time`
	rows, err := r.db.QueryContext(ctx, query, roleID, year, month)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shifts []domain.Shift
	for rows.Next() {
		var s domain.Shift
		var (
			start, end sql.NullString
			ownerID    sql.NullInt32
		)
		if err := rows.Scan(&s.UUID, &s.RoleID, &s.Label, &s.Date, &start, &end, &s.Published, &ownerID); err != nil {
			return nil, err
		}
		s.Start = strPtr(start)
		s.End = strPtr(end)
		s.OwnerID = int32Ptr(ownerID)
		shifts = append(shifts, s)
	}
	return shifts, rows.Err()
}
