package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

type shiftRequestRepository struct {
	db *sql.DB
}

func NewShiftRequestRepository(db *sql.DB) repository.ShiftRequestRepository {
	return &shiftRequestRepository{db: db}
}

// detailBaseQuery joins a request with its shift, role and staff display
// data. Every read view selects from it with a different WHERE clause.
const detailBaseQuery = `
	SELECT
		sr.id, sr.shift_id, sr.requester_id, sr.type, sr.status,
		sr.target_user_id, sr.target_shift_id, sr.candidate_id,
		sr.resolved_by, sr.resolved_at, sr.notes, sr.created_at, sr.updated_at,
		to_char(s.date, 'YYYY-MM-DD') AS shift_date,
		s.label AS shift_label,
		to_char(s.start_time, 'HH24:MI') AS shift_start,
		to_char(s.end_time, 'HH24:MI') AS shift_end,
		s.role_id AS shift_role_id,
		r.role_name AS shift_role_name,
		s.user_profile_id AS shift_user_id,
		u_req.full_name AS requester_name,
		u_req.short_name AS requester_short_name,
		u_target.full_name AS target_user_name,
		u_target.short_name AS target_user_short_name,
		to_char(ts.date, 'YYYY-MM-DD') AS target_shift_date,
		ts.label AS target_shift_label,
		to_char(ts.start_time, 'HH24:MI') AS target_shift_start,
		to_char(ts.end_time, 'HH24:MI') AS target_shift_end,
		u_cand.full_name AS candidate_name,
		u_cand.short_name AS candidate_short_name,
		r.marketplace_auto_approve AS role_auto_approve
	FROM shift_requests sr
	INNER JOIN shifts s ON sr.shift_id = s.uuid
	INNER JOIN roles r ON s.role_id = r.id
	INNER JOIN users u_req ON sr.requester_id = u_req.user_profile_id
	LEFT JOIN users u_target ON sr.target_user_id = u_target.user_profile_id
	LEFT JOIN shifts ts ON sr.target_shift_id = ts.uuid
	LEFT JOIN users u_cand ON sr.candidate_id = u_cand.user_profile_id`

func (r *shiftRequestRepository) Create(ctx context.Context, req *domain.ShiftRequest) error {
	query := `INSERT INTO shift_requests (shift_id, requester_id, type, status, target_user_id, target_shift_id, notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`
	now := time.Now()
	req.CreatedAt = now
	req.UpdatedAt = now
	return r.db.QueryRowContext(ctx, query,
		req.ShiftID, req.RequesterID, req.Type, req.Status,
		req.TargetUserID, req.TargetShiftID, req.Notes, now, now,
	).Scan(&req.ID)
}

func (r *shiftRequestRepository) GetByID(ctx context.Context, id int32) (*domain.ShiftRequest, error) {
	req := &domain.ShiftRequest{}
	var (
		targetUserID, candidateID, resolvedBy sql.NullInt32
		targetShiftID                         uuid.NullUUID
		resolvedAt                            sql.NullTime
		notes                                 sql.NullString
	)
	query := `SELECT id, shift_id, requester_id, type, status, target_user_id, target_shift_id, candidate_id, resolved_by, resolved_at, notes, created_at, updated_at
	          FROM shift_requests WHERE id = $1`
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&req.ID, &req.ShiftID, &req.RequesterID, &req.Type, &req.Status,
		&targetUserID, &targetShiftID, &candidateID,
		&resolvedBy, &resolvedAt, &notes, &req.CreatedAt, &req.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	req.TargetUserID = int32Ptr(targetUserID)
	req.TargetShiftID = uuidPtr(targetShiftID)
	req.CandidateID = int32Ptr(candidateID)
	req.ResolvedBy = int32Ptr(resolvedBy)
	req.Notes = strPtr(notes)
	if resolvedAt.Valid {
		req.ResolvedAt = &resolvedAt.Time
	}
	return req, nil
}

func (r *shiftRequestRepository) GetDetails(ctx context.Context, id int32) (*domain.ShiftRequestDetails, error) {
	row := r.db.QueryRowContext(ctx, detailBaseQuery+` WHERE sr.id = $1`, id)
	d, err := scanRequestDetails(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("request %d: %w", id, domain.ErrNotFound)
	}
	return d, err
}

// claimQuery attaches the candidate and moves the request forward. The
// predicate re-asserts the expected status, that nobody claimed first, and
// that the candidate is not the requester, so racing callers cannot both
// win: the loser updates zero rows.
const claimQuery = `
	UPDATE shift_requests
	SET candidate_id = $1,
	    target_shift_id = COALESCE($2, target_shift_id),
	    status = $3,
	    updated_at = NOW()
	WHERE id = $4 AND status = $5 AND candidate_id IS NULL AND requester_id <> $1`

// claimSettleQuery is the auto-approve variant: the claim also resolves the
// request, and the ownership transfer runs in the same transaction.
const claimSettleQuery = `
	UPDATE shift_requests
	SET candidate_id = $1,
	    target_shift_id = COALESCE($2, target_shift_id),
	    status = $3,
	    resolved_by = $1,
	    resolved_at = NOW(),
	    updated_at = NOW()
	WHERE id = $4 AND status = $5 AND candidate_id IS NULL AND requester_id <> $1`

func (r *shiftRequestRepository) Claim(ctx context.Context, c repository.Claim) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := claimQuery
	if c.Settlement != nil {
		query = claimSettleQuery
	}
	res, err := tx.ExecContext(ctx, query, c.CandidateID, c.OfferedShiftID, c.NewStatus, c.RequestID, c.FromStatus)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("claim request %d: %w", c.RequestID, domain.ErrStateConflict)
	}

	if c.Settlement != nil {
		if err := settle(ctx, tx, c.Settlement); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (r *shiftRequestRepository) Decide(ctx context.Context, d repository.Decision) error {
	if !d.Approve {
		res, err := r.db.ExecContext(ctx, `
			UPDATE shift_requests
			SET status = $1, resolved_by = $2, resolved_at = NOW(), notes = COALESCE($3, notes), updated_at = NOW()
			WHERE id = $4 AND status = $5`,
			domain.RequestStatusRejected, d.ResolvedBy, d.Notes, d.RequestID, domain.RequestStatusPendingApproval)
		if err != nil {
			return err
		}
		return requireOneRow(res, d.RequestID)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Approval re-asserts that a candidate is attached and distinct from the
	// requester; two admins racing on the same request cannot both settle.
	res, err := tx.ExecContext(ctx, `
		UPDATE shift_requests
		SET status = $1, resolved_by = $2, resolved_at = NOW(), notes = COALESCE($3, notes), updated_at = NOW()
		WHERE id = $4 AND status = $5 AND candidate_id IS NOT NULL AND candidate_id <> requester_id`,
		domain.RequestStatusApproved, d.ResolvedBy, d.Notes, d.RequestID, domain.RequestStatusPendingApproval)
	if err != nil {
		return err
	}
	if err := requireOneRow(res, d.RequestID); err != nil {
		return err
	}
	if err := settle(ctx, tx, d.Settlement); err != nil {
		return err
	}
	return tx.Commit()
}

func (r *shiftRequestRepository) Resolve(ctx context.Context, id int32, to domain.RequestStatus, resolvedBy int32, from ...domain.RequestStatus) error {
	if len(from) == 0 {
		return fmt.Errorf("resolve request %d: no source status given", id)
	}
	args := []interface{}{to, resolvedBy, id}
	placeholders := make([]string, len(from))
	for i, st := range from {
		placeholders[i] = fmt.Sprintf("$%d", len(args)+1)
		args = append(args, st)
	}
	query := fmt.Sprintf(`
		UPDATE shift_requests
		SET status = $1, resolved_by = $2, resolved_at = NOW(), updated_at = NOW()
		WHERE id = $3 AND status IN (%s)`, strings.Join(placeholders, ", "))
	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireOneRow(res, id)
}

func (r *shiftRequestRepository) ListOpen(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	query := detailBaseQuery + ` WHERE sr.status = 'OPEN'`
	args := []interface{}{}
	if roleID != nil {
		query += ` AND s.role_id = $1`
		args = append(args, *roleID)
	}
	query += ` ORDER BY sr.created_at DESC`
	return r.list(ctx, query, args...)
}

func (r *shiftRequestRepository) ListByRequester(ctx context.Context, requesterID int32) ([]domain.ShiftRequestDetails, error) {
	query := detailBaseQuery + ` WHERE sr.requester_id = $1 ORDER BY sr.created_at DESC`
	return r.list(ctx, query, requesterID)
}

func (r *shiftRequestRepository) ListIncoming(ctx context.Context, targetUserID int32) ([]domain.ShiftRequestDetails, error) {
	query := detailBaseQuery + ` WHERE sr.target_user_id = $1 AND sr.status = 'PROPOSED' ORDER BY sr.created_at DESC`
	return r.list(ctx, query, targetUserID)
}

func (r *shiftRequestRepository) ListPendingApproval(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	query := detailBaseQuery + ` WHERE sr.status = 'PENDING_APPROVAL'`
	args := []interface{}{}
	if roleID != nil {
		query += ` AND s.role_id = $1`
		args = append(args, *roleID)
	}
	// Oldest first so reviewers work through the queue in arrival order.
	query += ` ORDER BY sr.created_at ASC`
	return r.list(ctx, query, args...)
}

func (r *shiftRequestRepository) CountDashboard(ctx context.Context, userID int32) (*domain.DashboardCounts, error) {
	counts := &domain.DashboardCounts{}
	err := r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM shift_requests WHERE status = 'OPEN'`,
	).Scan(&counts.Open)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM shift_requests WHERE requester_id = $1`, userID,
	).Scan(&counts.Mine)
	if err != nil {
		return nil, err
	}
	err = r.db.QueryRowContext(ctx,
		`SELECT count(*) FROM shift_requests WHERE target_user_id = $1 AND status = 'PROPOSED'`, userID,
	).Scan(&counts.Incoming)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *shiftRequestRepository) CancelExpired(ctx context.Context, systemUserID int32, before string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE shift_requests sr
		SET status = 'CANCELLED', resolved_by = $1, resolved_at = NOW(), updated_at = NOW()
		FROM shifts s
		WHERE sr.shift_id = s.uuid
		  AND sr.status IN ('OPEN', 'PROPOSED', 'PENDING_APPROVAL')
		  AND s.date < $2`,
		systemUserID, before)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// settle transfers shift ownership inside the caller's transaction. Both
// updates are conditional on the expected current owner; zero rows means
// ownership moved underneath us and the whole transition rolls back.
func settle(ctx context.Context, tx *sql.Tx, s *repository.Settlement) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE shifts SET user_profile_id = $1 WHERE uuid = $2 AND user_profile_id = $3`,
		s.ToOwnerID, s.ShiftID, s.FromOwnerID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("settle shift %s: %w", s.ShiftID, domain.ErrStateConflict)
	}

	if s.TargetShiftID != nil {
		res, err = tx.ExecContext(ctx,
			`UPDATE shifts SET user_profile_id = $1 WHERE uuid = $2 AND user_profile_id = $3`,
			s.FromOwnerID, *s.TargetShiftID, s.ToOwnerID)
		if err != nil {
			return err
		}
		n, err = res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("settle shift %s: %w", *s.TargetShiftID, domain.ErrStateConflict)
		}
	}
	return nil
}

func requireOneRow(res sql.Result, requestID int32) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("request %d: %w", requestID, domain.ErrStateConflict)
	}
	return nil
}

func (r *shiftRequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]domain.ShiftRequestDetails, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var details []domain.ShiftRequestDetails
	for rows.Next() {
		d, err := scanRequestDetails(rows)
		if err != nil {
			return nil, err
		}
		details = append(details, *d)
	}
	return details, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRequestDetails(row rowScanner) (*domain.ShiftRequestDetails, error) {
	var d domain.ShiftRequestDetails
	var (
		targetUserID, candidateID, resolvedBy, shiftUserID       sql.NullInt32
		targetShiftID                                            uuid.NullUUID
		resolvedAt                                               sql.NullTime
		notes, shiftStart, shiftEnd                              sql.NullString
		targetUserName, targetUserShort                          sql.NullString
		targetShiftDate, targetShiftLabel                        sql.NullString
		targetShiftStart, targetShiftEnd                         sql.NullString
		candidateName, candidateShort                            sql.NullString
	)
	err := row.Scan(
		&d.ID, &d.ShiftID, &d.RequesterID, &d.Type, &d.Status,
		&targetUserID, &targetShiftID, &candidateID,
		&resolvedBy, &resolvedAt, &notes, &d.CreatedAt, &d.UpdatedAt,
		&d.ShiftDate, &d.ShiftLabel, &shiftStart, &shiftEnd,
		&d.ShiftRoleID, &d.ShiftRoleName, &shiftUserID,
		&d.RequesterName, &d.RequesterShortName,
		&targetUserName, &targetUserShort,
		&targetShiftDate, &targetShiftLabel, &targetShiftStart, &targetShiftEnd,
		&candidateName, &candidateShort,
		&d.RoleAutoApprove,
	)
	if err != nil {
		return nil, err
	}
	d.TargetUserID = int32Ptr(targetUserID)
	d.TargetShiftID = uuidPtr(targetShiftID)
	d.CandidateID = int32Ptr(candidateID)
	d.ResolvedBy = int32Ptr(resolvedBy)
	if resolvedAt.Valid {
		d.ResolvedAt = &resolvedAt.Time
	}
	d.Notes = strPtr(notes)
	d.ShiftStart = strPtr(shiftStart)
	d.ShiftEnd = strPtr(shiftEnd)
	d.ShiftUserID = int32Ptr(shiftUserID)
	d.TargetUserName = strPtr(targetUserName)
	d.TargetUserShort = strPtr(targetUserShort)
	d.TargetShiftDate = strPtr(targetShiftDate)
	d.TargetShiftLabel = strPtr(targetShiftLabel)
	d.TargetShiftStart = strPtr(targetShiftStart)
	d.TargetShiftEnd = strPtr(targetShiftEnd)
	d.CandidateName = strPtr(candidateName)
	d.CandidateShortName = strPtr(candidateShort)
	return &d, nil
}

func int32Ptr(v sql.NullInt32) *int32 {
	if !v.Valid {
		return nil
	}
	return &v.Int32
}

func strPtr(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func uuidPtr(v uuid.NullUUID) *uuid.UUID {
	if !v.Valid {
		return nil
	}
	return &v.UUID
}
