package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
	"shiftmarket-backend/internal/repository/postgres"
)

func newMockDB(t *testing.T) (*postgres.Store, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return postgres.NewStore(db), mock
}

func TestShiftRequestRepository_Create(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	shiftID := uuid.New()
	req := &domain.ShiftRequest{
		ShiftID:     shiftID,
		RequesterID: 7,
		Type:        domain.RequestTypeGiveAway,
		Status:      domain.RequestStatusOpen,
	}

	mock.ExpectQuery("INSERT INTO shift_requests").
		WithArgs(shiftID, int32(7), domain.RequestTypeGiveAway, domain.RequestStatusOpen, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	err := store.ShiftRequestRepository.Create(ctx, req)
	assert.NoError(t, err)
	assert.Equal(t, int32(42), req.ID)
	assert.False(t, req.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRequestRepository_GetByID(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("Found", func(t *testing.T) {
		shiftID := uuid.New()
		now := time.Now()
		rows := sqlmock.NewRows([]string{
			"id", "shift_id", "requester_id", "type", "status",
			"target_user_id", "target_shift_id", "candidate_id",
			"resolved_by", "resolved_at", "notes", "created_at", "updated_at",
		}).AddRow(5, shiftID.String(), 7, "SWAP", "PROPOSED", 9, nil, nil, nil, nil, "please", now, now)

		mock.ExpectQuery("SELECT (.+) FROM shift_requests WHERE id").
			WithArgs(int32(5)).
			WillReturnRows(rows)

		req, err := store.ShiftRequestRepository.GetByID(ctx, 5)
		assert.NoError(t, err)
		assert.Equal(t, domain.RequestStatusProposed, req.Status)
		assert.Equal(t, int32(9), *req.TargetUserID)
		assert.Nil(t, req.CandidateID)
		assert.Equal(t, "please", *req.Notes)
	})

	t.Run("NotFound", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM shift_requests WHERE id").
			WithArgs(int32(99)).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		_, err := store.ShiftRequestRepository.GetByID(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestShiftRequestRepository_Claim(t *testing.T) {
	ctx := context.Background()

	t.Run("PendingApproval", func(t *testing.T) {
		store, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(int32(3), nil, domain.RequestStatusPendingApproval, int32(1), domain.RequestStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.Claim(ctx, repository.Claim{
			RequestID:   1,
			FromStatus:  domain.RequestStatusOpen,
			CandidateID: 3,
			NewStatus:   domain.RequestStatusPendingApproval,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AutoApproveWithSettlement", func(t *testing.T) {
		store, mock := newMockDB(t)
		shiftID := uuid.New()
		offeredID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(int32(3), offeredID, domain.RequestStatusApproved, int32(1), domain.RequestStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Requested shift moves to the candidate.
		mock.ExpectExec("UPDATE shifts SET user_profile_id").
			WithArgs(int32(3), shiftID, int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		// Offered shift moves back to the requester.
		mock.ExpectExec("UPDATE shifts SET user_profile_id").
			WithArgs(int32(7), offeredID, int32(3)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.Claim(ctx, repository.Claim{
			RequestID:      1,
			FromStatus:     domain.RequestStatusOpen,
			CandidateID:    3,
			OfferedShiftID: &offeredID,
			NewStatus:      domain.RequestStatusApproved,
			Settlement: &repository.Settlement{
				ShiftID:       shiftID,
				FromOwnerID:   7,
				ToOwnerID:     3,
				TargetShiftID: &offeredID,
			},
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("LostRace", func(t *testing.T) {
		store, mock := newMockDB(t)

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(int32(3), nil, domain.RequestStatusPendingApproval, int32(1), domain.RequestStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.Claim(ctx, repository.Claim{
			RequestID:   1,
			FromStatus:  domain.RequestStatusOpen,
			CandidateID: 3,
			NewStatus:   domain.RequestStatusPendingApproval,
		})
		assert.ErrorIs(t, err, domain.ErrStateConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("SettlementOwnerMoved", func(t *testing.T) {
		store, mock := newMockDB(t)
		shiftID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(int32(3), nil, domain.RequestStatusApproved, int32(1), domain.RequestStatusOpen).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE shifts SET user_profile_id").
			WithArgs(int32(3), shiftID, int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.Claim(ctx, repository.Claim{
			RequestID:   1,
			FromStatus:  domain.RequestStatusOpen,
			CandidateID: 3,
			NewStatus:   domain.RequestStatusApproved,
			Settlement: &repository.Settlement{
				ShiftID:     shiftID,
				FromOwnerID: 7,
				ToOwnerID:   3,
			},
		})
		assert.ErrorIs(t, err, domain.ErrStateConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRequestRepository_Decide(t *testing.T) {
	ctx := context.Background()

	t.Run("Reject", func(t *testing.T) {
		store, mock := newMockDB(t)
		notes := "coverage too thin"

		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(domain.RequestStatusRejected, int32(20), notes, int32(1), domain.RequestStatusPendingApproval).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Decide(ctx, repository.Decision{
			RequestID:  1,
			Approve:    false,
			ResolvedBy: 20,
			Notes:      &notes,
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApproveWithSettlement", func(t *testing.T) {
		store, mock := newMockDB(t)
		shiftID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(domain.RequestStatusApproved, int32(20), nil, int32(1), domain.RequestStatusPendingApproval).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("UPDATE shifts SET user_profile_id").
			WithArgs(int32(3), shiftID, int32(7)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.Decide(ctx, repository.Decision{
			RequestID:  1,
			Approve:    true,
			ResolvedBy: 20,
			Settlement: &repository.Settlement{
				ShiftID:     shiftID,
				FromOwnerID: 7,
				ToOwnerID:   3,
			},
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ApproveAlreadyResolved", func(t *testing.T) {
		store, mock := newMockDB(t)
		shiftID := uuid.New()

		mock.ExpectBegin()
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(domain.RequestStatusApproved, int32(20), nil, int32(1), domain.RequestStatusPendingApproval).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := store.Decide(ctx, repository.Decision{
			RequestID:  1,
			Approve:    true,
			ResolvedBy: 20,
			Settlement: &repository.Settlement{
				ShiftID:     shiftID,
				FromOwnerID: 7,
				ToOwnerID:   3,
			},
		})
		assert.ErrorIs(t, err, domain.ErrStateConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRequestRepository_Resolve(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(domain.RequestStatusCancelled, int32(7), int32(1),
				domain.RequestStatusOpen, domain.RequestStatusProposed, domain.RequestStatusPendingApproval).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := store.Resolve(ctx, 1, domain.RequestStatusCancelled, 7,
			domain.RequestStatusOpen, domain.RequestStatusProposed, domain.RequestStatusPendingApproval)
		assert.NoError(t, err)
	})

	t.Run("Conflict", func(t *testing.T) {
		mock.ExpectExec("UPDATE shift_requests").
			WithArgs(domain.RequestStatusRejected, int32(9), int32(2), domain.RequestStatusProposed).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := store.Resolve(ctx, 2, domain.RequestStatusRejected, 9, domain.RequestStatusProposed)
		assert.ErrorIs(t, err, domain.ErrStateConflict)
	})

	t.Run("NoSourceStatus", func(t *testing.T) {
		err := store.Resolve(ctx, 3, domain.RequestStatusCancelled, 7)
		assert.Error(t, err)
	})
}

func TestShiftRequestRepository_CountDashboard(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM shift_requests WHERE status = 'OPEN'").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM shift_requests WHERE requester_id").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM shift_requests WHERE target_user_id").
		WithArgs(int32(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	counts, err := store.CountDashboard(ctx, 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(4), counts.Open)
	assert.Equal(t, int64(2), counts.Mine)
	assert.Equal(t, int64(1), counts.Incoming)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRequestRepository_CancelExpired(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	mock.ExpectExec("UPDATE shift_requests sr").
		WithArgs(int32(1), "2026-08-26").
		WillReturnResult(sqlmock.NewResult(0, 3))

	count, err := store.CancelExpired(ctx, 1, "2026-08-26")
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRequestRepository_ListOpen(t *testing.T) {
	store, mock := newMockDB(t)
	ctx := context.Background()

	shiftID := uuid.New()
	now := time.Now()
	cols := []string{
		"id", "shift_id", "requester_id", "type", "status",
		"target_user_id", "target_shift_id", "candidate_id",
		"resolved_by", "resolved_at", "notes", "created_at", "updated_at",
		"shift_date", "shift_label", "shift_start", "shift_end",
		"shift_role_id", "shift_role_name", "shift_user_id",
		"requester_name", "requester_short_name",
		"target_user_name", "target_user_short_name",
		"target_shift_date", "target_shift_label", "target_shift_start", "target_shift_end",
		"candidate_name", "candidate_short_name",
		"role_auto_approve",
	}
	rows := sqlmock.NewRows(cols).AddRow(
		1, shiftID.String(), 7, "GIVE_AWAY", "OPEN",
		nil, nil, nil,
		nil, nil, nil, now, now,
		"2026-09-01", "Late", "14:00", "22:00",
		2, "Nurse", 7,
		"Ada Lovelace", "AL",
		nil, nil,
		nil, nil, nil, nil,
		nil, nil,
		true,
	)

	roleID := int32(2)
	mock.ExpectQuery("FROM shift_requests sr").
		WithArgs(roleID).
		WillReturnRows(rows)

	items, err := store.ListOpen(ctx, &roleID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, "Late", items[0].ShiftLabel)
	assert.Equal(t, "Ada Lovelace", items[0].RequesterName)
	assert.True(t, items[0].RoleAutoApprove)
	assert.Nil(t, items[0].CandidateID)
}
