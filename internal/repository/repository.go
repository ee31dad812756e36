package repository

import (
	"context"

	"github.com/google/uuid"

	"shiftmarket-backend/internal/domain"
)

// Claim attaches a candidate to a request and moves it forward, as a single
// conditional write: it only applies while the request still has
// FromStatus and no candidate. When Settlement is non-nil the ownership
// transfer runs in the same transaction and the request is resolved.
type Claim struct {
	RequestID      int32
	FromStatus     domain.RequestStatus // OPEN or PROPOSED
	CandidateID    int32
	OfferedShiftID *uuid.UUID // shift offered in return, accept path only
	NewStatus      domain.RequestStatus // APPROVED or PENDING_APPROVAL
	Settlement     *Settlement
}

// Decision is an admin's verdict on a PENDING_APPROVAL request.
type Decision struct {
	RequestID  int32
	Approve    bool
	ResolvedBy int32
	Notes      *string
	Settlement *Settlement // required when Approve is true
}

// Settlement transfers ownership of the requested shift from the requester
// to the candidate, and of the offered shift (if any) back the other way.
// Both updates are conditional on the expected current owner.
type Settlement struct {
	ShiftID       uuid.UUID
	FromOwnerID   int32 // requester
	ToOwnerID     int32 // candidate
	TargetShiftID *uuid.UUID
}

type ShiftRequestRepository interface {
	Create(ctx context.Context, req *domain.ShiftRequest) error
	GetByID(ctx context.Context, id int32) (*domain.ShiftRequest, error)
	GetDetails(ctx context.Context, id int32) (*domain.ShiftRequestDetails, error)

	// State transitions. Each performs a conditional write keyed on the
	// request id and the expected current status; zero rows affected
	// surfaces as domain.ErrStateConflict and leaves the store untouched.
	Claim(ctx context.Context, c Claim) error
	Decide(ctx context.Context, d Decision) error
	Resolve(ctx context.Context, id int32, to domain.RequestStatus, resolvedBy int32, from ...domain.RequestStatus) error

	// Read views
	ListOpen(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error)
	ListByRequester(ctx context.Context, requesterID int32) ([]domain.ShiftRequestDetails, error)
	ListIncoming(ctx context.Context, targetUserID int32) ([]domain.ShiftRequestDetails, error)
	ListPendingApproval(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error)
	CountDashboard(ctx context.Context, userID int32) (*domain.DashboardCounts, error)

	// CancelExpired cancels non-terminal requests whose shift date is before
	// the given date (YYYY-MM-DD), resolving them as the system user.
	CancelExpired(ctx context.Context, systemUserID int32, before string) (int64, error)
}

type ShiftRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error)
	ListSwappable(ctx context.Context, roleID int32, year, month int) ([]domain.Shift, error)
}

type RoleRepository interface {
	// AutoApproveForShift resolves the auto-approve policy of the role the
	// shift belongs to.
	AutoApproveForShift(ctx context.Context, shiftID uuid.UUID) (bool, error)
}

type UserRepository interface {
	GetByID(ctx context.Context, id int32) (*domain.User, error)
}

type PermissionRepository interface {
	HasPermission(ctx context.Context, userID int32, permission string) (bool, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, note *domain.Notification) error
	List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, id, userID int32) error
}
