package service

import (
	"context"

	"github.com/google/uuid"

	"shiftmarket-backend/internal/domain"
)

// CreateRequestInput carries the caller's proposal. For a SWAP the requester
// may name the specific shift of the target they want in return.
type CreateRequestInput struct {
	ShiftID       uuid.UUID
	Type          domain.RequestType
	TargetUserID  *int32
	TargetShiftID *uuid.UUID
	Notes         *string
}

type MarketplaceService interface {
	CreateRequest(ctx context.Context, callerID int32, in CreateRequestInput) (*domain.ShiftRequestDetails, error)
	AcceptOpenRequest(ctx context.Context, callerID, requestID int32, offeredShiftID *uuid.UUID) (*domain.ShiftRequestDetails, error)
	RespondToProposal(ctx context.Context, callerID, requestID int32, accept bool) (*domain.ShiftRequestDetails, error)
	AdminDecide(ctx context.Context, callerID, requestID int32, approve bool, notes *string) (*domain.ShiftRequestDetails, error)
	CancelRequest(ctx context.Context, callerID, requestID int32) error

	ListOpen(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error)
	ListMine(ctx context.Context, callerID int32) ([]domain.ShiftRequestDetails, error)
	ListIncoming(ctx context.Context, callerID int32) ([]domain.ShiftRequestDetails, error)
	ListPendingApproval(ctx context.Context, callerID int32, roleID *int32) ([]domain.ShiftRequestDetails, error)
	DashboardCounts(ctx context.Context, callerID int32) (*domain.DashboardCounts, error)
	ListSwappableShifts(ctx context.Context, roleID int32, year, month int) ([]domain.Shift, error)
}

// PermissionChecker answers whether a staff profile holds a named
// permission. Injected so tests can fake it.
type PermissionChecker interface {
	HasPermission(ctx context.Context, userID int32, permission string) (bool, error)
}

type NotificationService interface {
	GetNotifications(ctx context.Context, userID int32, page, pageSize int32) ([]domain.Notification, int32, error)
	MarkAsRead(ctx context.Context, userID, notificationID int32) error
}

type EmailService interface {
	SendProposalNotification(ctx context.Context, email, requesterName, shiftLabel, shiftDate string) error
	SendClaimNotification(ctx context.Context, email, candidateName, shiftLabel string, pendingApproval bool) error
	SendDecisionNotification(ctx context.Context, email, shiftLabel string, approved bool, notes string) error
	SendCancellationNotification(ctx context.Context, email, requesterName, shiftLabel string) error
}
