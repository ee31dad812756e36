package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

// MockShiftRequestRepo
type MockShiftRequestRepo struct {
	mock.Mock
}

func (m *MockShiftRequestRepo) Create(ctx context.Context, req *domain.ShiftRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}
func (m *MockShiftRequestRepo) GetByID(ctx context.Context, id int32) (*domain.ShiftRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftRequest), args.Error(1)
}
func (m *MockShiftRequestRepo) GetDetails(ctx context.Context, id int32) (*domain.ShiftRequestDetails, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ShiftRequestDetails), args.Error(1)
}
func (m *MockShiftRequestRepo) Claim(ctx context.Context, c repository.Claim) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}
func (m *MockShiftRequestRepo) Decide(ctx context.Context, d repository.Decision) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
func (m *MockShiftRequestRepo) Resolve(ctx context.Context, id int32, to domain.RequestStatus, resolvedBy int32, from ...domain.RequestStatus) error {
	args := m.Called(ctx, id, to, resolvedBy, from)
	return args.Error(0)
}
func (m *MockShiftRequestRepo) ListOpen(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).([]domain.ShiftRequestDetails), args.Error(1)
}
func (m *MockShiftRequestRepo) ListByRequester(ctx context.Context, requesterID int32) ([]domain.ShiftRequestDetails, error) {
	args := m.Called(ctx, requesterID)
	return args.Get(0).([]domain.ShiftRequestDetails), args.Error(1)
}
func (m *MockShiftRequestRepo) ListIncoming(ctx context.Context, targetUserID int32) ([]domain.ShiftRequestDetails, error) {
	args := m.Called(ctx, targetUserID)
	return args.Get(0).([]domain.ShiftRequestDetails), args.Error(1)
}
func (m *MockShiftRequestRepo) ListPendingApproval(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	args := m.Called(ctx, roleID)
	return args.Get(0).([]domain.ShiftRequestDetails), args.Error(1)
}
func (m *MockShiftRequestRepo) CountDashboard(ctx context.Context, userID int32) (*domain.DashboardCounts, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DashboardCounts), args.Error(1)
}
func (m *MockShiftRequestRepo) CancelExpired(ctx context.Context, systemUserID int32, before string) (int64, error) {
	args := m.Called(ctx, systemUserID, before)
	return args.Get(0).(int64), args.Error(1)
}

// MockShiftRepo
type MockShiftRepo struct {
	mock.Mock
}

func (m *MockShiftRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Shift, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Shift), args.Error(1)
}
func (m *MockShiftRepo) ListSwappable(ctx context.Context, roleID int32, year, month int) ([]domain.Shift, error) {
	args := m.Called(ctx, roleID, year, month)
	return args.Get(0).([]domain.Shift), args.Error(1)
}

// MockRoleRepo
type MockRoleRepo struct {
	mock.Mock
}

func (m *MockRoleRepo) AutoApproveForShift(ctx context.Context, shiftID uuid.UUID) (bool, error) {
	args := m.Called(ctx, shiftID)
	return args.Bool(0), args.Error(1)
}

// MockUserRepo
type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockPermissionChecker
type MockPermissionChecker struct {
	mock.Mock
}

func (m *MockPermissionChecker) HasPermission(ctx context.Context, userID int32, permission string) (bool, error) {
	args := m.Called(ctx, userID, permission)
	return args.Bool(0), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendProposalNotification(ctx context.Context, email, requesterName, shiftLabel, shiftDate string) error {
	args := m.Called(ctx, email, requesterName, shiftLabel, shiftDate)
	return args.Error(0)
}
func (m *MockEmailService) SendClaimNotification(ctx context.Context, email, candidateName, shiftLabel string, pendingApproval bool) error {
	args := m.Called(ctx, email, candidateName, shiftLabel, pendingApproval)
	return args.Error(0)
}
func (m *MockEmailService) SendDecisionNotification(ctx context.Context, email, shiftLabel string, approved bool, notes string) error {
	args := m.Called(ctx, email, shiftLabel, approved, notes)
	return args.Error(0)
}
func (m *MockEmailService) SendCancellationNotification(ctx context.Context, email, requesterName, shiftLabel string) error {
	args := m.Called(ctx, email, requesterName, shiftLabel)
	return args.Error(0)
}

// MockNotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, note *domain.Notification) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}
func (m *MockNotificationRepo) List(ctx context.Context, userID int32, limit, offset int32) ([]domain.Notification, int32, error) {
	args := m.Called(ctx, userID, limit, offset)
	return args.Get(0).([]domain.Notification), args.Get(1).(int32), args.Error(2)
}
func (m *MockNotificationRepo) MarkAsRead(ctx context.Context, id, userID int32) error {
	args := m.Called(ctx, id, userID)
	return args.Error(0)
}
