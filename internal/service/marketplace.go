package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/repository"
)

type marketplaceService struct {
	requestRepo repository.ShiftRequestRepository
	shiftRepo   repository.ShiftRepository
	roleRepo    repository.RoleRepository
	userRepo    repository.UserRepository
	perms       PermissionChecker
	emailSvc    EmailService
	noteRepo    repository.NotificationRepository
}

func NewMarketplaceService(
	requestRepo repository.ShiftRequestRepository,
	shiftRepo repository.ShiftRepository,
	roleRepo repository.RoleRepository,
	userRepo repository.UserRepository,
	perms PermissionChecker,
	emailSvc EmailService,
	noteRepo repository.NotificationRepository,
) MarketplaceService {
	return &marketplaceService{
		requestRepo: requestRepo,
		shiftRepo:   shiftRepo,
		roleRepo:    roleRepo,
		userRepo:    userRepo,
		perms:       perms,
		emailSvc:    emailSvc,
		noteRepo:    noteRepo,
	}
}

func (s *marketplaceService) CreateRequest(ctx context.Context, callerID int32, in CreateRequestInput) (*domain.ShiftRequestDetails, error) {
	shift, err := s.shiftRepo.GetByID(ctx, in.ShiftID)
	if err != nil {
		return nil, err
	}
	if shift.OwnerID == nil || *shift.OwnerID != callerID {
		return nil, domain.ErrNotOwner
	}
	if !shift.Published {
		return nil, domain.ErrShiftNotSwappable
	}

	req := &domain.ShiftRequest{
		ShiftID:     in.ShiftID,
		RequesterID: callerID,
		Type:        in.Type,
		Notes:       in.Notes,
	}

	switch in.Type {
	case domain.RequestTypeGiveAway:
		// A give-away goes to the whole role group, never a named peer.
		if in.TargetUserID != nil || in.TargetShiftID != nil {
			return nil, domain.ErrInvalidKind
		}
		req.Status = domain.RequestStatusOpen
	case domain.RequestTypeSwap:
		if in.TargetUserID == nil {
			return nil, domain.ErrInvalidKind
		}
		if *in.TargetUserID == callerID {
			return nil, domain.ErrSelfDeal
		}
		if in.TargetShiftID != nil {
			// The shift asked for in return must belong to the target.
			target, err := s.shiftRepo.GetByID(ctx, *in.TargetShiftID)
			if err != nil {
				return nil, err
			}
			if target.OwnerID == nil || *target.OwnerID != *in.TargetUserID || !target.Published {
				return nil, domain.ErrShiftNotSwappable
			}
		}
		req.Status = domain.RequestStatusProposed
		req.TargetUserID = in.TargetUserID
		req.TargetShiftID = in.TargetShiftID
	default:
		return nil, domain.ErrInvalidKind
	}

	if err := s.requestRepo.Create(ctx, req); err != nil {
		return nil, err
	}

	if req.Status == domain.RequestStatusProposed {
		s.notifyProposal(ctx, req, shift)
	}

	return s.requestRepo.GetDetails(ctx, req.ID)
}

func (s *marketplaceService) AcceptOpenRequest(ctx context.Context, callerID, requestID int32, offeredShiftID *uuid.UUID) (*domain.ShiftRequestDetails, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusOpen {
		return nil, domain.ErrNotOpen
	}
	if req.RequesterID == callerID {
		return nil, domain.ErrSelfDeal
	}
	if offeredShiftID != nil {
		offered, err := s.shiftRepo.GetByID(ctx, *offeredShiftID)
		if err != nil {
			return nil, err
		}
		if offered.OwnerID == nil || *offered.OwnerID != callerID || !offered.Published {
			return nil, domain.ErrShiftNotSwappable
		}
	}

	autoApprove, err := s.roleRepo.AutoApproveForShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	claim := repository.Claim{
		RequestID:      requestID,
		FromStatus:     domain.RequestStatusOpen,
		CandidateID:    callerID,
		OfferedShiftID: offeredShiftID,
		NewStatus:      domain.RequestStatusPendingApproval,
	}
	if autoApprove {
		claim.NewStatus = domain.RequestStatusApproved
		claim.Settlement = &repository.Settlement{
			ShiftID:       req.ShiftID,
			FromOwnerID:   req.RequesterID,
			ToOwnerID:     callerID,
			TargetShiftID: offeredShiftID,
		}
	}
	if err := s.requestRepo.Claim(ctx, claim); err != nil {
		return nil, err
	}

	s.notifyClaim(ctx, req, callerID, !autoApprove)

	return s.requestRepo.GetDetails(ctx, requestID)
}

func (s *marketplaceService) RespondToProposal(ctx context.Context, callerID, requestID int32, accept bool) (*domain.ShiftRequestDetails, error) {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusProposed {
		return nil, domain.ErrNotProposed
	}
	if req.TargetUserID == nil || *req.TargetUserID != callerID {
		return nil, domain.ErrNotTarget
	}

	if !accept {
		if err := s.requestRepo.Resolve(ctx, requestID, domain.RequestStatusRejected, callerID, domain.RequestStatusProposed); err != nil {
			return nil, err
		}
		s.notifyDecision(ctx, req, false, "")
		return s.requestRepo.GetDetails(ctx, requestID)
	}

	autoApprove, err := s.roleRepo.AutoApproveForShift(ctx, req.ShiftID)
	if err != nil {
		return nil, err
	}

	claim := repository.Claim{
		RequestID:   requestID,
		FromStatus:  domain.RequestStatusProposed,
		CandidateID: callerID,
		NewStatus:   domain.RequestStatusPendingApproval,
	}
	if autoApprove {
		claim.NewStatus = domain.RequestStatusApproved
		claim.Settlement = &repository.Settlement{
			ShiftID:       req.ShiftID,
			FromOwnerID:   req.RequesterID,
			ToOwnerID:     callerID,
			TargetShiftID: req.TargetShiftID,
		}
	}
	if err := s.requestRepo.Claim(ctx, claim); err != nil {
		return nil, err
	}

	s.notifyClaim(ctx, req, callerID, !autoApprove)

	return s.requestRepo.GetDetails(ctx, requestID)
}

func (s *marketplaceService) AdminDecide(ctx context.Context, callerID, requestID int32, approve bool, notes *string) (*domain.ShiftRequestDetails, error) {
	ok, err := s.perms.HasPermission(ctx, callerID, domain.PermissionEditRota)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMissingPermission
	}

	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req.Status != domain.RequestStatusPendingApproval {
		return nil, domain.ErrNotPendingApproval
	}
	if req.CandidateID == nil {
		return nil, domain.ErrNoCandidate
	}

	decision := repository.Decision{
		RequestID:  requestID,
		Approve:    approve,
		ResolvedBy: callerID,
		Notes:      notes,
	}
	if approve {
		decision.Settlement = &repository.Settlement{
			ShiftID:       req.ShiftID,
			FromOwnerID:   req.RequesterID,
			ToOwnerID:     *req.CandidateID,
			TargetShiftID: req.TargetShiftID,
		}
	}
	if err := s.requestRepo.Decide(ctx, decision); err != nil {
		return nil, err
	}

	var noteText string
	if notes != nil {
		noteText = *notes
	}
	s.notifyDecision(ctx, req, approve, noteText)

	return s.requestRepo.GetDetails(ctx, requestID)
}

func (s *marketplaceService) CancelRequest(ctx context.Context, callerID, requestID int32) error {
	req, err := s.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		return err
	}
	if req.RequesterID != callerID {
		return domain.ErrNotRequester
	}
	if req.Status.Terminal() {
		return domain.ErrAlreadyTerminal
	}

	if err := s.requestRepo.Resolve(ctx, requestID, domain.RequestStatusCancelled, callerID,
		domain.RequestStatusOpen, domain.RequestStatusProposed, domain.RequestStatusPendingApproval); err != nil {
		return err
	}

	s.notifyCancellation(ctx, req)
	return nil
}

func (s *marketplaceService) ListOpen(ctx context.Context, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	return s.requestRepo.ListOpen(ctx, roleID)
}

func (s *marketplaceService) ListMine(ctx context.Context, callerID int32) ([]domain.ShiftRequestDetails, error) {
	return s.requestRepo.ListByRequester(ctx, callerID)
}

func (s *marketplaceService) ListIncoming(ctx context.Context, callerID int32) ([]domain.ShiftRequestDetails, error) {
	return s.requestRepo.ListIncoming(ctx, callerID)
}

func (s *marketplaceService) ListPendingApproval(ctx context.Context, callerID int32, roleID *int32) ([]domain.ShiftRequestDetails, error) {
	ok, err := s.perms.HasPermission(ctx, callerID, domain.PermissionEditRota)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrMissingPermission
	}
	return s.requestRepo.ListPendingApproval(ctx, roleID)
}

func (s *marketplaceService) DashboardCounts(ctx context.Context, callerID int32) (*domain.DashboardCounts, error) {
	return s.requestRepo.CountDashboard(ctx, callerID)
}

func (s *marketplaceService) ListSwappableShifts(ctx context.Context, roleID int32, year, month int) ([]domain.Shift, error) {
	return s.shiftRepo.ListSwappable(ctx, roleID, year, month)
}

// Side effects below are best-effort: a failed email or notification never
// fails the transition that already committed.

func (s *marketplaceService) notifyProposal(ctx context.Context, req *domain.ShiftRequest, shift *domain.Shift) {
	target, _ := s.userRepo.GetByID(ctx, *req.TargetUserID)
	requester, _ := s.userRepo.GetByID(ctx, req.RequesterID)
	if target == nil || requester == nil {
		return
	}
	_ = s.emailSvc.SendProposalNotification(ctx, target.Email, requester.FullName, shift.Label, shift.Date)
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  target.ID,
		Title:   "New Swap Proposal",
		Message: fmt.Sprintf("%s proposed swapping their %s shift on %s with you", requester.FullName, shift.Label, shift.Date),
		Attributes: map[string]string{
			"type":       "MARKETPLACE_PROPOSAL",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})
}

func (s *marketplaceService) notifyClaim(ctx context.Context, req *domain.ShiftRequest, candidateID int32, pendingApproval bool) {
	requester, _ := s.userRepo.GetByID(ctx, req.RequesterID)
	candidate, _ := s.userRepo.GetByID(ctx, candidateID)
	shift, _ := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if requester == nil || candidate == nil || shift == nil {
		return
	}
	_ = s.emailSvc.SendClaimNotification(ctx, requester.Email, candidate.FullName, shift.Label, pendingApproval)

	msg := fmt.Sprintf("%s took your %s shift on %s", candidate.FullName, shift.Label, shift.Date)
	if pendingApproval {
		msg = fmt.Sprintf("%s accepted your %s shift on %s, awaiting admin approval", candidate.FullName, shift.Label, shift.Date)
	}
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  requester.ID,
		Title:   "Shift Request Accepted",
		Message: msg,
		Attributes: map[string]string{
			"type":       "MARKETPLACE_CLAIM",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})
}

func (s *marketplaceService) notifyDecision(ctx context.Context, req *domain.ShiftRequest, approved bool, notes string) {
	shift, _ := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if shift == nil {
		return
	}
	verdict := "rejected"
	if approved {
		verdict = "approved"
	}
	recipients := []int32{req.RequesterID}
	if req.CandidateID != nil {
		recipients = append(recipients, *req.CandidateID)
	}
	for _, id := range recipients {
		user, _ := s.userRepo.GetByID(ctx, id)
		if user == nil {
			continue
		}
		_ = s.emailSvc.SendDecisionNotification(ctx, user.Email, shift.Label, approved, notes)
		_ = s.noteRepo.Create(ctx, &domain.Notification{
			UserID:  user.ID,
			Title:   "Shift Request " + verdict,
			Message: fmt.Sprintf("The exchange of the %s shift on %s was %s", shift.Label, shift.Date, verdict),
			Attributes: map[string]string{
				"type":       "MARKETPLACE_DECISION",
				"request_id": fmt.Sprintf("%d", req.ID),
			},
		})
	}
}

func (s *marketplaceService) notifyCancellation(ctx context.Context, req *domain.ShiftRequest) {
	if req.TargetUserID == nil && req.CandidateID == nil {
		return
	}
	other := req.TargetUserID
	if req.CandidateID != nil {
		other = req.CandidateID
	}
	user, _ := s.userRepo.GetByID(ctx, *other)
	requester, _ := s.userRepo.GetByID(ctx, req.RequesterID)
	shift, _ := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if user == nil || requester == nil || shift == nil {
		return
	}
	_ = s.emailSvc.SendCancellationNotification(ctx, user.Email, requester.FullName, shift.Label)
	_ = s.noteRepo.Create(ctx, &domain.Notification{
		UserID:  user.ID,
		Title:   "Shift Request Cancelled",
		Message: fmt.Sprintf("%s withdrew the exchange of their %s shift on %s", requester.FullName, shift.Label, shift.Date),
		Attributes: map[string]string{
			"type":       "MARKETPLACE_CANCELLED",
			"request_id": fmt.Sprintf("%d", req.ID),
		},
	})
}
