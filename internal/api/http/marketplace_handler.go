package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"shiftmarket-backend/internal/domain"
	"shiftmarket-backend/internal/service"
)

type MarketplaceHandler struct {
	svc service.MarketplaceService
}

func NewMarketplaceHandler(svc service.MarketplaceService) *MarketplaceHandler {
	return &MarketplaceHandler{svc: svc}
}

type createShiftRequestInput struct {
	ShiftID       uuid.UUID  `json:"shift_id"`
	Type          string     `json:"type"`
	TargetUserID  *int32     `json:"target_user_id,omitempty"`
	TargetShiftID *uuid.UUID `json:"target_shift_id,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
}

type acceptRequestInput struct {
	TargetShiftID *uuid.UUID `json:"target_shift_id,omitempty"`
}

type respondToProposalInput struct {
	Accept bool `json:"accept"`
}

type adminDecisionInput struct {
	Approve bool    `json:"approve"`
	Notes   *string `json:"notes,omitempty"`
}

func requestIDFromPath(r *http.Request) (int32, error) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 32)
	return int32(id), err
}

func optionalInt32Query(r *http.Request, name string) *int32 {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return nil
	}
	out := int32(v)
	return &out
}

func (h *MarketplaceHandler) GetOpenRequests(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.ListOpen(r.Context(), optionalInt32Query(r, "roleId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MarketplaceHandler) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	items, err := h.svc.ListMine(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MarketplaceHandler) GetIncomingRequests(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	items, err := h.svc.ListIncoming(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MarketplaceHandler) GetApprovalRequests(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	items, err := h.svc.ListPendingApproval(r.Context(), callerID, optionalInt32Query(r, "roleId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *MarketplaceHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	counts, err := h.svc.DashboardCounts(r.Context(), callerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

func (h *MarketplaceHandler) GetSwappableShifts(w http.ResponseWriter, r *http.Request) {
	roleID := optionalInt32Query(r, "roleId")
	year := optionalInt32Query(r, "year")
	month := optionalInt32Query(r, "month")
	if roleID == nil || year == nil || month == nil {
		writeErrorMessage(w, http.StatusBadRequest, "roleId, year and month are required")
		return
	}
	shifts, err := h.svc.ListSwappableShifts(r.Context(), *roleID, int(*year), int(*month))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, shifts)
}

func (h *MarketplaceHandler) CreateShiftRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())

	var in createShiftRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.svc.CreateRequest(r.Context(), callerID, service.CreateRequestInput{
		ShiftID:       in.ShiftID,
		Type:          domain.RequestType(in.Type),
		TargetUserID:  in.TargetUserID,
		TargetShiftID: in.TargetShiftID,
		Notes:         in.Notes,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, details)
}

func (h *MarketplaceHandler) AcceptShiftRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	requestID, err := requestIDFromPath(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var in acceptRequestInput
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	details, err := h.svc.AcceptOpenRequest(r.Context(), callerID, requestID, in.TargetShiftID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MarketplaceHandler) RespondToProposal(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	requestID, err := requestIDFromPath(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var in respondToProposalInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.svc.RespondToProposal(r.Context(), callerID, requestID, in.Accept)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MarketplaceHandler) AdminDecision(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	requestID, err := requestIDFromPath(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request id")
		return
	}

	var in adminDecisionInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	details, err := h.svc.AdminDecide(r.Context(), callerID, requestID, in.Approve, in.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (h *MarketplaceHandler) CancelShiftRequest(w http.ResponseWriter, r *http.Request) {
	callerID, _ := CallerID(r.Context())
	requestID, err := requestIDFromPath(r)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid request id")
		return
	}

	if err := h.svc.CancelRequest(r.Context(), callerID, requestID); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
