package domain

import (
	"time"

	"github.com/google/uuid"
)

type RequestType string

const (
	RequestTypeGiveAway RequestType = "GIVE_AWAY"
	RequestTypeSwap     RequestType = "SWAP"
)

type RequestStatus string

const (
	RequestStatusOpen            RequestStatus = "OPEN"
	RequestStatusProposed        RequestStatus = "PROPOSED"
	RequestStatusPendingApproval RequestStatus = "PENDING_APPROVAL"
	RequestStatusApproved        RequestStatus = "APPROVED"
	RequestStatusRejected        RequestStatus = "REJECTED"
	RequestStatusCancelled       RequestStatus = "CANCELLED"
)

// Terminal reports whether the status admits no further transitions.
func (s RequestStatus) Terminal() bool {
	return s == RequestStatusApproved || s == RequestStatusRejected || s == RequestStatusCancelled
}

// ShiftRequest is one proposed give-away or swap of a shift. Once a request
// reaches a terminal status it is never mutated or deleted.
type ShiftRequest struct {
	ID            int32         `json:"id"`
	ShiftID       uuid.UUID     `json:"shift_id"`
	RequesterID   int32         `json:"requester_id"`
	Type          RequestType   `json:"type"`
	Status        RequestStatus `json:"status"`
	TargetUserID  *int32        `json:"target_user_id,omitempty"`
	TargetShiftID *uuid.UUID    `json:"target_shift_id,omitempty"`
	CandidateID   *int32        `json:"candidate_id,omitempty"`
	ResolvedBy    *int32        `json:"resolved_by,omitempty"`
	ResolvedAt    *time.Time    `json:"resolved_at,omitempty"`
	Notes         *string       `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ShiftRequestDetails is the read-view row: the request joined with shift,
// role and staff display data.
type ShiftRequestDetails struct {
	ShiftRequest
	ShiftDate          string  `json:"shift_date"`
	ShiftLabel         string  `json:"shift_label"`
	ShiftStart         *string `json:"shift_start,omitempty"`
	ShiftEnd           *string `json:"shift_end,omitempty"`
	ShiftRoleID        int32   `json:"shift_role_id"`
	ShiftRoleName      string  `json:"shift_role_name"`
	ShiftUserID        *int32  `json:"shift_user_id,omitempty"`
	RequesterName      string  `json:"requester_name"`
	RequesterShortName string  `json:"requester_short_name"`
	TargetUserName     *string `json:"target_user_name,omitempty"`
	TargetUserShort    *string `json:"target_user_short_name,omitempty"`
	TargetShiftDate    *string `json:"target_shift_date,omitempty"`
	TargetShiftLabel   *string `json:"target_shift_label,omitempty"`
	TargetShiftStart   *string `json:"target_shift_start,omitempty"`
	TargetShiftEnd     *string `json:"target_shift_end,omitempty"`
	CandidateName      *string `json:"candidate_name,omitempty"`
	CandidateShortName *string `json:"candidate_short_name,omitempty"`
	RoleAutoApprove    bool    `json:"role_auto_approve"`
}

// DashboardCounts summarises marketplace activity for one user.
type DashboardCounts struct {
	Open     int64 `json:"open"`
	Mine     int64 `json:"my"`
	Incoming int64 `json:"incoming"`
}
