package domain

import (
	"errors"
	"fmt"
)

// Error categories. The HTTP layer maps these onto status codes; services
// and repositories return them (or errors wrapping them) so callers can
// branch with errors.Is.
var (
	// ErrNotFound: the referenced request or shift does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden: the caller is not allowed to perform this action.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidInput: the request payload fails validation. No state change.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidState: the action is not defined for the request's current
	// status. The request is left untouched.
	ErrInvalidState = errors.New("invalid state for this action")

	// ErrStateConflict: a precondition held when read but no longer held at
	// write time, because a concurrent caller won the transition. Callers
	// should re-fetch and retry; retries are safe.
	ErrStateConflict = errors.New("request was modified concurrently")
)

// Specific failures, each wrapping its category.
var (
	ErrInvalidKind        = fmt.Errorf("%w: unknown request type or missing target_user_id for SWAP", ErrInvalidInput)
	ErrSelfDeal           = fmt.Errorf("%w: requester and candidate must differ", ErrInvalidInput)
	ErrShiftNotSwappable  = fmt.Errorf("%w: offered shift must be owned by the caller and published", ErrInvalidInput)
	ErrNotOwner           = fmt.Errorf("%w: caller does not own this shift", ErrForbidden)
	ErrNotTarget          = fmt.Errorf("%w: caller is not the target of this proposal", ErrForbidden)
	ErrNotRequester       = fmt.Errorf("%w: only the requester may cancel", ErrForbidden)
	ErrMissingPermission  = fmt.Errorf("%w: missing %s permission", ErrForbidden, PermissionEditRota)
	ErrNotOpen            = fmt.Errorf("%w: request is not OPEN", ErrInvalidState)
	ErrNotProposed        = fmt.Errorf("%w: request is not PROPOSED", ErrInvalidState)
	ErrNotPendingApproval = fmt.Errorf("%w: request is not PENDING_APPROVAL", ErrInvalidState)
	ErrNoCandidate        = fmt.Errorf("%w: request has no candidate", ErrInvalidState)
	ErrAlreadyTerminal    = fmt.Errorf("%w: request is already resolved", ErrInvalidState)
)
