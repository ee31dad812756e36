package domain

// Role carries the per-role marketplace policy. AutoApprove lets a peer
// acceptance settle immediately instead of queueing for admin review. The
// flag is read at the moment a claim or response is made, never cached on
// the request.
type Role struct {
	ID          int32  `json:"id"`
	Name        string `json:"role_name"`
	AutoApprove bool   `json:"marketplace_auto_approve"`
}
