package domain

// User is a staff profile. Accounts and authentication live elsewhere; the
// marketplace only needs identity, display names and an email for
// notifications.
type User struct {
	ID        int32  `json:"user_profile_id"`
	FullName  string `json:"full_name"`
	ShortName string `json:"short_name"`
	Email     string `json:"email"`
}

// Permission names checked through PermissionChecker. These map onto boolean
// columns of the user_roles table.
const (
	PermissionEditRota = "can_edit_rota"
)
