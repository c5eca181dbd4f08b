package domain

import "time"

// Role is the coarse authorization level attached to a profile.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

// roleRank is the total order of privilege: sales < admin < owner.
var roleRank = map[Role]int{
	RoleOwner: 3,
	RoleAdmin: 2,
	RoleSales: 1,
}

// ValidRole reports whether r is one of the closed role set.
func ValidRole(r Role) bool {
	_, ok := roleRank[r]
	return ok
}

// HasPermission reports whether role grants at least the privilege of
// required. Unknown or empty roles never grant anything.
func HasPermission(role, required Role) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	return r >= roleRank[required]
}

// CanAccessAllData reports whether role may read records owned by other
// sales users.
func CanAccessAllData(role Role) bool {
	return role == RoleOwner || role == RoleAdmin
}

// IsOwner reports whether role is the owner role.
func IsOwner(role Role) bool {
	return role == RoleOwner
}

// User is the backend-assigned identity. The password hash never leaves
// the service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile extends a User with application-level attributes. A profile
// exists if and only if sign-up fully succeeded.
type Profile struct {
	ID       string `json:"id"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	Role     Role   `json:"role"`
	Phone    string `json:"phone,omitempty"`
	Email    string `json:"email"`
}
