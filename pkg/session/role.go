package session

// Role is the coarse privilege level attached to a profile.
type Role string

const (
	RoleOwner Role = "owner"
	RoleAdmin Role = "admin"
	RoleSales Role = "sales"
)

var roleRank = map[Role]int{
	RoleOwner: 3,
	RoleAdmin: 2,
	RoleSales: 1,
}

// HasPermission reports whether role meets the required rank. An empty or
// unknown role never passes, regardless of what is required.
func HasPermission(role, required Role) bool {
	r, ok := roleRank[role]
	if !ok {
		return false
	}
	req, ok := roleRank[required]
	if !ok {
		return false
	}
	return r >= req
}
