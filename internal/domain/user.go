package domain

// Role values the frontend knows about. The column itself is free form
// text; any stored value is honored by role resolution.
const (
	UserRoleAdmin      = "ADMIN"
	UserRoleEmployee   = "EMPLOYEE"
	UserRoleITEmployee = "IT_EMPLOYEE"
)

// User is the locally persisted account record. Accounts are provisioned
// through registration; authentication itself happens at the identity
// provider, the record only contributes the authoritative role.
type User struct {
	ID    int64
	Email string
	Name  string
	Role  string
}
