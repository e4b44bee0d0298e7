package domain

// Role is the closed set of roles a session may carry
type Role string

const (
	RoleAdmin Role = "admin"
	RoleRep   Role = "rep"
)

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleRep
}

type User struct {
	ID           int64   `json:"id" db:"id"`
	Name         string  `json:"name" db:"name"`
	RepCode      *string `json:"rep_code,omitempty" db:"rep_code"`
	Email        string  `json:"email" db:"email"`
	PasswordHash string  `json:"-" db:"password_hash"`
	Role         Role    `json:"role" db:"role"`
	TenantID     int64   `json:"tenant_id" db:"tenant_id"`
}
