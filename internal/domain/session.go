package domain

import "time"

// Session is the authenticated identity attached to a request
type Session struct {
	UserID    int64     `json:"id"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	TenantID  int64     `json:"tenant_id"`
	RepCode   *string   `json:"rep_code,omitempty"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin reports whether the session carries the admin role
func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
