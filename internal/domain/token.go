package domain

import "github.com/golang-jwt/jwt/v5"

// Claims is the payload of a session token issued at login
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64   `json:"uid"`
	Email    string  `json:"email"`
	Role     Role    `json:"role"`
	TenantID int64   `json:"tenant_id"`
	RepCode  *string `json:"rep_code,omitempty"`
}

// Session converts verified claims into the identity handlers work with
func (c *Claims) Session(token string) *Session {
	s := &Session{
		UserID:   c.UserID,
		Email:    c.Email,
		Role:     c.Role,
		TenantID: c.TenantID,
		RepCode:  c.RepCode,
		Token:    token,
	}
	if c.ExpiresAt != nil {
		s.ExpiresAt = c.ExpiresAt.Time
	}
	return s
}
