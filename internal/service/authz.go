package service

import "github.com/andressep95/leadcapture/internal/domain"

// Requirement is the minimum privilege an operation needs
type Requirement int

const (
	RequireAuthenticated Requirement = iota
	RequireAdmin
)

func (r Requirement) String() string {
	if r == RequireAdmin {
		return "admin"
	}
	return "any-authenticated"
}

// Authorize is the role gate. A missing session and an insufficient role both
// yield domain.ErrUnauthorized.
func Authorize(session *domain.Session, required Requirement) error {
	if session == nil || !session.Role.Valid() {
		return domain.ErrUnauthorized
	}
	if required == RequireAdmin && session.Role != domain.RoleAdmin {
		return domain.ErrUnauthorized
	}
	return nil
}

const (
	AdminDashboardPath = "/admin/dashboard"
	RepDashboardPath   = "/rep/dashboard"
	LoginPath          = "/login"
)

// DashboardPath picks where the generic dashboard entry point sends a user
func DashboardPath(session *domain.Session) string {
	switch {
	case session == nil:
		return LoginPath
	case session.Role == domain.RoleAdmin:
		return AdminDashboardPath
	default:
		return RepDashboardPath
	}
}
