package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andressep95/leadcapture/internal/domain"
)

func TestAuthorize(t *testing.T) {
	viewer := &domain.Session{UserID: 3, Role: domain.Role("viewer")}

	tests := []struct {
		name     string
		session  *domain.Session
		required Requirement
		allowed  bool
	}{
		{"no session read", nil, RequireAuthenticated, false},
		{"no session admin", nil, RequireAdmin, false},
		{"rep read", repSession(), RequireAuthenticated, true},
		{"rep admin", repSession(), RequireAdmin, false},
		{"admin read", adminSession(), RequireAuthenticated, true},
		{"admin admin", adminSession(), RequireAdmin, true},
		{"unknown role read", viewer, RequireAuthenticated, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Authorize(tt.session, tt.required)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrUnauthorized)
			}
		})
	}
}

func TestDashboardPath(t *testing.T) {
	assert.Equal(t, LoginPath, DashboardPath(nil))
	assert.Equal(t, AdminDashboardPath, DashboardPath(adminSession()))
	assert.Equal(t, RepDashboardPath, DashboardPath(repSession()))
	assert.Equal(t, RepDashboardPath, DashboardPath(&domain.Session{Role: domain.Role("manager")}))
}
