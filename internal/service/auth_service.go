package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
	"github.com/andressep95/leadcapture/internal/tenancy"
	"github.com/andressep95/leadcapture/pkg/hash"
	"github.com/andressep95/leadcapture/pkg/jwt"
)

// TokenRevoker stores revoked session tokens
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsBlacklisted(ctx context.Context, token string) (bool, error)
}

type AuthService struct {
	userRepo     repository.UserRepository
	tenantRepo   repository.TenantRepository
	tokenService *jwt.TokenService
	revoker      TokenRevoker
	logger       *logrus.Logger
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required,min=8"`
}

type LoginResult struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expires_at"`
	Session   *domain.Session `json:"user"`
	Redirect  string          `json:"redirect"`
}

func NewAuthService(
	userRepo repository.UserRepository,
	tenantRepo repository.TenantRepository,
	tokenService *jwt.TokenService,
	revoker TokenRevoker,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tenantRepo:   tenantRepo,
		tokenService: tokenService,
		revoker:      revoker,
		logger:       logger,
	}
}

// Login verifies a rep or admin's password and issues a session token. When
// the request arrived on a tenant subdomain the user must belong to that tenant.
func (s *AuthService) Login(ctx context.Context, tc *tenancy.Context, req LoginRequest) (*LoginResult, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := hash.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", user.ID).Warn("Stored password hash is unreadable")
		return nil, domain.ErrInvalidCredentials
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if tenantID, scoped := tc.TenantID(); scoped && tenantID != user.TenantID {
		return nil, domain.ErrInvalidCredentials
	}

	if _, err := s.tenantRepo.GetByID(ctx, user.TenantID); err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to load tenant: %w", err)
	}

	token, expiresAt, err := s.tokenService.GenerateSessionToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	session := &domain.Session{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      user.Role,
		TenantID:  user.TenantID,
		RepCode:   user.RepCode,
		Token:     token,
		ExpiresAt: expiresAt,
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":   user.ID,
		"role":      user.Role,
		"tenant_id": user.TenantID,
	}).Info("User logged in")

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		Session:   session,
		Redirect:  DashboardPath(session),
	}, nil
}

// Authenticate turns a bearer token into a session. Invalid, expired and
// revoked tokens all yield domain.ErrUnauthorized.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Session, error) {
	claims, err := s.tokenService.ValidateToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.revoker.IsBlacklisted(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to verify token status: %w", err)
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	return claims.Session(token), nil
}

// Logout revokes the session's token for the rest of its lifetime
func (s *AuthService) Logout(ctx context.Context, session *domain.Session) error {
	if session == nil {
		return domain.ErrUnauthorized
	}
	if err := s.revoker.Revoke(ctx, session.Token, session.ExpiresAt); err != nil {
		return fmt.Errorf("failed to revoke session: %w", err)
	}

	s.logger.WithField("user_id", session.UserID).Info("User logged out")
	return nil
}
