package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/metrics"
	"github.com/andressep95/leadcapture/internal/repository"
	"github.com/andressep95/leadcapture/internal/tenancy"
)

type TenantService struct {
	tenantRepo repository.TenantRepository
	logger     *logrus.Logger
}

func NewTenantService(tenantRepo repository.TenantRepository, logger *logrus.Logger) *TenantService {
	return &TenantService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// Resolve finds the active, non-deleted tenant for a subdomain. Matching is
// case-insensitive. It returns domain.ErrBadRequest for an empty subdomain and
// domain.ErrTenantNotFound when nothing active matches.
func (s *TenantService) Resolve(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	normalized := domain.NormalizeSubdomain(subdomain)
	if normalized == "" {
		return nil, fmt.Errorf("%w: subdomain is required", domain.ErrBadRequest)
	}

	tenant, err := s.tenantRepo.GetActiveBySubdomain(ctx, normalized)
	if err != nil {
		if errors.Is(err, domain.ErrTenantNotFound) {
			metrics.TenantLookups.WithLabelValues("not_found").Inc()
			return nil, err
		}
		metrics.TenantLookups.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to resolve tenant: %w", err)
	}

	if !tenant.Servable() {
		metrics.TenantLookups.WithLabelValues("not_found").Inc()
		return nil, fmt.Errorf("tenant %q is inactive: %w", normalized, domain.ErrTenantNotFound)
	}

	metrics.TenantLookups.WithLabelValues("found").Inc()
	return tenant, nil
}

// ResolveContext builds the request's tenant context. It never fails: an
// unknown subdomain or a storage error leaves the default branding in place.
func (s *TenantService) ResolveContext(ctx context.Context, subdomain string) *tenancy.Context {
	normalized := domain.NormalizeSubdomain(subdomain)
	if normalized == "" {
		return tenancy.Resolved(nil, "")
	}

	tenant, err := s.Resolve(ctx, normalized)
	if err != nil {
		if !errors.Is(err, domain.ErrTenantNotFound) {
			s.logger.WithError(err).WithField("subdomain", normalized).Error("Tenant resolution failed")
		}
		return tenancy.Resolved(nil, normalized)
	}

	return tenancy.Resolved(tenant, normalized)
}
