package repository

import (
	"context"

	"github.com/andressep95/leadcapture/internal/domain"
)

type TenantRepository interface {
	// GetActiveBySubdomain returns the first active, non-deleted tenant whose
	// subdomain equals the already lower-cased argument.
	GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error)
	GetByID(ctx context.Context, id int64) (*domain.Tenant, error)
}
