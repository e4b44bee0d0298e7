package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

const tenantColumns = `id, name, slug, subdomain, logo_url, primary_color, dark_color,
	accent_color, is_active, deleted_at`

type tenantRepository struct {
	db *sqlx.DB
}

// NewTenantRepository creates a new PostgreSQL tenant repository
func NewTenantRepository(db *sqlx.DB) repository.TenantRepository {
	return &tenantRepository{db: db}
}

// GetActiveBySubdomain retrieves the active, non-deleted tenant for a subdomain.
// Duplicate matches are a data fault; the lowest id wins.
func (r *tenantRepository) GetActiveBySubdomain(ctx context.Context, subdomain string) (*domain.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE LOWER(subdomain) = $1
		  AND is_active = TRUE
		  AND deleted_at IS NULL
		ORDER BY id
		LIMIT 1`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, subdomain)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %q: %w", subdomain, domain.ErrTenantNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by subdomain: %w", err)
	}

	return &tenant, nil
}

// GetByID retrieves an active, non-deleted tenant by its ID
func (r *tenantRepository) GetByID(ctx context.Context, id int64) (*domain.Tenant, error) {
	query := `
		SELECT ` + tenantColumns + `
		FROM tenants
		WHERE id = $1
		  AND is_active = TRUE
		  AND deleted_at IS NULL`

	var tenant domain.Tenant
	err := r.db.GetContext(ctx, &tenant, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tenant %d: %w", id, domain.ErrTenantNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant by id: %w", err)
	}

	return &tenant, nil
}
