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

// Tradeshows belong to a tenant through created_by -> users.tenant_id.
const tradeshowColumns = `t.id, t.name, t.slug, t.description, t.location, t.start_date, t.end_date,
	t.default_country, t.is_active, t.created_by, t.created_at, t.updated_at,
	(SELECT creator.tenant_id FROM users creator WHERE creator.id = t.created_by) AS tenant_id,
	(SELECT COUNT(*) FROM badge_photos bp WHERE bp.tradeshow_id = t.id) AS submission_count`

type tradeshowRepository struct {
	db *sqlx.DB
}

// NewTradeshowRepository creates a new PostgreSQL tradeshow repository
func NewTradeshowRepository(db *sqlx.DB) repository.TradeshowRepository {
	return &tradeshowRepository{db: db}
}

// GetBySlug retrieves a tradeshow by its public slug
func (r *tradeshowRepository) GetBySlug(ctx context.Context, slug string) (*domain.Tradeshow, error) {
	query := `SELECT ` + tradeshowColumns + ` FROM tradeshows t WHERE t.slug = $1`

	var show domain.Tradeshow
	if err := r.db.GetContext(ctx, &show, query, slug); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tradeshow %q: %w", slug, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tradeshow by slug: %w", err)
	}

	return &show, nil
}

// GetByID retrieves a tradeshow owned by the given tenant
func (r *tradeshowRepository) GetByID(ctx context.Context, id, tenantID int64) (*domain.Tradeshow, error) {
	query := `
		SELECT ` + tradeshowColumns + `
		FROM tradeshows t
		JOIN users u ON u.id = t.created_by
		WHERE t.id = $1 AND u.tenant_id = $2`

	var show domain.Tradeshow
	if err := r.db.GetContext(ctx, &show, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tradeshow %d: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tradeshow by id: %w", err)
	}

	return &show, nil
}

// ListByTenant lists a tenant's tradeshows, most recent first
func (r *tradeshowRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Tradeshow, error) {
	query := `
		SELECT ` + tradeshowColumns + `
		FROM tradeshows t
		JOIN users u ON u.id = t.created_by
		WHERE u.tenant_id = $1
		ORDER BY t.start_date DESC, t.id DESC`

	shows := []*domain.Tradeshow{}
	if err := r.db.SelectContext(ctx, &shows, query, tenantID); err != nil {
		return nil, fmt.Errorf("failed to list tradeshows: %w", err)
	}

	return shows, nil
}

// ListTags retrieves the key/value annotations of a tradeshow
func (r *tradeshowRepository) ListTags(ctx context.Context, tradeshowID int64) ([]domain.TradeshowTag, error) {
	query := `
		SELECT tradeshow_id, tag_name, tag_value
		FROM tradeshow_tags
		WHERE tradeshow_id = $1
		ORDER BY tag_name`

	tags := []domain.TradeshowTag{}
	if err := r.db.SelectContext(ctx, &tags, query, tradeshowID); err != nil {
		return nil, fmt.Errorf("failed to list tradeshow tags: %w", err)
	}

	return tags, nil
}

// ToggleActive flips is_active in a single statement. Concurrent toggles are
// applied in commit order with no version check.
func (r *tradeshowRepository) ToggleActive(ctx context.Context, id, tenantID int64) (bool, error) {
	query := `
		UPDATE tradeshows t
		SET is_active = NOT t.is_active,
			updated_at = NOW()
		FROM users u
		WHERE t.id = $1
		  AND u.id = t.created_by
		  AND u.tenant_id = $2
		RETURNING t.is_active`

	var isActive bool
	if err := r.db.GetContext(ctx, &isActive, query, id, tenantID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, fmt.Errorf("tradeshow %d: %w", id, domain.ErrNotFound)
		}
		return false, fmt.Errorf("failed to toggle tradeshow: %w", err)
	}

	return isActive, nil
}
