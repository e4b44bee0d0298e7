package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

type pageViewRepository struct {
	db *sqlx.DB
}

// NewPageViewRepository creates a new PostgreSQL page view repository.
// The page_views table is provisioned by migrations, never here.
func NewPageViewRepository(db *sqlx.DB) repository.PageViewRepository {
	return &pageViewRepository{db: db}
}

func (r *pageViewRepository) Create(ctx context.Context, view *domain.PageView) error {
	query := `
		INSERT INTO page_views (form_source, user_agent, ip_address)
		VALUES ($1, $2, $3)
		RETURNING id, viewed_at`

	row := r.db.QueryRowxContext(ctx, query, view.FormSource, view.UserAgent, view.IPAddress)
	if err := row.Scan(&view.ID, &view.ViewedAt); err != nil {
		return fmt.Errorf("failed to record page view: %w", err)
	}

	return nil
}

func (r *pageViewRepository) CountByFormSource(ctx context.Context) ([]domain.FormSourceCount, error) {
	query := `
		SELECT form_source, COUNT(*) AS count, MAX(viewed_at) AS latest
		FROM page_views
		GROUP BY form_source
		ORDER BY form_source`

	counts := []domain.FormSourceCount{}
	if err := r.db.SelectContext(ctx, &counts, query); err != nil {
		return nil, fmt.Errorf("failed to count page views: %w", err)
	}

	return counts, nil
}
