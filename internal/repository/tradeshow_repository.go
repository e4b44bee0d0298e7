package repository

import (
	"context"

	"github.com/andressep95/leadcapture/internal/domain"
)

type TradeshowRepository interface {
	GetBySlug(ctx context.Context, slug string) (*domain.Tradeshow, error)
	GetByID(ctx context.Context, id, tenantID int64) (*domain.Tradeshow, error)
	ListByTenant(ctx context.Context, tenantID int64) ([]*domain.Tradeshow, error)
	ListTags(ctx context.Context, tradeshowID int64) ([]domain.TradeshowTag, error)
	// ToggleActive flips is_active and returns the new value.
	ToggleActive(ctx context.Context, id, tenantID int64) (bool, error)
}
