package repository

import (
	"context"

	"github.com/andressep95/leadcapture/internal/domain"
)

type PageViewRepository interface {
	Create(ctx context.Context, view *domain.PageView) error
	CountByFormSource(ctx context.Context) ([]domain.FormSourceCount, error)
}
