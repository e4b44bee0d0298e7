package repository

import (
	"context"

	"github.com/andressep95/leadcapture/internal/domain"
)

type SubmissionRepository interface {
	Create(ctx context.Context, photo *domain.BadgePhoto) error
	GetPhoto(ctx context.Context, id int64) (*domain.BadgePhoto, error)
	ListByTradeshow(ctx context.Context, tradeshowID int64) ([]domain.SubmissionSummary, error)
	CountByFormSource(ctx context.Context) ([]domain.FormSourceCount, error)
}
