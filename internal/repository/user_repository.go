package repository

import (
	"context"

	"github.com/andressep95/leadcapture/internal/domain"
)

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByRepCode only considers users whose role is rep or admin.
	GetByRepCode(ctx context.Context, code string) (*domain.User, error)
}
