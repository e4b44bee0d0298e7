package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/repository"
)

type RepService struct {
	userRepo repository.UserRepository
}

func NewRepService(userRepo repository.UserRepository) *RepService {
	return &RepService{userRepo: userRepo}
}

// FindByCode returns the rep or admin who owns a rep code. Users with any
// other role are never returned, even on an exact match.
func (s *RepService) FindByCode(ctx context.Context, code string) (*domain.User, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, fmt.Errorf("%w: rep code is required", domain.ErrBadRequest)
	}

	user, err := s.userRepo.GetByRepCode(ctx, code)
	if err != nil {
		return nil, err
	}

	if !user.Role.Valid() {
		return nil, fmt.Errorf("rep %q: %w", code, domain.ErrNotFound)
	}

	return user, nil
}
