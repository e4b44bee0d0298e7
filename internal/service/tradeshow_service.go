package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/events"
	"github.com/andressep95/leadcapture/internal/metrics"
	"github.com/andressep95/leadcapture/internal/repository"
)

// TradeshowEventPublisher receives activation changes. It may be nil.
type TradeshowEventPublisher interface {
	PublishTradeshowToggled(ctx context.Context, event events.TradeshowToggledEvent) error
}

type TradeshowService struct {
	tradeshowRepo  repository.TradeshowRepository
	submissionRepo repository.SubmissionRepository
	publisher      TradeshowEventPublisher
	logger         *logrus.Logger
}

func NewTradeshowService(
	tradeshowRepo repository.TradeshowRepository,
	submissionRepo repository.SubmissionRepository,
	publisher TradeshowEventPublisher,
	logger *logrus.Logger,
) *TradeshowService {
	return &TradeshowService{
		tradeshowRepo:  tradeshowRepo,
		submissionRepo: submissionRepo,
		publisher:      publisher,
		logger:         logger,
	}
}

// GetBySlug is the public lookup used by capture forms
func (s *TradeshowService) GetBySlug(ctx context.Context, slug string) (*domain.Tradeshow, error) {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, fmt.Errorf("%w: slug is required", domain.ErrBadRequest)
	}
	return s.tradeshowRepo.GetBySlug(ctx, slug)
}

// List returns the session tenant's tradeshows with their submission counts
func (s *TradeshowService) List(ctx context.Context, session *domain.Session) ([]*domain.Tradeshow, error) {
	if err := Authorize(session, RequireAuthenticated); err != nil {
		return nil, err
	}
	return s.tradeshowRepo.ListByTenant(ctx, session.TenantID)
}

// GetDetail assembles a tradeshow with its tags and submissions
func (s *TradeshowService) GetDetail(ctx context.Context, session *domain.Session, id int64) (*domain.TradeshowDetail, error) {
	if err := Authorize(session, RequireAuthenticated); err != nil {
		return nil, err
	}

	show, err := s.tradeshowRepo.GetByID(ctx, id, session.TenantID)
	if err != nil {
		return nil, err
	}

	tags, err := s.tradeshowRepo.ListTags(ctx, id)
	if err != nil {
		return nil, err
	}

	submissions, err := s.submissionRepo.ListByTradeshow(ctx, id)
	if err != nil {
		return nil, err
	}

	show.SubmissionCount = len(submissions)

	return &domain.TradeshowDetail{
		Tradeshow:       show,
		Tags:            tags,
		Submissions:     submissions,
		SubmissionCount: len(submissions),
	}, nil
}

// ToggleActive flips a tradeshow between active and archived. The admin check
// runs before the tradeshow is looked up.
func (s *TradeshowService) ToggleActive(ctx context.Context, session *domain.Session, id int64) (bool, error) {
	if err := Authorize(session, RequireAdmin); err != nil {
		return false, err
	}

	after, err := s.tradeshowRepo.ToggleActive(ctx, id, session.TenantID)
	if err != nil {
		return false, err
	}
	before := !after

	s.logger.WithFields(logrus.Fields{
		"admin_id":     session.UserID,
		"admin_email":  session.Email,
		"tradeshow_id": id,
		"before":       before,
		"after":        after,
	}).Info("Tradeshow activation toggled")
	metrics.ActivationToggles.WithLabelValues(strconv.FormatBool(after)).Inc()

	if s.publisher != nil {
		event := events.TradeshowToggledEvent{
			TradeshowID: id,
			TenantID:    session.TenantID,
			AdminID:     session.UserID,
			AdminEmail:  session.Email,
			Before:      before,
			After:       after,
			Timestamp:   time.Now().UTC(),
		}
		if err := s.publisher.PublishTradeshowToggled(ctx, event); err != nil {
			s.logger.WithError(err).WithField("tradeshow_id", id).Warn("Failed to publish toggle event")
		}
	}

	return after, nil
}
