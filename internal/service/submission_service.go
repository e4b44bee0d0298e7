package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/metrics"
	"github.com/andressep95/leadcapture/internal/repository"
	"github.com/andressep95/leadcapture/internal/tenancy"
	"github.com/andressep95/leadcapture/pkg/email"
)

// MaxPhotoBytes caps an uploaded badge photo
const MaxPhotoBytes = 10 << 20

type SubmissionService struct {
	submissionRepo repository.SubmissionRepository
	tradeshowRepo  repository.TradeshowRepository
	userRepo       repository.UserRepository
	notifier       email.LeadNotifier
	logger         *logrus.Logger
}

// CreateSubmissionInput is a lead captured from a public form
type CreateSubmissionInput struct {
	TradeshowSlug string
	FormSource    string
	ContactName   string
	ContactEmail  string
	RepCode       string
	Filename      string
	MimeType      string
	ImageData     []byte
}

func NewSubmissionService(
	submissionRepo repository.SubmissionRepository,
	tradeshowRepo repository.TradeshowRepository,
	userRepo repository.UserRepository,
	notifier email.LeadNotifier,
	logger *logrus.Logger,
) *SubmissionService {
	return &SubmissionService{
		submissionRepo: submissionRepo,
		tradeshowRepo:  tradeshowRepo,
		userRepo:       userRepo,
		notifier:       notifier,
		logger:         logger,
	}
}

// GetPhoto returns a badge photo with its bytes. A row without image data is
// reported as not found.
func (s *SubmissionService) GetPhoto(ctx context.Context, id int64) (*domain.BadgePhoto, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid photo id", domain.ErrBadRequest)
	}

	photo, err := s.submissionRepo.GetPhoto(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(photo.ImageData) == 0 {
		return nil, fmt.Errorf("badge photo %d has no image: %w", id, domain.ErrNotFound)
	}

	return photo, nil
}

// Create stores a captured lead. Submissions are only accepted for active
// tradeshows owned by the host's tenant, when the host names one. A rep code
// that is unknown or belongs to another tenant leaves the lead unattributed.
// tc must have a tenant whenever it carries a subdomain.
func (s *SubmissionService) Create(ctx context.Context, tc *tenancy.Context, in CreateSubmissionInput) (*domain.BadgePhoto, error) {
	if len(in.ImageData) == 0 {
		return nil, fmt.Errorf("%w: photo is required", domain.ErrBadRequest)
	}
	if len(in.ImageData) > MaxPhotoBytes {
		return nil, fmt.Errorf("%w: photo exceeds %d bytes", domain.ErrBadRequest, MaxPhotoBytes)
	}
	if !strings.HasPrefix(in.MimeType, "image/") {
		return nil, fmt.Errorf("%w: photo must be an image", domain.ErrBadRequest)
	}

	show, err := s.tradeshowRepo.GetBySlug(ctx, in.TradeshowSlug)
	if err != nil {
		return nil, err
	}
	if !show.IsActive {
		return nil, fmt.Errorf("tradeshow %q is archived: %w", in.TradeshowSlug, domain.ErrNotFound)
	}
	if tc.Subdomain() != "" {
		if host := tc.Require(); host != nil && host.ID != show.TenantID {
			return nil, fmt.Errorf("tradeshow %q is not served by %q: %w", in.TradeshowSlug, host.Subdomain, domain.ErrNotFound)
		}
	}

	var rep *domain.User
	if code := strings.TrimSpace(in.RepCode); code != "" {
		rep, err = s.userRepo.GetByRepCode(ctx, code)
		switch {
		case err == nil && rep.Role.Valid() && rep.TenantID == show.TenantID:
		case err == nil || errors.Is(err, domain.ErrNotFound):
			s.logger.WithFields(logrus.Fields{
				"rep_code":     code,
				"tradeshow_id": show.ID,
			}).Info("Unknown rep code, submission left unattributed")
			rep = nil
		default:
			return nil, err
		}
	}

	photo := &domain.BadgePhoto{
		TradeshowID:  show.ID,
		Filename:     in.Filename,
		MimeType:     in.MimeType,
		ImageData:    in.ImageData,
		ContactEmail: strings.TrimSpace(in.ContactEmail),
		ContactName:  strings.TrimSpace(in.ContactName),
		FormSource:   in.FormSource,
	}
	if rep != nil {
		photo.SubmittedByRep = rep.RepCode
	}

	if err := s.submissionRepo.Create(ctx, photo); err != nil {
		return nil, err
	}
	metrics.Submissions.WithLabelValues(photo.FormSource).Inc()

	s.logger.WithFields(logrus.Fields{
		"submission_id": photo.ID,
		"tradeshow_id":  show.ID,
		"form_source":   photo.FormSource,
		"attributed":    rep != nil,
	}).Info("Badge photo captured")

	if rep != nil && s.notifier != nil {
		branding := tc.Branding()
		lead := email.Lead{
			RepEmail:      rep.Email,
			RepName:       rep.Name,
			TradeshowName: show.Name,
			ContactName:   photo.ContactName,
			ContactEmail:  photo.ContactEmail,
			FormSource:    photo.FormSource,
			CapturedAt:    photo.UploadedAt,
			BrandName:     branding.Name,
			BrandColor:    branding.PrimaryColor,
		}
		if err := s.notifier.SendLeadNotification(ctx, lead); err != nil {
			s.logger.WithError(err).WithField("submission_id", photo.ID).Warn("Lead notification failed")
		}
	}

	return photo, nil
}
