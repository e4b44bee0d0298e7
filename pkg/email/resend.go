package email

import (
	"context"
	"fmt"

	"github.com/resend/resend-go/v2"
	"github.com/sirupsen/logrus"
)

// ResendNotifier implements LeadNotifier using Resend
type ResendNotifier struct {
	client *resend.Client
	config *EmailConfig
	logger *logrus.Logger
}

// NewResendNotifier creates a new Resend-backed lead notifier
func NewResendNotifier(config *EmailConfig, logger *logrus.Logger) (*ResendNotifier, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendNotifier{
		client: resend.NewClient(config.APIKey),
		config: config,
		logger: logger,
	}, nil
}

// SendLeadNotification emails the rep a summary of the captured lead
func (s *ResendNotifier) SendLeadNotification(ctx context.Context, lead Lead) error {
	if lead.RepEmail == "" {
		return fmt.Errorf("rep email is required")
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{lead.RepEmail},
		Subject: LeadNotificationSubject(lead),
		Html:    LeadNotificationTemplate(lead, s.config.DashboardURL),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		return fmt.Errorf("failed to send lead notification: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"to":       lead.RepEmail,
		"email_id": sent.Id,
	}).Info("Lead notification sent")
	return nil
}
