package email

import (
	"context"
	"time"
)

// LeadNotifier tells a rep that a lead was captured under their code
type LeadNotifier interface {
	SendLeadNotification(ctx context.Context, lead Lead) error
}

// Lead is the data rendered into a lead notification
type Lead struct {
	RepEmail      string
	RepName       string
	TradeshowName string
	ContactName   string
	ContactEmail  string
	FormSource    string
	CapturedAt    time.Time
	BrandName     string
	BrandColor    string
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	APIKey       string
	FromEmail    string
	FromName     string
	DashboardURL string
}
