package domain

import "time"

type Tradeshow struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	Slug           string    `json:"slug" db:"slug"`
	Description    *string   `json:"description" db:"description"`
	Location       *string   `json:"location" db:"location"`
	StartDate      time.Time `json:"start_date" db:"start_date"`
	EndDate        time.Time `json:"end_date" db:"end_date"`
	DefaultCountry string    `json:"default_country" db:"default_country"`
	IsActive       bool      `json:"is_active" db:"is_active"`
	CreatedBy      int64     `json:"created_by" db:"created_by"`
	// TenantID is the creator's tenant
	TenantID  int64     `json:"tenant_id" db:"tenant_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
	// SubmissionCount is derived from badge_photos and never stored
	SubmissionCount int `json:"submission_count" db:"submission_count"`
}

type TradeshowTag struct {
	TradeshowID int64  `json:"tradeshow_id" db:"tradeshow_id"`
	TagName     string `json:"tag_name" db:"tag_name"`
	TagValue    string `json:"tag_value" db:"tag_value"`
}

// TradeshowDetail is the aggregate returned to reps and admins reviewing a show
type TradeshowDetail struct {
	Tradeshow       *Tradeshow          `json:"tradeshow"`
	Tags            []TradeshowTag      `json:"tags"`
	Submissions     []SubmissionSummary `json:"submissions"`
	SubmissionCount int                 `json:"submission_count"`
}
