package domain

import "time"

// BadgePhoto is a captured lead. Rows are immutable once written.
type BadgePhoto struct {
	ID             int64     `json:"id" db:"id"`
	TradeshowID    int64     `json:"tradeshow_id" db:"tradeshow_id"`
	Filename       string    `json:"filename" db:"filename"`
	MimeType       string    `json:"mime_type" db:"mime_type"`
	ImageData      []byte    `json:"-" db:"image_data"`
	ContactEmail   string    `json:"contact_email" db:"contact_email"`
	ContactName    string    `json:"contact_name" db:"contact_name"`
	UploadedAt     time.Time `json:"uploaded_at" db:"uploaded_at"`
	SubmittedByRep *string   `json:"submitted_by_rep,omitempty" db:"submitted_by_rep"`
	FormSource     string    `json:"form_source" db:"form_source"`
}

// SubmissionSummary is a badge photo without its image bytes
type SubmissionSummary struct {
	ID             int64     `json:"id" db:"id"`
	TradeshowID    int64     `json:"tradeshow_id" db:"tradeshow_id"`
	Filename       string    `json:"filename" db:"filename"`
	MimeType       string    `json:"mime_type" db:"mime_type"`
	ContactEmail   string    `json:"contact_email" db:"contact_email"`
	ContactName    string    `json:"contact_name" db:"contact_name"`
	UploadedAt     time.Time `json:"uploaded_at" db:"uploaded_at"`
	SubmittedByRep *string   `json:"submitted_by_rep,omitempty" db:"submitted_by_rep"`
	FormSource     string    `json:"form_source" db:"form_source"`
}

// FormSourceCount is a per-funnel aggregate over submissions or page views
type FormSourceCount struct {
	FormSource string     `db:"form_source"`
	Count      int        `db:"count"`
	Latest     *time.Time `db:"latest"`
}

// FunnelSummary combines submissions and page views for one form source
type FunnelSummary struct {
	FormSource         string     `json:"form_source"`
	Submissions        int        `json:"submissions"`
	LatestSubmissionAt *time.Time `json:"latest_submission_at"`
	PageViews          int        `json:"page_views"`
	LatestViewAt       *time.Time `json:"latest_view_at"`
	ConversionRate     float64    `json:"conversion_rate"`
}

// SubmissionAnalytics is the summary served to the marketing dashboard
type SubmissionAnalytics struct {
	Funnels          []FunnelSummary `json:"funnels"`
	TotalSubmissions int             `json:"total_submissions"`
	TotalPageViews   int             `json:"total_page_views"`
}
