package domain

import "time"

// PageView is an append-only analytics event for a public capture form
type PageView struct {
	ID         int64     `json:"id" db:"id"`
	FormSource string    `json:"form_source" db:"form_source"`
	ViewedAt   time.Time `json:"viewed_at" db:"viewed_at"`
	UserAgent  string    `json:"user_agent" db:"user_agent"`
	IPAddress  string    `json:"ip_address" db:"ip_address"`
}
