package domain

import (
	"strings"
	"time"
)

// Tenant is an organization served under its own subdomain with its own branding
type Tenant struct {
	ID           int64      `json:"id" db:"id"`
	Name         string     `json:"name" db:"name"`
	Slug         string     `json:"slug" db:"slug"`
	Subdomain    string     `json:"subdomain" db:"subdomain"`
	LogoURL      *string    `json:"logo_url,omitempty" db:"logo_url"`
	PrimaryColor string     `json:"primary_color" db:"primary_color"`
	DarkColor    string     `json:"dark_color" db:"dark_color"`
	AccentColor  *string    `json:"accent_color,omitempty" db:"accent_color"`
	IsActive     bool       `json:"is_active" db:"is_active"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

// Branding is the white-label styling rendered for a tenant
type Branding struct {
	Name         string  `json:"name"`
	LogoURL      *string `json:"logo_url,omitempty"`
	PrimaryColor string  `json:"primary_color"`
	DarkColor    string  `json:"dark_color"`
	AccentColor  string  `json:"accent_color"`
}

// DefaultBranding is used until a tenant has been resolved, or when none matches
var DefaultBranding = Branding{
	Name:         "TradeShow SaaS",
	PrimaryColor: "#2563eb",
	DarkColor:    "#1e40af",
	AccentColor:  "#f59e0b",
}

// Branding returns the tenant's styling, filling unset colors from DefaultBranding
func (t *Tenant) Branding() Branding {
	b := Branding{
		Name:         t.Name,
		LogoURL:      t.LogoURL,
		PrimaryColor: t.PrimaryColor,
		DarkColor:    t.DarkColor,
		AccentColor:  DefaultBranding.AccentColor,
	}
	if b.PrimaryColor == "" {
		b.PrimaryColor = DefaultBranding.PrimaryColor
	}
	if b.DarkColor == "" {
		b.DarkColor = DefaultBranding.DarkColor
	}
	if t.AccentColor != nil && *t.AccentColor != "" {
		b.AccentColor = *t.AccentColor
	}
	return b
}

// Servable reports whether the tenant may be returned by a lookup
func (t *Tenant) Servable() bool {
	return t.IsActive && t.DeletedAt == nil
}

// NormalizeSubdomain makes subdomain matching case-insensitive
func NormalizeSubdomain(subdomain string) string {
	return strings.ToLower(strings.TrimSpace(subdomain))
}
