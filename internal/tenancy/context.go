// Package tenancy carries the resolved tenant and its branding through a
// request. A Context is created once per request by the tenant middleware and
// handed explicitly to whatever needs it.
package tenancy

import (
	"net"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/andressep95/leadcapture/internal/domain"
)

const localsKey = "tenant_context"

// Context is the tenant identity for one request. The zero value and nil are
// both "still loading" and render with the default branding.
type Context struct {
	tenant    *domain.Tenant
	subdomain string
	resolved  bool
}

// Resolved returns a finished resolution; tenant may be nil when nothing matched.
func Resolved(tenant *domain.Tenant, subdomain string) *Context {
	return &Context{tenant: tenant, subdomain: subdomain, resolved: true}
}

func (c *Context) Tenant() *domain.Tenant {
	if c == nil {
		return nil
	}
	return c.tenant
}

// TenantID returns the tenant's id and whether one is present
func (c *Context) TenantID() (int64, bool) {
	if c == nil || c.tenant == nil {
		return 0, false
	}
	return c.tenant.ID, true
}

// Subdomain is the requested subdomain, even when it did not resolve
func (c *Context) Subdomain() string {
	if c == nil {
		return ""
	}
	return c.subdomain
}

func (c *Context) IsResolved() bool {
	return c != nil && c.resolved
}

// Branding returns the tenant's branding or DefaultBranding
func (c *Context) Branding() domain.Branding {
	if c == nil || c.tenant == nil {
		return domain.DefaultBranding
	}
	return c.tenant.Branding()
}

// Is reports whether the current tenant is the one named, matching name, slug
// or subdomain case-insensitively
func (c *Context) Is(name string) bool {
	if c == nil || c.tenant == nil || name == "" {
		return false
	}
	return strings.EqualFold(c.tenant.Name, name) ||
		strings.EqualFold(c.tenant.Slug, name) ||
		strings.EqualFold(c.tenant.Subdomain, name)
}

// Require returns the tenant. It panics with domain.ErrNoTenantContext when
// resolution has finished without a tenant: a caller that needs tenant scoping
// ran outside a tenant. While still loading it returns nil.
func (c *Context) Require() *domain.Tenant {
	if !c.IsResolved() {
		return nil
	}
	if c.tenant == nil {
		panic(domain.ErrNoTenantContext)
	}
	return c.tenant
}

// Store attaches tc to the request
func Store(c *fiber.Ctx, tc *Context) {
	c.Locals(localsKey, tc)
}

// FromFiber returns the request's tenant context, or nil if none was stored
func FromFiber(c *fiber.Ctx) *Context {
	tc, _ := c.Locals(localsKey).(*Context)
	return tc
}

// SubdomainFromHost extracts the tenant label from a Host header. It returns
// "" for bare IPs, localhost, the base domain itself and "www".
func SubdomainFromHost(host, baseDomain string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.Trim(host, "[]")
	if host == "" || net.ParseIP(host) != nil {
		return ""
	}

	var rest string
	switch {
	case baseDomain != "" && strings.HasSuffix(host, "."+baseDomain):
		rest = strings.TrimSuffix(host, "."+baseDomain)
	case strings.HasSuffix(host, ".localhost"):
		rest = strings.TrimSuffix(host, ".localhost")
	default:
		labels := strings.Split(host, ".")
		if len(labels) < 3 {
			return ""
		}
		rest = labels[0]
	}

	label := rest
	if i := strings.LastIndex(rest, "."); i >= 0 {
		label = rest[i+1:]
	}
	if label == "www" {
		return ""
	}
	return label
}
