// Package metrics holds the Prometheus instruments exposed at GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTPRequests counts requests by method, route and status code.
var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leadcapture_http_requests_total",
	Help: "Total HTTP requests handled.",
}, []string{"method", "route", "status"})

// HTTPDuration tracks request latency by method and route.
var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name:    "leadcapture_http_request_duration_seconds",
	Help:    "HTTP request latency in seconds.",
	Buckets: prometheus.DefBuckets,
}, []string{"method", "route"})

// TenantLookups counts subdomain resolutions by result (found, not_found, error).
var TenantLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leadcapture_tenant_lookups_total",
	Help: "Tenant subdomain lookups by result.",
}, []string{"result"})

// Submissions counts captured badge photos by form source.
var Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leadcapture_submissions_total",
	Help: "Badge photo submissions by form source.",
}, []string{"form_source"})

// PageViews counts tracked page views by form source.
var PageViews = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leadcapture_page_views_total",
	Help: "Tracked form page views by form source.",
}, []string{"form_source"})

// ActivationToggles counts tradeshow activation changes by resulting state.
var ActivationToggles = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "leadcapture_tradeshow_toggles_total",
	Help: "Tradeshow activation toggles by resulting state.",
}, []string{"state"})
