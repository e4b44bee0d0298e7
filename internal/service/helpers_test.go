package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/events"
	"github.com/andressep95/leadcapture/internal/repository/memory"
	"github.com/andressep95/leadcapture/pkg/email"
	"github.com/andressep95/leadcapture/pkg/hash"
	"github.com/andressep95/leadcapture/pkg/jwt"
)

func quietLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func strPtr(s string) *string { return &s }

const testPassword = "correct-horse-battery"

// seededStore has two tenants: acme (id 1) with an admin, a rep and tradeshow
// 7, and globex (id 2) with its own admin, rep GLX1 and tradeshow 8.
func seededStore(t *testing.T) *memory.Store {
	t.Helper()

	pw, err := hash.HashPasswordWithParams(testPassword, hash.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)

	s := memory.NewStore()
	s.AddTenant(&domain.Tenant{ID: 1, Name: "Acme", Slug: "acme", Subdomain: "acme", PrimaryColor: "#ff0000", DarkColor: "#990000", IsActive: true})
	s.AddTenant(&domain.Tenant{ID: 2, Name: "Globex", Slug: "globex", Subdomain: "globex", IsActive: true})
	s.AddTenant(&domain.Tenant{ID: 3, Name: "Dormant", Slug: "dormant", Subdomain: "dormant", IsActive: false})
	deleted := time.Now().Add(-time.Hour)
	s.AddTenant(&domain.Tenant{ID: 4, Name: "Gone", Slug: "gone", Subdomain: "gone", IsActive: true, DeletedAt: &deleted})

	s.AddUser(&domain.User{ID: 10, Name: "Ada Admin", Email: "admin@acme.test", PasswordHash: pw, Role: domain.RoleAdmin, TenantID: 1, RepCode: strPtr("ADM1")})
	s.AddUser(&domain.User{ID: 11, Name: "Rey Rep", Email: "rep@acme.test", PasswordHash: pw, Role: domain.RoleRep, TenantID: 1, RepCode: strPtr("REP1")})
	s.AddUser(&domain.User{ID: 12, Name: "Vic Viewer", Email: "viewer@acme.test", PasswordHash: pw, Role: domain.Role("viewer"), TenantID: 1, RepCode: strPtr("VIEW1")})
	s.AddUser(&domain.User{ID: 20, Name: "Gil Globex", Email: "admin@globex.test", PasswordHash: pw, Role: domain.RoleAdmin, TenantID: 2})
	s.AddUser(&domain.User{ID: 21, Name: "Gus Globex", Email: "rep@globex.test", PasswordHash: pw, Role: domain.RoleRep, TenantID: 2, RepCode: strPtr("GLX1")})

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.AddTradeshow(&domain.Tradeshow{ID: 7, Name: "Acme Expo", Slug: "acme-expo", StartDate: start, EndDate: start.AddDate(0, 0, 3), DefaultCountry: "US", IsActive: true, CreatedBy: 10})
	s.AddTradeshow(&domain.Tradeshow{ID: 9, Name: "Acme Archive", Slug: "acme-archive", StartDate: start.AddDate(-1, 0, 0), EndDate: start.AddDate(-1, 0, 2), DefaultCountry: "US", IsActive: false, CreatedBy: 10})
	s.AddTradeshow(&domain.Tradeshow{ID: 8, Name: "Globex Summit", Slug: "globex-summit", StartDate: start, EndDate: start, DefaultCountry: "DE", IsActive: true, CreatedBy: 20})
	s.AddTag(domain.TradeshowTag{TradeshowID: 7, TagName: "region", TagValue: "west"})
	s.AddTag(domain.TradeshowTag{TradeshowID: 7, TagName: "booth", TagValue: "A12"})

	return s
}

func adminSession() *domain.Session {
	return &domain.Session{UserID: 10, Email: "admin@acme.test", Role: domain.RoleAdmin, TenantID: 1}
}

func repSession() *domain.Session {
	return &domain.Session{UserID: 11, Email: "rep@acme.test", Role: domain.RoleRep, TenantID: 1, RepCode: strPtr("REP1")}
}

func testTokenService(t *testing.T) *jwt.TokenService {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return jwt.NewTokenServiceFromKey(key, time.Hour, "leadcapture-test")
}

type fakeRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	err     error
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: map[string]time.Time{}}
}

func (r *fakeRevoker) Revoke(_ context.Context, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.revoked[token] = expiresAt
	return nil
}

func (r *fakeRevoker) IsBlacklisted(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return false, r.err
	}
	_, ok := r.revoked[token]
	return ok, nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.TradeshowToggledEvent
	err    error
}

func (p *fakePublisher) PublishTradeshowToggled(_ context.Context, e events.TradeshowToggledEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

type fakeNotifier struct {
	mu    sync.Mutex
	leads []email.Lead
	err   error
}

func (n *fakeNotifier) SendLeadNotification(_ context.Context, lead email.Lead) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.leads = append(n.leads, lead)
	return n.err
}
