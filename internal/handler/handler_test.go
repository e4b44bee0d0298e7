package handler

import (
	"bytes"
	"context"
	"crypto/rand"
	"crypto/rsa"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/andressep95/leadcapture/internal/domain"
	"github.com/andressep95/leadcapture/internal/handler/middleware"
	"github.com/andressep95/leadcapture/internal/repository/memory"
	"github.com/andressep95/leadcapture/internal/service"
	"github.com/andressep95/leadcapture/pkg/hash"
	"github.com/andressep95/leadcapture/pkg/jwt"
	"github.com/andressep95/leadcapture/pkg/validator"
)

const (
	testPassword   = "correct-horse-battery"
	testBaseDomain = "tradeshow.app"
	testCookieName = "session"
)

type testEnv struct {
	app    *fiber.App
	store  *memory.Store
	auth   *service.AuthService
	tokens *jwt.TokenService
}

type memRevoker struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (r *memRevoker) Revoke(_ context.Context, token string, _ time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[token] = true
	return nil
}

func (r *memRevoker) IsBlacklisted(_ context.Context, token string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.revoked[token], nil
}

func strPtr(s string) *string { return &s }

func seed(t *testing.T) *memory.Store {
	t.Helper()

	pw, err := hash.HashPasswordWithParams(testPassword, hash.Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	require.NoError(t, err)

	s := memory.NewStore()
	s.AddTenant(&domain.Tenant{ID: 1, Name: "Acme", Slug: "acme", Subdomain: "acme", PrimaryColor: "#ff0000", DarkColor: "#990000", IsActive: true})
	s.AddTenant(&domain.Tenant{ID: 2, Name: "Globex", Slug: "globex", Subdomain: "globex", PrimaryColor: "#00ff00", DarkColor: "#009900", IsActive: true})
	s.AddTenant(&domain.Tenant{ID: 3, Name: "Dormant", Slug: "dormant", Subdomain: "dormant", IsActive: false})

	s.AddUser(&domain.User{ID: 10, Name: "Ada Admin", Email: "admin@acme.test", PasswordHash: pw, Role: domain.RoleAdmin, TenantID: 1, RepCode: strPtr("ADM1")})
	s.AddUser(&domain.User{ID: 11, Name: "Rey Rep", Email: "rep@acme.test", PasswordHash: pw, Role: domain.RoleRep, TenantID: 1, RepCode: strPtr("REP1")})
	s.AddUser(&domain.User{ID: 12, Name: "Vic Viewer", Email: "viewer@acme.test", PasswordHash: pw, Role: domain.Role("viewer"), TenantID: 1, RepCode: strPtr("VIEW1")})
	s.AddUser(&domain.User{ID: 20, Name: "Gil Globex", Email: "admin@globex.test", PasswordHash: pw, Role: domain.RoleAdmin, TenantID: 2})
	s.AddUser(&domain.User{ID: 21, Name: "Gus Globex", Email: "rep@globex.test", PasswordHash: pw, Role: domain.RoleRep, TenantID: 2, RepCode: strPtr("GLX1")})

	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s.AddTradeshow(&domain.Tradeshow{ID: 7, Name: "Acme Expo", Slug: "acme-expo", StartDate: start, EndDate: start.AddDate(0, 0, 3), DefaultCountry: "US", IsActive: true, CreatedBy: 10})
	s.AddTradeshow(&domain.Tradeshow{ID: 8, Name: "Globex Summit", Slug: "globex-summit", StartDate: start, EndDate: start, DefaultCountry: "DE", IsActive: true, CreatedBy: 20})
	s.AddTag(domain.TradeshowTag{TradeshowID: 7, TagName: "booth", TagValue: "A12"})
	s.AddPhoto(&domain.BadgePhoto{ID: 1, TradeshowID: 7, Filename: "badge.png", MimeType: "image/png", ImageData: []byte("\x89PNG"), ContactName: "Lee", ContactEmail: "lee@example.com", FormSource: "booth"})

	return s
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	tokens := jwt.NewTokenServiceFromKey(key, time.Hour, "leadcapture-test")

	store := seed(t)
	v := validator.NewValidator()

	tenantService := service.NewTenantService(store.Tenants(), logger)
	authService := service.NewAuthService(store.Users(), store.Tenants(), tokens, &memRevoker{revoked: map[string]bool{}}, logger)
	tradeshowService := service.NewTradeshowService(store.Tradeshows(), store.Submissions(), nil, logger)
	submissionService := service.NewSubmissionService(store.Submissions(), store.Tradeshows(), store.Users(), nil, logger)
	analyticsService := service.NewAnalyticsService(store.PageViewRepo(), store.Submissions())

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler(logger)})
	app.Use(middleware.RecoveryMiddleware(logger))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.TenantMiddleware(tenantService, testBaseDomain))

	SetupRoutes(app, Handlers{
		Tenant:     NewTenantHandler(tenantService, logger),
		Auth:       NewAuthHandler(authService, v, SessionCookie{Name: testCookieName}, logger),
		Tradeshow:  NewTradeshowHandler(tradeshowService, logger),
		Rep:        NewRepHandler(service.NewRepService(store.Users()), logger),
		Photo:      NewPhotoHandler(submissionService, logger),
		Submission: NewSubmissionHandler(submissionService, v, logger),
		Analytics:  NewAnalyticsHandler(analyticsService, v, logger),
		Dashboard:  NewDashboardHandler(),
		Health:     NewHealthHandler(map[string]HealthCheck{}, logger),
		JWKS:       NewJWKSHandler(tokens.PublicKey(), tokens.KeyID()),
	}, middleware.SessionMiddleware(authService, testCookieName, logger))

	return &testEnv{app: app, store: store, auth: authService, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	result, err := e.auth.Login(context.Background(), nil, service.LoginRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	return result.Token
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func jsonRequest(method, target string, body interface{}) *http.Request {
	var buf io.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		buf = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, buf)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return req
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

type formFile struct {
	field, filename, contentType string
	data                         []byte
}

func multipartRequest(t *testing.T, target string, fields map[string]string, file *formFile) *http.Request {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if file != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="`+file.field+`"; filename="`+file.filename+`"`)
		h.Set("Content-Type", file.contentType)
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(file.data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return req
}
