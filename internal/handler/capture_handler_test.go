package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andressep95/leadcapture/internal/handler/middleware"
)

func TestGetRepByCode(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/reps/REP1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "Rey Rep", body["name"])
	assert.Equal(t, "REP1", body["rep_code"])
	assert.Equal(t, "rep", body["role"])
	assert.NotContains(t, body, "password_hash")

	for _, code := range []string{"VIEW1", "NOPE"} {
		resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/reps/"+code, nil))
		assert.Equal(t, http.StatusNotFound, resp.StatusCode, code)
		assert.Equal(t, map[string]interface{}{"error": "Rep not found"}, decode(t, resp))
	}
}

func TestGetPhoto(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/photos/1", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/png", resp.Header.Get(fiber.HeaderContentType))
	assert.Equal(t, "public, max-age=31536000, immutable", resp.Header.Get(fiber.HeaderCacheControl))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, []byte("\x89PNG"), data)
}

func TestGetPhoto_Failures(t *testing.T) {
	env := newTestEnv(t)

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/photos/999", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"error": "Photo not found"}, decode(t, resp))

	for _, id := range []string{"0", "-3", "abc"} {
		resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/photos/"+id, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
		assert.Equal(t, map[string]interface{}{"error": "Invalid photo id"}, decode(t, resp))
	}
}

func submissionFields() map[string]string {
	return map[string]string{
		"tradeshow_slug": "acme-expo",
		"form_source":    "booth",
		"contact_name":   "Lee Lead",
		"contact_email":  "lee@example.com",
		"rep_code":       "REP1",
	}
}

func TestCreateSubmission(t *testing.T) {
	env := newTestEnv(t)
	photo := &formFile{field: "photo", filename: "badge.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8, 0xff}}

	resp := env.do(t, multipartRequest(t, "/api/submissions", submissionFields(), photo))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "REP1", body["submitted_by_rep"])

	stored := env.store.Photos()
	require.Len(t, stored, 2)
	created := stored[1]
	assert.Equal(t, int64(7), created.TradeshowID)
	assert.Equal(t, "badge.jpg", created.Filename)
	assert.Equal(t, "image/jpeg", created.MimeType)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, created.ImageData)

	// the new photo is immediately servable
	resp = env.do(t, httptest.NewRequest(http.MethodGet, "/api/photos/"+jsonNumber(body["id"]), nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCreateSubmission_TenantScoping(t *testing.T) {
	jpeg := &formFile{field: "photo", filename: "badge.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8}}

	tests := []struct {
		name       string
		subdomain  string
		slug       string
		repCode    string
		wantStatus int
		wantRep    interface{}
	}{
		{"rep from another tenant is ignored", "", "acme-expo", "GLX1", http.StatusCreated, nil},
		{"rep from another tenant on tenant host", "acme", "acme-expo", "GLX1", http.StatusCreated, nil},
		{"own rep on own host", "globex", "globex-summit", "GLX1", http.StatusCreated, "GLX1"},
		{"tradeshow of another tenant", "acme", "globex-summit", "", http.StatusNotFound, nil},
		{"unknown subdomain", "ghost", "acme-expo", "REP1", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			fields := submissionFields()
			fields["tradeshow_slug"] = tt.slug
			fields["rep_code"] = tt.repCode

			req := multipartRequest(t, "/api/submissions", fields, jpeg)
			if tt.subdomain != "" {
				req.Header.Set(middleware.HeaderTenantSubdomain, tt.subdomain)
			}
			resp := env.do(t, req)
			require.Equal(t, tt.wantStatus, resp.StatusCode)

			body := decode(t, resp)
			if tt.wantStatus != http.StatusCreated {
				assert.Contains(t, body, "error")
				assert.Len(t, env.store.Photos(), 1)
				return
			}
			assert.Equal(t, tt.wantRep, body["submitted_by_rep"])
			assert.Len(t, env.store.Photos(), 2)
		})
	}
}

func TestCreateSubmission_Rejects(t *testing.T) {
	jpeg := &formFile{field: "photo", filename: "badge.jpg", contentType: "image/jpeg", data: []byte{0xff, 0xd8}}

	tests := []struct {
		name       string
		mutate     func(map[string]string)
		file       *formFile
		wantStatus int
	}{
		{"missing photo", func(map[string]string) {}, nil, http.StatusBadRequest},
		{"not an image", func(map[string]string) {}, &formFile{field: "photo", filename: "doc.pdf", contentType: "application/pdf", data: []byte("%PDF")}, http.StatusBadRequest},
		{"bad email", func(f map[string]string) { f["contact_email"] = "nope" }, jpeg, http.StatusBadRequest},
		{"bad form source", func(f map[string]string) { f["form_source"] = "Booth Form!" }, jpeg, http.StatusBadRequest},
		{"unknown tradeshow", func(f map[string]string) { f["tradeshow_slug"] = "nope" }, jpeg, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			fields := submissionFields()
			tt.mutate(fields)

			resp := env.do(t, multipartRequest(t, "/api/submissions", fields, tt.file))
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Contains(t, decode(t, resp), "error")
			assert.Len(t, env.store.Photos(), 1)
		})
	}
}

func TestTrackView(t *testing.T) {
	env := newTestEnv(t)

	req := jsonRequest(http.MethodPost, "/api/track-view", map[string]string{"formSource": "booth"})
	req.Header.Set(fiber.HeaderUserAgent, "kiosk/1.0")
	resp := env.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"success": true}, decode(t, resp))

	resp = env.do(t, jsonRequest(http.MethodPost, "/api/track-view", map[string]string{"form_source": "web"}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	views := env.store.PageViews()
	require.Len(t, views, 2)
	assert.Equal(t, "booth", views[0].FormSource)
	assert.Equal(t, "kiosk/1.0", views[0].UserAgent)
	assert.Equal(t, "web", views[1].FormSource)
}

func TestTrackView_MissingSourceNeverReachesStore(t *testing.T) {
	env := newTestEnv(t)

	bodies := []*http.Request{
		jsonRequest(http.MethodPost, "/api/track-view", map[string]string{}),
		jsonRequest(http.MethodPost, "/api/track-view", map[string]string{"formSource": ""}),
		httptest.NewRequest(http.MethodPost, "/api/track-view", bytes.NewReader([]byte("not json"))),
	}
	for _, req := range bodies {
		resp := env.do(t, req)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Contains(t, decode(t, resp), "error")
	}
	assert.Empty(t, env.store.PageViews())
}

func TestAnalyticsSummary(t *testing.T) {
	env := newTestEnv(t)
	for i := 0; i < 4; i++ {
		resp := env.do(t, jsonRequest(http.MethodPost, "/api/track-view", map[string]string{"formSource": "booth"}))
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/analytics/submissions", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, float64(1), body["total_submissions"])
	assert.Equal(t, float64(4), body["total_page_views"])

	funnels := body["funnels"].([]interface{})
	require.Len(t, funnels, 1)
	booth := funnels[0].(map[string]interface{})
	assert.Equal(t, "booth", booth["form_source"])
	assert.Equal(t, 0.25, booth["conversion_rate"])
}

func TestAnalyticsSummary_StorageFailure(t *testing.T) {
	env := newTestEnv(t)
	env.store.Err = assert.AnError

	resp := env.do(t, httptest.NewRequest(http.MethodGet, "/api/analytics/submissions", nil))
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, map[string]interface{}{"error": "Internal server error"}, decode(t, resp))
}

func jsonNumber(v interface{}) string {
	b, _ := json.Marshal(v)
	return string(b)
}
