package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"coach-backend/internal/shared/config"
)

func newTestApp(t *testing.T) (*App, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "8080",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		LLMModel:        "gpt-4o-mini",
		EmbeddingModel:  "text-embedding-3-small",
		Env:             "dev",
	}
	app, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("bootstrap.New: %v", err)
	}
	t.Cleanup(func() { _ = app.Close() })
	return app, app.Router()
}

func uploadCV(t *testing.T, router *gin.Engine, userID, fileName string, size int) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(bytes.Repeat([]byte("a"), size)); err != nil {
		t.Fatalf("write part: %v", err)
	}
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-User-Id", userID)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestUploadCVEndToEnd(t *testing.T) {
	app, router := newTestApp(t)

	rec := uploadCV(t, router, "user-1", "resume.pdf", 2<<20)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		CVID      string `json:"cvId"`
		FileName  string `json:"fileName"`
		IsDefault bool   `json:"isDefault"`
		IsActive  bool   `json:"isActive"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.CVID == "" || resp.FileName != "resume.pdf" {
		t.Fatalf("response = %+v", resp)
	}
	if resp.IsDefault || !resp.IsActive {
		t.Fatalf("new upload flags = %+v", resp)
	}

	stored, err := app.CVs.Get(context.Background(), "user-1", resp.CVID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !strings.Contains(stored.StorageKey, "cvs/") {
		t.Fatalf("storage key = %q, want cvs/ prefix", stored.StorageKey)
	}
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	_, router := newTestApp(t)

	rec := uploadCV(t, router, "user-1", "resume.txt", 1024)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "unsupported-type") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestSetDefaultKeepsSingleDefault(t *testing.T) {
	_, router := newTestApp(t)

	var ids []string
	for i := 0; i < 3; i++ {
		rec := uploadCV(t, router, "user-1", fmt.Sprintf("resume-%d.pdf", i), 1024)
		if rec.Code != http.StatusCreated {
			t.Fatalf("upload %d: status %d", i, rec.Code)
		}
		var resp struct {
			CVID string `json:"cvId"`
		}
		_ = json.Unmarshal(rec.Body.Bytes(), &resp)
		ids = append(ids, resp.CVID)
	}

	for _, id := range ids[:2] {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/cvs/"+id+"/default", nil)
		req.Header.Set("X-User-Id", "user-1")
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("set default: status %d", rec.Code)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var list []struct {
		CVID      string `json:"cvId"`
		IsDefault bool   `json:"isDefault"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	defaults := 0
	for _, cv := range list {
		if cv.IsDefault {
			defaults++
			if cv.CVID != ids[1] {
				t.Fatalf("default is %s, want %s", cv.CVID, ids[1])
			}
		}
	}
	if defaults != 1 {
		t.Fatalf("defaults = %d, want exactly 1", defaults)
	}
}

func TestPreviewLinkServesUploadedFile(t *testing.T) {
	_, router := newTestApp(t)

	rec := uploadCV(t, router, "user-1", "resume.pdf", 1024)
	if rec.Code != http.StatusCreated {
		t.Fatalf("upload: status %d", rec.Code)
	}
	var uploaded struct {
		CVID string `json:"cvId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &uploaded)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+uploaded.CVID+"/preview", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("preview: status %d, body %s", rec.Code, rec.Body.String())
	}
	var preview struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &preview); err != nil {
		t.Fatalf("decode preview: %v", err)
	}
	if !strings.Contains(preview.URL, "sig=") {
		t.Fatalf("preview url missing signature: %s", preview.URL)
	}

	// The link itself is the credential; no identity header.
	req = httptest.NewRequest(http.MethodGet, preview.URL, nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("fetch link: status %d, body %s", rec.Code, rec.Body.String())
	}
	if rec.Body.Len() != 1024 {
		t.Fatalf("fetch link: body length %d, want 1024", rec.Body.Len())
	}
}

func TestPreviewLinkRejectsTampering(t *testing.T) {
	_, router := newTestApp(t)

	rec := uploadCV(t, router, "user-1", "resume.pdf", 1024)
	var uploaded struct {
		CVID string `json:"cvId"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &uploaded)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs/"+uploaded.CVID+"/preview", nil)
	req.Header.Set("X-User-Id", "user-1")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	var preview struct {
		URL string `json:"url"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &preview)

	link, err := url.Parse(preview.URL)
	if err != nil {
		t.Fatalf("parse preview url: %v", err)
	}

	// Stretching the expiry invalidates the signature.
	stretched := *link
	q := stretched.Query()
	q.Set("expires", "99999999999")
	stretched.RawQuery = q.Encode()
	req = httptest.NewRequest(http.MethodGet, stretched.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("stretched expiry: status %d, want 403", rec.Code)
	}

	// A link minted without a signature is dead on arrival.
	unsigned := *link
	q = unsigned.Query()
	q.Del("sig")
	unsigned.RawQuery = q.Encode()
	req = httptest.NewRequest(http.MethodGet, unsigned.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("missing signature: status %d, want 403", rec.Code)
	}
}

func TestRequestWithoutIdentityIsRejected(t *testing.T) {
	_, router := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cvs", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}

func TestHealthAndMetricsExposed(t *testing.T) {
	_, router := newTestApp(t)

	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d", path, rec.Code)
		}
	}
}

func TestAgentPrePromptEndToEnd(t *testing.T) {
	_, router := newTestApp(t)

	body := `{"jobTitle":"Backend Engineer","company":"Acme","questions":["Tell me about yourself."],"style":"mvp"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/agent/preprompt", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Guest-Id", "g-1")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		SystemPrompt string `json:"systemPrompt"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &resp)
	if !strings.Contains(resp.SystemPrompt, "Backend Engineer") {
		t.Fatalf("prompt = %q", resp.SystemPrompt)
	}
}
