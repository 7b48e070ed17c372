package parsing

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"cv-reader/internal/cache"
	"cv-reader/internal/textprovider"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"))
	return r
}

func uploadRequest(t *testing.T, fileName string, content []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-cv", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestParseCVHappyPath(t *testing.T) {
	svc := &Service{Cache: cache.NewMemory(time.Now), TTL: time.Hour, Extract: textprovider.Extract}
	r := newTestRouter(svc)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t, "cv.txt", []byte(serviceDoc)))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success     bool   `json:"success"`
		Filename    string `json:"filename"`
		Fingerprint string `json:"fingerprint"`
		Cached      bool   `json:"cached"`
		Data        struct {
			Contact struct {
				Name  string `json:"name"`
				Email string `json:"email"`
			} `json:"contact"`
			Experience []struct {
				Employer string `json:"employer"`
			} `json:"experience"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Cached {
		t.Fatalf("expected success, uncached; got success=%v cached=%v", body.Success, body.Cached)
	}
	if body.Filename != "cv.txt" {
		t.Fatalf("unexpected filename %q", body.Filename)
	}
	if len(body.Fingerprint) != 64 {
		t.Fatalf("expected sha256 hex fingerprint, got %q", body.Fingerprint)
	}
	if body.Data.Contact.Name != "Jane Roe" {
		t.Fatalf("unexpected name %q", body.Data.Contact.Name)
	}
	if len(body.Data.Experience) != 1 || body.Data.Experience[0].Employer != "Acme Corp" {
		t.Fatalf("unexpected experience %v", body.Data.Experience)
	}
}

func TestParseCVSecondUploadIsCached(t *testing.T) {
	calls := 0
	svc := &Service{
		Cache: cache.NewMemory(time.Now),
		TTL:   time.Hour,
		Extract: func(data []byte, fileName string) (string, error) {
			calls++
			return string(data), nil
		},
	}
	r := newTestRouter(svc)

	for i, wantCached := range []bool{false, true} {
		resp := httptest.NewRecorder()
		r.ServeHTTP(resp, uploadRequest(t, "cv.txt", []byte(serviceDoc)))
		if resp.Code != http.StatusOK {
			t.Fatalf("upload %d expected 200, got %d", i+1, resp.Code)
		}
		var body struct {
			Cached bool `json:"cached"`
		}
		if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		if body.Cached != wantCached {
			t.Fatalf("upload %d expected cached=%v, got %v", i+1, wantCached, body.Cached)
		}
	}
	if calls != 1 {
		t.Fatalf("extract should run once, ran %d times", calls)
	}
}

func TestParseCVMissingFile(t *testing.T) {
	svc := &Service{Extract: textprovider.Extract}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-cv", strings.NewReader(""))
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	assertErrorCode(t, resp, "validation_error")
}

func TestParseCVUnsupportedType(t *testing.T) {
	svc := &Service{Extract: textprovider.Extract}
	r := newTestRouter(svc)

	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t, "photo.png", []byte{0x89, 0x50, 0x4e, 0x47}))

	if resp.Code != http.StatusUnsupportedMediaType {
		t.Fatalf("expected 415, got %d: %s", resp.Code, resp.Body.String())
	}
	assertErrorCode(t, resp, "unsupported_media_type")
}

func TestParseCVExtractFailed(t *testing.T) {
	svc := &Service{Extract: textprovider.Extract}
	r := newTestRouter(svc)

	// A pdf extension with garbage bytes fails extraction rather than
	// type detection.
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, uploadRequest(t, "cv.pdf", []byte("not a pdf")))

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", resp.Code, resp.Body.String())
	}
	assertErrorCode(t, resp, "extract_failed")
}

func TestParseTextEndpoint(t *testing.T) {
	svc := &Service{Cache: cache.NewMemory(time.Now), TTL: time.Hour}
	r := newTestRouter(svc)

	payload, _ := json.Marshal(map[string]string{"text": serviceDoc})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-text", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Contact struct {
				Email string `json:"email"`
			} `json:"contact"`
		} `json:"data"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if !body.Success || body.Data.Contact.Email != "jane.roe@example.com" {
		t.Fatalf("unexpected body %s", resp.Body.String())
	}
}

func TestParseTextRequiresText(t *testing.T) {
	svc := &Service{}
	r := newTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/parse-text", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
	assertErrorCode(t, resp, "validation_error")
}

func assertErrorCode(t *testing.T, resp *httptest.ResponseRecorder, want string) {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != want {
		t.Fatalf("expected error code %q, got %q", want, body.Error.Code)
	}
}
