package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

func newUploadEngine(api *API) *gin.Engine {
	r := gin.New()
	r.POST("/dashboard/api/uploads/blog", api.UploadBlogImage)
	return r
}

func multipartImage(t *testing.T, filename, contentType string, data []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart part: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("failed to write multipart body: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func assertUploadDirEmpty(t *testing.T, dir string) {
	t.Helper()

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return
		}
		t.Fatalf("failed to read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("rejected upload must not leave files behind, found %d entries", len(entries))
	}
}

func TestUploadStoresValidImage(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	body, contentType := multipartImage(t, "cover.png", "image/png", tinyPNG(t))
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, rr.Code, rr.Body.String())
	}

	var resp struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.HasPrefix(resp.URL, "/static/uploads/blog/") {
		t.Fatalf("unexpected upload URL %q", resp.URL)
	}
	if !strings.HasSuffix(resp.URL, ".png") {
		t.Fatalf("expected png extension kept, got %q", resp.URL)
	}
}

func TestUploadRejectsOversizedImage(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	oversized := make([]byte, maxUploadSize+1)
	body, contentType := multipartImage(t, "huge.png", "image/png", oversized)
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	assertUploadDirEmpty(t, api.uploadDir)
}

func TestUploadRejectsNonImageContentType(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	body, contentType := multipartImage(t, "notes.txt", "text/plain", []byte("hello"))
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	assertUploadDirEmpty(t, api.uploadDir)
}

func TestUploadRejectsDisallowedExtension(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	body, contentType := multipartImage(t, "vector.svg", "image/svg+xml", []byte("<svg/>"))
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	assertUploadDirEmpty(t, api.uploadDir)
}

func TestUploadRejectsCorruptImage(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	body, contentType := multipartImage(t, "fake.png", "image/png", []byte("definitely not a png"))
	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
	assertUploadDirEmpty(t, api.uploadDir)
}

func TestUploadRequiresFile(t *testing.T) {
	api := setupTestAPI(t)
	r := newUploadEngine(api)

	req := httptest.NewRequest(http.MethodPost, "/dashboard/api/uploads/blog", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d, got %d", http.StatusBadRequest, rr.Code)
	}
}
