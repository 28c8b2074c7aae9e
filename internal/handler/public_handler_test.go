package handler

import (
	"html/template"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/db"
	"github.com/metalcycle/internal/service"
)

func newPublicEngine(api *API) *gin.Engine {
	r := newSessionEngine()
	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"formatDate": func(v interface{}) string {
			type dated interface{ Format(string) string }
			if t, ok := v.(dated); ok {
				return t.Format("Jan 2, 2006")
			}
			return ""
		},
	})
	r.LoadHTMLGlob(filepath.Join("..", "..", "web", "template", "*.html"))

	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/blog", api.ShowBlogIndex)
	r.GET("/blog/:slug", api.ShowBlogPost)
	return r
}

func seedPublishedPost(t *testing.T, api *API, title, slug, content string) {
	t.Helper()

	posts := service.NewPostService(api.db)
	if _, err := posts.Create(service.PostInput{
		Title:   title,
		Slug:    slug,
		Content: content,
		Status:  db.PostStatusPublished,
	}); err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
}

func TestShowBlogPostSanitizesStoredHTML(t *testing.T) {
	api := setupTestAPI(t)
	r := newPublicEngine(api)

	seedPublishedPost(t, api, "Sanitize Me", "sanitize-me",
		`<p>safe paragraph</p><script>alert("xss")</script>`)

	req := httptest.NewRequest(http.MethodGet, "/blog/sanitize-me", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	body := rr.Body.String()
	if !strings.Contains(body, "<p>safe paragraph</p>") {
		t.Fatalf("expected sanitized content kept, body: %s", body)
	}
	if strings.Contains(body, "<script>") {
		t.Fatalf("script tags must not survive sanitization")
	}
}

func TestShowBlogPostHidesDrafts(t *testing.T) {
	api := setupTestAPI(t)
	r := newPublicEngine(api)

	posts := service.NewPostService(api.db)
	if _, err := posts.Create(service.PostInput{
		Title: "Secret", Slug: "secret", Content: "x",
	}); err != nil {
		t.Fatalf("failed to seed draft: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/blog/secret", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected status %d for a draft, got %d", http.StatusNotFound, rr.Code)
	}
}

func TestShowAboutRendersMarkdown(t *testing.T) {
	api := setupTestAPI(t)
	r := newPublicEngine(api)

	pages := service.NewPageService(api.db)
	if _, err := pages.Save("about", "About Us", "## Who we are\n\nScrap specialists."); err != nil {
		t.Fatalf("failed to seed page: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "<h2") {
		t.Fatalf("expected markdown heading rendered to HTML")
	}
}

func TestPublicPagesSetVisitorCookieAndRecordVisit(t *testing.T) {
	api := setupTestAPI(t)
	r := newPublicEngine(api)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}

	var visitorCookie string
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == visitorCookieName {
			visitorCookie = cookie.Value
		}
	}
	if visitorCookie == "" {
		t.Fatalf("expected a visitor cookie on first visit")
	}

	var visits int64
	if err := api.db.Model(&db.PageVisit{}).Count(&visits).Error; err != nil {
		t.Fatalf("failed to count visits: %v", err)
	}
	if visits != 1 {
		t.Fatalf("expected 1 recorded visit, got %d", visits)
	}
}

func TestRenderMarkdownStripsRawHTML(t *testing.T) {
	out, err := renderMarkdown("Hello <script>alert(1)</script> **world**")
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	rendered := string(out)
	if strings.Contains(rendered, "<script>") {
		t.Fatalf("raw script must be stripped, got %q", rendered)
	}
	if !strings.Contains(rendered, "<strong>world</strong>") {
		t.Fatalf("expected bold text rendered, got %q", rendered)
	}
}
