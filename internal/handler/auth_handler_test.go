package handler

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/metalcycle/internal/db"
	"golang.org/x/crypto/bcrypt"
)

func seedUser(t *testing.T, api *API, email, password, role string) {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := db.User{Email: email, Password: string(hashed), FullName: "Tester", Role: role}
	if err := api.db.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func loginAs(t *testing.T, r http.Handler, email, password string) []*http.Cookie {
	t.Helper()

	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected login redirect, got status %d", rr.Code)
	}
	return rr.Result().Cookies()
}

func TestAuthRequiredRedirectsWithReturnPath(t *testing.T) {
	api := setupTestAPI(t)

	r := newSessionEngine()
	protected := r.Group("/dashboard")
	protected.Use(api.AuthRequired())
	protected.GET("/posts", api.GetPosts)

	req := httptest.NewRequest(http.MethodGet, "/dashboard/posts", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/auth?next=%2Fdashboard%2Fposts" {
		t.Fatalf("unexpected redirect target %q", got)
	}
}

func TestAdminRequiredRedirectsNonAdminToDashboard(t *testing.T) {
	api := setupTestAPI(t)
	seedUser(t, api, "viewer@metalcycle.example", "secret123", "user")

	r := newSessionEngine()
	r.POST("/auth/login", api.Login)
	admin := r.Group("/dashboard")
	admin.Use(api.AuthRequired(), api.AdminRequired())
	admin.GET("/posts", api.GetPosts)

	cookies := loginAs(t, r, "viewer@metalcycle.example", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/posts", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Fatalf("non-admins must land on the dashboard, got %q", got)
	}
}

func TestAdminRequiredAllowsAdmin(t *testing.T) {
	api := setupTestAPI(t)
	seedUser(t, api, "admin@metalcycle.example", "secret123", db.RoleAdmin)

	r := newSessionEngine()
	r.POST("/auth/login", api.Login)
	admin := r.Group("/dashboard")
	admin.Use(api.AuthRequired(), api.AdminRequired())
	admin.GET("/api/posts", api.GetPosts)

	cookies := loginAs(t, r, "admin@metalcycle.example", "secret123")

	req := httptest.NewRequest(http.MethodGet, "/dashboard/api/posts", nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
}

func TestLoginRedirectsToRequestedPath(t *testing.T) {
	api := setupTestAPI(t)
	seedUser(t, api, "admin@metalcycle.example", "secret123", db.RoleAdmin)

	r := newSessionEngine()
	r.POST("/auth/login", api.Login)

	form := url.Values{
		"email":    {"admin@metalcycle.example"},
		"password": {"secret123"},
		"next":     {"/dashboard/messages"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusFound {
		t.Fatalf("expected status %d, got %d", http.StatusFound, rr.Code)
	}
	if got := rr.Header().Get("Location"); got != "/dashboard/messages" {
		t.Fatalf("expected return to requested path, got %q", got)
	}
}

func TestLoginIgnoresOffsiteReturnPath(t *testing.T) {
	api := setupTestAPI(t)
	seedUser(t, api, "admin@metalcycle.example", "secret123", db.RoleAdmin)

	r := newSessionEngine()
	r.POST("/auth/login", api.Login)

	form := url.Values{
		"email":    {"admin@metalcycle.example"},
		"password": {"secret123"},
		"next":     {"https://evil.example/phish"},
	}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if got := rr.Header().Get("Location"); got != "/dashboard" {
		t.Fatalf("offsite next must fall back to /dashboard, got %q", got)
	}
}

func TestSafeReturnPath(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"/dashboard", "/dashboard"},
		{"/dashboard/posts?page=2", "/dashboard/posts?page=2"},
		{"//evil.example", ""},
		{"https://evil.example", ""},
		{"dashboard", ""},
	}
	for _, tt := range tests {
		if got := safeReturnPath(tt.input); got != tt.expected {
			t.Fatalf("safeReturnPath(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}
