package service

import (
	"errors"
	"strings"
	"testing"
)

func TestPageSaveCreatesThenUpdates(t *testing.T) {
	svc := NewPageService(newTestDB(t))

	page, err := svc.Save("about", "", "## Who we are\n\nWe recycle metal.")
	if err != nil {
		t.Fatalf("save page: %v", err)
	}
	if page.Title != "About Us" {
		t.Fatalf("expected default title, got %q", page.Title)
	}

	updated, err := svc.Save("about", "Our Story", "A brand new body.")
	if err != nil {
		t.Fatalf("resave page: %v", err)
	}
	if updated.ID != page.ID {
		t.Fatalf("resave must update in place, got new row %d vs %d", updated.ID, page.ID)
	}
	if updated.Title != "Our Story" || updated.Content != "A brand new body." {
		t.Fatalf("unexpected page after resave: %+v", updated)
	}

	fetched, err := svc.GetBySlug("about")
	if err != nil {
		t.Fatalf("get page: %v", err)
	}
	if fetched.Content != "A brand new body." {
		t.Fatalf("expected stored content, got %q", fetched.Content)
	}
}

func TestPageSaveRejectsUnknownSlug(t *testing.T) {
	svc := NewPageService(newTestDB(t))

	if _, err := svc.Save("pricing", "Pricing", "body"); !errors.Is(err, ErrPageNotFound) {
		t.Fatalf("expected ErrPageNotFound, got %v", err)
	}
}

func TestPageSaveRejectsEmptyContent(t *testing.T) {
	svc := NewPageService(newTestDB(t))

	if _, err := svc.Save("about", "About", "   \n  "); !errors.Is(err, ErrPageContentMissing) {
		t.Fatalf("expected ErrPageContentMissing, got %v", err)
	}
}

func TestPageSummaryStripsMarkdownAndTruncates(t *testing.T) {
	svc := NewPageService(newTestDB(t))

	long := "# Heading\n\n" + strings.Repeat("word ", 80)
	page, err := svc.Save("services", "", long)
	if err != nil {
		t.Fatalf("save page: %v", err)
	}
	if strings.Contains(page.Summary, "#") {
		t.Fatalf("summary must not carry markdown markers: %q", page.Summary)
	}
	if !strings.HasSuffix(page.Summary, "…") {
		t.Fatalf("expected truncated summary, got %q", page.Summary)
	}
}
