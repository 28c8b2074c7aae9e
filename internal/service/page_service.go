package service

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPageNotFound       = errors.New("page not found")
	ErrPageContentMissing = errors.New("page content is required")
)

// Editable page slugs. Anything else 404s.
var editablePageSlugs = map[string]string{
	"about":    "About Us",
	"services": "Our Services",
}

// PageService provides access to editable content pages such as About.
type PageService struct {
	db *gorm.DB
}

// NewPageService returns a new PageService instance.
func NewPageService(gdb *gorm.DB) *PageService {
	return &PageService{db: gdb}
}

// GetBySlug fetches a page for a given slug.
func (s *PageService) GetBySlug(slug string) (*db.ContentPage, error) {
	var page db.ContentPage
	if err := s.db.Where("slug = ?", slug).First(&page).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPageNotFound
		}
		return nil, err
	}
	return &page, nil
}

// Save creates or updates an editable page's markdown content.
func (s *PageService) Save(slug, title, content string) (*db.ContentPage, error) {
	defaultTitle, ok := editablePageSlugs[slug]
	if !ok {
		return nil, ErrPageNotFound
	}

	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return nil, ErrPageContentMissing
	}

	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}
	summary := summarizeContent(trimmed)

	var page db.ContentPage
	err := s.db.Where("slug = ?", slug).First(&page).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			page = db.ContentPage{
				Slug:    slug,
				Title:   strings.TrimSpace(title),
				Summary: summary,
				Content: trimmed,
			}
			if err := s.db.Create(&page).Error; err != nil {
				return nil, err
			}
			return &page, nil
		}
		return nil, err
	}

	page.Title = strings.TrimSpace(title)
	page.Summary = summary
	page.Content = trimmed

	if err := s.db.Save(&page).Error; err != nil {
		return nil, err
	}

	return &page, nil
}

func summarizeContent(markdown string) string {
	replacer := strings.NewReplacer(
		"#", " ",
		"*", " ",
		"`", " ",
		"_", " ",
		">", " ",
		"[", " ",
		"]", " ",
		"(", " ",
		")", " ",
	)
	plain := strings.Join(strings.Fields(replacer.Replace(markdown)), " ")
	if plain == "" {
		return ""
	}

	const limit = 160
	if utf8.RuneCountInString(plain) <= limit {
		return plain
	}

	runes := []rune(plain)
	return string(runes[:limit]) + "…"
}
