package db

import (
	"time"

	"gorm.io/gorm"
)

// Post statuses. Only published posts are visible on the public site.
const (
	PostStatusDraft     = "draft"
	PostStatusPublished = "published"
	PostStatusArchived  = "archived"
)

// Post is a blog entry authored from the dashboard. Content holds the HTML
// produced by the dashboard editor and is sanitized at render time.
type Post struct {
	gorm.Model
	Title          string `gorm:"size:200;not null"`
	Slug           string `gorm:"size:200;uniqueIndex;not null"`
	Summary        string `gorm:"size:500"`
	Content        string `gorm:"type:text"`
	FeaturedImage  string `gorm:"size:255"`
	Status         string `gorm:"size:20;default:draft"`
	PublishedAt    *time.Time
	SEOTitle       string `gorm:"size:200"`
	SEODescription string `gorm:"size:300"`
	SEOKeywords    string `gorm:"size:300"`
	CategoryID     *uint
	Category       *Category
	UserID         uint
	User           User
	Tags           []Tag `gorm:"many2many:post_tags;"`
}

// IsPublished reports whether the post is publicly visible.
func (p *Post) IsPublished() bool {
	return p.Status == PostStatusPublished
}
