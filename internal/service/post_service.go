package service

import (
	"errors"
	"strings"
	"time"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

var (
	ErrPostNotFound    = errors.New("post not found")
	ErrTitleRequired   = errors.New("post title is required")
	ErrContentRequired = errors.New("post content is required")
	ErrInvalidSlug     = errors.New("slug must contain only lowercase letters, digits and hyphens")
	ErrSlugTaken       = errors.New("a post with this slug already exists")
	ErrInvalidStatus   = errors.New("invalid post status")
)

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostFilter describes filters for listing posts.
type PostFilter struct {
	Search       string
	Status       string
	CategorySlug string
	TagSlug      string
	Page         int
	PerPage      int
}

// PostListResult aggregates paginated list data and status counters.
type PostListResult struct {
	Posts          []db.Post
	Total          int64
	PublishedCount int64
	DraftCount     int64
	ArchivedCount  int64
	TotalPages     int
	Page           int
	PerPage        int
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title          string
	Slug           string
	Summary        string
	Content        string
	FeaturedImage  string
	Status         string
	SEOTitle       string
	SEODescription string
	SEOKeywords    string
	CategoryID     *uint
	TagIDs         []uint
	UserID         uint
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// Get fetches a post by id with its associations preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("Category").Preload("User").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPublishedBySlug fetches a published post for the public site.
func (s *PostService) GetPublishedBySlug(slug string) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Tags").Preload("Category").Preload("User").
		Where("slug = ? AND status = ?", slug, db.PostStatusPublished).
		First(&post).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a post and associates tags in a transaction. The slug is
// derived from the title when none is provided.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = Slugify(title)
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if taken, err := s.slugTaken(slug, 0); err != nil {
		return nil, err
	} else if taken {
		return nil, ErrSlugTaken
	}

	post := db.Post{
		Title:          title,
		Slug:           slug,
		Summary:        strings.TrimSpace(input.Summary),
		Content:        input.Content,
		FeaturedImage:  strings.TrimSpace(input.FeaturedImage),
		Status:         status,
		SEOTitle:       strings.TrimSpace(input.SEOTitle),
		SEODescription: strings.TrimSpace(input.SEODescription),
		SEOKeywords:    strings.TrimSpace(input.SEOKeywords),
		CategoryID:     input.CategoryID,
		UserID:         input.UserID,
	}

	if status == db.PostStatusPublished {
		now := time.Now()
		post.PublishedAt = &now
	}

	return s.saveWithTags(&post, input.TagIDs)
}

// Update applies changes to an existing post. A blank slug keeps the stored
// one, so a manually edited slug survives later title edits. Saving with
// status published stamps the publish time anew, even on re-publish.
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	var existing db.Post
	if err := s.db.First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}
	if strings.TrimSpace(input.Content) == "" {
		return nil, ErrContentRequired
	}

	slug := strings.TrimSpace(input.Slug)
	if slug == "" {
		slug = existing.Slug
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	status, err := normalizeStatus(input.Status)
	if err != nil {
		return nil, err
	}

	if slug != existing.Slug {
		if taken, err := s.slugTaken(slug, id); err != nil {
			return nil, err
		} else if taken {
			return nil, ErrSlugTaken
		}
	}

	existing.Title = title
	existing.Slug = slug
	existing.Summary = strings.TrimSpace(input.Summary)
	existing.Content = input.Content
	existing.FeaturedImage = strings.TrimSpace(input.FeaturedImage)
	existing.Status = status
	existing.SEOTitle = strings.TrimSpace(input.SEOTitle)
	existing.SEODescription = strings.TrimSpace(input.SEODescription)
	existing.SEOKeywords = strings.TrimSpace(input.SEOKeywords)
	existing.CategoryID = input.CategoryID

	if status == db.PostStatusPublished {
		now := time.Now()
		existing.PublishedAt = &now
	}

	return s.saveWithTags(&existing, input.TagIDs)
}

// Delete removes a post and its tag joins for good.
func (s *PostService) Delete(id uint) error {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&post).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&post).Error
	})
}

// List provides paginated posts with status counters based on filters.
// Requesting a page past the end yields an empty slice, not an error.
func (s *PostService) List(filter PostFilter) (*PostListResult, error) {
	result := &PostListResult{Page: filter.Page, PerPage: filter.PerPage}
	if result.Page <= 0 {
		result.Page = 1
	}
	if result.PerPage <= 0 {
		result.PerPage = 10
	}

	countQuery := s.applyFilters(s.db.Model(&db.Post{}), filter, true)
	if err := countQuery.Count(&result.Total).Error; err != nil {
		return nil, err
	}

	offset := (result.Page - 1) * result.PerPage

	orderBy := "posts.created_at desc"
	if strings.EqualFold(filter.Status, db.PostStatusPublished) {
		orderBy = "posts.published_at desc, posts.id desc"
	}

	var posts []db.Post
	dataQuery := s.applyFilters(
		s.db.Model(&db.Post{}).Preload("Tags").Preload("Category").Preload("User"),
		filter, true,
	)
	if err := dataQuery.Order(orderBy).Limit(result.PerPage).Offset(offset).Find(&posts).Error; err != nil {
		return nil, err
	}

	filterWithoutStatus := filter
	filterWithoutStatus.Status = ""
	for status, target := range map[string]*int64{
		db.PostStatusPublished: &result.PublishedCount,
		db.PostStatusDraft:     &result.DraftCount,
		db.PostStatusArchived:  &result.ArchivedCount,
	} {
		counter := s.applyFilters(s.db.Model(&db.Post{}), filterWithoutStatus, false)
		if err := counter.Where("posts.status = ?", status).Count(target).Error; err != nil {
			return nil, err
		}
	}

	if result.Total == 0 {
		result.TotalPages = 1
	} else {
		result.TotalPages = int((result.Total + int64(result.PerPage) - 1) / int64(result.PerPage))
	}

	result.Posts = posts
	return result, nil
}

// ListPublished is the public-site view over List.
func (s *PostService) ListPublished(filter PostFilter) (*PostListResult, error) {
	filter.Status = db.PostStatusPublished
	return s.List(filter)
}

// Recent returns the latest published posts for the home page.
func (s *PostService) Recent(limit int) ([]db.Post, error) {
	if limit <= 0 {
		limit = 3
	}
	var posts []db.Post
	if err := s.db.Preload("Category").
		Where("status = ?", db.PostStatusPublished).
		Order("published_at desc, id desc").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *PostService) saveWithTags(post *db.Post, tagIDs []uint) (*db.Post, error) {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(post).Error; err != nil {
			return err
		}

		var tags []db.Tag
		if len(tagIDs) > 0 {
			if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
				return err
			}
			if len(tags) != len(tagIDs) {
				return ErrTagNotFound
			}
		}

		// Replace rewrites the whole join set for the post.
		if err := tx.Model(post).Association("Tags").Replace(tags); err != nil {
			return err
		}

		return tx.Preload("Tags").Preload("Category").First(post, post.ID).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return post, nil
}

func (s *PostService) slugTaken(slug string, excludeID uint) (bool, error) {
	var count int64
	query := s.db.Model(&db.Post{}).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *PostService) applyFilters(query *gorm.DB, filter PostFilter, includeStatus bool) *gorm.DB {
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(posts.title) LIKE ? OR LOWER(posts.summary) LIKE ?)", like, like)
	}

	if includeStatus && filter.Status != "" {
		query = query.Where("posts.status = ?", filter.Status)
	}

	if slug := strings.TrimSpace(filter.CategorySlug); slug != "" {
		query = query.Where("posts.category_id IN (?)",
			s.db.Model(&db.Category{}).Select("id").Where("slug = ?", slug))
	}

	if slug := strings.TrimSpace(filter.TagSlug); slug != "" {
		subQuery := s.db.Model(&db.Post{}).
			Select("posts.id").
			Joins("JOIN post_tags ON posts.id = post_tags.post_id").
			Joins("JOIN tags ON tags.id = post_tags.tag_id").
			Where("tags.slug = ?", slug)
		query = query.Where("posts.id IN (?)", subQuery)
	}

	return query
}

func normalizeStatus(status string) (string, error) {
	trimmed := strings.ToLower(strings.TrimSpace(status))
	switch trimmed {
	case "":
		return db.PostStatusDraft, nil
	case db.PostStatusDraft, db.PostStatusPublished, db.PostStatusArchived:
		return trimmed, nil
	}
	return "", ErrInvalidStatus
}
