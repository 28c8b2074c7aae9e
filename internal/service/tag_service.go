package service

import (
	"errors"
	"strings"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

var (
	ErrTagNotFound = errors.New("tag not found")
	ErrTagExists   = errors.New("tag already exists")
	ErrTagName     = errors.New("tag name is required")
)

// TagService wraps tag related operations.
type TagService struct {
	db *gorm.DB
}

// NewTagService creates a TagService instance.
func NewTagService(gdb *gorm.DB) *TagService {
	return &TagService{db: gdb}
}

// List returns tags with post usage counts, ordered by name.
func (s *TagService) List() ([]db.Tag, error) {
	var tags []db.Tag
	if err := s.db.
		Model(&db.Tag{}).
		Select("tags.*, COUNT(post_tags.post_id) AS post_count").
		Joins("LEFT JOIN post_tags ON post_tags.tag_id = tags.id").
		Group("tags.id").
		Order("tags.name asc").
		Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetBySlug fetches a tag for archive pages.
func (s *TagService) GetBySlug(slug string) (*db.Tag, error) {
	var tag db.Tag
	if err := s.db.Where("slug = ?", slug).First(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// Create inserts a new tag; the slug derives from the name when blank.
func (s *TagService) Create(name, slug string) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagName
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	var existing db.Tag
	if err := s.db.Where("name = ? OR slug = ?", name, slug).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	tag := db.Tag{Name: name, Slug: slug}
	if err := s.db.Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	return &tag, nil
}

// Update renames a tag while keeping uniqueness.
func (s *TagService) Update(id uint, name, slug string) (*db.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrTagName
	}

	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTagNotFound
		}
		return nil, err
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = tag.Slug
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	var existing db.Tag
	if err := s.db.Where("(name = ? OR slug = ?) AND id <> ?", name, slug, id).First(&existing).Error; err == nil {
		return nil, ErrTagExists
	}

	tag.Name = name
	tag.Slug = slug
	if err := s.db.Save(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrTagExists
		}
		return nil, err
	}

	return &tag, nil
}

// Delete removes a tag and its post joins. Posts themselves are untouched.
func (s *TagService) Delete(id uint) error {
	var tag db.Tag
	if err := s.db.First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&tag).Association("Posts").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&tag).Error
	})
}
