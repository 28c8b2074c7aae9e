package service

import (
	"errors"
	"strings"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrCategoryExists   = errors.New("category already exists")
	ErrCategoryName     = errors.New("category name is required")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns categories with post usage counts, ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.
		Model(&db.Category{}).
		Select("categories.*, COUNT(posts.id) AS post_count").
		Joins("LEFT JOIN posts ON posts.category_id = categories.id AND posts.deleted_at IS NULL").
		Group("categories.id").
		Order("categories.name asc").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetBySlug fetches a category for archive pages.
func (s *CategoryService) GetBySlug(slug string) (*db.Category, error) {
	var category db.Category
	if err := s.db.Where("slug = ?", slug).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category; the slug derives from the name when blank.
func (s *CategoryService) Create(name, slug, description string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = Slugify(name)
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	var existing db.Category
	if err := s.db.Where("name = ? OR slug = ?", name, slug).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := db.Category{Name: name, Slug: slug, Description: strings.TrimSpace(description)}
	if err := s.db.Create(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return &category, nil
}

// Update changes name, slug and description while keeping uniqueness.
func (s *CategoryService) Update(id uint, name, slug, description string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrCategoryName
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = category.Slug
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}

	var existing db.Category
	if err := s.db.Where("(name = ? OR slug = ?) AND id <> ?", name, slug, id).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category.Name = name
	category.Slug = slug
	category.Description = strings.TrimSpace(description)
	if err := s.db.Save(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrCategoryExists
		}
		return nil, err
	}

	return &category, nil
}

// Delete removes a category. Posts keep existing with a null category
// reference; nothing cascades.
func (s *CategoryService) Delete(id uint) error {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Post{}).
			Where("category_id = ?", id).
			Update("category_id", nil).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&category).Error
	})
}
