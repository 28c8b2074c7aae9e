package db

import "gorm.io/gorm"

// Tag labels posts through the post_tags join table. Deleting a tag removes
// only the joins, never the posts.
type Tag struct {
	gorm.Model
	Name string `gorm:"size:120;unique;not null"`
	Slug string `gorm:"size:120;uniqueIndex;not null"`

	Posts []Post `gorm:"many2many:post_tags;"`

	// Populated by list queries; readable by Scan, never migrated.
	PostCount int64 `gorm:"->;-:migration"`
}
