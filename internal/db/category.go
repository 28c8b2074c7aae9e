package db

import "gorm.io/gorm"

// Category groups posts. Deleting a category leaves its posts behind with a
// null category reference.
type Category struct {
	gorm.Model
	Name        string `gorm:"size:120;unique;not null"`
	Slug        string `gorm:"size:120;uniqueIndex;not null"`
	Description string `gorm:"size:500"`

	// Populated by list queries; readable by Scan, never migrated.
	PostCount int64 `gorm:"->;-:migration"`
}
