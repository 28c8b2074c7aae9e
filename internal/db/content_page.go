package db

import "gorm.io/gorm"

// ContentPage is an editable markdown page such as About or Services.
type ContentPage struct {
	gorm.Model
	Slug    string `gorm:"size:120;uniqueIndex;not null"`
	Title   string `gorm:"size:200;not null"`
	Summary string `gorm:"size:300"`
	Content string `gorm:"type:text"`
}

// TableName avoids colliding with the public page routes naming.
func (ContentPage) TableName() string {
	return "content_pages"
}
