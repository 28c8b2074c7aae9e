package db

import "gorm.io/gorm"

// SiteSetting is the singleton row holding company info and appearance.
// It is created implicitly on first save and updated in place afterwards.
type SiteSetting struct {
	gorm.Model
	CompanyName    string `gorm:"size:120"`
	Description    string `gorm:"size:500"`
	PrimaryColor   string `gorm:"size:20"`
	SecondaryColor string `gorm:"size:20"`
	LogoURL        string `gorm:"size:255"`
	ContactEmail   string `gorm:"size:255"`
	ContactPhone   string `gorm:"size:50"`
	Address        string `gorm:"size:255"`
}

// TableName keeps the singular-concept table name readable.
func (SiteSetting) TableName() string {
	return "site_settings"
}
