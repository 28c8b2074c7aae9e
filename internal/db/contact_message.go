package db

import "gorm.io/gorm"

// ContactMessage stores a submission from the public contact form.
type ContactMessage struct {
	gorm.Model
	Name    string `gorm:"size:120;not null"`
	Email   string `gorm:"size:255;not null"`
	Phone   string `gorm:"size:50"`
	Subject string `gorm:"size:200"`
	Message string `gorm:"type:text;not null"`
	Read    bool   `gorm:"default:false"`
}

// TableName keeps the table name explicit.
func (ContactMessage) TableName() string {
	return "contact_messages"
}
