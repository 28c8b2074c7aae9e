package service

import (
	"errors"
	"strings"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

var (
	ErrMessageNotFound = errors.New("message not found")
	ErrMessageInvalid  = errors.New("name, email and message are required")
)

// ContactInput carries a public contact form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Subject string
	Message string
}

// ContactService stores and manages contact form submissions.
type ContactService struct {
	db *gorm.DB
}

// NewContactService creates a ContactService instance.
func NewContactService(gdb *gorm.DB) *ContactService {
	return &ContactService{db: gdb}
}

// Submit validates and stores a contact form submission.
func (s *ContactService) Submit(input ContactInput) (*db.ContactMessage, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(input.Email)
	body := strings.TrimSpace(input.Message)

	if name == "" || body == "" || !strings.Contains(email, "@") {
		return nil, ErrMessageInvalid
	}

	message := db.ContactMessage{
		Name:    name,
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Subject: strings.TrimSpace(input.Subject),
		Message: body,
	}
	if err := s.db.Create(&message).Error; err != nil {
		return nil, err
	}

	return &message, nil
}

// List returns messages newest first, optionally unread only.
func (s *ContactService) List(unreadOnly bool) ([]db.ContactMessage, error) {
	query := s.db.Order("created_at desc")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var messages []db.ContactMessage
	if err := query.Find(&messages).Error; err != nil {
		return nil, err
	}
	return messages, nil
}

// MarkRead flags a message as handled.
func (s *ContactService) MarkRead(id uint) error {
	result := s.db.Model(&db.ContactMessage{}).Where("id = ?", id).Update("read", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}

// Delete removes a message for good.
func (s *ContactService) Delete(id uint) error {
	result := s.db.Unscoped().Delete(&db.ContactMessage{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}
	return nil
}
