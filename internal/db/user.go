package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RoleAdmin marks accounts allowed into the management area.
const RoleAdmin = "admin"

// User combines the login identity with its public profile.
type User struct {
	gorm.Model
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FullName  string `gorm:"size:120"`
	Role      string `gorm:"size:20;default:user"`
	AvatarURL string `gorm:"size:255"`
}

// IsAdmin reports whether the user may access admin-only routes.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// EnsureAdmin creates a bootstrap admin account when both credentials are
// provided and no account exists for the email yet.
func EnsureAdmin(email, password string) error {
	trimmedEmail := strings.TrimSpace(email)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedEmail == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing User
	if err := DB.Where("email = ?", trimmedEmail).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		return DB.Create(&User{
			Email:    trimmedEmail,
			Password: string(hashed),
			FullName: "Administrator",
			Role:     RoleAdmin,
		}).Error
	}

	return nil
}
