package service

import (
	"errors"
	"regexp"
	"strings"

	"github.com/metalcycle/internal/db"
	"gorm.io/gorm"
)

// Defaults used until the settings row is first saved.
const (
	DefaultCompanyName    = "MetalCycle"
	DefaultPrimaryColor   = "#16a34a"
	DefaultSecondaryColor = "#0f172a"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ErrInvalidColor rejects appearance values that are not hex colors.
var ErrInvalidColor = errors.New("color must be a hex value like #16a34a")

// SettingsInput carries the editable site settings fields.
type SettingsInput struct {
	CompanyName    string
	Description    string
	PrimaryColor   string
	SecondaryColor string
	LogoURL        string
	ContactEmail   string
	ContactPhone   string
	Address        string
}

// SettingsService reads and updates the singleton site settings row.
type SettingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a SettingsService instance.
func NewSettingsService(gdb *gorm.DB) *SettingsService {
	return &SettingsService{db: gdb}
}

// Get returns the settings row, or defaults when nothing was saved yet.
func (s *SettingsService) Get() (db.SiteSetting, error) {
	var setting db.SiteSetting
	if err := s.db.First(&setting).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return defaultSettings(), nil
		}
		return db.SiteSetting{}, err
	}
	applyDefaults(&setting)
	return setting, nil
}

// Update writes the settings row in place, creating it on first save.
func (s *SettingsService) Update(input SettingsInput) (db.SiteSetting, error) {
	sanitized := db.SiteSetting{
		CompanyName:    strings.TrimSpace(input.CompanyName),
		Description:    strings.TrimSpace(input.Description),
		PrimaryColor:   strings.TrimSpace(input.PrimaryColor),
		SecondaryColor: strings.TrimSpace(input.SecondaryColor),
		LogoURL:        strings.TrimSpace(input.LogoURL),
		ContactEmail:   strings.TrimSpace(input.ContactEmail),
		ContactPhone:   strings.TrimSpace(input.ContactPhone),
		Address:        strings.TrimSpace(input.Address),
	}

	for _, color := range []string{sanitized.PrimaryColor, sanitized.SecondaryColor} {
		if color != "" && !hexColorPattern.MatchString(color) {
			return db.SiteSetting{}, ErrInvalidColor
		}
	}

	applyDefaults(&sanitized)

	var setting db.SiteSetting
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&setting).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				setting = sanitized
				return tx.Create(&setting).Error
			}
			return err
		}

		setting.CompanyName = sanitized.CompanyName
		setting.Description = sanitized.Description
		setting.PrimaryColor = sanitized.PrimaryColor
		setting.SecondaryColor = sanitized.SecondaryColor
		setting.LogoURL = sanitized.LogoURL
		setting.ContactEmail = sanitized.ContactEmail
		setting.ContactPhone = sanitized.ContactPhone
		setting.Address = sanitized.Address
		return tx.Save(&setting).Error
	})
	if err != nil {
		return db.SiteSetting{}, err
	}

	return setting, nil
}

// UpdateAppearance changes only the brand colors and logo.
func (s *SettingsService) UpdateAppearance(primaryColor, secondaryColor, logoURL string) (db.SiteSetting, error) {
	current, err := s.Get()
	if err != nil {
		return db.SiteSetting{}, err
	}

	return s.Update(SettingsInput{
		CompanyName:    current.CompanyName,
		Description:    current.Description,
		PrimaryColor:   primaryColor,
		SecondaryColor: secondaryColor,
		LogoURL:        strings.TrimSpace(logoURL),
		ContactEmail:   current.ContactEmail,
		ContactPhone:   current.ContactPhone,
		Address:        current.Address,
	})
}

func defaultSettings() db.SiteSetting {
	return db.SiteSetting{
		CompanyName:    DefaultCompanyName,
		PrimaryColor:   DefaultPrimaryColor,
		SecondaryColor: DefaultSecondaryColor,
	}
}

func applyDefaults(setting *db.SiteSetting) {
	if setting.CompanyName == "" {
		setting.CompanyName = DefaultCompanyName
	}
	if setting.PrimaryColor == "" {
		setting.PrimaryColor = DefaultPrimaryColor
	}
	if setting.SecondaryColor == "" {
		setting.SecondaryColor = DefaultSecondaryColor
	}
}
