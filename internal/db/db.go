package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB is the shared database handle for the application.
var DB *gorm.DB

// Init opens the SQLite database and runs auto migrations.
// An empty databasePath falls back to metalcycle.db.
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "metalcycle.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return err
	}

	if err = DB.AutoMigrate(
		&User{},
		&Post{},
		&Category{},
		&Tag{},
		&SiteSetting{},
		&ContentPage{},
		&ContactMessage{},
		&PageVisit{},
		&AnalyticsSample{},
	); err != nil {
		return err
	}

	// Older rows may predate the status column default.
	if err := DB.Model(&Post{}).
		Where("status = '' OR status IS NULL").
		Update("status", PostStatusDraft).Error; err != nil {
		return err
	}

	return nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
