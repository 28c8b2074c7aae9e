package handler

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestAPI(t *testing.T) *API {
	t.Helper()

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(
		&db.User{},
		&db.Post{},
		&db.Category{},
		&db.Tag{},
		&db.SiteSetting{},
		&db.ContentPage{},
		&db.ContactMessage{},
		&db.PageVisit{},
		&db.AnalyticsSample{},
	); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	})

	return NewAPI(gdb, filepath.Join(t.TempDir(), "uploads"), "/static/uploads")
}

// newSessionEngine builds a bare engine with the same session middleware the
// real router installs, so handlers that read the session work under test.
func newSessionEngine() *gin.Engine {
	r := gin.New()
	store := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("metalcycle_session", store))
	return r
}
