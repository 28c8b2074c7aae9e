package main

import (
	"log"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/config"
	"github.com/metalcycle/internal/db"
	"github.com/metalcycle/internal/router"
	"github.com/metalcycle/internal/service"
	"github.com/robfig/cron/v3"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Printf("sentry init failed: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to ensure admin account: %v", err)
	}

	cr := cron.New()
	analytics := service.NewAnalyticsService(db.DB)
	if _, err := analytics.ScheduleDailyRollup(cr); err != nil {
		log.Fatalf("failed to schedule analytics rollup: %v", err)
	}
	cr.Start()
	defer cr.Stop()

	r := router.SetupRouter(cfg.SessionSecret, cfg.UploadDir, cfg.UploadURLPath)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}
