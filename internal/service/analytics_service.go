package service

import (
	"errors"
	"log"
	"time"

	"github.com/metalcycle/internal/db"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// ErrInvalidVisit rejects visit records missing a path or visitor id.
var ErrInvalidVisit = errors.New("invalid visit record")

// AnalyticsService records raw page visits and aggregates them into daily
// samples shown on the dashboard.
type AnalyticsService struct {
	db *gorm.DB
}

// SampleInput carries a manually entered analytics sample.
type SampleInput struct {
	Date               time.Time
	PageViews          uint64
	UniqueVisitors     uint64
	BounceRate         *float64
	AvgSessionDuration *int
	Source             string
}

// Overview aggregates the dashboard headline numbers.
type Overview struct {
	TotalPageViews      uint64
	TotalUniqueVisitors uint64
	PostCount           int64
	UnreadMessages      int64
	Samples             []db.AnalyticsSample
}

// NewAnalyticsService creates an AnalyticsService instance.
func NewAnalyticsService(gdb *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: gdb}
}

// RecordVisit appends one raw page view. Failures are the caller's to log;
// recording never blocks page rendering.
func (s *AnalyticsService) RecordVisit(path, visitorID string, now time.Time) error {
	if path == "" || visitorID == "" {
		return ErrInvalidVisit
	}

	return s.db.Create(&db.PageVisit{
		Path:      path,
		VisitorID: visitorID,
		ViewedAt:  now,
	}).Error
}

// RollupDay aggregates one day's raw visits into an analytics sample. Samples
// are append-only; running a rollup twice appends a second row for the day.
func (s *AnalyticsService) RollupDay(day time.Time) (*db.AnalyticsSample, error) {
	dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var pageViews int64
	if err := s.db.Model(&db.PageVisit{}).
		Where("viewed_at >= ? AND viewed_at < ?", dayStart, dayEnd).
		Count(&pageViews).Error; err != nil {
		return nil, err
	}

	var uniqueVisitors int64
	if err := s.db.Model(&db.PageVisit{}).
		Where("viewed_at >= ? AND viewed_at < ?", dayStart, dayEnd).
		Distinct("visitor_id").
		Count(&uniqueVisitors).Error; err != nil {
		return nil, err
	}

	sample := db.AnalyticsSample{
		Date:           dayStart,
		PageViews:      uint64(pageViews),
		UniqueVisitors: uint64(uniqueVisitors),
		Source:         "site",
	}
	if err := s.db.Create(&sample).Error; err != nil {
		return nil, err
	}

	return &sample, nil
}

// AddSample appends a manually entered sample.
func (s *AnalyticsService) AddSample(input SampleInput) (*db.AnalyticsSample, error) {
	date := input.Date
	if date.IsZero() {
		date = time.Now()
	}
	date = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	source := input.Source
	if source == "" {
		source = "manual"
	}

	sample := db.AnalyticsSample{
		Date:               date,
		PageViews:          input.PageViews,
		UniqueVisitors:     input.UniqueVisitors,
		BounceRate:         input.BounceRate,
		AvgSessionDuration: input.AvgSessionDuration,
		Source:             source,
	}
	if err := s.db.Create(&sample).Error; err != nil {
		return nil, err
	}

	return &sample, nil
}

// Range returns samples between from and to inclusive, oldest first.
func (s *AnalyticsService) Range(from, to time.Time) ([]db.AnalyticsSample, error) {
	var samples []db.AnalyticsSample
	if err := s.db.
		Where("date >= ? AND date <= ?", from, to).
		Order("date asc, id asc").
		Find(&samples).Error; err != nil {
		return nil, err
	}
	return samples, nil
}

// DashboardOverview sums the last N days of samples plus content counters.
func (s *AnalyticsService) DashboardOverview(days int) (Overview, error) {
	if days <= 0 {
		days = 30
	}

	var overview Overview

	from := time.Now().AddDate(0, 0, -days)
	samples, err := s.Range(from, time.Now())
	if err != nil {
		return overview, err
	}
	overview.Samples = samples

	for _, sample := range samples {
		overview.TotalPageViews += sample.PageViews
		overview.TotalUniqueVisitors += sample.UniqueVisitors
	}

	if err := s.db.Model(&db.Post{}).Count(&overview.PostCount).Error; err != nil {
		return overview, err
	}
	if err := s.db.Model(&db.ContactMessage{}).
		Where("read = ?", false).
		Count(&overview.UnreadMessages).Error; err != nil {
		return overview, err
	}

	return overview, nil
}

// ScheduleDailyRollup registers a cron job that aggregates the previous
// day's visits shortly after midnight.
func (s *AnalyticsService) ScheduleDailyRollup(cr *cron.Cron) (cron.EntryID, error) {
	return cr.AddFunc("10 0 * * *", func() {
		day := time.Now().AddDate(0, 0, -1)
		if _, err := s.RollupDay(day); err != nil {
			log.Printf("analytics rollup for %s failed: %v", day.Format("2006-01-02"), err)
		}
	})
}
