package db

import "time"

// PageVisit records a single public page view. Rows feed the daily rollup
// into analytics_samples.
type PageVisit struct {
	ID        uint      `gorm:"primaryKey"`
	Path      string    `gorm:"size:255;index"`
	VisitorID string    `gorm:"size:64;index"`
	ViewedAt  time.Time `gorm:"index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName names the raw visit table.
func (PageVisit) TableName() string {
	return "page_visits"
}

// AnalyticsSample is an append-only daily aggregate. Nominally one row per
// day, but no uniqueness is enforced: manual samples may be appended too.
type AnalyticsSample struct {
	ID                 uint      `gorm:"primaryKey"`
	Date               time.Time `gorm:"index"`
	PageViews          uint64    `gorm:"default:0"`
	UniqueVisitors     uint64    `gorm:"default:0"`
	BounceRate         *float64
	AvgSessionDuration *int
	Source             string `gorm:"size:50"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName names the aggregate table.
func (AnalyticsSample) TableName() string {
	return "analytics_samples"
}
