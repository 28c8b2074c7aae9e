package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

type sampleRequest struct {
	Date               string   `json:"date"`
	PageViews          uint64   `json:"pageViews"`
	UniqueVisitors     uint64   `json:"uniqueVisitors"`
	BounceRate         *float64 `json:"bounceRate"`
	AvgSessionDuration *int     `json:"avgSessionDuration"`
	Source             string   `json:"source"`
}

// ShowDashboard renders the authenticated landing page with headline stats.
func (a *API) ShowDashboard(c *gin.Context) {
	session := sessions.Default(c)
	fullName, _ := session.Get(sessionNameKey).(string)

	overview, err := a.analytics.DashboardOverview(30)
	if err != nil {
		c.Error(err)
	}

	a.renderHTML(c, http.StatusOK, "admin_dashboard.html", gin.H{
		"title":          "Dashboard",
		"fullName":       fullName,
		"pageViews":      overview.TotalPageViews,
		"uniqueVisitors": overview.TotalUniqueVisitors,
		"postCount":      overview.PostCount,
		"unreadMessages": overview.UnreadMessages,
	})
}

// ShowAnalytics renders the analytics page.
func (a *API) ShowAnalytics(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_analytics.html", gin.H{
		"title": "Analytics",
	})
}

// GetAnalytics returns daily samples for a date range, defaulting to the
// last 30 days.
func (a *API) GetAnalytics(c *gin.Context) {
	to := time.Now()
	from := to.AddDate(0, 0, -30)

	if raw := c.Query("from"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			from = parsed
		}
	}
	if raw := c.Query("to"); raw != "" {
		if parsed, err := time.Parse("2006-01-02", raw); err == nil {
			to = parsed.AddDate(0, 0, 1).Add(-time.Second)
		}
	}

	samples, err := a.analytics.Range(from, to)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load analytics")
		return
	}

	c.JSON(http.StatusOK, gin.H{"samples": samples})
}

// CreateSample appends a manually entered analytics sample.
func (a *API) CreateSample(c *gin.Context) {
	var payload sampleRequest
	if !bindJSON(c, &payload, "invalid sample payload") {
		return
	}

	input := service.SampleInput{
		PageViews:          payload.PageViews,
		UniqueVisitors:     payload.UniqueVisitors,
		BounceRate:         payload.BounceRate,
		AvgSessionDuration: payload.AvgSessionDuration,
		Source:             payload.Source,
	}
	if payload.Date != "" {
		parsed, err := time.Parse("2006-01-02", payload.Date)
		if err != nil {
			respondError(c, http.StatusBadRequest, "date must be formatted YYYY-MM-DD")
			return
		}
		input.Date = parsed
	}

	sample, err := a.analytics.AddSample(input)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not save sample")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"sample": sample})
}
