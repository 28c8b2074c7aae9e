package handler

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	posts      *service.PostService
	categories *service.CategoryService
	tags       *service.TagService
	pages      *service.PageService
	settings   *service.SettingsService
	analytics  *service.AnalyticsService
	contacts   *service.ContactService
	uploadDir  string
	uploadURL  string
}

const siteSettingsContextKey = "__site_settings"

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, uploadDir, uploadURL string) *API {
	return &API{
		db:         gdb,
		posts:      service.NewPostService(gdb),
		categories: service.NewCategoryService(gdb),
		tags:       service.NewTagService(gdb),
		pages:      service.NewPageService(gdb),
		settings:   service.NewSettingsService(gdb),
		analytics:  service.NewAnalyticsService(gdb),
		contacts:   service.NewContactService(gdb),
		uploadDir:  uploadDir,
		uploadURL:  strings.TrimRight(uploadURL, "/"),
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}

func (a *API) siteSettings(c *gin.Context) gin.H {
	if cached, exists := c.Get(siteSettingsContextKey); exists {
		if view, ok := cached.(gin.H); ok {
			return view
		}
	}

	setting, err := a.settings.Get()
	if err != nil {
		c.Error(err)
	}

	view := gin.H{
		"companyName":    setting.CompanyName,
		"description":    setting.Description,
		"primaryColor":   setting.PrimaryColor,
		"secondaryColor": setting.SecondaryColor,
		"logoUrl":        setting.LogoURL,
		"contactEmail":   setting.ContactEmail,
		"contactPhone":   setting.ContactPhone,
		"address":        setting.Address,
	}

	c.Set(siteSettingsContextKey, view)
	return view
}

// renderHTML attaches the site settings (company info plus the two brand
// colors rendered as CSS variables) to every template payload.
func (a *API) renderHTML(c *gin.Context, status int, template string, data gin.H) {
	payload := gin.H{}
	for key, value := range data {
		payload[key] = value
	}

	if _, exists := payload["site"]; !exists {
		payload["site"] = a.siteSettings(c)
	}

	c.HTML(status, template, payload)
}
