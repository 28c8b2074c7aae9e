package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/db"
	"github.com/metalcycle/internal/service"
)

type settingsRequest struct {
	CompanyName    string `json:"companyName"`
	Description    string `json:"description"`
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
	ContactEmail   string `json:"contactEmail"`
	ContactPhone   string `json:"contactPhone"`
	Address        string `json:"address"`
}

type appearanceRequest struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	LogoURL        string `json:"logoUrl"`
}

// HealthCheck reports database reachability for monitoring.
func (a *API) HealthCheck(c *gin.Context) {
	sqlDB, err := a.db.DB()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"status":  "error",
			"message": "database handle unavailable",
		})
		return
	}

	if err := sqlDB.PingContext(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "error",
			"message": "database unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
}

// ShowSettings renders the site settings page.
func (a *API) ShowSettings(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_settings.html", gin.H{
		"title": "Site settings",
	})
}

// ShowAppearance renders the appearance page.
func (a *API) ShowAppearance(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_appearance.html", gin.H{
		"title": "Appearance",
	})
}

// GetSettings returns the current site settings.
func (a *API) GetSettings(c *gin.Context) {
	setting, err := a.settings.Get()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load settings")
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": settingsPayload(setting)})
}

// UpdateSettings saves company info and contact details.
func (a *API) UpdateSettings(c *gin.Context) {
	var payload settingsRequest
	if !bindJSON(c, &payload, "invalid settings payload") {
		return
	}

	setting, err := a.settings.Update(service.SettingsInput{
		CompanyName:    payload.CompanyName,
		Description:    payload.Description,
		PrimaryColor:   payload.PrimaryColor,
		SecondaryColor: payload.SecondaryColor,
		LogoURL:        payload.LogoURL,
		ContactEmail:   payload.ContactEmail,
		ContactPhone:   payload.ContactPhone,
		Address:        payload.Address,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidColor) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "could not save settings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "settings saved",
		"settings": settingsPayload(setting),
	})
}

// UpdateAppearance saves only the brand colors and logo.
func (a *API) UpdateAppearance(c *gin.Context) {
	var payload appearanceRequest
	if !bindJSON(c, &payload, "invalid appearance payload") {
		return
	}

	setting, err := a.settings.UpdateAppearance(payload.PrimaryColor, payload.SecondaryColor, payload.LogoURL)
	if err != nil {
		if errors.Is(err, service.ErrInvalidColor) {
			respondError(c, http.StatusBadRequest, err.Error())
			return
		}
		respondError(c, http.StatusInternalServerError, "could not save appearance")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "appearance saved",
		"settings": settingsPayload(setting),
	})
}

func settingsPayload(setting db.SiteSetting) gin.H {
	return gin.H{
		"companyName":    setting.CompanyName,
		"description":    setting.Description,
		"primaryColor":   setting.PrimaryColor,
		"secondaryColor": setting.SecondaryColor,
		"logoUrl":        setting.LogoURL,
		"contactEmail":   setting.ContactEmail,
		"contactPhone":   setting.ContactPhone,
		"address":        setting.Address,
	}
}
