package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

type pageRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// ShowPageEdit renders the markdown editor for an editable content page.
func (a *API) ShowPageEdit(c *gin.Context) {
	slug := c.Param("slug")

	data := gin.H{"title": "Edit page", "slug": slug}
	if page, err := a.pages.GetBySlug(slug); err == nil {
		data["page"] = page
	}

	a.renderHTML(c, http.StatusOK, "admin_page_edit.html", data)
}

// GetPage returns an editable page's raw markdown.
func (a *API) GetPage(c *gin.Context) {
	page, err := a.pages.GetBySlug(c.Param("slug"))
	if err != nil {
		if errors.Is(err, service.ErrPageNotFound) {
			respondError(c, http.StatusNotFound, "page not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not load page")
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}

// UpdatePage saves an editable page's markdown content.
func (a *API) UpdatePage(c *gin.Context) {
	var payload pageRequest
	if !bindJSON(c, &payload, "invalid page payload") {
		return
	}

	page, err := a.pages.Save(c.Param("slug"), payload.Title, payload.Content)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPageNotFound):
			respondError(c, http.StatusNotFound, "page not found")
		case errors.Is(err, service.ErrPageContentMissing):
			respondError(c, http.StatusBadRequest, err.Error())
		default:
			respondError(c, http.StatusInternalServerError, "could not save page")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"page": page})
}
