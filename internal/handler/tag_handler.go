package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

type tagRequest struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// ShowTagList renders the tag management page.
func (a *API) ShowTagList(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_tags.html", gin.H{
		"title": "Tags",
	})
}

// GetTags lists tags with usage counts.
func (a *API) GetTags(c *gin.Context) {
	tags, err := a.tags.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load tags")
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags})
}

// CreateTag adds a tag.
func (a *API) CreateTag(c *gin.Context) {
	var payload tagRequest
	if !bindJSON(c, &payload, "invalid tag payload") {
		return
	}

	tag, err := a.tags.Create(payload.Name, payload.Slug)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"tag": tag})
}

// UpdateTag renames a tag.
func (a *API) UpdateTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	var payload tagRequest
	if !bindJSON(c, &payload, "invalid tag payload") {
		return
	}

	tag, err := a.tags.Update(id, payload.Name, payload.Slug)
	if err != nil {
		respondTagError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tag": tag})
}

// DeleteTag removes a tag and its joins; posts are untouched.
func (a *API) DeleteTag(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid tag id")
		return
	}

	if err := a.tags.Delete(id); err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			respondError(c, http.StatusNotFound, "tag not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "tag deleted"})
}

func respondTagError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTagExists):
		respondError(c, http.StatusBadRequest, "a tag with this name or slug already exists")
	case errors.Is(err, service.ErrTagNotFound):
		respondError(c, http.StatusNotFound, "tag not found")
	case errors.Is(err, service.ErrTagName), errors.Is(err, service.ErrInvalidSlug):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "could not save tag")
	}
}
