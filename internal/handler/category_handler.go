package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

type categoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// ShowCategoryList renders the category management page.
func (a *API) ShowCategoryList(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_categories.html", gin.H{
		"title": "Categories",
	})
}

// GetCategories lists categories with usage counts.
func (a *API) GetCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load categories")
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// CreateCategory adds a category.
func (a *API) CreateCategory(c *gin.Context) {
	var payload categoryRequest
	if !bindJSON(c, &payload, "invalid category payload") {
		return
	}

	category, err := a.categories.Create(payload.Name, payload.Slug, payload.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": category})
}

// UpdateCategory renames a category.
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	var payload categoryRequest
	if !bindJSON(c, &payload, "invalid category payload") {
		return
	}

	category, err := a.categories.Update(id, payload.Name, payload.Slug, payload.Description)
	if err != nil {
		respondCategoryError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}

// DeleteCategory removes a category; its posts stay, uncategorized.
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "category not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete category")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

func respondCategoryError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrCategoryExists):
		respondError(c, http.StatusBadRequest, "a category with this name or slug already exists")
	case errors.Is(err, service.ErrCategoryNotFound):
		respondError(c, http.StatusNotFound, "category not found")
	case errors.Is(err, service.ErrCategoryName), errors.Is(err, service.ErrInvalidSlug):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "could not save category")
	}
}
