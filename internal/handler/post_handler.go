package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/service"
)

type postRequest struct {
	Title          string `json:"title"`
	Slug           string `json:"slug"`
	Summary        string `json:"summary"`
	Content        string `json:"content"`
	FeaturedImage  string `json:"featuredImage"`
	Status         string `json:"status"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
	SEOKeywords    string `json:"seoKeywords"`
	CategoryID     *uint  `json:"categoryId"`
	TagIDs         []uint `json:"tagIds"`
}

func (r postRequest) toInput(userID uint) service.PostInput {
	return service.PostInput{
		Title:          r.Title,
		Slug:           r.Slug,
		Summary:        r.Summary,
		Content:        r.Content,
		FeaturedImage:  r.FeaturedImage,
		Status:         r.Status,
		SEOTitle:       r.SEOTitle,
		SEODescription: r.SEODescription,
		SEOKeywords:    r.SEOKeywords,
		CategoryID:     r.CategoryID,
		TagIDs:         r.TagIDs,
		UserID:         userID,
	}
}

// ShowPostList renders the post management page.
func (a *API) ShowPostList(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "admin_posts.html", gin.H{
		"title": "Posts",
	})
}

// ShowPostEdit renders the editor for a new or existing post.
func (a *API) ShowPostEdit(c *gin.Context) {
	data := gin.H{"title": "New post"}

	if raw := c.Param("id"); raw != "" {
		id, err := parseUintParam(c, "id")
		if err != nil {
			c.Redirect(http.StatusFound, "/dashboard/posts")
			c.Abort()
			return
		}
		post, err := a.posts.Get(id)
		if err != nil {
			c.Redirect(http.StatusFound, "/dashboard/posts")
			c.Abort()
			return
		}
		data["title"] = "Edit post"
		data["post"] = post
	}

	a.renderHTML(c, http.StatusOK, "admin_post_edit.html", data)
}

// GetPosts lists posts with paging, status and search filters.
func (a *API) GetPosts(c *gin.Context) {
	filter := service.PostFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		Status:       strings.TrimSpace(c.Query("status")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
		TagSlug:      strings.TrimSpace(c.Query("tag")),
		Page:         parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:      parsePositiveInt(c.DefaultQuery("perPage", "10"), 10),
	}

	result, err := a.posts.List(filter)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "could not load posts")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":          result.Posts,
		"total":          result.Total,
		"totalPages":     result.TotalPages,
		"page":           result.Page,
		"perPage":        result.PerPage,
		"publishedCount": result.PublishedCount,
		"draftCount":     result.DraftCount,
		"archivedCount":  result.ArchivedCount,
	})
}

// GetPost returns a single post for the editor.
func (a *API) GetPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		respondError(c, http.StatusNotFound, "post not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// CreatePost stores a new post with its tag set.
func (a *API) CreatePost(c *gin.Context) {
	var payload postRequest
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	post, err := a.posts.Create(payload.toInput(a.currentUserID(c)))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

// UpdatePost applies edits to an existing post.
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	var payload postRequest
	if !bindJSON(c, &payload, "invalid post payload") {
		return
	}

	post, err := a.posts.Update(id, payload.toInput(a.currentUserID(c)))
	if err != nil {
		respondPostError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePost removes a post for good.
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid post id")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "post not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "could not delete post")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

func respondPostError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSlugTaken):
		respondError(c, http.StatusConflict, "a post with this slug already exists")
	case errors.Is(err, service.ErrPostNotFound):
		respondError(c, http.StatusNotFound, "post not found")
	case errors.Is(err, service.ErrTitleRequired),
		errors.Is(err, service.ErrContentRequired),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrTagNotFound):
		respondError(c, http.StatusBadRequest, err.Error())
	default:
		respondError(c, http.StatusInternalServerError, "could not save post")
	}
}
