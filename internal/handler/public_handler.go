package handler

import (
	"bytes"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/metalcycle/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

const (
	visitorCookieName   = "mc_visitor_id"
	visitorCookieMaxAge = 365 * 24 * 60 * 60
)

// ShowHome renders the public home page with recent published posts.
func (a *API) ShowHome(c *gin.Context) {
	a.trackVisit(c)

	posts, err := a.posts.Recent(3)
	if err != nil {
		posts = nil
	}

	a.renderHTML(c, http.StatusOK, "home.html", gin.H{
		"title": "Home",
		"posts": posts,
		"year":  time.Now().Year(),
	})
}

// ShowAbout renders the editable about page.
func (a *API) ShowAbout(c *gin.Context) {
	a.showContentPage(c, "about", "About Us", "about.html")
}

// ShowServices renders the editable services page.
func (a *API) ShowServices(c *gin.Context) {
	a.showContentPage(c, "services", "Our Services", "services.html")
}

// ShowContactPage renders the contact form.
func (a *API) ShowContactPage(c *gin.Context) {
	a.trackVisit(c)

	a.renderHTML(c, http.StatusOK, "contact.html", gin.H{
		"title": "Contact",
		"year":  time.Now().Year(),
	})
}

// ShowBlogIndex lists published posts with pagination, search and filters.
func (a *API) ShowBlogIndex(c *gin.Context) {
	a.trackVisit(c)

	filter := service.PostFilter{
		Search:       strings.TrimSpace(c.Query("search")),
		CategorySlug: strings.TrimSpace(c.Query("category")),
		TagSlug:      strings.TrimSpace(c.Query("tag")),
		Page:         parsePositiveInt(c.DefaultQuery("page", "1"), 1),
		PerPage:      9,
	}

	result, err := a.posts.ListPublished(filter)
	if err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "blog.html", gin.H{
			"title": "Blog",
			"error": "could not load posts",
			"year":  time.Now().Year(),
		})
		return
	}

	categories, catErr := a.categories.List()
	if catErr != nil {
		categories = nil
	}

	a.renderHTML(c, http.StatusOK, "blog.html", gin.H{
		"title":      "Blog",
		"posts":      result.Posts,
		"total":      result.Total,
		"totalPages": result.TotalPages,
		"page":       result.Page,
		"search":     filter.Search,
		"categories": categories,
		"year":       time.Now().Year(),
	})
}

// ShowBlogPost renders a published post by slug. The stored HTML passes
// through the sanitizer before it reaches the template.
func (a *API) ShowBlogPost(c *gin.Context) {
	post, err := a.posts.GetPublishedBySlug(c.Param("slug"))
	if err != nil {
		c.AbortWithStatus(http.StatusNotFound)
		return
	}

	a.trackVisit(c)

	safeContent := template.HTML(sanitizer.Sanitize(post.Content))

	seoTitle := post.SEOTitle
	if seoTitle == "" {
		seoTitle = post.Title
	}
	seoDescription := post.SEODescription
	if seoDescription == "" {
		seoDescription = post.Summary
	}

	a.renderHTML(c, http.StatusOK, "blog_post.html", gin.H{
		"title":          seoTitle,
		"seoDescription": seoDescription,
		"seoKeywords":    post.SEOKeywords,
		"post":           post,
		"content":        safeContent,
		"year":           time.Now().Year(),
	})
}

func (a *API) showContentPage(c *gin.Context, slug, fallbackTitle, templateName string) {
	a.trackVisit(c)

	page, err := a.pages.GetBySlug(slug)
	if err != nil {
		a.renderHTML(c, http.StatusOK, templateName, gin.H{
			"title":   fallbackTitle,
			"content": template.HTML(""),
			"year":    time.Now().Year(),
		})
		return
	}

	htmlContent, err := renderMarkdown(page.Content)
	if err != nil {
		htmlContent = template.HTML("")
	}

	a.renderHTML(c, http.StatusOK, templateName, gin.H{
		"title":   page.Title,
		"page":    page,
		"content": htmlContent,
		"year":    time.Now().Year(),
	})
}

// trackVisit appends a raw page view keyed by the visitor cookie. Failures
// never interrupt rendering.
func (a *API) trackVisit(c *gin.Context) {
	if a.analytics == nil {
		return
	}
	visitorID := a.ensureVisitorID(c)
	if err := a.analytics.RecordVisit(c.Request.URL.Path, visitorID, time.Now().UTC()); err != nil {
		c.Error(err)
	}
}

func (a *API) ensureVisitorID(c *gin.Context) string {
	if id, err := c.Cookie(visitorCookieName); err == nil && strings.TrimSpace(id) != "" {
		return id
	}

	visitorID := uuid.NewString()
	secure := c.Request.TLS != nil

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     visitorCookieName,
		Value:    visitorID,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		MaxAge:   visitorCookieMaxAge,
		Expires:  time.Now().Add(365 * 24 * time.Hour),
		SameSite: http.SameSiteLaxMode,
	})

	return visitorID
}

func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}
