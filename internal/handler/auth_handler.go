package handler

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/db"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionUserIDKey = "user_id"
	sessionRoleKey   = "role"
	sessionNameKey   = "full_name"
)

// ShowLogin renders the login page, keeping the requested return path.
func (a *API) ShowLogin(c *gin.Context) {
	a.renderHTML(c, http.StatusOK, "auth.html", gin.H{
		"title": "Sign in",
		"next":  safeReturnPath(c.Query("next")),
	})
}

// Login authenticates against the users table and starts a cookie session.
// On success the user returns to the originally requested path.
func (a *API) Login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	password := c.PostForm("password")
	next := safeReturnPath(c.PostForm("next"))

	var user db.User
	if err := a.db.Where("email = ?", email).First(&user).Error; err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "auth.html", gin.H{
			"title": "Sign in",
			"error": "invalid email or password",
			"next":  next,
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		a.renderHTML(c, http.StatusUnauthorized, "auth.html", gin.H{
			"title": "Sign in",
			"error": "invalid email or password",
			"next":  next,
		})
		return
	}

	session := sessions.Default(c)
	session.Set(sessionUserIDKey, user.ID)
	session.Set(sessionRoleKey, user.Role)
	session.Set(sessionNameKey, user.FullName)
	if err := session.Save(); err != nil {
		a.renderHTML(c, http.StatusInternalServerError, "auth.html", gin.H{
			"title": "Sign in",
			"error": "could not save session",
			"next":  next,
		})
		return
	}

	if next == "" {
		next = "/dashboard"
	}
	c.Redirect(http.StatusFound, next)
}

// Logout clears the session. Clearing is best-effort: local state goes away
// even when persisting the cleared session fails.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.Redirect(http.StatusFound, "/")
}

// AuthRequired redirects unauthenticated requests to the login page with the
// original path preserved for the post-login return.
func (a *API) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get(sessionUserIDKey) == nil {
			target := "/auth?next=" + url.QueryEscape(c.Request.URL.RequestURI())
			c.Redirect(http.StatusFound, target)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminRequired sends authenticated non-admins to the dashboard landing page
// instead of the login screen.
func (a *API) AdminRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		role, _ := session.Get(sessionRoleKey).(string)
		if role != db.RoleAdmin {
			c.Redirect(http.StatusFound, "/dashboard")
			c.Abort()
			return
		}
		c.Next()
	}
}

func (a *API) currentUserID(c *gin.Context) uint {
	session := sessions.Default(c)
	if id, ok := session.Get(sessionUserIDKey).(uint); ok {
		return id
	}
	return 0
}

// safeReturnPath only allows same-site absolute paths, never full URLs.
func safeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return ""
	}
	return raw
}
