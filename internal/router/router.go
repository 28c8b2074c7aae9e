package router

import (
	"html/template"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/metalcycle/internal/db"
	"github.com/metalcycle/internal/handler"
)

// SetupRouter configures the Gin engine with all public and admin routes.
func SetupRouter(sessionSecret, uploadDir, uploadURL string) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(sessionSecret))
	// The store's defaults mark the cookie Secure, which browsers drop over
	// plain HTTP. Enable Secure again behind TLS termination.
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	r.Use(sessions.Sessions("metalcycle_session", store))

	r.SetFuncMap(template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
		"formatDate": func(v interface{}) string {
			type dated interface{ Format(string) string }
			if t, ok := v.(dated); ok {
				return t.Format("Jan 2, 2006")
			}
			return ""
		},
	})
	r.LoadHTMLGlob("web/template/*.html")

	r.Static("/static", "./web/static")

	api := handler.NewAPI(db.DB, uploadDir, uploadURL)

	r.GET("/healthz", api.HealthCheck)

	// Public site.
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/services", api.ShowServices)
	r.GET("/contact", api.ShowContactPage)
	r.POST("/contact", api.SubmitContact)
	r.GET("/blog", api.ShowBlogIndex)
	r.GET("/blog/:slug", api.ShowBlogPost)

	// Authentication.
	r.GET("/auth", api.ShowLogin)
	r.POST("/auth/login", api.Login)
	r.POST("/auth/logout", api.Logout)

	// Authenticated dashboard; everything beyond the landing page is
	// admin-only.
	dash := r.Group("/dashboard")
	dash.Use(api.AuthRequired())
	{
		dash.GET("", api.ShowDashboard)

		admin := dash.Group("")
		admin.Use(api.AdminRequired())
		{
			admin.GET("/posts", api.ShowPostList)
			admin.GET("/posts/new", api.ShowPostEdit)
			admin.GET("/posts/:id/edit", api.ShowPostEdit)
			admin.GET("/categories", api.ShowCategoryList)
			admin.GET("/tags", api.ShowTagList)
			admin.GET("/settings", api.ShowSettings)
			admin.GET("/appearance", api.ShowAppearance)
			admin.GET("/analytics", api.ShowAnalytics)
			admin.GET("/messages", api.ShowMessageList)
			admin.GET("/pages/:slug/edit", api.ShowPageEdit)

			adminAPI := admin.Group("/api")
			{
				adminAPI.GET("/posts", api.GetPosts)
				adminAPI.GET("/posts/:id", api.GetPost)
				adminAPI.POST("/posts", api.CreatePost)
				adminAPI.PUT("/posts/:id", api.UpdatePost)
				adminAPI.DELETE("/posts/:id", api.DeletePost)

				adminAPI.GET("/categories", api.GetCategories)
				adminAPI.POST("/categories", api.CreateCategory)
				adminAPI.PUT("/categories/:id", api.UpdateCategory)
				adminAPI.DELETE("/categories/:id", api.DeleteCategory)

				adminAPI.GET("/tags", api.GetTags)
				adminAPI.POST("/tags", api.CreateTag)
				adminAPI.PUT("/tags/:id", api.UpdateTag)
				adminAPI.DELETE("/tags/:id", api.DeleteTag)

				adminAPI.GET("/settings", api.GetSettings)
				adminAPI.PUT("/settings", api.UpdateSettings)
				adminAPI.PUT("/appearance", api.UpdateAppearance)

				adminAPI.GET("/pages/:slug", api.GetPage)
				adminAPI.PUT("/pages/:slug", api.UpdatePage)

				adminAPI.GET("/analytics", api.GetAnalytics)
				adminAPI.POST("/analytics", api.CreateSample)

				adminAPI.GET("/messages", api.GetMessages)
				adminAPI.PUT("/messages/:id/read", api.MarkMessageRead)
				adminAPI.DELETE("/messages/:id", api.DeleteMessage)

				adminAPI.POST("/uploads/blog", api.UploadBlogImage)
				adminAPI.POST("/uploads/site", api.UploadSiteAsset)
			}
		}
	}

	return r
}
