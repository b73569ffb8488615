package routes

import (
	"fmt"
	"net/http"
	"time"

	"sopwriter/handlers"
	"sopwriter/middleware"
	"sopwriter/services/export"
	"sopwriter/utils"
	"sopwriter/web"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Options carries the per-route middleware settings.
type Options struct {
	RateLimiter  *middleware.RateLimiterStore
	MaxFormBytes int64
	Health       *utils.HealthMonitor
	// TrustedProxies may set X-Forwarded-For. Nil trusts no proxy.
	TrustedProxies []string
}

// RegisterPageRoute serves the HTML form at the site root.
func RegisterPageRoute(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, web.IndexTemplate, gin.H{"Fields": web.FormFields})
	})
}

// RegisterAPIRoutes registers generation, model status and download endpoints.
func RegisterAPIRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) {
	api := r.Group("/api")
	api.Use(middleware.BodyLimit(opts.MaxFormBytes))
	{
		api.GET("/check-model", hb.CheckModelHandler)
		api.GET("/sop/:id", hb.GetArchivedSOPHandler)

		limited := api.Group("")
		limited.Use(middleware.RateLimitMiddleware(opts.RateLimiter))
		limited.POST("/generate", hb.GenerateSOPHandler)
	}

	download := api.Group("/download")
	{
		download.POST("/"+export.FormatTXT, hb.DownloadTXTHandler)
		download.POST("/"+export.FormatDOCX, hb.DownloadDOCXHandler)
		download.POST("/"+export.FormatPDF, hb.DownloadPDFHandler)
	}
}

// RegisterHealthRoute registers a liveness endpoint. With a monitor it also
// reports the last backing-service snapshot; liveness stays 200 either way.
func RegisterHealthRoute(r *gin.Engine, monitor *utils.HealthMonitor) {
	r.GET("/health", func(c *gin.Context) {
		if monitor == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
			return
		}
		c.JSON(http.StatusOK, monitor.Status())
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, opts Options) error {
	if err := r.SetTrustedProxies(opts.TrustedProxies); err != nil {
		return fmt.Errorf("routes: invalid trusted proxies: %w", err)
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	tmpl, err := web.Templates()
	if err != nil {
		return err
	}
	r.SetHTMLTemplate(tmpl)

	RegisterPageRoute(r)
	RegisterAPIRoutes(r, hb, opts)
	RegisterHealthRoute(r, opts.Health)
	return nil
}
