package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/Skufu/GlucoRisk/internal/accounts"
	"github.com/Skufu/GlucoRisk/internal/session"
)

type Options struct {
	Accounts     accounts.Store
	Sessions     *session.Manager
	StaticRoot   string
	CORSOrigins  []string
	MaxBodyBytes int64
}

type handlers struct {
	accounts accounts.Store
	sessions *session.Manager
}

// NewRouter builds the gin engine serving the assessment API and the static
// front end.
func NewRouter(opts Options) *gin.Engine {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = 1 << 20 // 1MB max body
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	h := &handlers{accounts: opts.Accounts, sessions: opts.Sessions}

	router := gin.New()
	router.Use(
		gin.Logger(),
		gin.Recovery(),
		limitBodySize(opts.MaxBodyBytes),
		cors.New(cors.Config{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Authorization"},
			MaxAge:       12 * time.Hour,
		}),
	)

	if opts.StaticRoot != "" {
		router.Static("/static", opts.StaticRoot)
		router.StaticFile("/", filepath.Join(opts.StaticRoot, "index.html"))
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/readyz", h.readyz)

	api := router.Group("/api")
	api.POST("/assessments/validate", h.validateAssessment)
	api.POST("/assessments/predict", h.predict)
	api.POST("/accounts", h.createAccount)
	api.POST("/sessions", h.signIn)
	api.GET("/me", h.me)

	return router
}

func (h *handlers) readyz(c *gin.Context) {
	if h.accounts == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "db": "disabled"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.accounts.Ping(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "degraded",
			"db":     fmt.Sprintf("unhealthy: %v", err),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"db":     "ok",
	})
}

func limitBodySize(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// DetectStaticRoot looks for index.html in the working directory and up to
// two of its parents.
func DetectStaticRoot() string {
	startDir, err := os.Getwd()
	if err != nil {
		return "."
	}

	candidates := []string{
		startDir,
		filepath.Dir(startDir),
		filepath.Dir(filepath.Dir(startDir)),
	}

	for _, dir := range candidates {
		if fileExists(filepath.Join(dir, "index.html")) {
			return dir
		}
	}

	return startDir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
