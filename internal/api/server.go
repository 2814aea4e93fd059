package api

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/ukdirectory/internal/logger"
)

var setModeOnce sync.Once

// NewRouter assembles the gin engine with logging, panic recovery, and CORS
// middleware around the API routes.
func NewRouter(h *Handler, log logger.Interface) *gin.Engine {
	if log == nil {
		log = logger.NewNop()
	}

	setModeOnce.Do(func() { gin.SetMode(gin.ReleaseMode) })

	router := gin.New()
	router.Use(requestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("handler panic", "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			ErrorResponse{Error: fmt.Sprint(recovered)})
	}))
	router.Use(corsMiddleware())

	router.GET("/health", h.Health)
	router.POST("/api/search", h.Search)

	return router
}

// requestLogger logs one line per request after completion.
func requestLogger(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
}

// corsMiddleware allows browser clients on any origin; the API is read-only
// and unauthenticated.
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
