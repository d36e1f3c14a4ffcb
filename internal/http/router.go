package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	corsMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}
	corsHeaders = []string{"Content-Type", "Authorization", sessionHeader}
)

// NewRouter configura el router de Gin con middlewares y rutas de la API.
func NewRouter(logger *zap.Logger, h Handlers) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery y CORS.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), corsMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	admin := AdminAuthMiddleware(h.Tokens)

	api.GET("/location", h.Location.Get)

	session := api.Group("/session")
	session.GET("/location", h.Location.GetSaved)
	session.PUT("/location", h.Location.PutSaved)
	session.DELETE("/location", h.Location.DeleteSaved)

	api.GET("/officials", h.Officials.List)
	api.POST("/officials", admin, h.Officials.Create)

	api.GET("/rate", h.Ratings.Stats)
	api.POST("/rate", h.Ratings.Submit)

	api.GET("/staff", h.Staff.List)
	api.POST("/staff", admin, h.Staff.Create)

	api.GET("/og-image", h.Images.OGImage)
	api.GET("/share-card", h.Images.ShareCard)

	api.POST("/admin/login", h.Admin.Login)

	r.NoRoute(func(c *gin.Context) {
		respondError(c, http.StatusNotFound, "not found")
	})

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", clientIP(c)),
		)
	}
}

// corsMiddleware abre la API a cualquier origen y responde los preflight con 204.
func corsMiddleware() gin.HandlerFunc {
	methods := strings.Join(corsMethods, ", ")
	headers := strings.Join(corsHeaders, ", ")
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", methods)
		c.Header("Access-Control-Allow-Headers", headers)
		c.Header("Access-Control-Expose-Headers", sessionHeader+", X-Share-Score, X-Score-Synthetic")
		c.Header("Access-Control-Max-Age", "86400")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
