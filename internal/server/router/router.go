package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/server/handlers"
)

// Handlers groups the HTTP adapters mounted by the router.
type Handlers struct {
	Planner   *handlers.PlannerHandler
	Scenarios *handlers.ScenarioHandler
	Reports   *handlers.ReportHandler
	// Webhook receives operator chat commands; nil leaves /webhook unmounted.
	Webhook *handlers.WebhookHandler
	// Metrics serves the Prometheus exposition; nil leaves /metrics unmounted.
	Metrics http.Handler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if h.Metrics != nil {
		r.GET("/metrics", gin.WrapH(h.Metrics))
	}
	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
	}

	api := r.Group("/api/v1")

	api.GET("/draft", h.Planner.GetDraft)
	api.PUT("/draft", h.Planner.PutDraft)
	api.POST("/draft/reset", h.Planner.ResetDraft)
	api.GET("/dashboard", h.Planner.Dashboard)

	api.GET("/scenarios", h.Scenarios.List)
	api.POST("/scenarios", h.Scenarios.Create)
	api.PUT("/scenarios/:id", h.Scenarios.Update)
	api.DELETE("/scenarios/:id", h.Scenarios.Delete)
	api.POST("/scenarios/:id/load", h.Scenarios.Load)
	api.GET("/comparison", h.Scenarios.Comparison)

	api.POST("/report", h.Reports.Generate)
	api.POST("/export", h.Reports.Export)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
