package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoice-desk/internal/config"
	"github.com/sangkips/invoice-desk/internal/presentation/http/handler"
	"github.com/sangkips/invoice-desk/internal/presentation/http/middleware"
	"go.uber.org/zap"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Catalog    *handler.CatalogHandler
	Draft      *handler.DraftHandler
	Submission *handler.SubmissionHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg    *config.Config
	Logger *zap.Logger
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		v1.GET("/catalog", h.Catalog.ListItems)
		v1.GET("/staff", h.Catalog.ListStaff)
		v1.GET("/printer/status", h.Printer.GetStatus)
		v1.POST("/session", h.Draft.StartSession)

		registerDraftRoutes(v1, h, deps)
	}

	return router
}

func registerDraftRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	limiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfigFor(
		deps.Cfg.RateLimit.Requests,
		time.Duration(deps.Cfg.RateLimit.Duration)*time.Second,
	))

	draft := v1.Group("/draft")
	{
		draft.GET("", h.Draft.Get)
		draft.PUT("/header", h.Draft.UpdateHeader)
		draft.PUT("/staff", h.Draft.SelectStaff)
		draft.POST("/items", h.Draft.AddItem)
		draft.PATCH("/items/:id", h.Draft.UpdateItem)
		draft.PUT("/items/:id/selection", h.Draft.SelectItem)
		draft.DELETE("/items/:id", h.Draft.RemoveItem)
		draft.GET("/preview", h.Printer.Preview)
		draft.POST("/submit", limiter.Middleware(), h.Submission.Submit)
	}
}
