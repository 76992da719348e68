package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "copilot/docs"
	"copilot/internal/handler"
	"copilot/internal/middleware"
	"copilot/internal/service"
)

// Handlers groups the HTTP handlers mounted by Setup.
type Handlers struct {
	Health     *handler.HealthHandler
	Session    *handler.SessionHandler
	Catalog    *handler.CatalogHandler
	Compliance *handler.ComplianceHandler
	TestCase   *handler.TestCaseHandler
	Synthetic  *handler.SyntheticHandler
	Chat       *handler.ChatHandler
	Assist     *handler.AssistHandler
}

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	allowedOrigins []string,
	sessions service.SessionService,
	h Handlers,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(allowedOrigins))

	// Health checks
	r.GET("/healthz", h.Health.Liveness)
	r.GET("/readyz", h.Health.Readiness)

	// API documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := r.Group("/api/v1")

	// Stateless routes
	v1.POST("/sessions", h.Session.Create)
	v1.GET("/standards", h.Catalog.Standards)
	v1.GET("/templates", h.Catalog.Templates)
	v1.POST("/pii/inspect", h.Assist.InspectPII)
	v1.POST("/speech/transcribe", h.Assist.Transcribe)

	// Session-scoped routes
	scoped := v1.Group("")
	scoped.Use(middleware.Session(sessions))

	scoped.DELETE("/sessions/current", h.Session.End)

	compliance := scoped.Group("/compliance")
	compliance.POST("/scan", h.Compliance.Scan)
	compliance.GET("/export", h.Compliance.Export)

	testCases := scoped.Group("/testcases")
	testCases.POST("/generate", h.TestCase.Generate)
	testCases.GET("/export", h.TestCase.Export)
	testCases.POST("/jira", h.TestCase.ExportToTracker)

	synthetic := scoped.Group("/synthetic")
	synthetic.POST("/generate", h.Synthetic.Generate)
	synthetic.GET("/export", h.Synthetic.Export)

	scoped.GET("/chat", h.Chat.History)
	scoped.POST("/chat", h.Chat.Ask)

	return r
}
