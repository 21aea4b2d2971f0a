package api

import (
	"context"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	swagger "github.com/go-swagno/swagno-fiber/swagger"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/api/docs"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/api/handler"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/api/middleware"
	"github.com/saturnino-fabrica-de-software/moodmeter/internal/audit"
)

type Dependencies struct {
	Analysis handler.AnalysisService
	Audit    audit.Logger
	Provider string
}

// OpsDependencies feed the operations listener
type OpsDependencies struct {
	Gatherer    prometheus.Gatherer
	Version     string
	ReadyChecks map[string]handler.ReadyCheck
}

type Router struct {
	app    *fiber.App
	logger *slog.Logger
	deps   *Dependencies
}

func NewRouter(logger *slog.Logger, deps *Dependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(logger),
		AppName:               "MoodMeter API",
		DisableStartupMessage: true,
	})

	return &Router{
		app:    app,
		logger: logger,
		deps:   deps,
	}
}

func (r *Router) Setup() {
	// Global middlewares
	r.app.Use(requestid.New())
	r.app.Use(middleware.Recover(r.logger))
	r.app.Use(middleware.Logger(r.logger))
	r.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "POST,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept",
	}))

	if r.deps != nil && r.deps.Analysis != nil {
		analyzeHandler := handler.NewAnalyzeHandler(r.deps.Analysis, r.deps.Audit, r.deps.Provider, r.logger)
		r.app.Post("/analyze", analyzeHandler.Analyze)
	}
}

func (r *Router) App() *fiber.App {
	return r.app
}

func (r *Router) Listen(addr string) error {
	return r.app.Listen(addr)
}

func (r *Router) Shutdown(ctx context.Context) error {
	return r.app.ShutdownWithContext(ctx)
}

// NewOpsRouter serves metrics, health probes and API docs on their own
// listener so the public API keeps a single endpoint.
func NewOpsRouter(logger *slog.Logger, deps *OpsDependencies) *Router {
	app := fiber.New(fiber.Config{
		ErrorHandler:          middleware.ErrorHandler(logger),
		AppName:               "MoodMeter Ops",
		DisableStartupMessage: true,
	})
	app.Use(middleware.Recover(logger))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	healthHandler := handler.NewHealthHandler(deps.Version, deps.ReadyChecks)
	app.Get("/health", healthHandler.Health)
	app.Get("/ready", healthHandler.Ready)

	sw := docs.NewSwagger()
	swagger.SwaggerHandler(app, sw.MustToJson())

	return &Router{
		app:    app,
		logger: logger,
	}
}
