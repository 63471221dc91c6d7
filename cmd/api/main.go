package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"supportapi/docs"
	"supportapi/internal/chat"
	"supportapi/internal/config"
	handlers "supportapi/internal/http/handler"
	"supportapi/internal/http/middleware"
	"supportapi/internal/llm"
	appotel "supportapi/internal/otel"
	"supportapi/internal/persist"
	"supportapi/internal/service"
	"supportapi/internal/storage"
	"supportapi/internal/store"
)

// @title Social Support Application API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	ctx := context.Background()

	// Tracing (no-op when OTEL_SDK_DISABLED=true or the exporter fails)
	shutdownTracing, err := appotel.Init(ctx, time.UTC)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer shutdownTracing(context.Background())

	// Durable snapshot file and the record store over it
	persister, err := persist.NewFile(cfg.Data.SnapshotPath())
	if err != nil {
		log.Fatalf("failed to initialize persistence: %v", err)
	}
	recordStore, err := store.NewRecordStore(ctx, persister, cfg.Policy.RequiredDocumentTypes)
	if err != nil {
		log.Fatalf("failed to load application store: %v", err)
	}

	// S3-compatible object storage for document bytes
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	appSvc := service.NewApplicationService(recordStore, objStore, cfg.Policy.MaxDocumentSizeBytes)

	// Upstream inference adapter and the hybrid chat router
	llmClient := llm.NewOllama(cfg.Ollama.Host, cfg.Ollama.Model, time.Duration(cfg.Ollama.TimeoutSec)*time.Second)

	chatResponses := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chat_responses_total",
			Help: "Chat responses by source (instant, llm, fallback).",
		},
		[]string{"source"},
	)
	prometheus.MustRegister(chatResponses)

	chatRouter := chat.NewRouter(chat.Config{
		Client:           llmClient,
		Timeout:          time.Duration(cfg.Ollama.TimeoutSec) * time.Second,
		MaxResponseChars: cfg.Chat.MaxResponseChars,
		Responses:        chatResponses,
	})

	// The transport must accept the largest policy-conformant document plus
	// multipart framing; the validator owns the real size decision.
	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Policy.MaxDocumentSizeBytes) + 1<<20,
	})

	// Register global middleware
	// RequestID middleware adds/propagates X-Request-ID and stores it in context
	app.Use(middleware.RequestID())
	// JSON Logger middleware for structured request logs
	app.Use(middleware.Logger())
	// Request spans
	app.Use(otelfiber.Middleware())

	promMiddleware, err := middleware.NewPrometheusMiddleware(prometheus.DefaultRegisterer)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Register HTTP routes with injected dependencies
	handlers.RegisterRoutes(app, appSvc, chatRouter, llmClient)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	addr := ":" + cfg.Port

	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
