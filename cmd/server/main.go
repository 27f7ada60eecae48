package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
	"go.uber.org/zap"

	"github.com/seu-repo/alexa-gemini-skill/internal/adapter/ai/gemini"
	"github.com/seu-repo/alexa-gemini-skill/internal/adapter/http/fiber/handlers"
	"github.com/seu-repo/alexa-gemini-skill/internal/adapter/http/fiber/middleware"
	"github.com/seu-repo/alexa-gemini-skill/internal/adapter/secrets"
	"github.com/seu-repo/alexa-gemini-skill/internal/adapter/vault"
	"github.com/seu-repo/alexa-gemini-skill/internal/observability/telemetry"
	"github.com/seu-repo/alexa-gemini-skill/internal/ports"
	"github.com/seu-repo/alexa-gemini-skill/internal/service/health"
	"github.com/seu-repo/alexa-gemini-skill/internal/service/skill"
	"github.com/seu-repo/alexa-gemini-skill/pkg/config"
)

const (
	serviceName    = "alexa-gemini-skill"
	serviceVersion = "v1.0.0"
)

func main() {
	// 1. Initialize Logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	logger.Info("Starting Alexa Gemini skill",
		zap.String("service", serviceName),
		zap.String("version", serviceVersion),
	)

	// 2. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// 3. Initialize OpenTelemetry (Distributed Tracing)
	if cfg.Telemetry.TracingEnabled {
		tracerProvider, err := telemetry.InitTracer(serviceName, serviceVersion, cfg.Telemetry.JaegerEndpoint)
		if err != nil {
			logger.Fatal("Failed to initialize tracer", zap.Error(err))
		}
		defer func() {
			if err := tracerProvider.Shutdown(context.Background()); err != nil {
				logger.Error("Error shutting down tracer provider", zap.Error(err))
			}
		}()
	}

	// 4. Select Secret Source (Gemini API key, resolved per call)
	var secretSource ports.SecretSource
	switch cfg.Secrets.Source {
	case "vault":
		secretSource, err = vault.NewSecretManager(cfg.Secrets.Vault.Address, cfg.Secrets.Vault.Token)
		if err != nil {
			logger.Fatal("Failed to initialize Vault secret source", zap.Error(err))
		}
	default:
		secretSource = secrets.EnvSource{}
	}

	// 5. Initialize Gemini Client
	geminiClient := gemini.NewClient(gemini.Config{
		Model:          cfg.Gemini.Model,
		BaseURL:        cfg.Gemini.BaseURL,
		Timeout:        cfg.Gemini.Timeout,
		BreakerEnabled: cfg.Gemini.CircuitBreaker.Enabled,
	}, secretSource, logger)

	// 6. Build Handler Registry. Skill-specific handlers go first, generic
	// fallbacks after them, catch-all last: first match wins.
	registry := skill.NewRegistry(logger)
	registry.Register(skill.LaunchHandler{})
	registry.Register(skill.NewQueryHandler(geminiClient, logger))
	registry.Register(skill.HelpHandler{})
	registry.Register(skill.CancelStopHandler{})
	registry.Register(skill.SessionEndedHandler{})
	registry.Register(skill.CatchAllHandler{})

	// 7. Health Service
	healthService := health.NewService(serviceVersion, logger)
	healthService.RegisterChecker("gemini_api_key", health.CheckFunc("gemini_api_key", func(ctx context.Context) error {
		_, err := secretSource.GeminiAPIKey(ctx)
		return err
	}))
	healthService.RegisterChecker("gemini_breaker", health.CheckFunc("gemini_breaker", func(ctx context.Context) error {
		if geminiClient.BreakerOpen() {
			return fmt.Errorf("circuit breaker open")
		}
		return nil
	}))
	healthHandler := health.NewHandler(healthService, logger)

	// 8. Initialize Fiber HTTP Server
	app := fiber.New(fiber.Config{
		AppName:               serviceName,
		ServerHeader:          serviceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.HTTP.ReadTimeout,
		WriteTimeout:          cfg.HTTP.WriteTimeout,
		IdleTimeout:           cfg.HTTP.IdleTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	// Global Middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(middleware.RequestID())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.HTTP.AllowedOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))

	// Health Check Endpoints
	app.Get("/health/live", healthHandler.Live)
	app.Get("/health/ready", healthHandler.Ready)

	// Metrics endpoint for Prometheus
	app.Get("/metrics", func(c *fiber.Ctx) error {
		handler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
		handler(c.Context())
		return nil
	})

	// Skill endpoint
	alexaHandler := handlers.NewAlexaHandler(registry, logger)
	app.Post("/alexa", alexaHandler.HandleRequest)

	// 9. Start HTTP Server
	go func() {
		logger.Info("Starting HTTP Server", zap.Int("port", cfg.HTTP.Port))
		if err := app.Listen(fmt.Sprintf(":%d", cfg.HTTP.Port)); err != nil {
			logger.Fatal("HTTP Server failed", zap.Error(err))
		}
	}()

	// 10. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}
