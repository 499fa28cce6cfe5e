package main

import (
	"context"
	"fmt"
	"log"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docrelay/internal/config"
	handlers "docrelay/internal/http/handler"
	"docrelay/internal/http/middleware"
	"docrelay/internal/notify"
	"docrelay/internal/otel"
	"docrelay/internal/record"
	"docrelay/internal/service"
	"docrelay/internal/storage"
)

func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	ctx := context.Background()
	shutdownTracing, err := otel.Init(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			log.Printf("tracing shutdown: %v", err)
		}
	}()

	uploader, err := newUploader(cfg)
	if err != nil {
		log.Fatalf("failed to initialize %s uploader: %v", cfg.StorageBackend, err)
	}

	records, err := record.New(cfg.RecordStore)
	if err != nil {
		log.Fatalf("failed to initialize record store client: %v", err)
	}

	var forwarder notify.Forwarder = notify.Noop{}
	if cfg.WebhookURL != "" {
		forwarder = notify.NewWebhook(cfg.WebhookURL)
	}

	reg := prometheus.NewRegistry()
	metrics, err := service.NewMetrics(reg)
	if err != nil {
		log.Fatalf("failed to register metrics: %v", err)
	}

	svc := service.NewSubmissionService(uploader, records, forwarder, service.WithMetrics(metrics))

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		// Three documents plus form fields; leave headroom over the
		// per-file ceiling so the validator rejects before fiber does.
		BodyLimit: int(3*uploader.MaxBytes()) + (1 << 20),
	})

	// Register global middleware
	app.Use(middleware.CORS(cfg.CORSAllowOrigins))
	app.Use(otelfiber.Middleware())
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger())

	promMW, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		log.Fatalf("failed to register request metrics: %v", err)
	}
	app.Use(promMW.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected collaborators
	handlers.RegisterRoutes(app, svc, records, cfg)

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

// newUploader selects the attachment backend. The relay runs the same
// pipeline regardless of which store receives the bytes.
func newUploader(cfg *config.AppConfig) (storage.Uploader, error) {
	switch cfg.StorageBackend {
	case config.BackendS3:
		return storage.NewMinIO(cfg.MinIO, cfg.MaxUploadBytes)
	case config.BackendAirtable:
		return storage.NewAirtable(cfg.RecordStore)
	case config.BackendBlob:
		return storage.NewBlob(cfg.Blob, cfg.MaxUploadBytes)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.StorageBackend)
}
