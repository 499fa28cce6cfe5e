package handler

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"

	"docrelay/internal/config"
	"docrelay/internal/model"
	"docrelay/internal/record"
	"docrelay/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parsing and status mapping here, pipeline logic in the
// service.
func RegisterRoutes(app *fiber.App, svc service.SubmissionService, rec record.Updater, cfg *config.AppConfig) {
	// Serve OpenAPI spec and Swagger UI
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.SendFile("openapi.yaml")
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	app.Get("/health", HealthCheck(rec))
	app.Get("/healthz", LivenessProbe())

	app.Post("/api/upload-documents", UploadDocuments(svc))

	app.Get("/debug/env", DebugEnv(cfg))
	app.Get("/debug/record/:id", DebugRecord(rec))
}

// LivenessProbe is a simple liveness probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// HealthCheck verifies record-store reachability.
func HealthCheck(rec record.Updater) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := rec.Ping(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// successPayload is the envelope returned for a completed submission.
type successPayload struct {
	Success           bool            `json:"success"`
	RecordID          string          `json:"recordId"`
	DocumentsUploaded map[string]bool `json:"documentsUploaded"`
}

// UploadDocuments handles the multipart submission endpoint.
func UploadDocuments(svc service.SubmissionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := c.MultipartForm()
		if err != nil {
			return writeStagedError(c, fiber.StatusBadRequest, string(service.StageValidated),
				"INVALID_MULTIPART", "request body must be multipart/form-data")
		}

		sub := submissionFromForm(form)

		res, err := svc.Handle(c.UserContext(), sub)
		if err != nil {
			return writeSubmissionError(c, err)
		}

		return c.Status(fiber.StatusOK).JSON(successPayload{
			Success:           true,
			RecordID:          res.RecordID,
			DocumentsUploaded: res.DocumentsUploaded,
		})
	}
}

// submissionFromForm maps the parsed multipart form onto the domain
// submission. All files share one release hook: multipart temp storage is
// removed as a unit, exactly once, whichever path gets there first.
func submissionFromForm(form *multipart.Form) *model.Submission {
	var release sync.Once
	releaseAll := func() error {
		var err error
		release.Do(func() { err = form.RemoveAll() })
		return err
	}

	files := make(map[model.DocumentType]*model.IncomingFile, len(model.DocumentTypes))
	for _, dt := range model.DocumentTypes {
		fhs := form.File[dt.FormField()]
		if len(fhs) == 0 {
			continue
		}
		fh := fhs[0]
		files[dt] = &model.IncomingFile{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Size:        fh.Size,
			Open: func() (io.ReadCloser, error) {
				return fh.Open()
			},
			Release: releaseAll,
		}
	}

	value := func(key string) string {
		if vs := form.Value[key]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	return &model.Submission{
		Candidate: model.Candidate{
			RecordID:   value("recordId"),
			Email:      value("candidateEmail"),
			Name:       value("candidateName"),
			Phone:      value("candidatePhone"),
			Position:   value("position"),
			Department: value("department"),
			StartDate:  value("startDate"),
		},
		Files: files,
	}
}

// writeSubmissionError maps pipeline failures onto HTTP statuses: validation
// is client-correctable (400, or 413 for oversize files), backend failures
// are 500, and backend timeouts are 504.
func writeSubmissionError(c *fiber.Ctx, err error) error {
	var serr *service.Error
	if !errors.As(err, &serr) {
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}

	status := fiber.StatusInternalServerError
	switch {
	case serr.Stage == service.StageValidated && serr.Code == service.CodeFileTooLarge:
		status = fiber.StatusRequestEntityTooLarge
	case serr.Stage == service.StageValidated:
		status = fiber.StatusBadRequest
	case errors.Is(err, context.DeadlineExceeded):
		status = fiber.StatusGatewayTimeout
	}

	return writeStagedError(c, status, string(serr.Stage), serr.Code, serr.Message)
}

// DebugEnv reports which configuration keys are present, with secrets masked.
// It never echoes a full secret.
func DebugEnv(cfg *config.AppConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"storageBackend": cfg.StorageBackend,
			"maxUploadBytes": cfg.MaxUploadBytes,
			"recordStore": fiber.Map{
				"tokenPresent": cfg.RecordStore.APIToken != "",
				"token":        config.Mask(cfg.RecordStore.APIToken),
				"baseId":       cfg.RecordStore.BaseID,
				"tableId":      cfg.RecordStore.TableID,
			},
			"webhookConfigured": cfg.WebhookURL != "",
		})
	}
}

// DebugRecord fetches one row from the record store to verify connectivity
// and field mapping.
func DebugRecord(rec record.Updater) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		out, err := rec.Get(c.UserContext(), id)
		if err != nil {
			var uerr *record.UpdateError
			if errors.As(err, &uerr) && uerr.Status == fiber.StatusNotFound {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "record not found")
			}
			return writeError(c, fiber.StatusBadGateway, "RECORD_STORE_ERROR", "record store request failed")
		}
		return c.JSON(out)
	}
}
