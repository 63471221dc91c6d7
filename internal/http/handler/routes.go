package handler

import (
	"context"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"supportapi/internal/chat"
	"supportapi/internal/llm"
	"supportapi/internal/model"
	"supportapi/internal/service"
)

// chatMessageRequest is the body of POST /chat/message.
type chatMessageRequest struct {
	Message       string `json:"message"`
	ApplicationID *int   `json:"application_id,omitempty"`
}

// decisionRequest is the body of POST /applications/:id/decision.
type decisionRequest struct {
	Outcome string `json:"outcome"`
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, call the service or router, translate errors.
func RegisterRoutes(app *fiber.App, svc service.ApplicationService, chatRouter chat.Router, llmClient llm.Client) {
	// Health: liveness plus upstream reachability flags. A degraded chat
	// upstream does not fail the probe; the flag is informational.
	app.Get("/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		llmAvailable := llmClient != nil && llmClient.Healthy(ctx)
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":        "healthy",
			"llm_available": llmAvailable,
		})
	})

	// Backward-compatible simple liveness probe
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	// Submit a new application
	app.Post("/applications", func(c *fiber.Ctx) error {
		var req service.SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		a, err := svc.Submit(c.UserContext(), req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})

	// List all applications
	app.Get("/applications", func(c *fiber.Ctx) error {
		apps, err := svc.List(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{
			"applications": apps,
			"count":        len(apps),
		})
	})

	// Get one application
	app.Get("/applications/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		a, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	})

	// Update an application while it is still editable
	app.Put("/applications/:id", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req service.SubmitRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		a, err := svc.Update(c.UserContext(), id, req)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	})

	// Upload a document (multipart/form-data: file, declared_type)
	app.Post("/applications/:id/documents", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}
		declaredType := c.FormValue("declared_type")

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		a, err := svc.UploadDocument(c.UserContext(), id, f, fh.Filename, declaredType, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}

		doc := a.Documents[len(a.Documents)-1]
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"application_id": a.ID,
			"document":       doc,
			"status":         a.Status,
		})
	})

	// Stream the stored bytes of one document
	app.Get("/applications/:id/documents/:doc_id/download", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		docID, err := parseID(c, "doc_id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id format")
		}

		rc, doc, err := svc.OpenDocument(c.UserContext(), id, docID)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+doc.Filename+`"`)
		// Sizes beyond the 32-bit int range stream chunked instead of
		// risking an overflowing length conversion.
		if doc.SizeBytes > 0 && doc.SizeBytes < math.MaxInt32 {
			return c.SendStream(rc, int(doc.SizeBytes))
		}
		return c.SendStream(rc, -1)
	})

	// Presigned download link for one document
	app.Get("/applications/:id/documents/:doc_id/url", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		docID, err := parseID(c, "doc_id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid document id format")
		}

		url, err := svc.DocumentURL(c.UserContext(), id, docID)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	})

	// Processing-progress view of an application
	app.Get("/applications/:id/status", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		view, err := svc.Status(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(view)
	})

	// Record the processing decision
	app.Post("/applications/:id/decision", func(c *fiber.Ctx) error {
		id, err := parseID(c, "id")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		var req decisionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}

		var approved bool
		switch model.Status(req.Outcome) {
		case model.StatusApproved:
			approved = true
		case model.StatusDeclined:
			approved = false
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_OUTCOME", "outcome must be approved or declined")
		}

		a, err := svc.Decide(c.UserContext(), id, approved)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(a)
	})

	// Chat: always answers with 200, degrading to the fallback tier.
	app.Post("/chat/message", func(c *fiber.Ctx) error {
		var req chatMessageRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "request body is not valid JSON")
		}
		if req.Message == "" {
			return writeError(c, fiber.StatusBadRequest, "MISSING_FIELD", "message is required")
		}

		// Application context is best effort: an unknown id degrades to a
		// context-free answer rather than failing the chat.
		var record *model.Application
		if req.ApplicationID != nil {
			if a, err := svc.Get(c.UserContext(), *req.ApplicationID); err == nil {
				record = a
			}
		}

		res := chatRouter.Respond(c.UserContext(), req.Message, record)
		return c.JSON(fiber.Map{
			"message":      req.Message,
			"response":     res.Text,
			"source":       res.Source,
			"elapsed_ms":   res.Elapsed.Milliseconds(),
			"context_used": record != nil,
			"timestamp":    time.Now().UTC().Format(time.RFC3339),
		})
	})

	// Chat upstream availability
	app.Get("/chat/health", func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		available := llmClient != nil && llmClient.Healthy(ctx)
		resp := fiber.Map{
			"llm_available": available,
		}
		if available {
			resp["service"] = "Ollama"
			resp["model"] = llmClient.Model()
			resp["status"] = "healthy"
		} else {
			resp["service"] = "Fallback"
			resp["model"] = "rule-based"
			resp["status"] = "degraded"
		}
		return c.JSON(resp)
	})

	// Aggregate counts over all applications
	app.Get("/analytics/stats", func(c *fiber.Ctx) error {
		stats, err := svc.Stats(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(stats)
	})
}

// parseID reads a positive integer path parameter.
func parseID(c *fiber.Ctx, name string) (int, error) {
	id, err := strconv.Atoi(c.Params(name))
	if err != nil || id < 1 {
		return 0, fiber.ErrBadRequest
	}
	return id, nil
}
