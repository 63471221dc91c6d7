package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"supportapi/internal/chat"
	chatMocks "supportapi/internal/chat/mocks"
	llmMocks "supportapi/internal/llm/mocks"
	"supportapi/internal/model"
	"supportapi/internal/service"
	serviceMocks "supportapi/internal/service/mocks"
	"supportapi/internal/store"
	"supportapi/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newTestApp(svc service.ApplicationService, router chat.Router, client *llmMocks.MockClient) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
		BodyLimit:    int(validate.DefaultMaxDocumentSize) + 1<<20,
	})
	RegisterRoutes(app, svc, router, client)
	return app
}

func sampleApplication() *model.Application {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Application{
		ID: 1,
		PersonalInfo: model.PersonalInfo{
			FirstName:  "Amina",
			LastName:   "Hassan",
			EmiratesID: "784-1990-1234567-1",
		},
		MonthlyIncome: 3500,
		ProgramType:   model.ProgramFinancialSupport,
		Status:        model.StatusSubmitted,
		Documents:     []model.Document{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func jsonRequest(method, target string, payload any) *http.Request {
	body, _ := json.Marshal(payload)
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestSubmitApplication(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Submit", mock.Anything, mock.Anything).Return(sampleApplication(), nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications", service.SubmitRequest{
			PersonalInfo:  model.PersonalInfo{FirstName: "Amina", LastName: "Hassan", EmiratesID: "784-1990-1234567-1"},
			MonthlyIncome: 3500,
			ProgramType:   "financial_support",
		}))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.Application
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 1, result.ID)
		assert.Equal(t, model.StatusSubmitted, result.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing field", func(t *testing.T) {
		mockSvc.On("Submit", mock.Anything, mock.Anything).
			Return(nil, validate.ErrMissingField).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications", service.SubmitRequest{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_FIELD", res.Error.Code)
	})

	t.Run("invalid program type", func(t *testing.T) {
		mockSvc.On("Submit", mock.Anything, mock.Anything).
			Return(nil, service.ErrInvalidInput).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications", service.SubmitRequest{ProgramType: "housing"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_INPUT", res.Error.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/applications", strings.NewReader("{not json"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_BODY", res.Error.Code)
	})
}

func TestGetApplication(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, 1).Return(sampleApplication(), nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Application
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 1, result.ID)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, 42).Return(nil, store.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/42", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/applications/abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestUpdateApplication(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		updated := sampleApplication()
		updated.MonthlyIncome = 2800
		mockSvc.On("Update", mock.Anything, 1, mock.Anything).Return(updated, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/applications/1", service.SubmitRequest{MonthlyIncome: 2800}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("frozen record", func(t *testing.T) {
		mockSvc.On("Update", mock.Anything, 1, mock.Anything).Return(nil, store.ErrInvalidState).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/applications/1", service.SubmitRequest{}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STATE", res.Error.Code)
	})
}

func multipartUpload(t *testing.T, declaredType, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, _ := writer.CreateFormFile("file", filename)
	part.Write(content)
	if declaredType != "" {
		writer.WriteField("declared_type", declaredType)
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		withDoc := sampleApplication()
		withDoc.Status = model.StatusDocumentsPending
		withDoc.Documents = []model.Document{{
			ID:            1,
			ApplicationID: 1,
			DeclaredType:  model.DocIdentityProof,
			Filename:      "id.pdf",
		}}
		mockSvc.On("UploadDocument", mock.Anything, 1, mock.Anything, "id.pdf", "identity_proof", mock.Anything, mock.Anything).
			Return(withDoc, nil).Once()

		body, ct := multipartUpload(t, "identity_proof", "id.pdf", []byte("file bytes"))
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, float64(1), result["application_id"])
		assert.Equal(t, "documents_pending", result["status"])
		assert.NotNil(t, result["document"])
		mockSvc.AssertExpectations(t)
	})

	// A policy-conformant document far above Fiber's default 4 MB body limit
	// must reach the service; size enforcement belongs to the validator.
	t.Run("large file passes the transport", func(t *testing.T) {
		withDoc := sampleApplication()
		withDoc.Status = model.StatusDocumentsPending
		withDoc.Documents = []model.Document{{ID: 1, ApplicationID: 1, DeclaredType: model.DocIdentityProof, Filename: "scan.pdf"}}
		mockSvc.On("UploadDocument", mock.Anything, 1, mock.Anything, "scan.pdf", "identity_proof", mock.Anything, mock.Anything).
			Return(withDoc, nil).Once()

		body, ct := multipartUpload(t, "identity_proof", "scan.pdf", bytes.Repeat([]byte("a"), 5*1024*1024))
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("body over the transport limit", func(t *testing.T) {
		small := fiber.New(fiber.Config{
			ErrorHandler: ErrorHandler(),
			BodyLimit:    1024,
		})
		RegisterRoutes(small, mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

		body, ct := multipartUpload(t, "identity_proof", "id.pdf", bytes.Repeat([]byte("a"), 4096))
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := small.Test(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("unsupported format", func(t *testing.T) {
		mockSvc.On("UploadDocument", mock.Anything, 1, mock.Anything, "malware.exe", "identity_proof", mock.Anything, mock.Anything).
			Return(nil, validate.ErrUnsupportedFormat).Once()

		body, ct := multipartUpload(t, "identity_proof", "malware.exe", []byte("file bytes"))
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "UNSUPPORTED_FORMAT", res.Error.Code)
	})

	t.Run("file too large", func(t *testing.T) {
		mockSvc.On("UploadDocument", mock.Anything, 1, mock.Anything, "big.pdf", "bank_statement", mock.Anything, mock.Anything).
			Return(nil, validate.ErrFileTooLarge).Once()

		body, ct := multipartUpload(t, "bank_statement", "big.pdf", []byte("file bytes"))
		req := httptest.NewRequest(http.MethodPost, "/applications/1/documents", body)
		req.Header.Set("Content-Type", ct)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
	})
}

func TestGetApplicationStatus(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	view := &service.StatusView{
		ApplicationID:      1,
		Status:             model.StatusProcessing,
		DocumentsUploaded:  2,
		UploadedTypes:      []model.DocumentType{model.DocIdentityProof, model.DocBankStatement},
		ReadyForProcessing: true,
	}
	mockSvc.On("Status", mock.Anything, 1).Return(view, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/applications/1/status", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result service.StatusView
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, model.StatusProcessing, result.Status)
	assert.True(t, result.ReadyForProcessing)
	mockSvc.AssertExpectations(t)
}

func TestDecideApplication(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("approved", func(t *testing.T) {
		approved := sampleApplication()
		approved.Status = model.StatusApproved
		mockSvc.On("Decide", mock.Anything, 1, true).Return(approved, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications/1/decision", decisionRequest{Outcome: "approved"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result model.Application
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, model.StatusApproved, result.Status)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid outcome", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications/1/decision", decisionRequest{Outcome: "maybe"}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_OUTCOME", res.Error.Code)
	})

	t.Run("not processing yet", func(t *testing.T) {
		mockSvc.On("Decide", mock.Anything, 1, false).Return(nil, store.ErrInvalidState).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/applications/1/decision", decisionRequest{Outcome: "declined"}))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_STATE", res.Error.Code)
	})
}

func TestChatMessage(t *testing.T) {
	t.Run("routed answer", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		mockRouter := new(chatMocks.MockRouter)
		mockRouter.On("Respond", mock.Anything, "hi", (*model.Application)(nil)).
			Return(chat.Result{Text: "Hello!", Source: chat.SourceInstant, Elapsed: time.Millisecond}).Once()

		app := newTestApp(mockSvc, mockRouter, new(llmMocks.MockClient))

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/chat/message", chatMessageRequest{Message: "hi"}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "Hello!", result["response"])
		assert.Equal(t, "instant", result["source"])
		assert.Equal(t, false, result["context_used"])
		mockRouter.AssertExpectations(t)
	})

	t.Run("with application context", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		record := sampleApplication()
		mockSvc.On("Get", mock.Anything, 1).Return(record, nil).Once()

		mockRouter := new(chatMocks.MockRouter)
		mockRouter.On("Respond", mock.Anything, "what is my status?", record).
			Return(chat.Result{Text: "Submitted.", Source: chat.SourceLLM, Elapsed: time.Millisecond}).Once()

		app := newTestApp(mockSvc, mockRouter, new(llmMocks.MockClient))

		id := 1
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/chat/message", chatMessageRequest{Message: "what is my status?", ApplicationID: &id}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["context_used"])
		mockRouter.AssertExpectations(t)
		mockSvc.AssertExpectations(t)
	})

	t.Run("unknown application id degrades to no context", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockApplicationService)
		mockSvc.On("Get", mock.Anything, 42).Return(nil, store.ErrNotFound).Once()

		mockRouter := new(chatMocks.MockRouter)
		mockRouter.On("Respond", mock.Anything, "hello there", (*model.Application)(nil)).
			Return(chat.Result{Text: chat.FallbackResponse, Source: chat.SourceFallback, Elapsed: time.Millisecond}).Once()

		app := newTestApp(mockSvc, mockRouter, new(llmMocks.MockClient))

		id := 42
		resp, _ := app.Test(jsonRequest(http.MethodPost, "/chat/message", chatMessageRequest{Message: "hello there", ApplicationID: &id}))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, false, result["context_used"])
		assert.Equal(t, "fallback", result["source"])
	})

	t.Run("missing message", func(t *testing.T) {
		app := newTestApp(new(serviceMocks.MockApplicationService), new(chatMocks.MockRouter), new(llmMocks.MockClient))

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/chat/message", chatMessageRequest{}))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "MISSING_FIELD", res.Error.Code)
	})
}

func TestChatHealth(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mockClient := new(llmMocks.MockClient)
		mockClient.On("Healthy", mock.Anything).Return(true).Once()
		mockClient.On("Model").Return("llama3.2:3b").Once()

		app := newTestApp(new(serviceMocks.MockApplicationService), new(chatMocks.MockRouter), mockClient)

		req := httptest.NewRequest(http.MethodGet, "/chat/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["llm_available"])
		assert.Equal(t, "Ollama", result["service"])
		assert.Equal(t, "llama3.2:3b", result["model"])
		assert.Equal(t, "healthy", result["status"])
	})

	t.Run("degraded", func(t *testing.T) {
		mockClient := new(llmMocks.MockClient)
		mockClient.On("Healthy", mock.Anything).Return(false).Once()

		app := newTestApp(new(serviceMocks.MockApplicationService), new(chatMocks.MockRouter), mockClient)

		req := httptest.NewRequest(http.MethodGet, "/chat/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, false, result["llm_available"])
		assert.Equal(t, "Fallback", result["service"])
		assert.Equal(t, "degraded", result["status"])
	})
}

func TestAnalyticsStats(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	mockSvc.On("Stats", mock.Anything).Return(&store.Stats{
		TotalApplications: 3,
		TotalDocuments:    4,
		ByStatus: map[model.Status]int{
			model.StatusSubmitted: 1,
			model.StatusApproved:  2,
		},
	}, nil).Once()

	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	req := httptest.NewRequest(http.MethodGet, "/analytics/stats", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result store.Stats
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, 3, result.TotalApplications)
	assert.Equal(t, 2, result.ByStatus[model.StatusApproved])
	mockSvc.AssertExpectations(t)
}

func TestListApplications(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	mockSvc.On("List", mock.Anything).Return([]*model.Application{sampleApplication()}, nil).Once()

	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	req := httptest.NewRequest(http.MethodGet, "/applications", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var result map[string]any
	json.NewDecoder(resp.Body).Decode(&result)
	assert.Equal(t, float64(1), result["count"])
	mockSvc.AssertExpectations(t)
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		doc := &model.Document{ID: 2, ApplicationID: 1, Filename: "id.pdf", SizeBytes: 9}
		mockSvc.On("OpenDocument", mock.Anything, 1, 2).
			Return(io.NopCloser(strings.NewReader("pdf bytes")), doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1/documents/2/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("Content-Disposition"), "id.pdf")

		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "pdf bytes", string(body))
		mockSvc.AssertExpectations(t)
	})

	t.Run("size beyond 32-bit range streams chunked", func(t *testing.T) {
		doc := &model.Document{ID: 3, ApplicationID: 1, Filename: "archive.pdf", SizeBytes: 3 << 30}
		mockSvc.On("OpenDocument", mock.Anything, 1, 3).
			Return(io.NopCloser(strings.NewReader("pdf bytes")), doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1/documents/3/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		body, _ := io.ReadAll(resp.Body)
		assert.Equal(t, "pdf bytes", string(body))
	})

	t.Run("document not found", func(t *testing.T) {
		mockSvc.On("OpenDocument", mock.Anything, 1, 9).
			Return(nil, nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1/documents/9/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", res.Error.Code)
	})
}

func TestDocumentURL(t *testing.T) {
	mockSvc := new(serviceMocks.MockApplicationService)
	app := newTestApp(mockSvc, new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("DocumentURL", mock.Anything, 1, 2).Return("https://minio.local/presigned", nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1/documents/2/url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var result map[string]string
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "https://minio.local/presigned", result["url"])
	})

	t.Run("document not found", func(t *testing.T) {
		mockSvc.On("DocumentURL", mock.Anything, 1, 9).Return("", service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/applications/1/documents/9/url", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", res.Error.Code)
	})
}

func TestRouting(t *testing.T) {
	app := newTestApp(new(serviceMocks.MockApplicationService), new(chatMocks.MockRouter), new(llmMocks.MockClient))

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "NOT_FOUND", res.Error.Code)
	})

	t.Run("method not allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodDelete, "/healthz", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "METHOD_NOT_ALLOWED", res.Error.Code)
	})
}
