package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"supportapi/internal/model"
	"supportapi/internal/storage"
	"supportapi/internal/store"
	"supportapi/internal/validate"
)

var (
	// ErrInvalidInput is returned when a request field is present but not
	// acceptable (bad program type, negative income).
	ErrInvalidInput = errors.New("invalid input")

	// ErrDocumentNotFound is returned when the referenced document does not
	// exist on the application.
	ErrDocumentNotFound = errors.New("document not found")
)

// presignExpiry bounds download links handed to applicants.
const presignExpiry = 15 * time.Minute

// SubmitRequest carries applicant-supplied fields for create and update.
type SubmitRequest struct {
	PersonalInfo  model.PersonalInfo `json:"personal_info"`
	MonthlyIncome float64            `json:"monthly_income"`
	ProgramType   string             `json:"program_type"`
}

// StatusView is the processing-progress projection of one application.
type StatusView struct {
	ApplicationID      int                  `json:"application_id"`
	Status             model.Status         `json:"status"`
	DocumentsUploaded  int                  `json:"documents_uploaded"`
	UploadedTypes      []model.DocumentType `json:"uploaded_types"`
	ReadyForProcessing bool                 `json:"ready_for_processing"`
}

// ApplicationService orchestrates the record store, document validation and
// object storage behind the HTTP handlers.
type ApplicationService interface {
	Submit(ctx context.Context, req SubmitRequest) (*model.Application, error)
	Get(ctx context.Context, id int) (*model.Application, error)
	Update(ctx context.Context, id int, req SubmitRequest) (*model.Application, error)
	UploadDocument(ctx context.Context, appID int, r io.Reader, filename, declaredType, contentType string, size int64) (*model.Application, error)
	OpenDocument(ctx context.Context, appID, docID int) (io.ReadCloser, *model.Document, error)
	DocumentURL(ctx context.Context, appID, docID int) (string, error)
	Status(ctx context.Context, id int) (*StatusView, error)
	Decide(ctx context.Context, id int, approved bool) (*model.Application, error)
	List(ctx context.Context) ([]*model.Application, error)
	Stats(ctx context.Context) (*store.Stats, error)
}

type applicationService struct {
	store      store.Store
	objects    storage.Storage
	maxDocSize int64
}

// NewApplicationService wires the record store and the object store.
// maxDocSize caps individual uploads; zero applies the default limit.
func NewApplicationService(s store.Store, objects storage.Storage, maxDocSize int64) ApplicationService {
	return &applicationService{
		store:      s,
		objects:    objects,
		maxDocSize: maxDocSize,
	}
}

// validateRequest checks field presence and value sanity shared by Submit
// and Update.
func validateRequest(req SubmitRequest) error {
	required := []struct {
		name  string
		value string
	}{
		{"first_name", req.PersonalInfo.FirstName},
		{"last_name", req.PersonalInfo.LastName},
		{"emirates_id", req.PersonalInfo.EmiratesID},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%s: %w", f.name, validate.ErrMissingField)
		}
	}
	if req.MonthlyIncome < 0 {
		return fmt.Errorf("monthly_income must not be negative: %w", ErrInvalidInput)
	}
	if !model.ProgramType(req.ProgramType).Valid() {
		return fmt.Errorf("program_type %q: %w", req.ProgramType, ErrInvalidInput)
	}
	return nil
}

func (s *applicationService) Submit(ctx context.Context, req SubmitRequest) (*model.Application, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.store.CreateApplication(ctx, req.PersonalInfo, req.MonthlyIncome, model.ProgramType(req.ProgramType))
}

func (s *applicationService) Get(ctx context.Context, id int) (*model.Application, error) {
	return s.store.GetApplication(ctx, id)
}

func (s *applicationService) Update(ctx context.Context, id int, req SubmitRequest) (*model.Application, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}
	return s.store.UpdateApplication(ctx, id, req.PersonalInfo, req.MonthlyIncome, model.ProgramType(req.ProgramType))
}

// UploadDocument validates the upload, streams the bytes to object storage
// and then attaches the descriptor. The object is written first so a record
// never references bytes that do not exist; if attaching fails the object is
// removed again.
func (s *applicationService) UploadDocument(ctx context.Context, appID int, r io.Reader, filename, declaredType, contentType string, size int64) (*model.Application, error) {
	app, err := s.store.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !app.Status.Editable() {
		return nil, fmt.Errorf("upload to application %d in status %s: %w", appID, app.Status, store.ErrInvalidState)
	}

	doc, err := validate.Document(filename, declaredType, size, s.maxDocSize)
	if err != nil {
		return nil, err
	}

	doc.ID = len(app.Documents) + 1
	doc.StoragePath = objectKey(appID, doc.ID, filename)
	doc.UploadedAt = time.Now().UTC()

	if _, err := s.objects.Put(ctx, doc.StoragePath, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"declared-type":     string(doc.DeclaredType),
			"original-filename": filename,
		},
	}); err != nil {
		return nil, fmt.Errorf("store document bytes: %w", err)
	}

	updated, err := s.store.AppendDocument(ctx, appID, *doc)
	if err != nil {
		// Best-effort rollback; the object is unreferenced either way.
		_ = s.objects.Delete(ctx, doc.StoragePath)
		return nil, err
	}
	return updated, nil
}

// OpenDocument streams the stored bytes of one document together with its
// descriptor. The caller owns the returned reader.
func (s *applicationService) OpenDocument(ctx context.Context, appID, docID int) (io.ReadCloser, *model.Document, error) {
	doc, err := s.findDocument(ctx, appID, docID)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err := s.objects.Get(ctx, doc.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open document bytes: %w", err)
	}
	return rc, doc, nil
}

// DocumentURL returns a time-limited download link for one document.
func (s *applicationService) DocumentURL(ctx context.Context, appID, docID int) (string, error) {
	doc, err := s.findDocument(ctx, appID, docID)
	if err != nil {
		return "", err
	}
	return s.objects.PresignGet(ctx, doc.StoragePath, presignExpiry)
}

func (s *applicationService) findDocument(ctx context.Context, appID, docID int) (*model.Document, error) {
	app, err := s.store.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	for i := range app.Documents {
		if app.Documents[i].ID == docID {
			return &app.Documents[i], nil
		}
	}
	return nil, fmt.Errorf("document %d on application %d: %w", docID, appID, ErrDocumentNotFound)
}

func (s *applicationService) Status(ctx context.Context, id int) (*StatusView, error) {
	app, err := s.store.GetApplication(ctx, id)
	if err != nil {
		return nil, err
	}

	types := make([]model.DocumentType, 0, len(app.Documents))
	seen := make(map[model.DocumentType]bool)
	for _, d := range app.Documents {
		if !seen[d.DeclaredType] {
			seen[d.DeclaredType] = true
			types = append(types, d.DeclaredType)
		}
	}

	return &StatusView{
		ApplicationID:      app.ID,
		Status:             app.Status,
		DocumentsUploaded:  len(app.Documents),
		UploadedTypes:      types,
		ReadyForProcessing: !app.Status.Editable(),
	}, nil
}

func (s *applicationService) Decide(ctx context.Context, id int, approved bool) (*model.Application, error) {
	return s.store.Decide(ctx, id, approved)
}

func (s *applicationService) List(ctx context.Context) ([]*model.Application, error) {
	return s.store.ListApplications(ctx)
}

func (s *applicationService) Stats(ctx context.Context) (*store.Stats, error) {
	return s.store.Stats(ctx)
}

// objectKey builds the storage key for a document. The nonce makes the key
// unique per upload attempt: two concurrent uploads racing for the same
// document slot write distinct objects, so the loser's rollback can never
// delete bytes a persisted record references.
func objectKey(appID, docID int, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return fmt.Sprintf("applications/%d/documents/%d-%s%s", appID, docID, uuid.NewString(), ext)
}
