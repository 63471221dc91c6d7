package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"supportapi/internal/model"
	"supportapi/internal/persist"
)

// Stats is an aggregate view over all application records.
type Stats struct {
	TotalApplications int                  `json:"total_applications"`
	TotalDocuments    int                  `json:"total_documents"`
	ByStatus          map[model.Status]int `json:"by_status"`
}

// Store is the authoritative application record store. Every mutation is
// written through to the persister before it is acknowledged; on a failed
// save the in-memory change is rolled back and the error returned, so memory
// and disk never disagree. All returned records are clones.
type Store interface {
	CreateApplication(ctx context.Context, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error)
	GetApplication(ctx context.Context, id int) (*model.Application, error)
	UpdateApplication(ctx context.Context, id int, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error)
	AppendDocument(ctx context.Context, appID int, doc model.Document) (*model.Application, error)
	Decide(ctx context.Context, id int, approved bool) (*model.Application, error)
	ListApplications(ctx context.Context) ([]*model.Application, error)
	Stats(ctx context.Context) (*Stats, error)
}

type recordStore struct {
	mu        sync.Mutex
	apps      map[int]*model.Application
	counter   int
	persister persist.Persister
	required  map[model.DocumentType]bool
}

// DefaultRequiredDocumentTypes is the document set that moves an application
// into processing when no policy is configured.
var DefaultRequiredDocumentTypes = []string{
	string(model.DocIdentityProof),
	string(model.DocBankStatement),
}

// NewRecordStore loads the persisted snapshot and returns a store over it.
// requiredTypes is the declared-type set that triggers the automatic move to
// processing; when empty the default policy applies.
func NewRecordStore(ctx context.Context, p persist.Persister, requiredTypes []string) (Store, error) {
	snap, err := p.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}

	if len(requiredTypes) == 0 {
		requiredTypes = DefaultRequiredDocumentTypes
	}
	required := make(map[model.DocumentType]bool, len(requiredTypes))
	for _, t := range requiredTypes {
		required[model.DocumentType(t)] = true
	}

	return &recordStore{
		apps:      snap.Applications,
		counter:   snap.Counter,
		persister: p,
		required:  required,
	}, nil
}

// save writes the current in-memory state through to the persister. Callers
// hold the lock and roll back their staged change if it fails.
func (s *recordStore) save(ctx context.Context) error {
	return s.persister.Save(ctx, &persist.Snapshot{
		Applications: s.apps,
		Counter:      s.counter,
	})
}

func (s *recordStore) CreateApplication(ctx context.Context, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	app := &model.Application{
		ID:            s.counter,
		PersonalInfo:  info,
		MonthlyIncome: income,
		ProgramType:   program,
		Status:        model.StatusSubmitted,
		Documents:     []model.Document{},
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	s.apps[app.ID] = app
	s.counter++

	if err := s.save(ctx); err != nil {
		delete(s.apps, app.ID)
		s.counter--
		return nil, fmt.Errorf("persist application: %w", err)
	}
	return app.Clone(), nil
}

func (s *recordStore) GetApplication(ctx context.Context, id int) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	return app.Clone(), nil
}

func (s *recordStore) UpdateApplication(ctx context.Context, id int, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}
	if !prev.Status.Editable() {
		return nil, fmt.Errorf("update application %d in status %s: %w", id, prev.Status, ErrInvalidState)
	}

	next := prev.Clone()
	next.PersonalInfo = info
	next.MonthlyIncome = income
	next.ProgramType = program
	next.UpdatedAt = time.Now().UTC()

	s.apps[id] = next
	if err := s.save(ctx); err != nil {
		s.apps[id] = prev
		return nil, fmt.Errorf("persist application: %w", err)
	}
	return next.Clone(), nil
}

// AppendDocument attaches a document descriptor to an application. The
// caller pre-assigns doc.ID (it names the already-written storage object);
// if another writer claimed that slot first the append fails with
// ErrConflict so the caller can roll back the object. When the attached
// declared-type set covers the required policy the application advances to
// processing automatically; otherwise a submitted application moves to
// documents_pending.
func (s *recordStore) AppendDocument(ctx context.Context, appID int, doc model.Document) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.apps[appID]
	if !ok {
		return nil, ErrNotFound
	}
	if !prev.Status.Editable() {
		return nil, fmt.Errorf("upload to application %d in status %s: %w", appID, prev.Status, ErrInvalidState)
	}
	if doc.ID != len(prev.Documents)+1 {
		return nil, fmt.Errorf("document slot %d already taken on application %d: %w", doc.ID, appID, ErrConflict)
	}

	next := prev.Clone()
	doc.ApplicationID = appID
	if doc.UploadedAt.IsZero() {
		doc.UploadedAt = time.Now().UTC()
	}
	next.Documents = append(next.Documents, doc)
	next.UpdatedAt = time.Now().UTC()

	types := next.DocumentTypes()
	complete := true
	for t := range s.required {
		if !types[t] {
			complete = false
			break
		}
	}
	switch {
	case complete && next.Status.CanTransitionTo(model.StatusProcessing):
		next.Status = model.StatusProcessing
	case next.Status == model.StatusSubmitted:
		next.Status = model.StatusDocumentsPending
	}

	s.apps[appID] = next
	if err := s.save(ctx); err != nil {
		s.apps[appID] = prev
		return nil, fmt.Errorf("persist application: %w", err)
	}
	return next.Clone(), nil
}

func (s *recordStore) Decide(ctx context.Context, id int, approved bool) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.apps[id]
	if !ok {
		return nil, ErrNotFound
	}

	outcome := model.StatusDeclined
	if approved {
		outcome = model.StatusApproved
	}
	if !prev.Status.CanTransitionTo(outcome) {
		return nil, fmt.Errorf("decide application %d in status %s: %w", id, prev.Status, ErrInvalidState)
	}

	now := time.Now().UTC()
	next := prev.Clone()
	next.Status = outcome
	next.UpdatedAt = now
	next.ProcessedAt = &now

	s.apps[id] = next
	if err := s.save(ctx); err != nil {
		s.apps[id] = prev
		return nil, fmt.Errorf("persist application: %w", err)
	}
	return next.Clone(), nil
}

func (s *recordStore) ListApplications(ctx context.Context) ([]*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]*model.Application, 0, len(s.apps))
	for _, app := range s.apps {
		out = append(out, app.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *recordStore) Stats(ctx context.Context) (*Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := &Stats{ByStatus: make(map[model.Status]int)}
	for _, app := range s.apps {
		stats.TotalApplications++
		stats.TotalDocuments += len(app.Documents)
		stats.ByStatus[app.Status]++
	}
	return stats, nil
}
