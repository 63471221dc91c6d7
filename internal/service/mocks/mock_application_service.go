package mocks

import (
	"context"
	"io"

	"supportapi/internal/model"
	"supportapi/internal/service"
	"supportapi/internal/store"

	"github.com/stretchr/testify/mock"
)

type MockApplicationService struct {
	mock.Mock
}

func (m *MockApplicationService) Submit(ctx context.Context, req service.SubmitRequest) (*model.Application, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Get(ctx context.Context, id int) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) Update(ctx context.Context, id int, req service.SubmitRequest) (*model.Application, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) UploadDocument(ctx context.Context, appID int, r io.Reader, filename, declaredType, contentType string, size int64) (*model.Application, error) {
	args := m.Called(ctx, appID, r, filename, declaredType, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) OpenDocument(ctx context.Context, appID, docID int) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, appID, docID)
	var rc io.ReadCloser
	if args.Get(0) != nil {
		rc = args.Get(0).(io.ReadCloser)
	}
	var doc *model.Document
	if args.Get(1) != nil {
		doc = args.Get(1).(*model.Document)
	}
	return rc, doc, args.Error(2)
}

func (m *MockApplicationService) DocumentURL(ctx context.Context, appID, docID int) (string, error) {
	args := m.Called(ctx, appID, docID)
	return args.String(0), args.Error(1)
}

func (m *MockApplicationService) Status(ctx context.Context, id int) (*service.StatusView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.StatusView), args.Error(1)
}

func (m *MockApplicationService) Decide(ctx context.Context, id int, approved bool) (*model.Application, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockApplicationService) List(ctx context.Context) ([]*model.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Application), args.Error(1)
}

func (m *MockApplicationService) Stats(ctx context.Context) (*store.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Stats), args.Error(1)
}
