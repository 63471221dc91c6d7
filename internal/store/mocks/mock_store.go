package mocks

import (
	"context"

	"supportapi/internal/model"
	"supportapi/internal/store"

	"github.com/stretchr/testify/mock"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) CreateApplication(ctx context.Context, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error) {
	args := m.Called(ctx, info, income, program)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockStore) GetApplication(ctx context.Context, id int) (*model.Application, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockStore) UpdateApplication(ctx context.Context, id int, info model.PersonalInfo, income float64, program model.ProgramType) (*model.Application, error) {
	args := m.Called(ctx, id, info, income, program)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockStore) AppendDocument(ctx context.Context, appID int, doc model.Document) (*model.Application, error) {
	args := m.Called(ctx, appID, doc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockStore) Decide(ctx context.Context, id int, approved bool) (*model.Application, error) {
	args := m.Called(ctx, id, approved)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Application), args.Error(1)
}

func (m *MockStore) ListApplications(ctx context.Context) ([]*model.Application, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Application), args.Error(1)
}

func (m *MockStore) Stats(ctx context.Context) (*store.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*store.Stats), args.Error(1)
}
