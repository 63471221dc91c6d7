package mocks

import (
	"context"

	"supportapi/internal/persist"

	"github.com/stretchr/testify/mock"
)

type MockPersister struct {
	mock.Mock
}

func (m *MockPersister) Load(ctx context.Context) (*persist.Snapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*persist.Snapshot), args.Error(1)
}

func (m *MockPersister) Save(ctx context.Context, snap *persist.Snapshot) error {
	args := m.Called(ctx, snap)
	return args.Error(0)
}
