package mocks

import (
	"context"

	"supportapi/internal/chat"
	"supportapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockRouter struct {
	mock.Mock
}

func (m *MockRouter) Respond(ctx context.Context, message string, app *model.Application) chat.Result {
	args := m.Called(ctx, message, app)
	return args.Get(0).(chat.Result)
}
