package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docrelay/internal/notify"
)

type MockForwarder struct {
	mock.Mock
}

func (m *MockForwarder) Forward(ctx context.Context, s notify.Summary) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}
