package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docrelay/internal/model"
	"docrelay/internal/service"
)

type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) Handle(ctx context.Context, sub *model.Submission) (*service.Result, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Result), args.Error(1)
}
