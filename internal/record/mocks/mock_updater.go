package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docrelay/internal/model"
	"docrelay/internal/record"
)

type MockUpdater struct {
	mock.Mock
}

func (m *MockUpdater) Update(ctx context.Context, recordID string, attachments map[model.DocumentType]model.UploadedAttachment, status string) (*record.UpdateResult, error) {
	args := m.Called(ctx, recordID, attachments, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.UpdateResult), args.Error(1)
}

func (m *MockUpdater) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUpdater) Get(ctx context.Context, recordID string) (map[string]any, error) {
	args := m.Called(ctx, recordID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}
