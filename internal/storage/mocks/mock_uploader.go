package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"docrelay/internal/model"
)

type MockUploader struct {
	mock.Mock
}

func (m *MockUploader) Upload(ctx context.Context, file *model.IncomingFile, recordID string, docType model.DocumentType) (model.UploadedAttachment, error) {
	args := m.Called(ctx, file, recordID, docType)
	return args.Get(0).(model.UploadedAttachment), args.Error(1)
}

func (m *MockUploader) MaxBytes() int64 {
	args := m.Called()
	return args.Get(0).(int64)
}

func (m *MockUploader) Name() string {
	args := m.Called()
	return args.String(0)
}
