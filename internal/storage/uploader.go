package storage

import (
	"context"
	"fmt"

	"docrelay/internal/model"
)

// Package storage contains the attachment upload abstraction and its backend
// implementations (S3-compatible object storage, attachment-hosting API, blob
// store). All backends consume the incoming file exactly once and return a
// durable reference; temporary file storage is released by the caller.

// Uploader uploads one validated file for a record/document-type pair and
// returns a stable reference to the stored copy.
type Uploader interface {
	// Upload stores the file under a name derived from recordID and docType.
	// The same pair always maps to the same key, so re-submissions overwrite.
	Upload(ctx context.Context, file *model.IncomingFile, recordID string, docType model.DocumentType) (model.UploadedAttachment, error)

	// MaxBytes is the per-file ceiling this backend accepts. Validation
	// policy is derived from it so limits live with the backend, not in
	// scattered literals.
	MaxBytes() int64

	// Name identifies the backend in logs and metrics.
	Name() string
}

// UploadError reports a non-success response from the backing store. Err
// carries the underlying transport error, if any, so timeouts stay visible
// to errors.Is up the chain.
type UploadError struct {
	Backend string
	Status  int
	Message string
	Err     error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("%s upload failed: status %d: %s", e.Backend, e.Status, e.Message)
}

func (e *UploadError) Unwrap() error { return e.Err }
