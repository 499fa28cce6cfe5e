package record

import (
	"context"
	"fmt"

	"docrelay/internal/model"
)

// Package record contains the client for the external no-code record store
// holding one row per candidate. The relay only ever issues a single
// field-merge per submission; it never creates or deletes rows.

// Updater applies uploaded attachment references plus a status transition to
// one record, as one atomic request.
type Updater interface {
	// Update patches the record with the given status and the attachment
	// fields present in the map. Exactly one call per submission.
	Update(ctx context.Context, recordID string, attachments map[model.DocumentType]model.UploadedAttachment, status string) (*UpdateResult, error)

	// Get fetches one record's fields. Used by debug endpoints.
	Get(ctx context.Context, recordID string) (map[string]any, error)

	// Ping issues a minimal read to verify the store is reachable and the
	// token is valid. Used by the health endpoint.
	Ping(ctx context.Context) error
}

// UpdateResult reports what the store acknowledged.
type UpdateResult struct {
	RecordID string         `json:"id"`
	Fields   map[string]any `json:"fields"`
}

// UpdateError reports a rejected patch (record not found, auth failure,
// malformed field). Err carries the underlying transport error, if any, so
// timeouts stay visible to errors.Is up the chain.
type UpdateError struct {
	Status int
	Body   string
	Err    error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("record update failed: status %d: %s", e.Status, e.Body)
}

func (e *UpdateError) Unwrap() error { return e.Err }
