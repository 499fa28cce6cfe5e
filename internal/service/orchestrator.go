package service

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"docrelay/internal/model"
	"docrelay/internal/notify"
	"docrelay/internal/record"
	"docrelay/internal/storage"
)

// Result is the success envelope for one handled submission. No partial
// success exists: either all three documents were uploaded and the record was
// patched, or Handle returns a stage-tagged *Error.
type Result struct {
	RecordID          string          `json:"recordId"`
	DocumentsUploaded map[string]bool `json:"documentsUploaded"`
}

// SubmissionService drives one submission through validation, the three
// concurrent uploads, the single record patch, and the best-effort
// notification.
type SubmissionService interface {
	Handle(ctx context.Context, sub *model.Submission) (*Result, error)
}

type submissionService struct {
	uploader  storage.Uploader
	records   record.Updater
	forwarder notify.Forwarder
	metrics   *Metrics
	logw      io.Writer
	now       func() time.Time
}

// Option configures a SubmissionService.
type Option func(*submissionService)

// WithMetrics attaches pipeline counters.
func WithMetrics(m *Metrics) Option {
	return func(s *submissionService) { s.metrics = m }
}

// WithLogWriter redirects the service's JSON log lines (used in tests).
func WithLogWriter(w io.Writer) Option {
	return func(s *submissionService) { s.logw = w }
}

// NewSubmissionService constructs the orchestrator over an injected uploader
// backend, record-store client, and notification forwarder.
func NewSubmissionService(up storage.Uploader, rec record.Updater, fwd notify.Forwarder, opts ...Option) SubmissionService {
	s := &submissionService{
		uploader:  up,
		records:   rec,
		forwarder: fwd,
		logw:      os.Stdout,
		now:       time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *submissionService) Handle(ctx context.Context, sub *model.Submission) (*Result, error) {
	// Temporary file storage never survives the request, success or failure.
	defer func() {
		for _, err := range sub.ReleaseFiles() {
			s.log("warn", "temp_file_release_failed", map[string]any{
				"record_id": sub.Candidate.RecordID,
				"error":     err.Error(),
			})
		}
	}()

	if err := s.validate(sub); err != nil {
		s.metrics.submission("failure", StageValidated)
		return nil, err
	}

	attachments, err := s.uploadAll(ctx, sub)
	if err != nil {
		s.log("error", "upload_failed", map[string]any{
			"record_id": sub.Candidate.RecordID,
			"error":     err.Error(),
		})
		s.metrics.submission("failure", StageUploading)
		return nil, &Error{
			Stage:   StageUploading,
			Code:    CodeUploadFailed,
			Message: err.Error(),
			Err:     err,
		}
	}

	// Exactly one field-merge per submission, only after all three uploads
	// succeeded. Re-submissions patch the same record again: last write wins.
	if _, err := s.records.Update(ctx, sub.Candidate.RecordID, attachments, model.StatusDocumentsSubmitted); err != nil {
		s.log("error", "record_update_failed", map[string]any{
			"record_id": sub.Candidate.RecordID,
			"error":     err.Error(),
		})
		s.metrics.submission("failure", StageRecordUpdating)
		return nil, &Error{
			Stage:   StageRecordUpdating,
			Code:    CodeRecordUpdateFailed,
			Message: err.Error(),
			Err:     err,
		}
	}

	// Notification is best-effort: a failure here is a warning, never a
	// failure of the submission.
	if err := s.forwarder.Forward(ctx, notify.NewSummary(sub.Candidate, attachments, s.now())); err != nil {
		s.log("warn", "notification_failed", map[string]any{
			"record_id": sub.Candidate.RecordID,
			"error":     err.Error(),
		})
	}

	s.metrics.submission("success", "")

	uploaded := make(map[string]bool, len(model.DocumentTypes))
	for _, dt := range model.DocumentTypes {
		_, ok := attachments[dt]
		uploaded[dt.FormField()] = ok
	}
	return &Result{RecordID: sub.Candidate.RecordID, DocumentsUploaded: uploaded}, nil
}

// validate performs all checks before any network I/O. Any failure means
// zero uploads happen.
func (s *submissionService) validate(sub *model.Submission) *Error {
	if strings.TrimSpace(sub.Candidate.RecordID) == "" {
		return &Error{
			Stage:   StageValidated,
			Code:    CodeMissingRecordID,
			Message: "recordId is required",
		}
	}

	var rejections []*Rejection
	for _, dt := range model.DocumentTypes {
		policy := PolicyFor(dt, s.uploader.MaxBytes())
		if rej := ValidateFile(sub.Files[dt], dt, policy); rej != nil {
			rejections = append(rejections, rej)
		}
	}
	if len(rejections) == 0 {
		return nil
	}

	details := make([]string, len(rejections))
	for i, r := range rejections {
		details[i] = r.Detail
	}
	return &Error{
		Stage:   StageValidated,
		Code:    rejections[0].code(),
		Message: strings.Join(details, "; "),
	}
}

// uploadAll fans the three uploads out concurrently and joins on all of them.
// The uploads are independent; a failure in one does not interrupt the
// others, but the first error aborts the submission. Completed sibling
// uploads are not rolled back.
func (s *submissionService) uploadAll(ctx context.Context, sub *model.Submission) (map[model.DocumentType]model.UploadedAttachment, error) {
	var (
		mu          sync.Mutex
		attachments = make(map[model.DocumentType]model.UploadedAttachment, len(model.DocumentTypes))
	)

	g := new(errgroup.Group)
	for _, dt := range model.DocumentTypes {
		dt := dt
		g.Go(func() error {
			att, err := s.uploader.Upload(ctx, sub.Files[dt], sub.Candidate.RecordID, dt)
			if err != nil {
				s.metrics.upload(s.uploader.Name(), string(dt), "failure")
				return err
			}
			s.metrics.upload(s.uploader.Name(), string(dt), "success")
			mu.Lock()
			attachments[dt] = att
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return attachments, nil
}

func (s *submissionService) log(level, msg string, fields map[string]any) {
	entry := map[string]any{
		"ts":    time.Now().UTC().Format(time.RFC3339Nano),
		"level": level,
		"msg":   msg,
	}
	for k, v := range fields {
		entry[k] = v
	}
	if b, err := json.Marshal(entry); err == nil {
		b = append(b, '\n')
		_, _ = s.logw.Write(b)
	}
}
