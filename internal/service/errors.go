package service

import "fmt"

// Stage names the pipeline step a submission failed in. It is surfaced in the
// error envelope so callers can tell "nothing was uploaded" (Validated) from
// "some files uploaded but the record was not updated" (Uploading or
// RecordUpdating).
type Stage string

const (
	StageValidated      Stage = "Validated"
	StageUploading      Stage = "Uploading"
	StageRecordUpdating Stage = "RecordUpdating"
)

// Error codes carried in the failure envelope.
const (
	CodeMissingRecordID      = "MISSING_RECORD_ID"
	CodeMissingFile          = "MISSING_FILE"
	CodeUnsupportedExtension = "UNSUPPORTED_EXTENSION"
	CodeFileTooLarge         = "FILE_TOO_LARGE"
	CodeUploadFailed         = "UPLOAD_FAILED"
	CodeRecordUpdateFailed   = "RECORD_UPDATE_FAILED"
)

// Error is a stage-tagged submission failure.
type Error struct {
	Stage   Stage
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Stage, e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }
