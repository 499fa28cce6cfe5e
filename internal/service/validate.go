package service

import (
	"fmt"
	"strings"

	"docrelay/internal/model"
)

// RejectReason classifies why a file failed validation.
type RejectReason string

const (
	ReasonMissingFile          RejectReason = "MissingFile"
	ReasonUnsupportedExtension RejectReason = "UnsupportedExtension"
	ReasonTooLarge             RejectReason = "TooLarge"
)

// Policy is the per-slot validation contract: an allowed extension set and a
// byte ceiling. Checks are pure; no network I/O happens here.
type Policy struct {
	AllowedExtensions map[string]bool
	MaxBytes          int64
}

// PolicyFor returns the validation policy for a document slot. Proof slots
// accept scans and photos; the offer letter must be the signed PDF. The byte
// ceiling comes from the active backend.
func PolicyFor(docType model.DocumentType, maxBytes int64) Policy {
	exts := map[string]bool{"pdf": true, "jpg": true, "jpeg": true, "png": true}
	if docType == model.DocumentOffer {
		exts = map[string]bool{"pdf": true}
	}
	return Policy{AllowedExtensions: exts, MaxBytes: maxBytes}
}

// Rejection describes one failed slot. A nil Rejection means accept.
type Rejection struct {
	DocType model.DocumentType
	Reason  RejectReason
	Detail  string
}

func (r *Rejection) code() string {
	switch r.Reason {
	case ReasonMissingFile:
		return CodeMissingFile
	case ReasonUnsupportedExtension:
		return CodeUnsupportedExtension
	case ReasonTooLarge:
		return CodeFileTooLarge
	}
	return "VALIDATION_ERROR"
}

// ValidateFile checks one slot against its policy. The size check is strictly
// greater-than: a file exactly at the ceiling passes.
func ValidateFile(f *model.IncomingFile, docType model.DocumentType, p Policy) *Rejection {
	if f == nil {
		return &Rejection{
			DocType: docType,
			Reason:  ReasonMissingFile,
			Detail:  fmt.Sprintf("%s file part is required", docType.FormField()),
		}
	}

	ext := ""
	if i := strings.LastIndex(f.Filename, "."); i >= 0 && i < len(f.Filename)-1 {
		ext = strings.ToLower(f.Filename[i+1:])
	}
	if !p.AllowedExtensions[ext] {
		return &Rejection{
			DocType: docType,
			Reason:  ReasonUnsupportedExtension,
			Detail:  fmt.Sprintf("%s: extension %q is not allowed (want one of %s)", docType.FormField(), ext, extList(p.AllowedExtensions)),
		}
	}

	if f.Size > p.MaxBytes {
		return &Rejection{
			DocType: docType,
			Reason:  ReasonTooLarge,
			Detail:  fmt.Sprintf("%s: %d bytes exceeds the %d byte limit", docType.FormField(), f.Size, p.MaxBytes),
		}
	}

	return nil
}

func extList(exts map[string]bool) string {
	out := make([]string, 0, len(exts))
	for _, e := range []string{"pdf", "jpg", "jpeg", "png"} {
		if exts[e] {
			out = append(out, e)
		}
	}
	return strings.Join(out, ", ")
}
