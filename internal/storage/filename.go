package storage

import (
	"fmt"
	"regexp"
	"strings"

	"docrelay/internal/model"
)

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._()\- ]+`)

// DeriveFilename builds the stored object name for a record/document-type
// pair: sanitize the original name, collapse an accidental duplicated
// extension (".pdf.pdf" → ".pdf"), then key on recordID and slot so the name
// is predictable and unique per pair. Files with no usable extension are
// stored as ".bin".
func DeriveFilename(original, recordID string, docType model.DocumentType) string {
	name := original
	if name == "" {
		name = "file"
	}
	name = unsafeChars.ReplaceAllString(name, "_")
	name = collapseDuplicateExt(name)

	ext := ""
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		ext = strings.ToLower(name[i+1:])
	}
	if ext == "" {
		ext = "bin"
	}
	return fmt.Sprintf("%s_%s.%s", recordID, docType, ext)
}

// collapseDuplicateExt drops the trailing extension when it repeats the one
// before it, comparing case-insensitively. Compound extensions like .tar.gz
// are left alone.
func collapseDuplicateExt(name string) string {
	parts := strings.Split(name, ".")
	if len(parts) < 3 {
		return name
	}
	last := parts[len(parts)-1]
	prev := parts[len(parts)-2]
	if last != "" && strings.EqualFold(last, prev) {
		return strings.Join(parts[:len(parts)-1], ".")
	}
	return name
}
