package model

// Candidate holds the metadata fields posted alongside the documents.
// RecordID addresses the row in the external record store and is the only
// required field.
type Candidate struct {
	RecordID   string `json:"recordId"`
	Email      string `json:"candidateEmail,omitempty"`
	Name       string `json:"candidateName,omitempty"`
	Phone      string `json:"candidatePhone,omitempty"`
	Position   string `json:"position,omitempty"`
	Department string `json:"department,omitempty"`
	StartDate  string `json:"startDate,omitempty"`
}

// Submission is one parsed multipart request: candidate metadata plus the
// three document slots. A slot maps to nil when the part was absent.
type Submission struct {
	Candidate Candidate
	Files     map[DocumentType]*IncomingFile
}

// ReleaseFiles releases every file's temporary storage and returns any
// release errors. Callers log these; they are never propagated.
func (s *Submission) ReleaseFiles() []error {
	var errs []error
	for _, f := range s.Files {
		if f == nil || f.Release == nil {
			continue
		}
		if err := f.Release(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

// Record status values written by the relay.
const (
	StatusPending            = "Pending"
	StatusDocumentsSubmitted = "Documents Submitted"
)
