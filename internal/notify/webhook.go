package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"docrelay/internal/model"
)

// Summary is the flat JSON payload relayed to the automation webhook after a
// successful submission.
type Summary struct {
	RecordID          string `json:"recordId"`
	CandidateEmail    string `json:"candidateEmail,omitempty"`
	CandidateName     string `json:"candidateName,omitempty"`
	CandidatePhone    string `json:"candidatePhone,omitempty"`
	Position          string `json:"position,omitempty"`
	Department        string `json:"department,omitempty"`
	StartDate         string `json:"startDate,omitempty"`
	IdentityProofURL  string `json:"identityProofUrl,omitempty"`
	AddressProofURL   string `json:"addressProofUrl,omitempty"`
	OfferLetterURL    string `json:"offerLetterUrl,omitempty"`
	SubmissionTime    string `json:"submissionTime"`
	DocumentsUploaded bool   `json:"documentsUploaded"`
}

// NewSummary builds the webhook payload from a candidate and the uploaded
// attachment set.
func NewSummary(c model.Candidate, attachments map[model.DocumentType]model.UploadedAttachment, at time.Time) Summary {
	return Summary{
		RecordID:          c.RecordID,
		CandidateEmail:    c.Email,
		CandidateName:     c.Name,
		CandidatePhone:    c.Phone,
		Position:          c.Position,
		Department:        c.Department,
		StartDate:         c.StartDate,
		IdentityProofURL:  attachments[model.DocumentIdentity].URL,
		AddressProofURL:   attachments[model.DocumentAddress].URL,
		OfferLetterURL:    attachments[model.DocumentOffer].URL,
		SubmissionTime:    at.UTC().Format(time.RFC3339),
		DocumentsUploaded: true,
	}
}

// Forwarder relays a submission summary to an external automation hook.
// Failures never fail the submission; the orchestrator logs and moves on.
type Forwarder interface {
	Forward(ctx context.Context, s Summary) error
}

type webhookForwarder struct {
	httpClient *http.Client
	url        string
}

// NewWebhook creates a Forwarder posting to the given URL.
func NewWebhook(url string) Forwarder {
	return &webhookForwarder{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		url:        url,
	}
}

func (w *webhookForwarder) Forward(ctx context.Context, s Summary) error {
	body, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode webhook payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, text)
	}
	return nil
}

// Noop is a Forwarder used when no webhook URL is configured.
type Noop struct{}

func (Noop) Forward(context.Context, Summary) error { return nil }
