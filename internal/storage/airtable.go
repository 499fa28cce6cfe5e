package storage

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"docrelay/internal/config"
	"docrelay/internal/model"
)

// AirtableMaxBytes is the hard per-file ceiling of the base64 attachment
// upload API (~5 MiB). It is an API limit, not a policy knob.
const AirtableMaxBytes = 5 << 20

// airtableUploader implements Uploader against the record store's own
// attachment-hosting endpoint. Content is sent base64-encoded, so this
// backend buffers the whole file in memory; the API's 5 MiB cap keeps that
// bounded.
type airtableUploader struct {
	httpClient *http.Client
	baseURL    string
	token      string
	baseID     string
}

// NewAirtable creates an attachment-API uploader sharing the record store's
// token and base.
func NewAirtable(cfg config.RecordStoreConfig) (Uploader, error) {
	if cfg.APIToken == "" || cfg.BaseID == "" {
		return nil, fmt.Errorf("airtable token and base id are required")
	}
	return &airtableUploader{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
		baseID:     cfg.BaseID,
	}, nil
}

type airtableUploadRequest struct {
	File        string `json:"file"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}

type airtableUploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
}

func (a *airtableUploader) Upload(ctx context.Context, file *model.IncomingFile, recordID string, docType model.DocumentType) (model.UploadedAttachment, error) {
	r, err := file.Open()
	if err != nil {
		return model.UploadedAttachment{}, fmt.Errorf("open incoming file: %w", err)
	}
	defer r.Close()

	raw, err := io.ReadAll(r)
	if err != nil {
		return model.UploadedAttachment{}, fmt.Errorf("read incoming file: %w", err)
	}

	name := DeriveFilename(file.Filename, recordID, docType)
	contentType := file.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	body, err := json.Marshal(airtableUploadRequest{
		File:        base64.StdEncoding.EncodeToString(raw),
		Filename:    name,
		ContentType: contentType,
	})
	if err != nil {
		return model.UploadedAttachment{}, fmt.Errorf("encode upload request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v0/bases/%s/attachments/upload", a.baseURL, url.PathEscape(a.baseID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return model.UploadedAttachment{}, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return model.UploadedAttachment{}, &UploadError{Backend: a.Name(), Status: 0, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.UploadedAttachment{}, &UploadError{Backend: a.Name(), Status: resp.StatusCode, Message: string(text)}
	}

	var out airtableUploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.UploadedAttachment{}, &UploadError{Backend: a.Name(), Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if out.URL == "" {
		return model.UploadedAttachment{}, &UploadError{Backend: a.Name(), Status: resp.StatusCode, Message: "upload response carried no url"}
	}
	if out.Filename == "" {
		out.Filename = name
	}

	return model.UploadedAttachment{Filename: out.Filename, URL: out.URL}, nil
}

func (a *airtableUploader) MaxBytes() int64 { return AirtableMaxBytes }

func (a *airtableUploader) Name() string { return "airtable" }
