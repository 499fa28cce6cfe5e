package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"docrelay/internal/config"
	"docrelay/internal/model"
)

// blobUploader implements Uploader against a generic token-authenticated blob
// store: PUT the bytes under the derived path, the store answers with the
// hosted URL.
type blobUploader struct {
	httpClient *http.Client
	endpoint   string
	token      string
	maxBytes   int64
}

// NewBlob creates a blob-store uploader.
func NewBlob(cfg config.BlobConfig, maxBytes int64) (Uploader, error) {
	if cfg.Endpoint == "" || cfg.Token == "" {
		return nil, fmt.Errorf("blob endpoint and token are required")
	}
	return &blobUploader{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		endpoint:   cfg.Endpoint,
		token:      cfg.Token,
		maxBytes:   maxBytes,
	}, nil
}

type blobPutResponse struct {
	URL      string `json:"url"`
	Pathname string `json:"pathname"`
}

func (b *blobUploader) Upload(ctx context.Context, file *model.IncomingFile, recordID string, docType model.DocumentType) (model.UploadedAttachment, error) {
	r, err := file.Open()
	if err != nil {
		return model.UploadedAttachment{}, fmt.Errorf("open incoming file: %w", err)
	}
	defer r.Close()

	name := DeriveFilename(file.Filename, recordID, docType)

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, b.endpoint+"/"+url.PathEscape(name), r)
	if err != nil {
		return model.UploadedAttachment{}, err
	}
	req.ContentLength = file.Size
	req.Header.Set("Authorization", "Bearer "+b.token)
	if file.ContentType != "" {
		req.Header.Set("Content-Type", file.ContentType)
	}

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return model.UploadedAttachment{}, &UploadError{Backend: b.Name(), Status: 0, Message: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return model.UploadedAttachment{}, &UploadError{Backend: b.Name(), Status: resp.StatusCode, Message: string(text)}
	}

	var out blobPutResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return model.UploadedAttachment{}, &UploadError{Backend: b.Name(), Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
	}
	if out.URL == "" {
		return model.UploadedAttachment{}, &UploadError{Backend: b.Name(), Status: resp.StatusCode, Message: "blob response carried no url"}
	}

	return model.UploadedAttachment{Filename: name, URL: out.URL}, nil
}

func (b *blobUploader) MaxBytes() int64 { return b.maxBytes }

func (b *blobUploader) Name() string { return "blob" }
