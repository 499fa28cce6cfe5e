package record

import (
	"bytes"
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

// airtableClient implements Updater over the record store's REST API:
// PATCH /v0/{base}/{table}/{record} with a fields object merges into the
// existing row, so a re-submission simply overwrites the attachment fields.
type airtableClient struct {
	httpClient *http.Client
	baseURL    string
	token      string
	baseID     string
	tableID    string
}

// New creates a record-store client from configuration.
func New(cfg config.RecordStoreConfig) (Updater, error) {
	if cfg.APIToken == "" || cfg.BaseID == "" || cfg.TableID == "" {
		return nil, fmt.Errorf("record store token, base id, and table id are required")
	}
	return &airtableClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    cfg.BaseURL,
		token:      cfg.APIToken,
		baseID:     cfg.BaseID,
		tableID:    cfg.TableID,
	}, nil
}

// documentsSubmittedField is the boolean flag set alongside the status enum.
const documentsSubmittedField = "Documents Submitted"

func (a *airtableClient) recordURL(recordID string) string {
	return fmt.Sprintf("%s/v0/%s/%s/%s",
		a.baseURL,
		url.PathEscape(a.baseID),
		url.PathEscape(a.tableID),
		url.PathEscape(recordID),
	)
}

func (a *airtableClient) Update(ctx context.Context, recordID string, attachments map[model.DocumentType]model.UploadedAttachment, status string) (*UpdateResult, error) {
	fields := map[string]any{
		"Status":                status,
		documentsSubmittedField: true,
	}
	// Only the attachment fields actually produced are merged; absent slots
	// are left untouched rather than cleared.
	for _, dt := range model.DocumentTypes {
		if att, ok := attachments[dt]; ok {
			fields[dt.RecordField()] = []model.UploadedAttachment{att}
		}
	}

	body, err := json.Marshal(map[string]any{"fields": fields})
	if err != nil {
		return nil, fmt.Errorf("encode record patch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, a.recordURL(recordID), bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &UpdateError{Status: 0, Body: err.Error(), Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpdateError{Status: resp.StatusCode, Body: string(text)}
	}

	var out UpdateResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &UpdateError{Status: resp.StatusCode, Body: fmt.Sprintf("decode response: %v", err)}
	}
	return &out, nil
}

// Ping lists a single row, the cheapest authenticated call the store offers.
func (a *airtableClient) Ping(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/v0/%s/%s?maxRecords=1",
		a.baseURL, url.PathEscape(a.baseID), url.PathEscape(a.tableID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &UpdateError{Status: resp.StatusCode, Body: string(text)}
	}
	return nil
}

func (a *airtableClient) Get(ctx context.Context, recordID string) (map[string]any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.recordURL(recordID), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+a.token)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &UpdateError{Status: resp.StatusCode, Body: string(text)}
	}

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, err
	}
	return out, nil
}
