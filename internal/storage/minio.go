package storage

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"docrelay/internal/config"
	"docrelay/internal/model"
)

// minioUploader implements Uploader against an S3-compatible backend
// (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioUploader struct {
	client        *minio.Client
	bucket        string
	maxBytes      int64
	presignExpiry time.Duration
}

// NewMinIO creates an object-storage uploader backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig, maxBytes int64) (Uploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	mu := &minioUploader{
		client:        cli,
		bucket:        cfg.Bucket,
		maxBytes:      maxBytes,
		presignExpiry: time.Duration(cfg.PresignExpiry) * time.Second,
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return mu, nil
}

// Upload streams the file content to object storage under the derived key and
// returns a presigned GET URL as the durable reference.
func (m *minioUploader) Upload(ctx context.Context, file *model.IncomingFile, recordID string, docType model.DocumentType) (model.UploadedAttachment, error) {
	r, err := file.Open()
	if err != nil {
		return model.UploadedAttachment{}, fmt.Errorf("open incoming file: %w", err)
	}
	defer r.Close()

	key := DeriveFilename(file.Filename, recordID, docType)

	_, err = m.client.PutObject(ctx, m.bucket, key, r, file.Size, minio.PutObjectOptions{
		ContentType: file.ContentType,
		UserMetadata: map[string]string{
			"original-filename": file.Filename,
			"document-type":     string(docType),
			"upload-date":       time.Now().UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		status := 0
		if resp := minio.ToErrorResponse(err); resp.StatusCode != 0 {
			status = resp.StatusCode
		}
		return model.UploadedAttachment{}, &UploadError{Backend: m.Name(), Status: status, Message: err.Error(), Err: err}
	}

	u, err := m.client.PresignedGetObject(ctx, m.bucket, key, m.presignExpiry, url.Values{})
	if err != nil {
		return model.UploadedAttachment{}, &UploadError{Backend: m.Name(), Status: 0, Message: fmt.Sprintf("presign: %v", err), Err: err}
	}

	return model.UploadedAttachment{Filename: key, URL: u.String()}, nil
}

func (m *minioUploader) MaxBytes() int64 { return m.maxBytes }

func (m *minioUploader) Name() string { return "s3" }
