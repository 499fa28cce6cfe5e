package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend identifiers selectable via STORAGE_BACKEND.
const (
	BackendS3       = "s3"
	BackendAirtable = "airtable"
	BackendBlob     = "blob"
)

// MinIOConfig holds object storage settings for the S3-compatible backend.
type MinIOConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PresignExpiry int // seconds; durable-URL lifetime for uploaded objects
}

// RecordStoreConfig holds the Airtable-style record store settings. The same
// token and base also drive the attachment-upload backend.
type RecordStoreConfig struct {
	APIToken string
	BaseURL  string
	BaseID   string
	TableID  string
}

// BlobConfig holds settings for the generic blob-store backend.
type BlobConfig struct {
	Endpoint string
	Token    string
}

// AppConfig is the centralized configuration struct for the application.
// It is populated from environment variables. Sensitive values are not hardcoded.
type AppConfig struct {
	Port             string
	CORSAllowOrigins string

	// StorageBackend selects the active uploader: s3, airtable, or blob.
	StorageBackend string

	// MaxUploadBytes is the per-file ceiling for the s3 and blob backends.
	// The airtable backend carries its own hard API limit.
	MaxUploadBytes int64

	MinIO       MinIOConfig
	RecordStore RecordStoreConfig
	Blob        BlobConfig

	// WebhookURL receives the best-effort submission summary. Optional.
	WebhookURL string
}

const defaultMaxUploadBytes = 10 << 20

// Load reads configuration from environment variables.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
// This function does not require a .env file; real environment variables take precedence.
func Load() *AppConfig {
	return &AppConfig{
		Port:             getEnv("PORT", "8080"),
		CORSAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		StorageBackend:   getEnv("STORAGE_BACKEND", BackendAirtable),
		MaxUploadBytes:   getEnvInt64("MAX_UPLOAD_BYTES", defaultMaxUploadBytes),
		MinIO: MinIOConfig{
			Endpoint:      getEnv("MINIO_ENDPOINT", ""),
			AccessKey:     getEnv("MINIO_ACCESS_KEY", ""),
			SecretKey:     getEnv("MINIO_SECRET_KEY", ""),
			Bucket:        getEnv("MINIO_BUCKET", "onboarding-documents"),
			UseSSL:        getEnvBool("MINIO_USE_SSL", false),
			PresignExpiry: getEnvInt("MINIO_PRESIGN_EXPIRY_SEC", 7*24*3600),
		},
		RecordStore: RecordStoreConfig{
			APIToken: getEnv("AIRTABLE_API_TOKEN", ""),
			BaseURL:  getEnv("AIRTABLE_BASE_URL", "https://api.airtable.com"),
			BaseID:   getEnv("AIRTABLE_BASE_ID", ""),
			TableID:  getEnv("AIRTABLE_TABLE_ID", ""),
		},
		Blob: BlobConfig{
			Endpoint: getEnv("BLOB_ENDPOINT", ""),
			Token:    getEnv("BLOB_TOKEN", ""),
		},
		WebhookURL: getEnv("NOTIFY_WEBHOOK_URL", ""),
	}
}

// Validate checks that every setting required by the selected backend is
// present. It returns a single error naming all missing keys so a broken
// deployment fails fast with one descriptive message instead of dying on the
// first upload.
func (c *AppConfig) Validate() error {
	var missing []string

	// Record store credentials are required regardless of upload backend:
	// every submission ends in a record patch.
	if c.RecordStore.APIToken == "" {
		missing = append(missing, "AIRTABLE_API_TOKEN")
	}
	if c.RecordStore.BaseID == "" {
		missing = append(missing, "AIRTABLE_BASE_ID")
	}
	if c.RecordStore.TableID == "" {
		missing = append(missing, "AIRTABLE_TABLE_ID")
	}

	switch c.StorageBackend {
	case BackendS3:
		if c.MinIO.Endpoint == "" {
			missing = append(missing, "MINIO_ENDPOINT")
		}
		if c.MinIO.AccessKey == "" {
			missing = append(missing, "MINIO_ACCESS_KEY")
		}
		if c.MinIO.SecretKey == "" {
			missing = append(missing, "MINIO_SECRET_KEY")
		}
		if c.MinIO.Bucket == "" {
			missing = append(missing, "MINIO_BUCKET")
		}
	case BackendAirtable:
		// Shares the record store token/base; nothing extra.
	case BackendBlob:
		if c.Blob.Endpoint == "" {
			missing = append(missing, "BLOB_ENDPOINT")
		}
		if c.Blob.Token == "" {
			missing = append(missing, "BLOB_TOKEN")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q (want s3, airtable, or blob)", c.StorageBackend)
	}

	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES must be positive, got %d", c.MaxUploadBytes)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Mask shortens a secret for debug output, keeping only the edges.
func Mask(s string) string {
	if len(s) <= 10 {
		return "****"
	}
	return s[:4] + "…" + s[len(s)-4:]
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.Atoi(v)
		if err == nil {
			return i
		}
	}
	return def
}

func getEnvInt64(key string, def int64) int64 {
	if v := os.Getenv(key); v != "" {
		i, err := strconv.ParseInt(v, 10, 64)
		if err == nil {
			return i
		}
	}
	return def
}
