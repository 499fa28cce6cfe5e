package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	origBackend := os.Getenv("STORAGE_BACKEND")
	defer os.Setenv("STORAGE_BACKEND", origBackend)

	os.Setenv("STORAGE_BACKEND", "s3")
	os.Setenv("MAX_UPLOAD_BYTES", "1048576")
	os.Setenv("MINIO_USE_SSL", "true")
	defer os.Unsetenv("MAX_UPLOAD_BYTES")
	defer os.Unsetenv("MINIO_USE_SSL")

	cfg := Load()

	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, int64(1048576), cfg.MaxUploadBytes)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestValidate(t *testing.T) {
	base := func() *AppConfig {
		return &AppConfig{
			StorageBackend: BackendAirtable,
			MaxUploadBytes: defaultMaxUploadBytes,
			RecordStore: RecordStoreConfig{
				APIToken: "pat123",
				BaseID:   "appX",
				TableID:  "tblY",
			},
		}
	}

	t.Run("airtable backend complete", func(t *testing.T) {
		assert.NoError(t, base().Validate())
	})

	t.Run("missing record store keys are all named", func(t *testing.T) {
		cfg := base()
		cfg.RecordStore.APIToken = ""
		cfg.RecordStore.TableID = ""
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "AIRTABLE_API_TOKEN")
		assert.Contains(t, err.Error(), "AIRTABLE_TABLE_ID")
	})

	t.Run("s3 backend requires minio settings", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = BackendS3
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "MINIO_ENDPOINT")
	})

	t.Run("blob backend requires endpoint and token", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = BackendBlob
		err := cfg.Validate()
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "BLOB_ENDPOINT")
		assert.Contains(t, err.Error(), "BLOB_TOKEN")
	})

	t.Run("unknown backend", func(t *testing.T) {
		cfg := base()
		cfg.StorageBackend = "ftp"
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive ceiling", func(t *testing.T) {
		cfg := base()
		cfg.MaxUploadBytes = 0
		assert.Error(t, cfg.Validate())
	})
}

func TestMask(t *testing.T) {
	assert.Equal(t, "****", Mask("short"))
	assert.Equal(t, "patA…WXYZ", Mask("patABCDEFGHIJKLMNOPQRSTUVWXYZ"))
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvInt64(t *testing.T) {
	key := "TEST_INT64_VAR"

	os.Setenv(key, "5242880")
	assert.Equal(t, int64(5242880), getEnvInt64(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, int64(10), getEnvInt64(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, int64(10), getEnvInt64(key, 10))
}
