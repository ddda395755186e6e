package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/syncbox/internal/common"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "us-east-1", c.S3Region)
	assert.Equal(t, "./input", c.InputDir)
	assert.Equal(t, "./output", c.OutputDir)
	assert.Equal(t, "upload_history.json", c.UploadHistoryPath)
	assert.Equal(t, "download_history.json", c.DownloadHistoryPath)
	assert.Equal(t, 10*time.Second, c.SleepInterval)
	assert.Empty(t, c.UploadBucket)
	assert.Empty(t, c.DownloadBucket)
}

func TestLoadConfig_DerivesArchiveDir(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-i", "/data/in"}

	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "/data/in", cfg.InputDir)
	assert.Equal(t, "/data/in_archive", cfg.ArchiveDir)
}

func TestValidate(t *testing.T) {
	valid := Config{
		UploadBucket:   "inbox",
		DownloadBucket: "outbox",
		SleepInterval:  10 * time.Second,
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing upload bucket", mutate: func(c *Config) { c.UploadBucket = "" }, wantErr: true},
		{name: "missing download bucket", mutate: func(c *Config) { c.DownloadBucket = "" }, wantErr: true},
		{name: "zero interval", mutate: func(c *Config) { c.SleepInterval = 0 }, wantErr: true},
		{name: "negative interval", mutate: func(c *Config) { c.SleepInterval = -time.Second }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			err := c.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, common.ErrConfigInvalid)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestParseEnv(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKID")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "SECRET")
	t.Setenv("AWS_REGION", "eu-west-1")
	t.Setenv("SYNCBOX_UPLOAD_BUCKET", "inbox")
	t.Setenv("SYNCBOX_DOWNLOAD_BUCKET", "outbox")
	t.Setenv("SYNCBOX_S3_ENDPOINT", "http://127.0.0.1:9000")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "AKID", cfg.S3AccessKeyID)
	assert.Equal(t, "SECRET", cfg.S3SecretAccessKey)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "inbox", cfg.UploadBucket)
	assert.Equal(t, "outbox", cfg.DownloadBucket)
	assert.Equal(t, "http://127.0.0.1:9000", cfg.S3Endpoint)
	assert.True(t, cfg.S3UsePathStyle)
}

func TestParseEnv_EmptyEnvLeavesDefaults(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "")
	t.Setenv("AWS_REGION", "")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Empty(t, cfg.S3AccessKeyID)
	assert.Equal(t, "us-east-1", cfg.S3Region)
}
