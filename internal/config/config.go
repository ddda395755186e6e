// Package config handles configuration for the syncbox daemon,
// including defaults, .env credentials, JSON overlay, and command-line
// flags.
package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/syncbox/internal/common"
)

// Config holds runtime settings for the syncbox daemon.
//
// Fields:
//   - UploadBucket / DownloadBucket: S3 bucket names for the two sides.
//   - S3Region / S3Endpoint: object storage location; Endpoint is only
//     needed for S3-compatible services like MinIO.
//   - S3AccessKeyID / S3SecretAccessKey: static credentials. When empty,
//     the AWS SDK default credential chain applies.
//   - InputDir / OutputDir / ArchiveDir: local directories. ArchiveDir
//     defaults to InputDir + "_archive".
//   - UploadHistoryPath / DownloadHistoryPath: ledger file locations.
//   - SleepInterval: delay between polling iterations of each loop.
//   - TransferTimeout: per-transfer deadline; zero disables it.
//   - Quiet: suppress desktop notifications and progress rendering.
type Config struct {
	UploadBucket        string
	DownloadBucket      string
	S3Region            string
	S3Endpoint          string
	S3AccessKeyID       string
	S3SecretAccessKey   string
	S3UsePathStyle      bool
	InputDir            string
	OutputDir           string
	ArchiveDir          string
	UploadHistoryPath   string
	DownloadHistoryPath string
	SleepInterval       time.Duration
	TransferTimeout     time.Duration
	Quiet               bool
}

// LoadDefaults populates c with sensible defaults. Bucket names have no
// default and must come from the JSON file, the environment, or flags.
func (c *Config) LoadDefaults() {
	c.S3Region = "us-east-1"
	c.InputDir = "./input"
	c.OutputDir = "./output"
	c.UploadHistoryPath = "upload_history.json"
	c.DownloadHistoryPath = "download_history.json"
	c.SleepInterval = 10 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from the environment (.env included), a JSON file (-c/-config) and
// command-line flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)

	if cfg.ArchiveDir == "" {
		cfg.ArchiveDir = cfg.InputDir + "_archive"
	}

	return cfg
}

// Validate checks that the settings the daemon cannot run without are
// present.
func (c *Config) Validate() error {
	if c.UploadBucket == "" {
		return fmt.Errorf("%w: upload bucket is required", common.ErrConfigInvalid)
	}
	if c.DownloadBucket == "" {
		return fmt.Errorf("%w: download bucket is required", common.ErrConfigInvalid)
	}
	if c.SleepInterval <= 0 {
		return fmt.Errorf("%w: sleep interval must be positive", common.ErrConfigInvalid)
	}
	return nil
}
