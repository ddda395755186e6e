package config

import (
	"os"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config with values from the process environment,
// first loading a .env file from the working directory if one exists.
// Credentials live here rather than in the JSON config so that the
// config file can be committed while the .env file stays local.
func parseEnv(cfg *Config) {
	// Missing .env is the normal case, not an error.
	_ = godotenv.Load()

	if v := os.Getenv("AWS_ACCESS_KEY_ID"); v != "" {
		cfg.S3AccessKeyID = v
	}
	if v := os.Getenv("AWS_SECRET_ACCESS_KEY"); v != "" {
		cfg.S3SecretAccessKey = v
	}
	if v := os.Getenv("AWS_REGION"); v != "" {
		cfg.S3Region = v
	}
	if v := os.Getenv("SYNCBOX_UPLOAD_BUCKET"); v != "" {
		cfg.UploadBucket = v
	}
	if v := os.Getenv("SYNCBOX_DOWNLOAD_BUCKET"); v != "" {
		cfg.DownloadBucket = v
	}
	if v := os.Getenv("SYNCBOX_S3_ENDPOINT"); v != "" {
		cfg.S3Endpoint = v
		cfg.S3UsePathStyle = true
	}
}
