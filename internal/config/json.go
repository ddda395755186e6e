package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/syncbox/internal/flagx"
	"github.com/dmitrijs2005/syncbox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies
// on timex.Duration so intervals can be written either as strings like
// "10s" or as integer nanoseconds. Only fields present in the file are
// copied into the runtime Config.
type JsonConfig struct {
	UploadBucket        string          `json:"upload_bucket"`
	DownloadBucket      string          `json:"download_bucket"`
	S3Region            string          `json:"s3_region"`
	S3Endpoint          string          `json:"s3_endpoint"`
	S3UsePathStyle      *bool           `json:"s3_use_path_style"`
	InputDir            string          `json:"input_dir"`
	OutputDir           string          `json:"output_dir"`
	ArchiveDir          string          `json:"archive_dir"`
	UploadHistoryPath   string          `json:"upload_history"`
	DownloadHistoryPath string          `json:"download_history"`
	SleepInterval       *timex.Duration `json:"sleep_interval"`
	TransferTimeout     *timex.Duration `json:"transfer_timeout"`
	Quiet               *bool           `json:"quiet"`
}

// parseJson overlays Config with values loaded from a JSON file whose
// path is taken from the -c/-config flags. When no path is given the
// function returns without touching cfg. Panics on read or unmarshal
// errors (caller should recover if desired).
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.UploadBucket != "" {
		cfg.UploadBucket = jc.UploadBucket
	}
	if jc.DownloadBucket != "" {
		cfg.DownloadBucket = jc.DownloadBucket
	}
	if jc.S3Region != "" {
		cfg.S3Region = jc.S3Region
	}
	if jc.S3Endpoint != "" {
		cfg.S3Endpoint = jc.S3Endpoint
	}
	if jc.S3UsePathStyle != nil {
		cfg.S3UsePathStyle = *jc.S3UsePathStyle
	}
	if jc.InputDir != "" {
		cfg.InputDir = jc.InputDir
	}
	if jc.OutputDir != "" {
		cfg.OutputDir = jc.OutputDir
	}
	if jc.ArchiveDir != "" {
		cfg.ArchiveDir = jc.ArchiveDir
	}
	if jc.UploadHistoryPath != "" {
		cfg.UploadHistoryPath = jc.UploadHistoryPath
	}
	if jc.DownloadHistoryPath != "" {
		cfg.DownloadHistoryPath = jc.DownloadHistoryPath
	}
	if jc.SleepInterval != nil {
		cfg.SleepInterval = jc.SleepInterval.Duration
	}
	if jc.TransferTimeout != nil {
		cfg.TransferTimeout = jc.TransferTimeout.Duration
	}
	if jc.Quiet != nil {
		cfg.Quiet = *jc.Quiet
	}
}
