package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/syncbox/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   upload bucket name
//	-d string   download bucket name
//	-i string   input directory
//	-o string   output directory
//	-s int      polling interval in seconds
//	-q          quiet mode: no notifications, no progress rendering
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-d", "-i", "-o", "-s", "-q"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.UploadBucket, "u", cfg.UploadBucket, "upload bucket name")
	fs.StringVar(&cfg.DownloadBucket, "d", cfg.DownloadBucket, "download bucket name")
	fs.StringVar(&cfg.InputDir, "i", cfg.InputDir, "input directory")
	fs.StringVar(&cfg.OutputDir, "o", cfg.OutputDir, "output directory")
	sleepInterval := fs.Int("s", int(cfg.SleepInterval.Seconds()), "polling interval (in seconds)")
	fs.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "quiet mode")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.SleepInterval = time.Duration(*sleepInterval) * time.Second
}
