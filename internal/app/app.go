// Package app wires the daemon together and runs its lifecycle:
// Starting (directories, ledgers, stores), Running (both sync loops),
// Stopping (cooperative cancellation), Stopped.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/dmitrijs2005/syncbox/internal/blobstore"
	"github.com/dmitrijs2005/syncbox/internal/config"
	"github.com/dmitrijs2005/syncbox/internal/filex"
	"github.com/dmitrijs2005/syncbox/internal/ledger"
	"github.com/dmitrijs2005/syncbox/internal/logging"
	"github.com/dmitrijs2005/syncbox/internal/notify"
	"github.com/dmitrijs2005/syncbox/internal/progress"
	"github.com/dmitrijs2005/syncbox/internal/syncer"
	"github.com/dmitrijs2005/syncbox/internal/watcher"
)

// State describes the lifecycle phase of the daemon.
type State int32

const (
	StateStarting State = iota
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	}
	return "unknown"
}

type App struct {
	config     *config.Config
	logger     logging.Logger
	uploader   *syncer.Uploader
	downloader *syncer.Downloader
	watcher    *watcher.Watcher
	state      atomic.Int32
}

// NewApp validates the configuration and builds every collaborator the
// loops need. Any failure here is fatal: the daemon never enters the
// running state with a broken ledger or an unreachable store config.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	for _, dir := range []string{cfg.InputDir, cfg.ArchiveDir, cfg.OutputDir} {
		if err := filex.EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	uploadLedger, err := ledger.Open(cfg.UploadHistoryPath)
	if err != nil {
		return nil, fmt.Errorf("upload ledger: %w", err)
	}
	downloadLedger, err := ledger.Open(cfg.DownloadHistoryPath)
	if err != nil {
		return nil, fmt.Errorf("download ledger: %w", err)
	}

	var renderer progress.Renderer = progress.Noop{}
	var notifier notify.Notifier = notify.Noop{}
	if !cfg.Quiet {
		renderer = progress.NewConsole(os.Stderr)
		notifier = notify.NewDesktop()
	}

	storeCfg := blobstore.Config{
		Region:          cfg.S3Region,
		Endpoint:        cfg.S3Endpoint,
		AccessKeyID:     cfg.S3AccessKeyID,
		SecretAccessKey: cfg.S3SecretAccessKey,
		UsePathStyle:    cfg.S3UsePathStyle,
	}

	uploadCfg := storeCfg
	uploadCfg.Bucket = cfg.UploadBucket
	uploadStore, err := blobstore.NewS3Store(ctx, uploadCfg, renderer)
	if err != nil {
		return nil, fmt.Errorf("upload store: %w", err)
	}

	downloadCfg := storeCfg
	downloadCfg.Bucket = cfg.DownloadBucket
	downloadStore, err := blobstore.NewS3Store(ctx, downloadCfg, renderer)
	if err != nil {
		return nil, fmt.Errorf("download store: %w", err)
	}

	app := &App{config: cfg, logger: logger}

	// The watcher is a latency optimization; without it the upload loop
	// still finds every file on its next poll.
	var wake <-chan struct{}
	if w, err := watcher.New(cfg.InputDir, logger); err != nil {
		logger.Warn(ctx, "input watcher unavailable, polling only", "error", err)
	} else {
		app.watcher = w
		wake = w.Hints()
	}

	app.uploader = syncer.NewUploader(cfg.InputDir, cfg.ArchiveDir, uploadStore, uploadLedger,
		logger, cfg.SleepInterval, cfg.TransferTimeout, wake)
	app.downloader = syncer.NewDownloader(cfg.OutputDir, downloadStore, downloadLedger,
		notifier, logger, cfg.SleepInterval, cfg.TransferTimeout)

	return app, nil
}

// State returns the current lifecycle phase.
func (app *App) State() State {
	return State(app.state.Load())
}

// initSignalHandler flips the cancellation context on SIGINT/SIGTERM/
// SIGQUIT. Nothing else happens in signal context; the loops observe
// the cancelled context at their next iteration boundary.
func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		select {
		case sig := <-sigs:
			app.logger.Info(ctx, "termination signal received, finishing current iterations", "signal", sig.String())
			app.state.Store(int32(StateStopping))
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

// Run starts both sync loops and blocks until they have drained after a
// cancellation. Worst-case shutdown latency is one polling interval
// plus whatever transfer is in flight.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting syncbox",
		"input", app.config.InputDir,
		"output", app.config.OutputDir,
		"interval", app.config.SleepInterval)

	app.initSignalHandler(ctx, cancelFunc)
	app.state.Store(int32(StateRunning))

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.uploader.Run(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.downloader.Run(ctx)
	}()

	wg.Wait()

	if app.watcher != nil {
		_ = app.watcher.Close()
	}

	app.state.Store(int32(StateStopped))
	app.logger.Info(ctx, "syncbox stopped")
}
