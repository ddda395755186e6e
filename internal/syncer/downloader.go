package syncer

import (
	"context"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/syncbox/internal/blobstore"
	"github.com/dmitrijs2005/syncbox/internal/filex"
	"github.com/dmitrijs2005/syncbox/internal/ledger"
	"github.com/dmitrijs2005/syncbox/internal/logging"
	"github.com/dmitrijs2005/syncbox/internal/notify"
)

// Downloader periodically lists the download bucket and transfers every
// key absent from the download ledger into the output directory,
// notifying the operator after each completed download.
type Downloader struct {
	outputDir       string
	store           blobstore.Store
	ledger          *ledger.Ledger
	notifier        notify.Notifier
	logger          logging.Logger
	interval        time.Duration
	transferTimeout time.Duration
}

func NewDownloader(outputDir string, store blobstore.Store, l *ledger.Ledger,
	notifier notify.Notifier, logger logging.Logger, interval, transferTimeout time.Duration) *Downloader {
	return &Downloader{
		outputDir:       outputDir,
		store:           store,
		ledger:          l,
		notifier:        notifier,
		logger:          logger.With("module", "downloader"),
		interval:        interval,
		transferTimeout: transferTimeout,
	}
}

// Run executes iterations until ctx is cancelled, returning only at an
// iteration boundary.
func (d *Downloader) Run(ctx context.Context) {
	d.logger.Info(ctx, "download loop started", "dir", d.outputDir, "interval", d.interval)

	for {
		d.runIteration(ctx)

		if !sleep(ctx, d.interval, nil) {
			d.logger.Info(ctx, "download loop stopped")
			return
		}
	}
}

// runIteration lists the bucket and downloads every unrecorded key. A
// failed key stays unrecorded and is retried next cycle; it does not
// stop the other keys in the same listing from being processed.
func (d *Downloader) runIteration(ctx context.Context) {
	keys, err := d.store.ListKeys(ctx)
	if err != nil {
		d.logger.Error(ctx, "list download bucket", "error", err)
		return
	}

	for _, key := range keys {
		if d.ledger.Contains(key) {
			continue
		}
		if err := d.processKey(ctx, key); err != nil {
			d.logger.Error(ctx, "download failed, will retry next cycle", "key", key, "error", err)
		}
	}
}

// processKey downloads one object and records it. Notification failure
// must never block the ledger append, so it is logged and dropped.
func (d *Downloader) processKey(ctx context.Context, key string) error {
	d.logger.Info(ctx, "downloading object", "key", key)

	downloadCtx := ctx
	if d.transferTimeout > 0 {
		var cancel context.CancelFunc
		downloadCtx, cancel = context.WithTimeout(ctx, d.transferTimeout)
		defer cancel()
	}

	localPath := filepath.Join(d.outputDir, key)
	if err := filex.EnsureDir(filepath.Dir(localPath)); err != nil {
		return err
	}
	if err := d.store.Download(downloadCtx, key, localPath); err != nil {
		return err
	}

	if err := d.notifier.Notify("Download complete", key); err != nil {
		d.logger.Warn(ctx, "notification failed", "key", key, "error", err)
	}

	if err := d.ledger.Record(key); err != nil {
		return err
	}

	d.logger.Info(ctx, "object recorded", "key", key)
	return nil
}
