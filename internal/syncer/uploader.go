package syncer

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/dmitrijs2005/syncbox/internal/blobstore"
	"github.com/dmitrijs2005/syncbox/internal/filex"
	"github.com/dmitrijs2005/syncbox/internal/ledger"
	"github.com/dmitrijs2005/syncbox/internal/logging"
)

// Uploader periodically scans the input directory and transfers every
// file it finds to the upload bucket, recording each success in the
// upload ledger and moving the file to the archive directory.
type Uploader struct {
	inputDir        string
	archiveDir      string
	store           blobstore.Store
	ledger          *ledger.Ledger
	logger          logging.Logger
	interval        time.Duration
	transferTimeout time.Duration
	wake            <-chan struct{}
}

// NewUploader builds an upload loop. wake may be nil; when set, a value
// on it ends the inter-iteration sleep early.
func NewUploader(inputDir, archiveDir string, store blobstore.Store, l *ledger.Ledger,
	logger logging.Logger, interval, transferTimeout time.Duration, wake <-chan struct{}) *Uploader {
	return &Uploader{
		inputDir:        inputDir,
		archiveDir:      archiveDir,
		store:           store,
		ledger:          l,
		logger:          logger.With("module", "uploader"),
		interval:        interval,
		transferTimeout: transferTimeout,
		wake:            wake,
	}
}

// Run executes iterations until ctx is cancelled. It returns only at an
// iteration boundary: an in-flight file is never abandoned halfway.
func (u *Uploader) Run(ctx context.Context) {
	u.logger.Info(ctx, "upload loop started", "dir", u.inputDir, "interval", u.interval)

	for {
		u.runIteration(ctx)

		if !sleep(ctx, u.interval, u.wake) {
			u.logger.Info(ctx, "upload loop stopped")
			return
		}
	}
}

// runIteration takes a fresh snapshot of the input directory and
// processes each file in lexical order. A failure on one file is logged
// and leaves that file in place for the next cycle; the remaining files
// are still processed.
func (u *Uploader) runIteration(ctx context.Context) {
	files, err := u.snapshotInput()
	if err != nil {
		u.logger.Error(ctx, "scan input directory", "error", err)
		return
	}

	for _, name := range files {
		if err := u.processFile(ctx, name); err != nil {
			u.logger.Error(ctx, "upload failed, will retry next cycle", "file", name, "error", err)
		}
	}
}

// snapshotInput lists the regular files currently in the input
// directory, sorted lexically. Files added while an iteration runs are
// picked up on the next one.
func (u *Uploader) snapshotInput() ([]string, error) {
	entries, err := os.ReadDir(u.inputDir)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Type().IsRegular() {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	return files, nil
}

// processFile pushes one file through its full lifecycle: sanitize the
// name, upload, record, archive. Recording happens strictly before the
// archive move, so a crash in between re-uploads the file but never
// loses its ledger entry.
func (u *Uploader) processFile(ctx context.Context, name string) error {
	path := filepath.Join(u.inputDir, name)

	if sanitized := filex.SanitizeName(name); sanitized != name {
		sanitizedPath := filepath.Join(u.inputDir, sanitized)
		u.logger.Info(ctx, "renaming file without spaces", "from", name, "to", sanitized)
		if err := os.Rename(path, sanitizedPath); err != nil {
			return err
		}
		name = sanitized
		path = sanitizedPath
	}

	u.logger.Info(ctx, "uploading file", "file", name)

	uploadCtx := ctx
	if u.transferTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(ctx, u.transferTimeout)
		defer cancel()
	}

	if err := u.store.Upload(uploadCtx, path, name); err != nil {
		return err
	}

	if err := u.ledger.Record(name); err != nil {
		return err
	}

	archivePath := filex.UniquePath(filepath.Join(u.archiveDir, name))
	if err := filex.MoveFile(path, archivePath); err != nil {
		return err
	}

	u.logger.Info(ctx, "file archived", "file", name, "archive", archivePath)
	return nil
}
