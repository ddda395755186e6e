package syncer

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"sync"
	"testing"

	"github.com/dmitrijs2005/syncbox/internal/ledger"
	"github.com/dmitrijs2005/syncbox/internal/logging"
)

// fakeStore is an in-memory blobstore.Store. The remote map holds
// objects visible to ListKeys/Download; uploads land in objects.
type fakeStore struct {
	mu          sync.Mutex
	objects     map[string][]byte
	remote      map[string][]byte
	uploads     map[string]int
	downloads   map[string]int
	uploadErr   map[string]error
	downloadErr map[string]error
	listErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		objects:     map[string][]byte{},
		remote:      map[string][]byte{},
		uploads:     map[string]int{},
		downloads:   map[string]int{},
		uploadErr:   map[string]error{},
		downloadErr: map[string]error{},
	}
}

func (f *fakeStore) Upload(ctx context.Context, localPath, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.uploads[key]++
	if err := f.uploadErr[key]; err != nil {
		return err
	}

	data, err := os.ReadFile(localPath)
	if err != nil {
		return err
	}
	f.objects[key] = data
	return nil
}

func (f *fakeStore) Download(ctx context.Context, key, localPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.downloads[key]++
	if err := f.downloadErr[key]; err != nil {
		return err
	}

	return os.WriteFile(localPath, f.remote[key], 0o660)
}

func (f *fakeStore) ListKeys(ctx context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.listErr != nil {
		return nil, f.listErr
	}

	keys := make([]string, 0, len(f.remote))
	for k := range f.remote {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (f *fakeStore) uploadCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads[key]
}

func (f *fakeStore) downloadCount(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.downloads[key]
}

// fakeNotifier records notifications and optionally fails.
type fakeNotifier struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (f *fakeNotifier) Notify(title, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, message)
	return f.err
}

func (f *fakeNotifier) notified() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.calls))
	copy(out, f.calls)
	return out
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func openLedger(t *testing.T, path string) *ledger.Ledger {
	t.Helper()
	l, err := ledger.Open(path)
	if err != nil {
		t.Fatalf("open ledger: %v", err)
	}
	return l
}
