// Package ledger implements the persisted transfer history. Each sync
// loop owns one ledger: the upload ledger records file names, the
// download ledger records object keys. A recorded identifier is never
// removed, which is what makes transfers idempotent across restarts.
package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/syncbox/internal/common"
)

// Ledger is an append-only set of identifiers backed by a JSON file.
// It is not safe for concurrent use; by construction each ledger is
// accessed by a single loop goroutine only.
type Ledger struct {
	path string
	ids  []string
	seen map[string]struct{}
}

// Open loads the ledger at path. A missing file is created holding an
// empty list. An unreadable or unparseable file is an error: the caller
// treats it as fatal rather than risk re-transferring the entire history.
func Open(path string) (*Ledger, error) {
	l := &Ledger{path: path, seen: make(map[string]struct{})}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := l.persist(); err != nil {
			return nil, fmt.Errorf("create ledger %s: %w", path, err)
		}
		return l, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", path, err)
	}

	if err := json.Unmarshal(data, &l.ids); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", common.ErrLedgerCorrupt, path, err)
	}

	for _, id := range l.ids {
		l.seen[id] = struct{}{}
	}

	return l, nil
}

// Contains reports whether id has already been recorded.
func (l *Ledger) Contains(id string) bool {
	_, ok := l.seen[id]
	return ok
}

// Record appends id and rewrites the backing file before returning.
// Recording an already-present id is a no-op, so duplicate appends from
// a retried iteration cannot grow the file. On persist failure the
// in-memory state is left unchanged and the caller retries next cycle.
func (l *Ledger) Record(id string) error {
	if l.Contains(id) {
		return nil
	}

	l.ids = append(l.ids, id)
	if err := l.persist(); err != nil {
		l.ids = l.ids[:len(l.ids)-1]
		return fmt.Errorf("record %q: %w", id, err)
	}

	l.seen[id] = struct{}{}
	return nil
}

// Len returns the number of recorded identifiers.
func (l *Ledger) Len() int {
	return len(l.ids)
}

// IDs returns a copy of the recorded identifiers in append order.
func (l *Ledger) IDs() []string {
	out := make([]string, len(l.ids))
	copy(out, l.ids)
	return out
}

// persist rewrites the whole JSON array through a temp file, syncing it
// before renaming over the original. The rename keeps a crash from ever
// leaving a half-written ledger behind.
func (l *Ledger) persist() error {
	ids := l.ids
	if ids == nil {
		ids = []string{}
	}

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("marshal ledger: %w", err)
	}

	dir := filepath.Dir(l.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(l.path)+".tmp*")
	if err != nil {
		return fmt.Errorf("create temp ledger: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp ledger: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("sync temp ledger: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp ledger: %w", err)
	}

	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace ledger: %w", err)
	}

	return nil
}
