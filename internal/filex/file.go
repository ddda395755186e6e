// Package filex contains small filesystem helpers shared by the sync loops.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// EnsureDir creates dir (and any missing parents) if it does not exist.
// It fails if the path exists but is not a directory.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// SanitizeName replaces space characters in a file name with underscores.
// Object keys with spaces are awkward in URLs and shell commands, so files
// are renamed before upload. Idempotent.
func SanitizeName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}

// UniquePath returns path if nothing exists there, otherwise a variant
// with a short random fragment inserted before the extension, e.g.
// "report.csv" -> "report.1a2b3c4d.csv". Used when archiving a file whose
// name is already taken, so that neither file is lost.
func UniquePath(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}

	ext := filepath.Ext(path)
	base := strings.TrimSuffix(path, ext)
	fragment := uuid.NewString()[:8]
	return base + "." + fragment + ext
}

// MoveFile renames src to dst. Both paths are expected to live on the
// same filesystem (the archive directory sits next to the input
// directory), so a plain rename is sufficient.
func MoveFile(src, dst string) error {
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s to %s: %w", src, dst, err)
	}
	return nil
}
