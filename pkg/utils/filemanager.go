// =============================================================================
// Invoice Report Generator - File Manager Utilities
// =============================================================================
//
// File-system helpers used by the generator: safe output names, directory
// creation, and archival of the input table after a successful run.
//
// =============================================================================

package utils

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// unsafeChars are characters that cannot appear in output file names across
// the platforms we ship to.
var unsafeChars = strings.NewReplacer(
	"/", "-",
	"\\", "-",
	":", "-",
	"*", "-",
	"?", "-",
	"\"", "-",
	"<", "-",
	">", "-",
	"|", "-",
)

// SafeFileName makes a string usable as a file name component. The original
// value is kept as-is apart from path-hostile characters.
func SafeFileName(name string) string {
	safe := strings.TrimSpace(unsafeChars.Replace(name))
	if safe == "" {
		return "unnamed"
	}
	return safe
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// ArchiveFile moves a file into the archive directory, prefixing the name
// with a timestamp so repeated runs never collide. Returns the archive path.
func ArchiveFile(filePath, archiveDir string) (string, error) {
	if err := EnsureDir(archiveDir); err != nil {
		return "", err
	}

	base := filepath.Base(filePath)
	stamped := fmt.Sprintf("%s_%s", time.Now().Format("20060102_150405"), base)
	archivePath := filepath.Join(archiveDir, stamped)

	// Rename first; fall back to copy+remove across file systems.
	if err := os.Rename(filePath, archivePath); err != nil {
		if err := copyFile(filePath, archivePath); err != nil {
			return "", fmt.Errorf("failed to archive %s: %w", filePath, err)
		}
		if err := os.Remove(filePath); err != nil {
			return "", fmt.Errorf("failed to remove %s after archiving: %w", filePath, err)
		}
	}

	return archivePath, nil
}

// copyFile copies src to dst, preserving contents only.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Sync()
}
