// Package archive moves generated asset trees aside before they are rebuilt.
package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

var now = time.Now

// Archive renames dir to <parent>/archive/<name>-<timestamp> and returns the
// new location. A missing dir is reported as an error.
func Archive(dir string) (string, error) {
	info, err := os.Stat(dir)
	if os.IsNotExist(err) {
		return "", fmt.Errorf("directory does not exist: %s", dir)
	}
	if err != nil {
		return "", fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", dir)
	}

	clean := filepath.Clean(dir)
	archiveDir := filepath.Join(filepath.Dir(clean), "archive")
	if err := os.MkdirAll(archiveDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	archivePath := uniquePath(archiveDir, filepath.Base(clean), now())

	if err := os.Rename(clean, archivePath); err != nil {
		return "", fmt.Errorf("failed to archive %s: %w", dir, err)
	}

	fmt.Printf("Directory %s archived to: %s\n", dir, archivePath)
	return archivePath, nil
}

func uniquePath(archiveDir, name string, ts time.Time) string {
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, ts.Format("20060102-150405")))
	if _, err := os.Stat(archivePath); os.IsNotExist(err) {
		return archivePath
	}

	// Same second: fall back to microseconds, then a counter.
	archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s", name, ts.Format("20060102-150405.000000")))
	for i := 1; ; i++ {
		if _, err := os.Stat(archivePath); os.IsNotExist(err) {
			return archivePath
		}
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("%s-%s-%d", name, ts.Format("20060102-150405.000000"), i))
	}
}
