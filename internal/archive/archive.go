package archive

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// PartFiles returns the part files written for prefix, sorted by name
func PartFiles(prefix string) ([]string, error) {
	matches, err := filepath.Glob(prefix + "*.json")
	if err != nil {
		return nil, fmt.Errorf("invalid output prefix %q: %w", prefix, err)
	}

	var files []string
	for _, m := range matches {
		if info, err := os.Stat(m); err == nil && info.Mode().IsRegular() {
			files = append(files, m)
		}
	}
	sort.Strings(files)
	return files, nil
}

// ArchiveParts moves existing part files into a timestamped archive directory
// next to them and returns its path
func ArchiveParts(prefix string) (string, error) {
	files, err := PartFiles(prefix)
	if err != nil {
		return "", err
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no part files found for prefix: %s", prefix)
	}

	// A prefix may name a directory ("out/") or a file stem ("out/part_")
	parentDir := filepath.Dir(prefix + "x")
	archiveDir := filepath.Join(parentDir, "archive")

	// Generate timestamp
	timestamp := time.Now().Format("20060102-150405")
	archivePath := filepath.Join(archiveDir, fmt.Sprintf("parts-%s", timestamp))

	// Check if archive already exists (unlikely but possible)
	if _, err := os.Stat(archivePath); err == nil {
		// Add microseconds to make it unique
		timestamp = time.Now().Format("20060102-150405.000000")
		archivePath = filepath.Join(archiveDir, fmt.Sprintf("parts-%s", timestamp))
	}

	if err := os.MkdirAll(archivePath, 0755); err != nil {
		return "", fmt.Errorf("failed to create archive directory: %w", err)
	}

	for _, f := range files {
		if err := os.Rename(f, filepath.Join(archivePath, filepath.Base(f))); err != nil {
			return archivePath, fmt.Errorf("failed to archive part file %s: %w", f, err)
		}
	}

	fmt.Printf("Archived %d part files to: %s\n", len(files), archivePath)
	return archivePath, nil
}
