package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// TB is the subset of testing.TB the helpers use, GinkgoT() satisfies it too
type TB interface {
	Helper()
	Errorf(format string, args ...any)
	Fatalf(format string, args ...any)
}

// CreateTestFile creates a test file with content
func CreateTestFile(t TB, path string, content []byte) {
	t.Helper()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("Failed to create directory for test file: %v", err)
	}

	if err := os.WriteFile(path, content, 0644); err != nil {
		t.Fatalf("Failed to create test file %s: %v", path, err)
	}
}

// CreateTestCorpus writes a generated corpus of n tweets and returns its path
func CreateTestCorpus(t TB, dir string, n int) string {
	t.Helper()

	path := filepath.Join(dir, "corpus.json")
	var g TestDataGenerator
	CreateTestFile(t, path, g.GenerateCorpus(n))
	return path
}

// AssertFileExists checks if a file exists
func AssertFileExists(t TB, path string) {
	t.Helper()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("Expected file to exist: %s", path)
	}
}

// AssertFileNotExists checks if a file does not exist
func AssertFileNotExists(t TB, path string) {
	t.Helper()

	if _, err := os.Stat(path); err == nil {
		t.Errorf("Expected file to not exist: %s", path)
	}
}

// AssertFileContains checks if a file contains a substring
func AssertFileContains(t TB, path string, substring string) {
	t.Helper()

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}

	if !strings.Contains(string(content), substring) {
		t.Errorf("File %s does not contain expected substring: %q", path, substring)
	}
}

// ListFiles returns the base names of files in dir matching pattern
func ListFiles(t TB, dir, pattern string) []string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		t.Fatalf("Bad glob pattern %s: %v", pattern, err)
	}
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		names = append(names, filepath.Base(m))
	}
	return names
}
