package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// WaitForCondition waits until the condition function returns true or times out
func WaitForCondition(fn func() bool, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	interval := 10 * time.Millisecond

	if timeout < 100*time.Millisecond {
		interval = 1 * time.Millisecond
	} else if timeout < 1*time.Second {
		interval = 5 * time.Millisecond
	}

	for time.Now().Before(deadline) {
		if fn() {
			return nil
		}
		time.Sleep(interval)
	}

	return fmt.Errorf("condition not met within %v timeout", timeout)
}

// TempExportDir creates a temporary directory for export tests and cleans it
// up when the test finishes
func TempExportDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "forestwatch-export-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// FileExists reports whether the path exists and is a regular file
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// FindExports returns export files under dir matching the prefix
func FindExports(t *testing.T, dir, prefix string) []string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, prefix+"_*"))
	if err != nil {
		t.Fatalf("glob failed: %v", err)
	}
	return matches
}
