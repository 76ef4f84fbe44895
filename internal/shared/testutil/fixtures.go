package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sbinet/npyio"
)

// WriteNPY stores values as a one-dimensional float64 .npy file in a
// temporary directory and returns its path.
func WriteNPY(t *testing.T, values []float64) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "log_returns.npy")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create npy fixture: %v", err)
	}
	defer f.Close()

	if err := npyio.Write(f, values); err != nil {
		t.Fatalf("write npy fixture: %v", err)
	}
	return path
}

// WriteFile stores content under name in a temporary directory
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture %s: %v", name, err)
	}
	return path
}
