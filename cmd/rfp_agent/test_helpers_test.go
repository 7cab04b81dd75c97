package main

import (
	"os"
	"path/filepath"
	"testing"
)

// getBinaryPath returns the path to the rfp_agent binary for testing
func getBinaryPath(t *testing.T) string {
	binaryName := "rfp_agent"
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := filepath.Join("..", "..", "bin", binaryName)
	if _, err := os.Stat(binaryPath); os.IsNotExist(err) {
		t.Skipf("Binary not found at %s, build it first with 'go build -o bin/rfp_agent ./cmd/rfp_agent'", binaryPath)
	}

	return binaryPath
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}
