package main

import (
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnalyzeCommand_MissingAPIKey(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	// Unset API key if set
	oldKey := os.Getenv("GEMINI_API_KEY")
	_ = os.Unsetenv("GEMINI_API_KEY")
	defer func() {
		if oldKey != "" {
			_ = os.Setenv("GEMINI_API_KEY", oldKey)
		}
	}()

	cmd := exec.Command(binaryPath, "analyze", "--doc-dir", t.TempDir())
	cmd.Env = []string{}
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "GEMINI_API_KEY")
}

func TestAnalyzeCommand_InvalidChunkGeometry(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze",
		"--chunk-size", "100",
		"--chunk-overlap", "100")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "chunk_overlap")
}

func TestAnalyzeCommand_InvalidCallStyle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping CLI tests in short mode")
	}

	binaryPath := getBinaryPath(t)

	cmd := exec.Command(binaryPath, "analyze", "--call-style", "batched")
	output, err := cmd.CombinedOutput()

	assert.Error(t, err)
	assert.Contains(t, string(output), "config error")
}
