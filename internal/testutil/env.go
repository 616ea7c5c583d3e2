// Package testutil provides utilities for testing the installer in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// overriddenEnv lists variables that change where or what the installer
// installs. Tests must not pick them up from the developer's shell.
var overriddenEnv = []string{
	"COMPOSER_VENDOR_DIR",
	"COMPOSER_BIN_DIR",
	"PHANTOMJS_CDNURL",
}

// envPrefix is the prefix of the CLI's own environment variables.
const envPrefix = "PHANTOMJS_INSTALLER_"

// SetupTestEnv clears installer related environment variables and returns a
// fresh project directory.
//
// The directory is removed by t.TempDir, so callers don't need to clean up.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	for _, name := range overriddenEnv {
		t.Setenv(name, "")
	}
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, envPrefix) {
			t.Setenv(name, "")
		}
	}

	return t.TempDir()
}

// WriteFile writes content to dir/rel, creating parent directories.
func WriteFile(t *testing.T, dir, rel, content string) string {
	t.Helper()

	path := filepath.Join(dir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", rel, err)
	}
	return path
}

// WriteProject writes composer.json and, when installed is not empty,
// vendor/composer/installed.json into dir.
func WriteProject(t *testing.T, dir, manifest, installed string) {
	t.Helper()

	WriteFile(t, dir, "composer.json", manifest)
	if installed != "" {
		WriteFile(t, dir, "vendor/composer/installed.json", installed)
	}
}
