package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultDataDir is the subdirectory within the user's home directory used
// when no store path is configured.
const defaultDataDir = ".shopdesk"

// ResolveStorePath expands the configured CSV path.
// An empty path becomes ~/.shopdesk/<defaultFilename>, a leading "~/" is
// expanded, anything else is used as given (relative paths are relative to
// the working directory, like the original service).
func ResolveStorePath(configuredPath, defaultFilename string) (string, error) {
	p := strings.TrimSpace(configuredPath)
	if p != "" && p != "~" && !strings.HasPrefix(p, "~/") {
		return filepath.Clean(p), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	if p == "" {
		return filepath.Join(homeDir, defaultDataDir, defaultFilename), nil
	}
	if p == "~" {
		return homeDir, nil
	}
	return filepath.Join(homeDir, strings.TrimPrefix(p, "~/")), nil
}
