package tui

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultLogFilePath returns ~/.ghup/logs/ghup.log
func DefaultLogFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "ghup.log"
	}

	return filepath.Join(homeDir, ".ghup", "logs", "ghup.log")
}

// ResolveLogFilePath expands a configured log file path.
// "default" selects DefaultLogFilePath and a leading ~ is the home directory.
func ResolveLogFilePath(path string) string {
	path = strings.TrimSpace(path)
	switch {
	case path == "":
		return ""
	case path == "default":
		return DefaultLogFilePath()
	case path == "~" || strings.HasPrefix(path, "~/"):
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
	}
	return path
}
