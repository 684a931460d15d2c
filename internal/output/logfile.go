package output

import (
	"os"
	"path/filepath"
)

// GetLogFilePath returns the path to the log file.
// If OPENPR_LOG_FILE is set, uses that path.
// Otherwise, uses ~/.openpr/logs/openpr.log
func GetLogFilePath() string {
	if customPath := os.Getenv("OPENPR_LOG_FILE"); customPath != "" {
		return customPath
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if we can't get home dir
		return "openpr.log"
	}

	return filepath.Join(homeDir, ".openpr", "logs", "openpr.log")
}
