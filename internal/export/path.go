package export

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultPath returns ~/hourtrack-export-<date>.<ext> for the given day.
func DefaultPath(ext string, day time.Time) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, fmt.Sprintf("hourtrack-export-%s.%s", day.Format("2006-01-02"), ext)), nil
}
