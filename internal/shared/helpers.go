// Package shared provides small helpers used across the gfx-doctor
// packages.
package shared

import (
	"fmt"
	"strings"
)

// CommandError wraps a command execution error with its trimmed output
// for cleaner error messages.
func CommandError(output []byte, err error) error {
	trimmed := strings.TrimSpace(string(output))
	if trimmed == "" {
		return err
	}
	return fmt.Errorf("%s: %w", trimmed, err)
}

// FormatBytes renders a byte count as a short MB/GB figure for report
// and error messages.
func FormatBytes(n uint64) string {
	const mb = 1 << 20
	const gb = 1 << 30
	if n >= gb {
		return fmt.Sprintf("%.1fGB", float64(n)/float64(gb))
	}
	return fmt.Sprintf("%dMB", n/mb)
}
