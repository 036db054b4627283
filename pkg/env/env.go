// Package env reads process environment values that sit outside the
// envconfig-managed PIDLEADS_* surface, such as the log format toggle.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of key, or fallback when unset or blank.
func Get(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
