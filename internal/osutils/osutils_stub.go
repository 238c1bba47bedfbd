//go:build !windows

package osutils

import (
	"github.com/charmbracelet/log"
)

// IsAdmin is a stub for non-Windows platforms
func IsAdmin() bool {
	return false
}

// EnsureFirewallRule is a stub for non-Windows platforms
func EnsureFirewallRule(logger *log.Logger, port int) error {
	logger.Info("firewall rule management is only supported on Windows", "port", port)
	return nil
}
