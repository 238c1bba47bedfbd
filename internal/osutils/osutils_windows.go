//go:build windows

package osutils

import (
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/sys/windows"
)

// IsAdmin checks if the current process has administrative privileges
func IsAdmin() bool {
	var token windows.Token
	h, _ := windows.GetCurrentProcess()
	err := windows.OpenProcessToken(h, windows.TOKEN_QUERY, &token)
	if err != nil {
		return false
	}
	defer token.Close()

	var sid *windows.SID
	err = windows.AllocateAndInitializeSid(
		&windows.SECURITY_NT_AUTHORITY,
		2,
		windows.SECURITY_BUILTIN_DOMAIN_RID,
		windows.DOMAIN_ALIAS_RID_ADMINS,
		0, 0, 0, 0, 0, 0,
		&sid,
	)
	if err != nil {
		return false
	}
	defer windows.FreeSid(sid)

	member, err := token.IsMember(sid)
	if err != nil {
		return false
	}

	return member
}

// EnsureFirewallRule makes sure inbound TCP on port is allowed for the
// running gesturify binary, asking for UAC elevation when needed.
func EnsureFirewallRule(logger *log.Logger, port int) error {
	program, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	out, err := exec.Command("netsh", "advfirewall", "firewall", "show", "rule",
		"name="+FirewallRuleName, "verbose").CombinedOutput()
	if err == nil && firewallRuleCurrent(string(out), port, program) {
		logger.Debug("firewall rule up to date", "rule", FirewallRuleName, "port", port)
		return nil
	}

	script := firewallRuleScript(port, program)
	if IsAdmin() {
		if out, err := exec.Command("powershell", "-NoProfile", "-Command", script).CombinedOutput(); err != nil {
			return fmt.Errorf("failed to create firewall rule: %w (output: %s)", err, out)
		}
		logger.Info("firewall rule applied", "rule", FirewallRuleName, "port", port, "program", program)
		return nil
	}

	logger.Info("requesting elevation to allow gesture clients through the firewall", "port", port)
	verb, _ := syscall.UTF16PtrFromString("runas")
	exe, _ := syscall.UTF16PtrFromString("powershell.exe")
	args, _ := syscall.UTF16PtrFromString(fmt.Sprintf("-NoProfile -WindowStyle Hidden -Command \"%s\"", script))
	if err := windows.ShellExecute(0, verb, exe, args, nil, windows.SW_HIDE); err != nil {
		return fmt.Errorf("failed to launch elevated powershell: %w", err)
	}
	return nil
}
