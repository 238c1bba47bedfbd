// Package osutils holds host integration helpers for the command server.
package osutils

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// FirewallRuleName is the display name of the inbound rule for the command port
const FirewallRuleName = "Gesturify Command Server"

// firewallRuleDescription is shown in Windows Defender Firewall next to the rule
const firewallRuleDescription = "Lets gesture clients on the LAN post to the gesturify command endpoint."

// firewallRuleScript returns the PowerShell that replaces the gesturify rule
// with one allowing inbound TCP on port for program only.
func firewallRuleScript(port int, program string) string {
	name := psQuote(FirewallRuleName)
	return fmt.Sprintf(
		"Remove-NetFirewallRule -DisplayName %s -ErrorAction SilentlyContinue; "+
			"New-NetFirewallRule -DisplayName %s -Description %s -Direction Inbound -Protocol TCP -LocalPort %d -Program %s -Action Allow -Profile Private,Domain",
		name, name, psQuote(firewallRuleDescription), port, psQuote(program),
	)
}

func psQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// firewallRuleCurrent reports whether verbose netsh output for the rule
// already allows port for program.
func firewallRuleCurrent(netshOutput string, port int, program string) bool {
	var portOK, programOK, allow bool
	for _, line := range strings.Split(netshOutput, "\n") {
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "LocalPort":
			portOK = value == strconv.Itoa(port)
		case "Program":
			programOK = strings.EqualFold(value, program)
		case "Action":
			allow = value == "Allow"
		}
	}
	return portOK && programOK && allow
}

// PortFromAddr extracts the TCP port from a listen address like "0.0.0.0:5000"
func PortFromAddr(addr string) (int, error) {
	_, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(portStr)
	if err != nil || port <= 0 || port > 65535 {
		return 0, fmt.Errorf("invalid port %q in %q", portStr, addr)
	}
	return port, nil
}

// GetLocalIP returns the primary local IP address
func GetLocalIP() (string, error) {
	// No packet is sent; dialing UDP only selects the outbound interface
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "", err
	}
	defer conn.Close()

	localAddr := conn.LocalAddr().(*net.UDPAddr)
	return localAddr.IP.String(), nil
}

// ReachableURL returns the base URL other devices on the LAN should use for
// a server listening on addr. Wildcard hosts are replaced by the local IP.
func ReachableURL(addr string) (string, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "", err
	}
	if host == "" || host == "0.0.0.0" || host == "::" {
		host, err = GetLocalIP()
		if err != nil {
			return "", fmt.Errorf("failed to get local IP: %w", err)
		}
	}
	return "http://" + net.JoinHostPort(host, port), nil
}
