package osutils

import (
	"strings"
	"testing"
)

func TestPortFromAddr(t *testing.T) {
	cases := map[string]int{
		"0.0.0.0:5000": 5000,
		":8080":        8080,
		"[::1]:18080":  18080,
		"localhost:1":  1,
	}
	for addr, want := range cases {
		got, err := PortFromAddr(addr)
		if err != nil {
			t.Fatalf("PortFromAddr(%q): unexpected error %v", addr, err)
		}
		if got != want {
			t.Errorf("PortFromAddr(%q) = %d, want %d", addr, got, want)
		}
	}

	for _, addr := range []string{"5000", "host:", "host:http", "host:70000"} {
		if _, err := PortFromAddr(addr); err == nil {
			t.Errorf("PortFromAddr(%q): expected error", addr)
		}
	}
}

func TestReachableURLExplicitHost(t *testing.T) {
	got, err := ReachableURL("192.168.1.20:5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://192.168.1.20:5000" {
		t.Errorf("Expected http://192.168.1.20:5000, got %s", got)
	}

	got, err = ReachableURL("[fe80::1]:5000")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "http://[fe80::1]:5000" {
		t.Errorf("Expected bracketed IPv6 URL, got %s", got)
	}

	if _, err := ReachableURL("no-port"); err == nil {
		t.Error("Expected error for address without port")
	}
}

func TestFirewallRuleScript(t *testing.T) {
	script := firewallRuleScript(5000, `C:\Users\o'neil\gesturify.exe`)

	for _, want := range []string{
		"-DisplayName 'Gesturify Command Server'",
		"-LocalPort 5000",
		"-Program 'C:\\Users\\o''neil\\gesturify.exe'",
		"-Protocol TCP",
		"-Description 'Lets gesture clients",
	} {
		if !strings.Contains(script, want) {
			t.Errorf("Expected script to contain %q, got %s", want, script)
		}
	}
}

func TestFirewallRuleCurrent(t *testing.T) {
	const program = `C:\Tools\gesturify.exe`
	output := strings.Join([]string{
		"Rule Name:                            Gesturify Command Server",
		"----------------------------------------------------------------------",
		"Enabled:                              Yes",
		"Direction:                            In",
		"LocalPort:                            5000",
		"Program:                              C:\\Tools\\gesturify.exe",
		"Action:                               Allow",
	}, "\r\n")

	if !firewallRuleCurrent(output, 5000, program) {
		t.Error("Expected matching rule to be current")
	}
	if firewallRuleCurrent(output, 5001, program) {
		t.Error("Expected port mismatch to need an update")
	}
	if firewallRuleCurrent(output, 5000, `C:\Other\gesturify.exe`) {
		t.Error("Expected program mismatch to need an update")
	}
	if firewallRuleCurrent(strings.Replace(output, "Allow", "Block", 1), 5000, program) {
		t.Error("Expected blocking rule to need an update")
	}
	if firewallRuleCurrent("No rules match the specified criteria.", 5000, program) {
		t.Error("Expected missing rule to need an update")
	}
}
