package input

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

// TestLookupKeyMediaKeys tests the media keys used by the default gesture table
func TestLookupKeyMediaKeys(t *testing.T) {
	cases := map[string]uint16{
		"nexttrack":  0xB0,
		"prevtrack":  0xB1,
		"stop":       0xB2,
		"playpause":  0xB3,
		"volumeup":   0xAF,
		"volumedown": 0xAE,
		"volumemute": 0xAD,
	}
	for name, vk := range cases {
		k, ok := LookupKey(name)
		if !ok {
			t.Fatalf("Expected %q to be a known key", name)
		}
		if k.VK != vk {
			t.Errorf("Expected %q VK 0x%X, got 0x%X", name, vk, k.VK)
		}
		if !k.Media || !k.Extended {
			t.Errorf("Expected %q to be an extended media key", name)
		}
		if !strings.HasPrefix(k.Keysym, "XF86Audio") {
			t.Errorf("Expected %q to have an XF86Audio keysym, got %q", name, k.Keysym)
		}
	}
}

// TestLookupKeyRanges tests letters, digits and function keys
func TestLookupKeyRanges(t *testing.T) {
	k, ok := LookupKey("a")
	if !ok || k.VK != 0x41 || k.Keysym != "a" {
		t.Errorf("Unexpected key for 'a': %+v", k)
	}
	k, ok = LookupKey("z")
	if !ok || k.VK != 0x5A {
		t.Errorf("Unexpected key for 'z': %+v", k)
	}
	k, ok = LookupKey("7")
	if !ok || k.VK != 0x37 {
		t.Errorf("Unexpected key for '7': %+v", k)
	}
	k, ok = LookupKey("f12")
	if !ok || k.VK != 0x7B || k.Keysym != "F12" {
		t.Errorf("Unexpected key for 'f12': %+v", k)
	}
	k, ok = LookupKey("space")
	if !ok || k.VK != 0x20 || k.Extended {
		t.Errorf("Unexpected key for 'space': %+v", k)
	}
}

// TestLookupKeyAliases tests alternate spellings and case folding
func TestLookupKeyAliases(t *testing.T) {
	aliases := map[string]string{
		"return": "enter",
		"Escape": "esc",
		"PGUP":   "pageup",
		"mute":   "volumemute",
		"Space":  "space",
	}
	for alias, want := range aliases {
		k, ok := LookupKey(alias)
		if !ok {
			t.Fatalf("Expected alias %q to resolve", alias)
		}
		if k.Name != want {
			t.Errorf("Expected alias %q to resolve to %q, got %q", alias, want, k.Name)
		}
	}
	if KnownKey("warp") {
		t.Error("Expected 'warp' to be unknown")
	}
}

// TestKeysExcludesAliases tests that the listing only has canonical names
func TestKeysExcludesAliases(t *testing.T) {
	list := Keys()
	seen := map[string]bool{}
	for i, k := range list {
		if seen[k.Name] {
			t.Fatalf("Duplicate key %q", k.Name)
		}
		seen[k.Name] = true
		if i > 0 && list[i-1].Name > k.Name {
			t.Fatalf("Keys not sorted at %q", k.Name)
		}
	}
	for alias := range keyAliases {
		if seen[alias] {
			t.Errorf("Alias %q should not be listed", alias)
		}
	}
	// 26 letters, 10 digits, 12 function keys, named keys
	if want := 26 + 10 + 12 + len(namedKeys); len(list) != want {
		t.Errorf("Expected %d keys, got %d", want, len(list))
	}
}

// TestDryRunInjector tests that dry-run resolves keys and logs instead of pressing
func TestDryRunInjector(t *testing.T) {
	var buf bytes.Buffer
	inj := NewDryRunInjector(log.New(&buf))

	if err := inj.Inject(context.Background(), "nexttrack"); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if !strings.Contains(buf.String(), "nexttrack") {
		t.Errorf("Expected log to mention key, got %q", buf.String())
	}

	err := inj.Inject(context.Background(), "warp")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := inj.Inject(ctx, "space"); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

// TestPlatformInjectorRejectsUnknownKey tests the platform injector without pressing anything
func TestPlatformInjectorRejectsUnknownKey(t *testing.T) {
	var inj InputInjector = NewInjector()
	err := inj.Inject(context.Background(), "not-a-key")
	if !errors.Is(err, ErrUnknownKey) {
		t.Errorf("Expected ErrUnknownKey, got %v", err)
	}
}

var (
	_ InputInjector = (*Injector)(nil)
	_ InputInjector = (*DryRunInjector)(nil)
)
