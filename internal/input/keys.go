package input

import (
	"fmt"
	"sort"
	"strings"
)

// Windows virtual-key codes for keys outside the A-Z/0-9/F1-F12 ranges.
// Reference: https://learn.microsoft.com/en-us/windows/win32/inputdev/virtual-key-codes
const (
	vkBack           = 0x08
	vkTab            = 0x09
	vkReturn         = 0x0D
	vkEscape         = 0x1B
	vkSpace          = 0x20
	vkPrior          = 0x21
	vkNext           = 0x22
	vkEnd            = 0x23
	vkHome           = 0x24
	vkLeft           = 0x25
	vkUp             = 0x26
	vkRight          = 0x27
	vkDown           = 0x28
	vkInsert         = 0x2D
	vkDelete         = 0x2E
	vkVolumeMute     = 0xAD
	vkVolumeDown     = 0xAE
	vkVolumeUp       = 0xAF
	vkMediaNextTrack = 0xB0
	vkMediaPrevTrack = 0xB1
	vkMediaStop      = 0xB2
	vkMediaPlayPause = 0xB3
)

var namedKeys = []Key{
	{Name: "space", VK: vkSpace, Keysym: "space"},
	{Name: "enter", VK: vkReturn, Keysym: "Return"},
	{Name: "tab", VK: vkTab, Keysym: "Tab"},
	{Name: "esc", VK: vkEscape, Keysym: "Escape"},
	{Name: "backspace", VK: vkBack, Keysym: "BackSpace"},
	{Name: "insert", VK: vkInsert, Keysym: "Insert", Extended: true},
	{Name: "delete", VK: vkDelete, Keysym: "Delete", Extended: true},
	{Name: "home", VK: vkHome, Keysym: "Home", Extended: true},
	{Name: "end", VK: vkEnd, Keysym: "End", Extended: true},
	{Name: "pageup", VK: vkPrior, Keysym: "Prior", Extended: true},
	{Name: "pagedown", VK: vkNext, Keysym: "Next", Extended: true},
	{Name: "left", VK: vkLeft, Keysym: "Left", Extended: true},
	{Name: "up", VK: vkUp, Keysym: "Up", Extended: true},
	{Name: "right", VK: vkRight, Keysym: "Right", Extended: true},
	{Name: "down", VK: vkDown, Keysym: "Down", Extended: true},

	{Name: "playpause", VK: vkMediaPlayPause, Keysym: "XF86AudioPlay", Extended: true, Media: true},
	{Name: "nexttrack", VK: vkMediaNextTrack, Keysym: "XF86AudioNext", Extended: true, Media: true},
	{Name: "prevtrack", VK: vkMediaPrevTrack, Keysym: "XF86AudioPrev", Extended: true, Media: true},
	{Name: "stop", VK: vkMediaStop, Keysym: "XF86AudioStop", Extended: true, Media: true},
	{Name: "volumeup", VK: vkVolumeUp, Keysym: "XF86AudioRaiseVolume", Extended: true, Media: true},
	{Name: "volumedown", VK: vkVolumeDown, Keysym: "XF86AudioLowerVolume", Extended: true, Media: true},
	{Name: "volumemute", VK: vkVolumeMute, Keysym: "XF86AudioMute", Extended: true, Media: true},
}

// keyAliases are alternate spellings accepted in the gesture table
var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
	"del":    "delete",
	"pgup":   "pageup",
	"pgdn":   "pagedown",
	"play":   "playpause",
	"mute":   "volumemute",
}

var keys = buildKeys()

func buildKeys() map[string]Key {
	m := make(map[string]Key, 64)
	for c := 'a'; c <= 'z'; c++ {
		name := string(c)
		m[name] = Key{Name: name, VK: uint16('A' + (c - 'a')), Keysym: name}
	}
	for d := '0'; d <= '9'; d++ {
		name := string(d)
		m[name] = Key{Name: name, VK: uint16(d), Keysym: name}
	}
	for i := 1; i <= 12; i++ {
		m[fmt.Sprintf("f%d", i)] = Key{Name: fmt.Sprintf("f%d", i), VK: uint16(0x70 + i - 1), Keysym: fmt.Sprintf("F%d", i)}
	}
	for _, k := range namedKeys {
		m[k.Name] = k
	}
	for alias, name := range keyAliases {
		m[alias] = m[name]
	}
	return m
}

// LookupKey resolves an action name (or alias) to a Key. Names are
// matched case-insensitively.
func LookupKey(action string) (Key, bool) {
	k, ok := keys[strings.ToLower(action)]
	return k, ok
}

// KnownKey reports whether action names a key
func KnownKey(action string) bool {
	_, ok := LookupKey(action)
	return ok
}

// Keys returns the canonical keys sorted by name, aliases excluded
func Keys() []Key {
	out := make([]Key, 0, len(keys))
	for name, k := range keys {
		if name == k.Name {
			out = append(out, k)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func resolve(action string) (Key, error) {
	k, ok := LookupKey(action)
	if !ok {
		return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, action)
	}
	return k, nil
}
