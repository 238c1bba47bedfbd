// Package gesture holds the gesture to action mapping table.
package gesture

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Entry is a single gesture to action mapping
type Entry struct {
	Gesture string `json:"gesture" yaml:"gesture"`
	Action  string `json:"action" yaml:"action"`
}

// Table is an immutable mapping from gesture names to action keys.
// It is built once at startup and only read afterwards, so concurrent
// lookups need no locking.
type Table struct {
	entries map[string]string
}

// DefaultMappings returns the built-in gesture table used when the
// configuration does not provide one.
func DefaultMappings() map[string]string {
	return map[string]string{
		"Thumbs Up":   "space",
		"Open Palm":   "space",
		"Point":       "nexttrack",
		"Two Fingers": "prevtrack",
		"Shaka":       "volumeup",
		"Point Down":  "volumedown",
		"Fist":        "stop",
	}
}

// NewTable copies mappings into a new Table. Gesture names are kept
// verbatim: lookups are exact and case-sensitive.
func NewTable(mappings map[string]string) (*Table, error) {
	entries := make(map[string]string, len(mappings))
	for name, action := range mappings {
		if strings.TrimSpace(name) == "" {
			return nil, ErrEmptyGesture
		}
		if strings.TrimSpace(action) == "" {
			return nil, fmt.Errorf("gesture %q: %w", name, ErrEmptyAction)
		}
		entries[name] = action
	}
	return &Table{entries: entries}, nil
}

// Lookup returns the action mapped to gesture
func (t *Table) Lookup(gesture string) (string, bool) {
	action, ok := t.entries[gesture]
	return action, ok
}

// Len returns the number of mapped gestures
func (t *Table) Len() int {
	return len(t.entries)
}

// Gestures returns the mapped gesture names in sorted order
func (t *Table) Gestures() []string {
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Entries returns a sorted copy of the table
func (t *Table) Entries() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, name := range t.Gestures() {
		out = append(out, Entry{Gesture: name, Action: t.entries[name]})
	}
	return out
}

// Validate checks every action against known and reports all unknown
// actions at once.
func (t *Table) Validate(known func(action string) bool) error {
	var errs []error
	for _, e := range t.Entries() {
		if !known(e.Action) {
			errs = append(errs, fmt.Errorf("gesture %q -> %q: %w", e.Gesture, e.Action, ErrUnknownAction))
		}
	}
	return errors.Join(errs...)
}
