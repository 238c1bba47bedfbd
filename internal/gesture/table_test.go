package gesture

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTableLookups(t *testing.T) {
	table, err := NewTable(DefaultMappings())
	require.NoError(t, err)

	cases := map[string]string{
		"Thumbs Up":   "space",
		"Open Palm":   "space",
		"Point":       "nexttrack",
		"Two Fingers": "prevtrack",
		"Shaka":       "volumeup",
		"Point Down":  "volumedown",
		"Fist":        "stop",
	}
	for gesture, want := range cases {
		got, ok := table.Lookup(gesture)
		assert.True(t, ok, gesture)
		assert.Equal(t, want, got, gesture)
	}
	assert.Equal(t, 7, table.Len())
}

func TestLookupIsExact(t *testing.T) {
	table, err := NewTable(DefaultMappings())
	require.NoError(t, err)

	for _, name := range []string{"thumbs up", "THUMBS UP", " Thumbs Up", "Thumbs Up ", "Wave"} {
		_, ok := table.Lookup(name)
		assert.False(t, ok, "expected %q to be unmapped", name)
	}
}

func TestNewTableCopiesInput(t *testing.T) {
	src := map[string]string{"Fist": "stop"}
	table, err := NewTable(src)
	require.NoError(t, err)

	src["Fist"] = "space"
	src["Wave"] = "enter"

	action, _ := table.Lookup("Fist")
	assert.Equal(t, "stop", action)
	_, ok := table.Lookup("Wave")
	assert.False(t, ok)
}

func TestNewTableRejectsBlankEntries(t *testing.T) {
	_, err := NewTable(map[string]string{"  ": "space"})
	assert.ErrorIs(t, err, ErrEmptyGesture)

	_, err = NewTable(map[string]string{"Fist": ""})
	assert.ErrorIs(t, err, ErrEmptyAction)
}

func TestEntriesSorted(t *testing.T) {
	table, err := NewTable(map[string]string{"b": "2", "a": "1", "c": "3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, table.Gestures())
	assert.Equal(t, []Entry{{"a", "1"}, {"b", "2"}, {"c", "3"}}, table.Entries())
}

func TestValidateReportsUnknownActions(t *testing.T) {
	table, err := NewTable(map[string]string{"Fist": "stop", "Wave": "warp", "Spin": "twirl"})
	require.NoError(t, err)

	err = table.Validate(func(action string) bool { return action == "stop" })
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnknownAction))
	assert.Contains(t, err.Error(), `"warp"`)
	assert.Contains(t, err.Error(), `"twirl"`)

	assert.NoError(t, table.Validate(func(string) bool { return true }))
}
