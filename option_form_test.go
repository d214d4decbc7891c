package form

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestOptionForm builds an OptionForm that reads the given lines and writes to a buffer.
func newTestOptionForm(t *testing.T, settings *Settings, lines ...string) (*OptionForm, *bytes.Buffer, *mockClearer) {
	t.Helper()

	if settings == nil {
		settings = NewSettings()
	}
	out := &bytes.Buffer{}
	clearer := &mockClearer{}
	f := NewOptionForm("Menu", WithOutput(out), WithClearer(clearer), WithSettings(settings))
	f.console = newMockConsole(lines...)
	return f, out, clearer
}

// addCountingOptions registers options named after names and returns their call counters.
func addCountingOptions(t *testing.T, f *OptionForm, names ...string) map[string]*int {
	t.Helper()

	calls := make(map[string]*int, len(names))
	for _, name := range names {
		n := new(int)
		calls[name] = n
		require.NoError(t, f.AddOption(name, Action(func() { *n++ })))
	}
	return calls
}

func TestOptionFormSendRendersMenu(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	settings.SetHeader("===")
	settings.SetSeparator("---")

	f, out, _ := newTestOptionForm(t, settings, "1")
	f.SetBody("Pick one")
	require.NoError(t, f.AddOption("Start", Action(func() {})))
	require.NoError(t, f.AddOption("Quit", Action(func() {}), WithTooltip("leave")))

	require.NoError(t, f.Send())

	want := "===\n" +
		"Menu\n" +
		"Pick one\n" +
		"---\n" +
		"Options:\n" +
		"  1. Start\n" +
		"  2. Quit --> leave\n" +
		"---\n" +
		"Choose an option by number: " +
		"===\n"
	assert.Equal(t, want, out.String())
}

func TestOptionFormSelectsOption(t *testing.T) {
	t.Parallel()

	f, _, _ := newTestOptionForm(t, nil, "2")
	calls := addCountingOptions(t, f, "A", "B", "C")

	require.NoError(t, f.Send())

	assert.Equal(t, 0, *calls["A"])
	assert.Equal(t, 1, *calls["B"])
	assert.Equal(t, 0, *calls["C"])
	assert.Equal(t, "B", f.Selected())
}

func TestOptionFormRetriesInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		inputs  []string
		message string
	}{
		{name: "out of range", inputs: []string{"9", "1"}, message: msgInvalidChoice},
		{name: "zero", inputs: []string{"0", "1"}, message: msgInvalidChoice},
		{name: "not a number", inputs: []string{"abc", "1"}, message: msgInvalidNumber},
		{name: "empty without default", inputs: []string{"", "1"}, message: msgInvalidNumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f, out, clearer := newTestOptionForm(t, nil, tt.inputs...)
			calls := addCountingOptions(t, f, "A", "B", "C")

			require.NoError(t, f.Send())

			assert.Equal(t, 1, *calls["A"])
			assert.Equal(t, 1, strings.Count(out.String(), tt.message), "error should be shown once")
			assert.Equal(t, 2, strings.Count(out.String(), choicePrompt))
			assert.Equal(t, 0, clearer.count)
		})
	}
}

func TestOptionFormFailureThresholdRedraws(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	require.NoError(t, settings.Set(KeyFailureResetThreshold, 2))

	f, out, clearer := newTestOptionForm(t, settings, "7", "x", "3")
	calls := addCountingOptions(t, f, "A", "B", "C")

	require.NoError(t, f.Send())

	output := out.String()
	assert.Equal(t, 1, clearer.count, "display should be cleared once")
	assert.Equal(t, 2, strings.Count(output, "Menu\n"), "form should be drawn twice")
	assert.Equal(t, 2, strings.Count(output, "  3. C\n"), "options survive the redraw")
	assert.Equal(t, 1, *calls["C"])

	// The first error is printed in place, the second one after the redraw.
	assert.Equal(t, 1, strings.Count(output, msgInvalidChoice))
	assert.Equal(t, 1, strings.Count(output, msgInvalidNumber))
	redraw := strings.LastIndex(output, "Menu\n")
	assert.Greater(t, strings.Index(output, msgInvalidNumber), redraw, "pending error is shown after the redraw")
}

func TestOptionFormFailureThresholdResetsCount(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	require.NoError(t, settings.SetFailureResetThreshold(1))

	f, _, clearer := newTestOptionForm(t, settings, "x", "x", "x", "1")
	addCountingOptions(t, f, "A")

	require.NoError(t, f.Send())
	assert.Equal(t, 3, clearer.count)
}

func TestOptionFormDefaultOption(t *testing.T) {
	t.Parallel()

	f, out, _ := newTestOptionForm(t, nil, "")
	calls := make([]string, 0, 1)
	require.NoError(t, f.AddOption("A", Action(func() { calls = append(calls, "A") }), AsDefault()))
	require.NoError(t, f.AddOption("B", Action(func() { calls = append(calls, "B") }), AsDefault()))
	require.NoError(t, f.AddOption("C", Action(func() { calls = append(calls, "C") })))

	name, ok := f.Default()
	require.True(t, ok)
	assert.Equal(t, "B", name, "the most recent default wins")

	require.NoError(t, f.Send())
	assert.Equal(t, []string{"B"}, calls)
	assert.NotContains(t, out.String(), msgInvalidNumber)
}

func TestOptionFormSeparators(t *testing.T) {
	t.Parallel()

	f, out, _ := newTestOptionForm(t, nil, "2")
	calls := addCountingOptions(t, f, "A")
	f.AddSeparator()
	require.NoError(t, f.AddOption("B", Action(func() { *calls["A"] += 10 })))
	f.AddSeparator("-- more --")

	require.NoError(t, f.Send())

	output := out.String()
	assert.Contains(t, output, "  1. A\n  \n  2. B\n  -- more --\n")
	assert.Equal(t, 10, *calls["A"], "separators are not numbered, so 2 selects B")
	assert.Equal(t, 2, f.separatorCount)
	assert.Equal(t, "SEPARATOR2", f.entries[3].separator.key)
}

func TestOptionFormAddOptionErrors(t *testing.T) {
	t.Parallel()

	f, _, _ := newTestOptionForm(t, nil)
	require.NoError(t, f.AddOption("A", Action(func() {})))

	tests := []struct {
		name     string
		option   string
		callback Callback
		want     error
	}{
		{name: "reserved marker", option: "SEPARATOR_X", callback: Action(func() {}), want: ErrReservedName},
		{name: "reserved marker inside", option: "mySEPARATOR1", callback: Action(func() {}), want: ErrReservedName},
		{name: "duplicate", option: "A", callback: Action(func() {}), want: ErrDuplicateName},
		{name: "zero callback", option: "B", callback: Callback{}, want: ErrNotCallable},
		{name: "nil function", option: "C", callback: Action(nil), want: ErrNotCallable},
	}

	for _, tt := range tests {
		err := f.AddOption(tt.option, tt.callback)
		assert.True(t, errors.Is(err, tt.want), "%s: expected %v, got %v", tt.name, tt.want, err)
	}
	assert.Len(t, f.entries, 1, "failed registrations must not add entries")
}

func TestOptionFormCallbackOrder(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	var order []string
	settings.SetDefaultCallback(Action(func() { order = append(order, "default") }))

	f, _, _ := newTestOptionForm(t, settings, "1")
	require.NoError(t, f.AddOption("A", ActionWithForm(func(c Context) {
		order = append(order, "option:"+c.Title())
	})))

	require.NoError(t, f.Send())
	assert.Equal(t, []string{"default", "option:Menu"}, order)
}

func TestOptionFormCallbackReceivesForm(t *testing.T) {
	t.Parallel()

	f, _, _ := newTestOptionForm(t, nil, "1")
	var seen Context
	require.NoError(t, f.AddOption("A", ActionWithForm(func(c Context) { seen = c })))

	require.NoError(t, f.Send())
	assert.Same(t, f, seen)
}

func TestOptionFormClearAfterForm(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	settings.SetClearAfterForm(true)

	f, _, clearer := newTestOptionForm(t, settings, "1")
	addCountingOptions(t, f, "A")

	require.NoError(t, f.Send())
	assert.Equal(t, 1, clearer.count)
}

func TestOptionFormOptionsLabel(t *testing.T) {
	t.Parallel()

	settings := NewSettings()
	settings.SetOptionsLabel("")

	f, out, _ := newTestOptionForm(t, settings, "1")
	addCountingOptions(t, f, "A")

	require.NoError(t, f.Send())
	assert.NotContains(t, out.String(), DefaultOptionsLabel+":")

	settings.SetOptionsLabel("Pick an option!!!")
	f.console = newMockConsole("1")
	out.Reset()
	require.NoError(t, f.Send())
	assert.Contains(t, out.String(), "Pick an option!!!:\n")
}

func TestOptionFormErrorColor(t *testing.T) {
	t.Parallel()

	f, out, _ := newTestOptionForm(t, nil, "5", "1")
	addCountingOptions(t, f, "A")

	require.NoError(t, f.Send())
	assert.Contains(t, out.String(), ColorRed.ToANSI()+msgInvalidChoice+Reset())
}

func TestOptionFormInputErrors(t *testing.T) {
	t.Parallel()

	t.Run("EOF", func(t *testing.T) {
		t.Parallel()

		f, _, _ := newTestOptionForm(t, nil, "9")
		addCountingOptions(t, f, "A")

		err := f.Send()
		assert.ErrorIs(t, err, ErrEOF)
		assert.Empty(t, f.Selected())
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		f, _, _ := newTestOptionForm(t, nil, "1")
		calls := addCountingOptions(t, f, "A")

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := f.SendWithContext(ctx)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 0, *calls["A"])
	})
}

func TestOptionFormWithReaderInput(t *testing.T) {
	t.Parallel()

	out := &bytes.Buffer{}
	f := NewOptionForm("Menu", WithInput(strings.NewReader("x\r\n2\r\n")), WithOutput(out))
	defer f.Close()
	calls := addCountingOptions(t, f, "A", "B")

	require.NoError(t, f.Send())
	assert.Equal(t, 1, *calls["B"])
}

func TestFormSetSettings(t *testing.T) {
	t.Parallel()

	f := NewOptionForm("Menu")
	assert.ErrorIs(t, f.SetSettings(nil), ErrInvalidSettings)

	s := NewSettings()
	require.NoError(t, f.SetSettings(s))
	assert.Same(t, s, f.Settings())
	assert.Same(t, s, f.renderer.settings)

	_, ok := f.Body()
	assert.False(t, ok)
	f.SetBody("text")
	body, ok := f.Body()
	assert.True(t, ok)
	assert.Equal(t, "text", body)
}
