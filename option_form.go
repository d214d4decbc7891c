package form

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Messages printed while prompting for a menu choice.
const (
	choicePrompt       = "Choose an option by number: "
	msgInvalidChoice   = "Invalid choice, please try again."
	msgInvalidNumber   = "Please enter a valid number."
	optionsLabelSuffix = ":"
)

// OptionForm presents a numbered menu and runs the callback of the option the user picks.
type OptionForm struct {
	Form
	entries     []optionEntry
	names       map[string]struct{}
	defaultName string
	selected    string
}

// optionEntry is either a selectable option or a separator line.
type optionEntry struct {
	separator *separatorEntry
	name      string
	callback  Callback
	tooltip   string
}

// separatorEntry is a display-only line inside a form.
type separatorEntry struct {
	key  string
	text string
}

// OptionOption configures a single option.
type OptionOption func(*optionEntry, *bool)

// WithTooltip shows text after the option name.
func WithTooltip(tooltip string) OptionOption {
	return func(e *optionEntry, _ *bool) {
		e.tooltip = tooltip
	}
}

// AsDefault makes the option the answer to an empty input.
// When several options are marked, the last one registered wins.
func AsDefault() OptionOption {
	return func(_ *optionEntry, isDefault *bool) {
		*isDefault = true
	}
}

// NewOptionForm creates a menu form.
//
// Example:
//
//	menu := form.NewOptionForm("Main menu", form.WithBody("What next?"))
//	menu.AddOption("Start", form.Action(start))
//	menu.AddSeparator()
//	menu.AddOption("Quit", form.Action(quit), form.WithTooltip("leave the program"))
//	if err := menu.Send(); err != nil {
//		log.Fatal(err)
//	}
func NewOptionForm(title string, options ...FormOption) *OptionForm {
	return &OptionForm{
		Form:  newForm(title, options),
		names: make(map[string]struct{}),
	}
}

// AddOption appends a selectable option. Options are numbered in the order they are added.
func (f *OptionForm) AddOption(name string, callback Callback, options ...OptionOption) error {
	if err := checkName(name, f.hasName); err != nil {
		return err
	}
	if callback.IsZero() {
		return fmt.Errorf("%w: option %q", ErrNotCallable, name)
	}

	e := optionEntry{name: name, callback: callback}
	isDefault := false
	for _, option := range options {
		option(&e, &isDefault)
	}

	f.entries = append(f.entries, e)
	f.names[name] = struct{}{}
	if isDefault {
		f.defaultName = name
	}
	return nil
}

// AddSeparator appends a line that is shown between options but cannot be chosen.
// The optional text is printed on that line.
func (f *OptionForm) AddSeparator(text ...string) {
	f.addSeparatorMarker()
	f.entries = append(f.entries, optionEntry{
		separator: &separatorEntry{key: f.separatorKey(), text: joinText(text)},
	})
}

// Default returns the name of the default option, if one is set.
func (f *OptionForm) Default() (string, bool) {
	return f.defaultName, f.defaultName != ""
}

// Selected returns the option chosen by the last Send.
func (f *OptionForm) Selected() string {
	return f.selected
}

// Send displays the form, waits for a valid choice and runs its callback.
func (f *OptionForm) Send() error {
	return f.SendWithContext(context.Background())
}

// SendWithContext is Send with a context that is checked before every read.
//
// Invalid answers print an error and prompt again. When the FAILURE_RESET_THRESHOLD
// setting is positive and that many invalid answers pile up, the display is cleared
// and the whole form is drawn again, followed by the last error.
func (f *OptionForm) SendWithContext(ctx context.Context) error {
	f.selected = ""
	pending := ""
	for {
		selectable, err := f.draw()
		if err != nil {
			return err
		}
		if pending != "" {
			if err := f.renderer.error(pending); err != nil {
				return err
			}
			pending = ""
		}

		choice, reset, err := f.choose(ctx, selectable)
		if err != nil {
			return err
		}
		if choice != nil {
			return f.dispatch(choice)
		}

		f.logger.Debug("failure threshold reached, redrawing form",
			zap.String("form", f.title),
			zap.Int("threshold", f.settings.FailureResetThreshold()))
		if err := f.clear("failure threshold"); err != nil {
			return err
		}
		pending = reset
	}
}

// draw renders the title block and the option list and returns the selectable
// options in display order.
func (f *OptionForm) draw() ([]*optionEntry, error) {
	if err := f.render(); err != nil {
		return nil, err
	}

	var lines []string
	if label := f.settings.OptionsLabel(); label != "" {
		lines = append(lines, label+optionsLabelSuffix)
	}
	selectable := make([]*optionEntry, 0, len(f.entries))
	for i := range f.entries {
		e := &f.entries[i]
		if e.separator != nil {
			lines = append(lines, f.renderer.separatorLine(e.separator.text))
			continue
		}
		selectable = append(selectable, e)
		lines = append(lines, f.renderer.optionLine(len(selectable), e.name, e.tooltip))
	}
	lines = append(lines, f.settings.Separator())

	if err := f.renderer.lines(lines...); err != nil {
		return nil, err
	}
	return selectable, nil
}

// choose reads answers until one names an option. It returns a nil choice and the
// last error message when the failure threshold is reached.
func (f *OptionForm) choose(ctx context.Context, selectable []*optionEntry) (*optionEntry, string, error) {
	invalid := 0
	for {
		if err := f.renderer.prompt(choicePrompt); err != nil {
			return nil, "", err
		}
		input, err := f.readLine(ctx)
		if err != nil {
			return nil, "", err
		}

		var msg string
		n, ok := parseChoice(input)
		switch {
		case ok && n >= 1 && n <= len(selectable):
			return selectable[n-1], "", nil
		case input == "" && f.defaultName != "":
			return f.entry(f.defaultName), "", nil
		case ok:
			msg = msgInvalidChoice
		default:
			msg = msgInvalidNumber
		}

		invalid++
		f.logger.Debug("invalid choice",
			zap.String("form", f.title),
			zap.String("input", input),
			zap.Int("attempt", invalid))

		if threshold := f.settings.FailureResetThreshold(); threshold > 0 && invalid >= threshold {
			return nil, msg, nil
		}
		if err := f.renderer.error(msg); err != nil {
			return nil, "", err
		}
	}
}

// dispatch finishes the form and runs the default callback, then the option's own.
func (f *OptionForm) dispatch(choice *optionEntry) error {
	f.selected = choice.name
	f.logger.Debug("option selected", zap.String("form", f.title), zap.String("option", choice.name))

	if err := f.renderer.lines(f.settings.Header()); err != nil {
		return err
	}
	if f.settings.ClearAfterForm() {
		if err := f.clear("form complete"); err != nil {
			return err
		}
	}
	f.runDefaultCallback(f)
	choice.callback.invoke(f)
	return nil
}

func (f *OptionForm) entry(name string) *optionEntry {
	for i := range f.entries {
		if f.entries[i].separator == nil && f.entries[i].name == name {
			return &f.entries[i]
		}
	}
	return nil
}

func (f *OptionForm) hasName(name string) bool {
	_, ok := f.names[name]
	return ok
}

// joinText turns the optional variadic separator text into a single string.
func joinText(text []string) string {
	if len(text) == 0 {
		return ""
	}
	return text[0]
}
