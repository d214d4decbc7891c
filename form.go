package form

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
)

// Common errors
var (
	// ErrInvalidKey is returned when a setting key is not part of the SettingKey enumeration
	ErrInvalidKey = errors.New("invalid setting key")
	// ErrInvalidValueType is returned when a value does not match the type a setting or field requires
	ErrInvalidValueType = errors.New("invalid value type")
	// ErrInvalidSettings is returned when a form is given nil settings
	ErrInvalidSettings = errors.New("settings must be a non-nil *Settings")
	// ErrReservedName is returned when an option or field name contains the reserved separator marker
	ErrReservedName = errors.New("name must not contain '" + SeparatorMarker + "'")
	// ErrDuplicateName is returned when an option or field name is registered twice
	ErrDuplicateName = errors.New("name already registered")
	// ErrNotCallable is returned when an option is registered without a callback
	ErrNotCallable = errors.New("callback must be callable")
	// ErrInvalidValidation is returned when a validation function does not accept the field's value type
	ErrInvalidValidation = errors.New("validation must take exactly one argument of the field's value type")
	// ErrUnknownNumericSubtype is returned when a number field carries a subtype other than Int or Float
	ErrUnknownNumericSubtype = errors.New("unknown numeric subtype")
	// ErrEOF is returned when the input source is exhausted before the form completes
	ErrEOF = errors.New("EOF")
)

// SeparatorMarker is reserved in option and field names. Separator entries are keyed
// SEPARATOR1, SEPARATOR2, ... in the order they are added.
const SeparatorMarker = "SEPARATOR"

// Context is the view of a form handed to callbacks created with ActionWithForm.
// *OptionForm and *InputForm both implement it.
type Context interface {
	Title() string
	Body() (string, bool)
	SetBody(body string)
	Settings() *Settings
	SetSettings(settings *Settings) error
}

// Form holds the parts shared by OptionForm and InputForm: the title block,
// the settings and the terminal plumbing.
type Form struct {
	title          string
	body           string
	hasBody        bool
	separatorCount int
	settings       *Settings
	console        console
	clearer        Clearer
	renderer       *renderer
	logger         *zap.Logger
}

// FormOption configures a form at construction time.
type FormOption func(*formConfig)

type formConfig struct {
	body     *string
	settings *Settings
	input    io.Reader
	output   io.Writer
	clearer  Clearer
	logger   *zap.Logger
}

// WithBody sets the text printed below the title.
func WithBody(body string) FormOption {
	return func(c *formConfig) {
		c.body = &body
	}
}

// WithSettings shares an existing settings registry with the form.
// Changes made to the registry later are visible to every form holding it.
func WithSettings(settings *Settings) FormOption {
	return func(c *formConfig) {
		c.settings = settings
	}
}

// WithInput reads answers from r instead of the terminal.
func WithInput(r io.Reader) FormOption {
	return func(c *formConfig) {
		c.input = r
	}
}

// WithOutput writes the form to w instead of standard output.
func WithOutput(w io.Writer) FormOption {
	return func(c *formConfig) {
		c.output = w
	}
}

// WithClearer replaces the way the display is cleared.
func WithClearer(clearer Clearer) FormOption {
	return func(c *formConfig) {
		c.clearer = clearer
	}
}

// WithLogger sets the logger used for debug events. The default discards everything.
func WithLogger(logger *zap.Logger) FormOption {
	return func(c *formConfig) {
		c.logger = logger
	}
}

func newForm(title string, options []FormOption) Form {
	var config formConfig
	for _, option := range options {
		option(&config)
	}

	if config.settings == nil {
		config.settings = NewSettings()
	}
	if config.logger == nil {
		config.logger = zap.NewNop()
	}

	var con console
	if config.input != nil {
		con = newReaderConsole(config.input)
	} else {
		con = newRealConsole()
	}
	output := config.output
	clearer := config.clearer
	if output == nil {
		output = defaultOutput()
		if clearer == nil {
			clearer = newClearer(output, os.Stdout)
		}
	}
	if clearer == nil {
		clearer = NewWriterClearer(output)
	}

	f := Form{
		title:    title,
		settings: config.settings,
		console:  con,
		clearer:  clearer,
		logger:   config.logger,
	}
	if config.body != nil {
		f.body = *config.body
		f.hasBody = true
	}
	f.renderer = newRenderer(output, f.settings)
	return f
}

// Title returns the form title.
func (f *Form) Title() string {
	return f.title
}

// Body returns the form body and whether one is set.
func (f *Form) Body() (string, bool) {
	return f.body, f.hasBody
}

// SetBody replaces the form body.
func (f *Form) SetBody(body string) {
	f.body = body
	f.hasBody = true
}

// Settings returns the settings registry used by the form.
// Editing the returned value edits the form's settings in place.
func (f *Form) Settings() *Settings {
	return f.settings
}

// SetSettings replaces the settings registry wholesale.
func (f *Form) SetSettings(settings *Settings) error {
	if settings == nil {
		return ErrInvalidSettings
	}
	f.settings = settings
	f.renderer.settings = settings
	return nil
}

// Close releases the terminal, if the form opened one. It is safe to call Close multiple times.
func (f *Form) Close() error {
	return f.console.Close()
}

// addSeparatorMarker bumps the separator counter and returns the new count.
func (f *Form) addSeparatorMarker() int {
	f.separatorCount++
	return f.separatorCount
}

// separatorKey returns the key of the most recently added separator.
func (f *Form) separatorKey() string {
	return fmt.Sprintf("%s%d", SeparatorMarker, f.separatorCount)
}

// render writes the header, title, optional body and separator.
func (f *Form) render() error {
	lines := []string{f.settings.Header(), f.renderer.styled(f.title)}
	if f.hasBody {
		lines = append(lines, f.renderer.styled(f.body))
	}
	lines = append(lines, f.settings.Separator())
	return f.renderer.lines(lines...)
}

// readLine blocks until the user submits a line. Cancellation is only checked between lines.
func (f *Form) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := f.console.ReadLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrEOF
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return line, nil
}

// clear clears the display and logs why.
func (f *Form) clear(reason string) error {
	f.logger.Debug("clearing display", zap.String("form", f.title), zap.String("reason", reason))
	if err := f.clearer.Clear(); err != nil {
		return fmt.Errorf("failed to clear display: %w", err)
	}
	return nil
}

// runDefaultCallback runs the DEFAULT_CALLBACK setting, if any, with c as its form.
func (f *Form) runDefaultCallback(c Context) {
	if cb := f.settings.DefaultCallback(); !cb.IsZero() {
		cb.invoke(c)
	}
}

// checkName applies the naming rules shared by options and fields.
func checkName(name string, taken func(string) bool) error {
	if strings.Contains(name, SeparatorMarker) {
		return fmt.Errorf("%w: %q", ErrReservedName, name)
	}
	if taken(name) {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	return nil
}
