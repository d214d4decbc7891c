// Package definition describes forms in YAML and turns them into runnable forms.
//
// A definition looks like this:
//
//	kind: input
//	title: Sign up
//	body: Tell us about yourself.
//	settings:
//	  header: "+-+-+-+-+-+-"
//	  clear_after_form: true
//	  error_color: yellow
//	entries:
//	  - type: text
//	    name: Name
//	    pattern: "^[A-Za-z ]+$"
//	  - type: separator
//	  - type: number
//	    name: Age
//	    default: 18
//	    min: 0
//	  - type: bool
//	    name: Subscribe
//	    default: true
//
// Option forms use entries of type option and separator. An option prints its
// message when chosen.
package definition

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/nao1215/form"
	"gopkg.in/yaml.v3"
)

// Common errors
var (
	// ErrUnknownKind is returned when kind is neither option nor input
	ErrUnknownKind = errors.New("unknown form kind")
	// ErrUnknownEntryType is returned when an entry type does not fit the form kind
	ErrUnknownEntryType = errors.New("unknown entry type")
	// ErrMissingName is returned when an option or field has no name
	ErrMissingName = errors.New("entry name is required")
	// ErrUnknownSubtype is returned when a number entry names a subtype other than int or float
	ErrUnknownSubtype = errors.New("unknown number subtype")
	// ErrInvalidSetting is returned when a settings value cannot be decoded
	ErrInvalidSetting = errors.New("invalid setting")
)

// Kind is the type of form a definition describes.
type Kind string

// Form kinds.
const (
	KindOption Kind = "option"
	KindInput  Kind = "input"
)

// EntryType is the type of a single entry.
type EntryType string

// Entry types. Option forms accept option and separator, input forms accept
// text, number, bool and separator.
const (
	EntrySeparator EntryType = "separator"
	EntryOption    EntryType = "option"
	EntryText      EntryType = "text"
	EntryNumber    EntryType = "number"
	EntryBool      EntryType = "bool"
)

// Definition is a form described in YAML.
type Definition struct {
	Kind     Kind                 `yaml:"kind"`
	Title    string               `yaml:"title"`
	Body     *string              `yaml:"body,omitempty"`
	Settings map[string]yaml.Node `yaml:"settings,omitempty"`
	Entries  []Entry              `yaml:"entries"`
}

// Entry is one line of a form: a separator, an option or an input field.
type Entry struct {
	Type    EntryType `yaml:"type"`
	Name    string    `yaml:"name,omitempty"`
	Text    string    `yaml:"text,omitempty"`
	Tooltip string    `yaml:"tooltip,omitempty"`
	// Message is printed when the option is chosen or the field is answered.
	Message   string   `yaml:"message,omitempty"`
	IsDefault bool     `yaml:"is_default,omitempty"`
	Default   any      `yaml:"default,omitempty"`
	Subtype   string   `yaml:"subtype,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
}

// Result is what running a definition produced.
type Result struct {
	Form      string         `yaml:"form"`
	Selected  string         `yaml:"selected,omitempty"`
	Responses form.Responses `yaml:"responses,omitempty"`
}

// Load reads and validates a definition file.
func Load(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Parse decodes and validates a definition.
func Parse(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Validate checks the kind and every entry. It does not build the form, so name
// clashes are reported by Run.
func (d *Definition) Validate() error {
	var allowed []EntryType
	switch d.Kind {
	case KindOption:
		allowed = []EntryType{EntrySeparator, EntryOption}
	case KindInput:
		allowed = []EntryType{EntrySeparator, EntryText, EntryNumber, EntryBool}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
	}

	for i, e := range d.Entries {
		if !slices.Contains(allowed, e.Type) {
			return fmt.Errorf("entry %d: %w: %q in %s form", i+1, ErrUnknownEntryType, e.Type, d.Kind)
		}
		if e.Type != EntrySeparator && e.Name == "" {
			return fmt.Errorf("entry %d: %w", i+1, ErrMissingName)
		}
		if e.Type == EntryNumber {
			if _, err := e.subtype(); err != nil {
				return fmt.Errorf("entry %d: %w", i+1, err)
			}
		}
		if e.Pattern != "" {
			if _, err := regexp.Compile(e.Pattern); err != nil {
				return fmt.Errorf("entry %d: invalid pattern: %w", i+1, err)
			}
		}
	}
	return nil
}

// DisableColor drops the error color, whatever the settings block says.
func (d *Definition) DisableColor() {
	if d.Settings == nil {
		d.Settings = make(map[string]yaml.Node)
	}
	for name := range d.Settings {
		if key, err := form.ParseSettingKey(name); err == nil && key == form.KeyErrorColor {
			delete(d.Settings, name)
		}
	}
	d.Settings[form.KeyErrorColor.String()] = yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null"}
}

// Run builds the form and sends it. Option messages, field messages and a string
// default_callback are written to out, which is also where the form is drawn.
// A nil out draws on the terminal and prints messages to standard output.
func (d *Definition) Run(ctx context.Context, out io.Writer, options ...form.FormOption) (*Result, error) {
	messages := out
	if messages == nil {
		messages = os.Stdout
	}

	settings, err := d.buildSettings(messages)
	if err != nil {
		return nil, err
	}

	opts := []form.FormOption{form.WithSettings(settings)}
	if d.Body != nil {
		opts = append(opts, form.WithBody(*d.Body))
	}
	if out != nil {
		opts = append(opts, form.WithOutput(out))
	}
	opts = append(opts, options...)

	switch d.Kind {
	case KindOption:
		return d.runOptionForm(ctx, messages, opts)
	case KindInput:
		return d.runInputForm(ctx, messages, opts)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, d.Kind)
}

func (d *Definition) runOptionForm(ctx context.Context, messages io.Writer, opts []form.FormOption) (*Result, error) {
	f := form.NewOptionForm(d.Title, opts...)
	defer f.Close()

	for _, e := range d.Entries {
		if e.Type == EntrySeparator {
			f.AddSeparator(e.Text)
			continue
		}
		var optionOpts []form.OptionOption
		if e.Tooltip != "" {
			optionOpts = append(optionOpts, form.WithTooltip(e.Tooltip))
		}
		if e.IsDefault {
			optionOpts = append(optionOpts, form.AsDefault())
		}
		if err := f.AddOption(e.Name, printer(messages, e.Message), optionOpts...); err != nil {
			return nil, err
		}
	}

	if err := f.SendWithContext(ctx); err != nil {
		return nil, err
	}
	return &Result{Form: d.Title, Selected: f.Selected()}, nil
}

func (d *Definition) runInputForm(ctx context.Context, messages io.Writer, opts []form.FormOption) (*Result, error) {
	f := form.NewInputForm(d.Title, opts...)
	defer f.Close()

	for _, e := range d.Entries {
		if e.Type == EntrySeparator {
			f.AddSeparator(e.Text)
			continue
		}
		fieldOpts, err := e.fieldOptions(messages)
		if err != nil {
			return nil, err
		}
		switch e.Type {
		case EntryText:
			err = f.RegisterTextInput(e.Name, fieldOpts...)
		case EntryNumber:
			err = f.RegisterNumberInput(e.Name, fieldOpts...)
		case EntryBool:
			err = f.RegisterBoolInput(e.Name, fieldOpts...)
		}
		if err != nil {
			return nil, err
		}
	}

	responses, err := f.SendWithContext(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{Form: d.Title, Responses: responses}, nil
}

// fieldOptions converts the entry's attributes into field options.
func (e Entry) fieldOptions(messages io.Writer) ([]form.FieldOption, error) {
	var opts []form.FieldOption
	if e.Tooltip != "" {
		opts = append(opts, form.WithFieldTooltip(e.Tooltip))
	}
	if e.Default != nil {
		opts = append(opts, form.WithDefault(e.Default))
	}
	if e.Message != "" {
		opts = append(opts, form.WithFieldCallback(printer(messages, e.Message)))
	}

	switch e.Type {
	case EntryText:
		if e.Pattern != "" {
			re, err := regexp.Compile(e.Pattern)
			if err != nil {
				return nil, fmt.Errorf("%s: invalid pattern: %w", e.Name, err)
			}
			opts = append(opts, form.WithValidation(func(s string) error {
				if !re.MatchString(s) {
					return fmt.Errorf("input must match %s", e.Pattern)
				}
				return nil
			}))
		}
	case EntryNumber:
		subtype, err := e.subtype()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", e.Name, err)
		}
		opts = append(opts, form.WithNumericSubtype(subtype))
		if e.Min != nil || e.Max != nil {
			if subtype == form.Int {
				opts = append(opts, form.WithValidation(func(n int) error {
					return e.checkRange(float64(n))
				}))
			} else {
				opts = append(opts, form.WithValidation(e.checkRange))
			}
		}
	}
	return opts, nil
}

func (e Entry) subtype() (form.NumericSubtype, error) {
	switch strings.ToLower(e.Subtype) {
	case "", "int":
		return form.Int, nil
	case "float":
		return form.Float, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSubtype, e.Subtype)
}

func (e Entry) checkRange(n float64) error {
	if e.Min != nil && n < *e.Min {
		return fmt.Errorf("value must be at least %v", *e.Min)
	}
	if e.Max != nil && n > *e.Max {
		return fmt.Errorf("value must be at most %v", *e.Max)
	}
	return nil
}

// buildSettings applies the settings block in a fixed key order so errors are stable.
func (d *Definition) buildSettings(messages io.Writer) (*form.Settings, error) {
	settings := form.NewSettings()

	names := make([]string, 0, len(d.Settings))
	for name := range d.Settings {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		key, err := form.ParseSettingKey(name)
		if err != nil {
			return nil, err
		}
		node := d.Settings[name]
		value, err := decodeSetting(key, &node, messages)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrInvalidSetting, name, err)
		}
		if err := settings.Set(key, value); err != nil {
			return nil, err
		}
	}
	return settings, nil
}

// namedColors are the error colors a definition can refer to by name.
var namedColors = map[string]form.Color{
	"red":    form.ColorRed,
	"yellow": form.ColorYellow,
	"orange": form.ColorOrange,
	"white":  form.ColorWhite,
}

// decodeSetting turns a YAML value into what Settings.Set expects for key.
func decodeSetting(key form.SettingKey, node *yaml.Node, messages io.Writer) (any, error) {
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil, nil
	}

	switch key {
	case form.KeyErrorColor:
		if node.Kind == yaml.ScalarNode {
			c, ok := namedColors[strings.ToLower(node.Value)]
			if !ok {
				return nil, fmt.Errorf("unknown color %q", node.Value)
			}
			return c, nil
		}
		var c form.Color
		if err := node.Decode(&c); err != nil {
			return nil, err
		}
		return c, nil
	case form.KeyDefaultCallback:
		var msg string
		if err := node.Decode(&msg); err != nil {
			return nil, err
		}
		return printer(messages, msg), nil
	}

	var v any
	if err := node.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// printer is a callback that writes msg on its own line. An empty msg prints nothing.
func printer(w io.Writer, msg string) form.Callback {
	return form.Action(func() {
		if msg != "" {
			fmt.Fprintln(w, msg)
		}
	})
}
