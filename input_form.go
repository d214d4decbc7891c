package form

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

const msgInvalidYesNo = "Invalid input: Please enter 'y' or 'n'."

// FieldKind is the type of answer a field collects.
type FieldKind int

// Field kinds.
const (
	KindText FieldKind = iota
	KindNumber
	KindBool
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("FieldKind(%d)", int(k))
	}
}

// NumericSubtype decides what a number field stores.
type NumericSubtype int

// Numeric subtypes. Int rounds the answer to the nearest integer and stores an int;
// Float stores the float64 as typed.
const (
	Int NumericSubtype = iota
	Float
)

// InputForm asks for a sequence of typed values and returns the answers.
type InputForm struct {
	Form
	fields []field
	names  map[string]struct{}
}

// field is either an input or a separator line.
type field struct {
	separator  *separatorEntry
	name       string
	kind       FieldKind
	subtype    NumericSubtype
	def        any
	hasDefault bool
	validation *validator
	callback   Callback
	tooltip    string
	response   any
	answered   bool
}

// validator wraps a typed validation function.
type validator struct {
	accepts reflect.Type
	fn      func(any) error
}

type fieldConfig struct {
	tooltip    string
	def        any
	hasDefault bool
	validation *validator
	callback   Callback
	subtype    NumericSubtype
}

// FieldOption configures a single input field.
type FieldOption func(*fieldConfig)

// WithFieldTooltip shows text after the field name.
func WithFieldTooltip(tooltip string) FieldOption {
	return func(c *fieldConfig) {
		c.tooltip = tooltip
	}
}

// WithDefault sets the answer used when the user submits an empty line.
// Text fields take a string, bool fields a bool and number fields any integer or float.
func WithDefault(value any) FieldOption {
	return func(c *fieldConfig) {
		c.def = value
		c.hasDefault = value != nil
	}
}

// WithValidation checks every typed answer before it is accepted. A non-nil error
// rejects the answer: its message is shown and the user is asked again.
//
// T must match the field: string for text fields, int for Int number fields and
// float64 for Float number fields. Bool fields take no validation.
func WithValidation[T string | int | float64](fn func(T) error) FieldOption {
	return func(c *fieldConfig) {
		if fn == nil {
			c.validation = nil
			return
		}
		c.validation = &validator{
			accepts: reflect.TypeFor[T](),
			fn: func(v any) error {
				return fn(v.(T))
			},
		}
	}
}

// WithFieldCallback runs cb once the field has been answered.
func WithFieldCallback(cb Callback) FieldOption {
	return func(c *fieldConfig) {
		c.callback = cb
	}
}

// WithNumericSubtype picks Int or Float for a number field. Int is the default.
func WithNumericSubtype(subtype NumericSubtype) FieldOption {
	return func(c *fieldConfig) {
		c.subtype = subtype
	}
}

// NewInputForm creates a form that collects typed answers.
//
// Example:
//
//	signup := form.NewInputForm("Sign up")
//	signup.RegisterTextInput("Name", form.WithValidation(func(s string) error {
//		if s == "" {
//			return errors.New("name is required")
//		}
//		return nil
//	}))
//	signup.RegisterNumberInput("Age", form.WithDefault(18))
//	signup.RegisterBoolInput("Subscribe", form.WithDefault(true))
//	answers, err := signup.Send()
func NewInputForm(title string, options ...FormOption) *InputForm {
	return &InputForm{
		Form:  newForm(title, options),
		names: make(map[string]struct{}),
	}
}

// RegisterTextInput adds a field that stores the answer as a string.
func (f *InputForm) RegisterTextInput(name string, options ...FieldOption) error {
	return f.register(name, KindText, options)
}

// RegisterNumberInput adds a field that stores the answer as an int or float64,
// depending on WithNumericSubtype.
func (f *InputForm) RegisterNumberInput(name string, options ...FieldOption) error {
	return f.register(name, KindNumber, options)
}

// RegisterBoolInput adds a yes/no field that stores the answer as a bool.
func (f *InputForm) RegisterBoolInput(name string, options ...FieldOption) error {
	return f.register(name, KindBool, options)
}

// register applies the checks shared by every field kind. Nothing is stored when a check fails.
func (f *InputForm) register(name string, kind FieldKind, options []FieldOption) error {
	if err := checkName(name, f.hasName); err != nil {
		return err
	}

	var config fieldConfig
	for _, option := range options {
		option(&config)
	}

	fd := field{
		name:       name,
		kind:       kind,
		validation: config.validation,
		callback:   config.callback,
		tooltip:    config.tooltip,
	}
	if kind == KindNumber {
		fd.subtype = config.subtype
	}

	if fd.validation != nil {
		want, ok := fd.valueType()
		if !ok || fd.validation.accepts != want {
			return fmt.Errorf("%w: %s field %q cannot use a func(%s) error", ErrInvalidValidation, kind, name, fd.validation.accepts)
		}
	}
	if config.hasDefault {
		def, err := fd.coerceDefault(config.def)
		if err != nil {
			return err
		}
		fd.def = def
		fd.hasDefault = true
	}

	f.fields = append(f.fields, fd)
	f.names[name] = struct{}{}
	return nil
}

// AddSeparator appends a display-only line between fields. The optional text is printed on it.
func (f *InputForm) AddSeparator(text ...string) {
	f.addSeparatorMarker()
	f.fields = append(f.fields, field{
		separator: &separatorEntry{key: f.separatorKey(), text: joinText(text)},
	})
}

// Send displays the form, asks for every field in order and returns the answers.
func (f *InputForm) Send() (Responses, error) {
	return f.SendWithContext(context.Background())
}

// SendWithContext is Send with a context that is checked before every read.
//
// Invalid answers never leave the form: they print a message and the field is asked
// again. Errors are returned for failed I/O, a cancelled context, or a number field
// whose subtype is neither Int nor Float.
func (f *InputForm) SendWithContext(ctx context.Context) (Responses, error) {
	if err := f.render(); err != nil {
		return nil, err
	}

	for i := range f.fields {
		fd := &f.fields[i]
		if fd.separator != nil {
			f.logger.Debug("separator", zap.String("form", f.title), zap.String("key", fd.separator.key))
			if err := f.renderer.lines(f.renderer.styled(fd.separator.text)); err != nil {
				return nil, err
			}
			continue
		}

		value, err := f.acquire(ctx, fd)
		if err != nil {
			return nil, err
		}
		fd.response = value
		fd.answered = true
		f.logger.Debug("field answered",
			zap.String("form", f.title),
			zap.String("field", fd.name),
			zap.Any("value", value))

		if f.settings.ClearAfterAction() {
			if err := f.clear("field answered"); err != nil {
				return nil, err
			}
		}
		fd.callback.invoke(f)
	}

	f.runDefaultCallback(f)
	if err := f.renderer.lines(f.settings.Header()); err != nil {
		return nil, err
	}
	if f.settings.ClearAfterForm() {
		if err := f.clear("form complete"); err != nil {
			return nil, err
		}
	}
	return f.Responses(), nil
}

// acquire prompts until the field has an acceptable answer.
func (f *InputForm) acquire(ctx context.Context, fd *field) (any, error) {
	prompt := f.renderer.fieldPrompt(fd)
	for {
		if err := f.renderer.prompt(prompt); err != nil {
			return nil, err
		}
		input, err := f.readLine(ctx)
		if err != nil {
			return nil, err
		}

		if fd.kind == KindBool {
			if v, ok := parseYesNo(input); ok {
				return v, nil
			}
			if input == "" && fd.hasDefault {
				return fd.def, nil
			}
			if err := f.reject(fd, input, msgInvalidYesNo); err != nil {
				return nil, err
			}
			continue
		}

		if input == "" && fd.hasDefault {
			return fd.def, nil
		}

		var candidate any = input
		if fd.kind == KindNumber {
			n, err := parseNumber(input)
			if err != nil {
				if err := f.reject(fd, input, msgInvalidNumber); err != nil {
					return nil, err
				}
				continue
			}
			candidate, err = coerceNumber(n, fd.subtype)
			if errors.Is(err, errOutOfIntRange) {
				if err := f.reject(fd, input, msgInvalidNumber); err != nil {
					return nil, err
				}
				continue
			}
			if err != nil {
				return nil, fmt.Errorf("field %q: %w", fd.name, err)
			}
		}

		if msg := fd.validate(candidate); msg != "" {
			if err := f.reject(fd, input, msg); err != nil {
				return nil, err
			}
			continue
		}
		return candidate, nil
	}
}

// reject prints why an answer was refused.
func (f *InputForm) reject(fd *field, input, msg string) error {
	f.logger.Debug("answer rejected",
		zap.String("form", f.title),
		zap.String("field", fd.name),
		zap.String("input", input),
		zap.String("reason", msg))
	return f.renderer.error(msg)
}

// Response returns the answer stored for name by the last Send.
func (f *InputForm) Response(name string) (any, bool) {
	for _, fd := range f.fields {
		if fd.separator == nil && fd.name == name && fd.answered {
			return fd.response, true
		}
	}
	return nil, false
}

// Responses returns every answered field. Separators are never included.
func (f *InputForm) Responses() Responses {
	r := make(Responses, len(f.fields))
	for _, fd := range f.fields {
		if fd.separator != nil || !fd.answered {
			continue
		}
		r[fd.name] = fd.response
	}
	return r
}

func (f *InputForm) hasName(name string) bool {
	_, ok := f.names[name]
	return ok
}

// valueType is the Go type a field's answers have. ok is false for bool fields,
// which take no validation, and for unknown subtypes.
func (fd *field) valueType() (reflect.Type, bool) {
	switch fd.kind {
	case KindText:
		return reflect.TypeFor[string](), true
	case KindNumber:
		switch fd.subtype {
		case Int:
			return reflect.TypeFor[int](), true
		case Float:
			return reflect.TypeFor[float64](), true
		}
	}
	return nil, false
}

// validate returns the rejection message for candidate, or "" when it is accepted.
func (fd *field) validate(candidate any) string {
	if fd.validation == nil {
		return ""
	}
	if err := fd.validation.fn(candidate); err != nil {
		return err.Error()
	}
	return ""
}

// coerceDefault checks a default against the field kind and converts numbers to the subtype.
func (fd *field) coerceDefault(value any) (any, error) {
	switch fd.kind {
	case KindText:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case KindBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case KindNumber:
		if n, ok := toFloat(value); ok {
			v, err := coerceNumber(n, fd.subtype)
			switch {
			case err == nil:
				return v, nil
			case errors.Is(err, ErrUnknownNumericSubtype):
				return n, nil
			}
		}
	}
	return nil, fmt.Errorf("%w: default for %s field %q cannot be %T", ErrInvalidValueType, fd.kind, fd.name, value)
}
