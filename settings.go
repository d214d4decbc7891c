package form

import (
	"fmt"
	"reflect"
	"strings"
)

// SettingKey names one entry of a Settings registry.
type SettingKey int

// Setting keys. The set is closed: no keys can be added or removed.
const (
	KeyHeader SettingKey = iota
	KeySeparator
	KeyDefaultCallback
	KeyClearAfterAction
	KeyClearAfterForm
	KeyFailureResetThreshold
	KeyErrorColor
	KeyOptionsLabel
)

var settingKeyNames = map[SettingKey]string{
	KeyHeader:                "HEADER",
	KeySeparator:             "SEPARATOR",
	KeyDefaultCallback:       "DEFAULT_CALLBACK",
	KeyClearAfterAction:      "CLEAR_AFTER_ACTION",
	KeyClearAfterForm:        "CLEAR_AFTER_FORM",
	KeyFailureResetThreshold: "FAILURE_RESET_THRESHOLD",
	KeyErrorColor:            "ERROR_COLOR",
	KeyOptionsLabel:          "OPTIONS_LABEL",
}

// SettingKeys returns every valid key in declaration order.
func SettingKeys() []SettingKey {
	return []SettingKey{
		KeyHeader,
		KeySeparator,
		KeyDefaultCallback,
		KeyClearAfterAction,
		KeyClearAfterForm,
		KeyFailureResetThreshold,
		KeyErrorColor,
		KeyOptionsLabel,
	}
}

func (k SettingKey) String() string {
	if name, ok := settingKeyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("SettingKey(%d)", int(k))
}

// Valid reports whether k is one of the declared keys.
func (k SettingKey) Valid() bool {
	_, ok := settingKeyNames[k]
	return ok
}

// ParseSettingKey looks a key up by its name, case-insensitively.
func ParseSettingKey(name string) (SettingKey, error) {
	for key, keyName := range settingKeyNames {
		if strings.EqualFold(keyName, name) {
			return key, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidKey, name)
}

// DefaultHeader is the header a fresh Settings starts with.
var DefaultHeader = strings.Repeat(".", 56)

// DefaultOptionsLabel is the label printed above the options of an OptionForm.
const DefaultOptionsLabel = "Options"

// Settings customises the look and behaviour of forms.
//
// A Settings value is meant to be shared: define one style and pass it to every form
// with WithSettings. Edits are seen by all forms holding the pointer. Settings is not
// safe for concurrent use.
type Settings struct {
	header                string
	separator             string
	defaultCallback       Callback
	clearAfterAction      bool
	clearAfterForm        bool
	failureResetThreshold int
	errorColor            *Color
	optionsLabel          string
}

// NewSettings returns a registry with every key set to its default.
func NewSettings() *Settings {
	errorColor := ColorRed
	return &Settings{
		header:       DefaultHeader,
		errorColor:   &errorColor,
		optionsLabel: DefaultOptionsLabel,
	}
}

// Clone returns an independent copy of s.
func (s *Settings) Clone() *Settings {
	c := *s
	if s.errorColor != nil {
		color := *s.errorColor
		c.errorColor = &color
	}
	return &c
}

// Header is printed above the title and once more when a form completes.
func (s *Settings) Header() string { return s.header }

// SetHeader sets the HEADER setting.
func (s *Settings) SetHeader(header string) { s.header = header }

// Separator is printed between the title block and the entries.
func (s *Settings) Separator() string { return s.separator }

// SetSeparator sets the SEPARATOR setting.
func (s *Settings) SetSeparator(separator string) { s.separator = separator }

// DefaultCallback runs when a form completes, before any option callback.
func (s *Settings) DefaultCallback() Callback { return s.defaultCallback }

// SetDefaultCallback sets the DEFAULT_CALLBACK setting. The zero Callback removes it.
func (s *Settings) SetDefaultCallback(cb Callback) { s.defaultCallback = cb }

// ClearAfterAction reports whether the display is cleared after every answered field.
func (s *Settings) ClearAfterAction() bool { return s.clearAfterAction }

// SetClearAfterAction sets the CLEAR_AFTER_ACTION setting.
func (s *Settings) SetClearAfterAction(clear bool) { s.clearAfterAction = clear }

// ClearAfterForm reports whether the display is cleared once a form completes.
func (s *Settings) ClearAfterForm() bool { return s.clearAfterForm }

// SetClearAfterForm sets the CLEAR_AFTER_FORM setting.
func (s *Settings) SetClearAfterForm(clear bool) { s.clearAfterForm = clear }

// FailureResetThreshold is the number of invalid menu choices after which an
// OptionForm redraws itself. Zero disables the redraw.
func (s *Settings) FailureResetThreshold() int { return s.failureResetThreshold }

// SetFailureResetThreshold sets the FAILURE_RESET_THRESHOLD setting.
func (s *Settings) SetFailureResetThreshold(threshold int) error {
	if threshold < 0 {
		return fmt.Errorf("%w: %s must be a non-negative integer, got %d", ErrInvalidValueType, KeyFailureResetThreshold, threshold)
	}
	s.failureResetThreshold = threshold
	return nil
}

// ErrorColor is the color of error messages. Nil prints them unstyled.
func (s *Settings) ErrorColor() *Color { return s.errorColor }

// SetErrorColor sets the ERROR_COLOR setting.
func (s *Settings) SetErrorColor(color *Color) { s.errorColor = color }

// OptionsLabel is printed above the option list. An empty label prints nothing.
func (s *Settings) OptionsLabel() string { return s.optionsLabel }

// SetOptionsLabel sets the OPTIONS_LABEL setting.
func (s *Settings) SetOptionsLabel(label string) { s.optionsLabel = label }

// Set writes a setting by key, checking that value has the type the key requires:
//
//	HEADER, SEPARATOR        string
//	DEFAULT_CALLBACK         Callback, func(), func(Context) or nil
//	CLEAR_AFTER_ACTION/FORM  bool
//	FAILURE_RESET_THRESHOLD  non-negative integer, nil means 0
//	ERROR_COLOR              Color, *Color or nil
//	OPTIONS_LABEL            string, *string or nil
//
// Values are stored in normalized form, and Get returns them that way: a Color
// comes back as *Color, a func() or func(Context) as a Callback, a threshold as int
// and a nil or *string label as string.
func (s *Settings) Set(key SettingKey, value any) error {
	if !key.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidKey, key)
	}

	switch key {
	case KeyHeader, KeySeparator:
		str, ok := value.(string)
		if !ok {
			return invalidType(key, "a string", value)
		}
		if key == KeyHeader {
			s.header = str
		} else {
			s.separator = str
		}
	case KeyDefaultCallback:
		cb, ok := toCallback(value)
		if !ok {
			return invalidType(key, "a callable", value)
		}
		s.defaultCallback = cb
	case KeyClearAfterAction, KeyClearAfterForm:
		b, ok := value.(bool)
		if !ok {
			return invalidType(key, "a boolean", value)
		}
		if key == KeyClearAfterAction {
			s.clearAfterAction = b
		} else {
			s.clearAfterForm = b
		}
	case KeyFailureResetThreshold:
		n, ok := toInt(value)
		if !ok || n < 0 {
			return invalidType(key, "a non-negative integer", value)
		}
		s.failureResetThreshold = n
	case KeyErrorColor:
		switch v := value.(type) {
		case nil:
			s.errorColor = nil
		case Color:
			s.errorColor = &v
		case *Color:
			s.errorColor = v
		default:
			return invalidType(key, "a Color", value)
		}
	case KeyOptionsLabel:
		switch v := value.(type) {
		case nil:
			s.optionsLabel = ""
		case string:
			s.optionsLabel = v
		case *string:
			if v == nil {
				s.optionsLabel = ""
			} else {
				s.optionsLabel = *v
			}
		default:
			return invalidType(key, "a string", value)
		}
	}
	return nil
}

// Get reads a setting by key. The dynamic type of the result is the one the typed
// getter of the same name returns.
func (s *Settings) Get(key SettingKey) (any, error) {
	switch key {
	case KeyHeader:
		return s.header, nil
	case KeySeparator:
		return s.separator, nil
	case KeyDefaultCallback:
		return s.defaultCallback, nil
	case KeyClearAfterAction:
		return s.clearAfterAction, nil
	case KeyClearAfterForm:
		return s.clearAfterForm, nil
	case KeyFailureResetThreshold:
		return s.failureResetThreshold, nil
	case KeyErrorColor:
		return s.errorColor, nil
	case KeyOptionsLabel:
		return s.optionsLabel, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrInvalidKey, key)
}

func invalidType(key SettingKey, want string, got any) error {
	return fmt.Errorf("%w: %s must be %s, got %T", ErrInvalidValueType, key, want, got)
}

// toInt accepts any integer kind. Nil normalizes to 0.
func toInt(value any) (int, bool) {
	if value == nil {
		return 0, true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), true
	default:
		return 0, false
	}
}
