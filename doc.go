// Package form provides sequential, line-based forms for command line tools.
//
// A form prints a titled block of text and then does one of two things:
//
//   - OptionForm lists numbered options and runs the callback of the one the user picks
//   - InputForm asks for a sequence of typed values and returns the answers
//
// Quick Start:
//
//	package main
//
//	import (
//		"fmt"
//		"log"
//
//		"github.com/nao1215/form"
//	)
//
//	func main() {
//		f := form.NewInputForm("Profile", form.WithBody("Tell us about yourself."))
//		defer f.Close()
//
//		if err := f.RegisterTextInput("Name"); err != nil {
//			log.Fatal(err)
//		}
//		if err := f.RegisterNumberInput("Age", form.WithDefault(30)); err != nil {
//			log.Fatal(err)
//		}
//		if err := f.RegisterBoolInput("Subscribe", form.WithDefault(false)); err != nil {
//			log.Fatal(err)
//		}
//
//		answers, err := f.Send()
//		if err != nil {
//			log.Fatal(err)
//		}
//		fmt.Println(answers)
//	}
//
// Settings:
//
// Settings controls the header, separator, error color, clearing behaviour and the
// callback that runs when any form completes. One Settings value can be shared by
// many forms so they look alike:
//
//	style := form.NewSettings()
//	style.SetHeader("+-+-+-+-+-+-+-+-+-")
//	style.SetClearAfterForm(true)
//
//	menu := form.NewOptionForm("Menu", form.WithSettings(style))
//	signup := form.NewInputForm("Sign up", form.WithSettings(style))
//
// Settings can also be written by key, which is how settings loaded from
// configuration files are applied:
//
//	err := style.Set(form.KeyFailureResetThreshold, 3)
//	if errors.Is(err, form.ErrInvalidValueType) {
//		// value had the wrong type for the key
//	}
//
// Separators:
//
// AddSeparator inserts a display-only line between options or fields. Separators are
// never numbered and never appear in the answers. The name "SEPARATOR" is reserved:
// options and fields whose names contain it are rejected with ErrReservedName.
//
// Answers:
//
// Invalid answers never escape a form. A number that does not parse, a menu choice
// out of range, an unknown yes/no token or an answer refused by a validation
// function prints a message in the error color and asks again. An empty answer
// picks the default, when there is one.
//
// Error Handling:
//
// Configuration mistakes are reported when options and fields are registered:
//
//   - form.ErrReservedName: name contains "SEPARATOR"
//   - form.ErrDuplicateName: name already used in this form
//   - form.ErrNotCallable: option registered without a callback
//   - form.ErrInvalidValidation: validation does not take the field's value type
//   - form.ErrInvalidValueType: default or setting value has the wrong type
//
// Send returns an error only when the form cannot go on: form.ErrEOF when the
// input ends, a context error from SendWithContext, or
// form.ErrUnknownNumericSubtype for a number field with a subtype other than Int or Float.
//
// Thread Safety:
//
// Forms and Settings are not thread-safe. A form reads from the terminal, so use it
// from a single goroutine.
package form
