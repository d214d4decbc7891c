// Package main demonstrates typed input fields, callbacks and reading the answers back.
package main

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/nao1215/form"
)

func main() {
	f := form.NewInputForm("Form Title", form.WithBody("This is a form with three inputs."))
	defer f.Close()

	settings := form.NewSettings()
	settings.SetHeader(`\/\/\/\/\/\/\/\/\/`)
	settings.SetSeparator("/*******************\\\n\\*******************/")
	settings.SetClearAfterForm(true)
	settings.SetDefaultCallback(form.Action(func() { fmt.Println("\nValue Entered") }))

	// Settings can be swapped after the form is created
	if err := f.SetSettings(settings); err != nil {
		log.Fatal(err)
	}

	if err := f.RegisterTextInput("Text Input",
		form.WithFieldTooltip("This is a tooltip for Text input"),
		form.WithValidation(func(s string) error {
			if s == "" {
				return errors.New("Text Input must not be empty")
			}
			return nil
		}),
		form.WithFieldCallback(form.ActionWithForm(func(c form.Context) {
			c.Settings().SetClearAfterAction(true)
		}))); err != nil {
		log.Fatal(err)
	}

	if err := f.RegisterBoolInput("Bool input",
		form.WithFieldTooltip("This is a tooltip for Bool input"),
		form.WithDefault(true)); err != nil {
		log.Fatal(err)
	}

	f.AddSeparator()

	if err := f.RegisterNumberInput("Number Input",
		form.WithFieldTooltip("This is a tooltip for Number input"),
		form.WithNumericSubtype(form.Float)); err != nil {
		log.Fatal(err)
	}

	responses, err := f.Send()
	if err != nil {
		if errors.Is(err, form.ErrEOF) {
			fmt.Println("\nGoodbye!")
			return
		}
		log.Fatal(err)
	}

	names := make([]string, 0, len(responses))
	for name := range responses {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\n\nResponse:")
	for _, name := range names {
		fmt.Printf("%s: %v (%T)\n", name, responses[name], responses[name])
	}
}
