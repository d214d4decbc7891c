// Package main demonstrates an option menu with shared settings.
package main

import (
	"fmt"
	"log"

	"github.com/nao1215/form"
)

func main() {
	settings := form.NewSettings()
	settings.SetHeader("+-+-+-+-+-+-+-+-+-")
	settings.SetSeparator("/*******************\\")
	settings.SetClearAfterForm(true)
	settings.SetDefaultCallback(form.Action(func() { fmt.Println("Default callback") }))
	settings.SetOptionsLabel("Pick an option!!!")

	f := form.NewOptionForm("Form Title",
		form.WithBody("This is a form with three options."),
		form.WithSettings(settings))
	defer f.Close()

	if err := f.AddOption("Option 1", form.Action(func() { fmt.Println("Option 1 selected") })); err != nil {
		log.Fatal(err)
	}
	if err := f.AddOption("Option 2",
		form.Action(func() { fmt.Println("Option 2 selected") }),
		form.WithTooltip("This is a tooltip for Option 2")); err != nil {
		log.Fatal(err)
	}

	f.AddSeparator()

	if err := f.AddOption("Option 3", form.Action(func() { fmt.Println("Option 3 selected") })); err != nil {
		log.Fatal(err)
	}

	f.AddSeparator("This is a separator with a tooltip")

	if err := f.Send(); err != nil {
		log.Fatal(err)
	}
}
