package main

import (
	"fmt"
	"io"
	"os"

	"github.com/nao1215/form"
	"github.com/nao1215/form/internal/definition"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Run a form and print the answers",
		Long: `Run draws the form described in <file> on stderr, asks the user and prints
the result as YAML on stdout: the chosen option for option forms, every answer
for input forms. Redirecting stdout therefore captures only the result.`,
		Example: `  # Ask the questions in signup.yaml and keep the answers
  formrun run signup.yaml > answers.yaml

  # Feed answers from a file and keep escape codes out of the output
  formrun run signup.yaml --no-color --no-clear < answers.txt`,
		Args: cobra.ExactArgs(1),
		RunE: runForm,
	}

	cmd.Flags().Bool("no-color", false, "Print error messages without color")
	cmd.Flags().Bool("no-clear", false, "Never clear the display")
	return cmd
}

func runForm(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	d, err := definition.Load(args[0])
	if err != nil {
		return err
	}
	logger.Debug("definition loaded",
		zap.String("file", args[0]),
		zap.String("kind", string(d.Kind)),
		zap.Int("entries", len(d.Entries)))

	if cfg.NoColor {
		d.DisableColor()
	}

	opts := []form.FormOption{form.WithLogger(logger)}
	if in := cmd.InOrStdin(); in != io.Reader(os.Stdin) {
		opts = append(opts, form.WithInput(in))
	}
	if cfg.NoClear {
		opts = append(opts, form.WithClearer(form.ClearFunc(func() error { return nil })))
	}

	// The form and its messages go to stderr so stdout carries nothing but the result.
	res, err := d.Run(cmd.Context(), cmd.ErrOrStderr(), opts...)
	if err != nil {
		return fmt.Errorf("form %q: %w", d.Title, err)
	}
	logger.Info("form finished", zap.String("form", res.Form), zap.String("selected", res.Selected))

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return enc.Close()
}
