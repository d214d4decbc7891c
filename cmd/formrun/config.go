package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// envPrefix is prepended to every environment variable formrun reads.
const envPrefix = "FORMRUN"

// config holds the settings that apply to every form formrun runs.
type config struct {
	LogLevel string
	NoColor  bool
	NoClear  bool
}

// loadConfig merges flags, FORMRUN_* environment variables and the config file.
// A missing default config file is not an error; a missing --config file is.
func loadConfig(cmd *cobra.Command) (*config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// Enable environment variable overrides
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return nil, fmt.Errorf("failed to bind flags: %w", err)
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	} else {
		v.SetConfigName("formrun")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read formrun.yaml: %w", err)
			}
		}
	}

	return &config{
		LogLevel: v.GetString("log-level"),
		NoColor:  v.GetBool("no-color"),
		NoClear:  v.GetBool("no-clear"),
	}, nil
}
