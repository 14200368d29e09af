package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const envPrefix = "MEMCTL"

// settings holds the global options after flags, environment and config file
// have been merged. Flags set on the command line win, then MEMCTL_*
// variables, then the config file, then flag defaults.
type settings struct {
	Strategy string `mapstructure:"strategy"`
	System   string `mapstructure:"system"`
	LogLevel string `mapstructure:"log-level"`
}

func loadSettings(cmd *cobra.Command, path string) (settings, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	for _, name := range []string{"strategy", "system", "log-level"} {
		if f := cmd.Root().PersistentFlags().Lookup(name); f != nil {
			if err := v.BindPFlag(name, f); err != nil {
				return settings{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return settings{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("decode config: %w", err)
	}
	s.Strategy = strings.ToLower(strings.TrimSpace(s.Strategy))
	s.System = strings.ToLower(strings.TrimSpace(s.System))
	return s, nil
}
