package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// config holds the settings of a ptedit run. Values come from, in order of
// precedence, command-line flags, PTEDIT_* environment variables, a
// ptedit.{toml,yaml,json} config file and the flag defaults.
type config struct {
	Trace    string `mapstructure:"trace"`
	TabWidth int    `mapstructure:"tabwidth"`
	Color    string `mapstructure:"color"`
	HTML     bool   `mapstructure:"html"`
	Dot      string `mapstructure:"dot"`
	Output   string `mapstructure:"output"`
	Write    bool   `mapstructure:"write"`
	Stats    bool   `mapstructure:"stats"`
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("ptedit", pflag.ContinueOnError)
	flags.String("trace", "error", "trace level (error|info|debug)")
	flags.Int("tabwidth", 8, "tab width for display columns")
	flags.String("color", "auto", "colored statistics (auto|always|never)")
	flags.Bool("html", false, "read FILE as an HTML fragment and edit its text")
	flags.String("dot", "", "write the piece tree in Graphviz DOT format to this file")
	flags.StringP("output", "o", "-", "write the edited text to this file ('-' for stdout)")
	flags.BoolP("write", "w", false, "write the edited text back to FILE")
	flags.Bool("stats", false, "print document statistics to stderr")
	return flags
}

// initConfig parses args and merges them with environment and config file
// settings. It returns the positional arguments.
func initConfig(args []string) (*config, []string, error) {
	flags := newFlagSet()
	if err := flags.Parse(args); err != nil {
		return nil, nil, err
	}
	v := viper.New()
	v.SetConfigName("ptedit")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "ptedit"))
	}
	v.SetEnvPrefix("PTEDIT")
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		return nil, nil, err
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, nil, err
		}
	}
	cfg := &config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, nil, err
	}
	return cfg, flags.Args(), nil
}

// applyTraceLevel sets the level of t from the trace setting.
func (cfg *config) applyTraceLevel(t tracing.Trace) {
	switch strings.ToLower(cfg.Trace) {
	case "debug":
		t.SetTraceLevel(tracing.LevelDebug)
	case "info":
		t.SetTraceLevel(tracing.LevelInfo)
	default:
		t.SetTraceLevel(tracing.LevelError)
	}
}
