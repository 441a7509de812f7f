// Package config resolves flopsbench settings from command-line flags,
// FLOPSBENCH_* environment variables and an optional config file, in that
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/LynnColeArt/flopsbench"
)

// HelpExitCode is the process status after printing usage.
const HelpExitCode = 99

// EnvPrefix prefixes environment variables, e.g. FLOPSBENCH_BUDGET=5s.
const EnvPrefix = "FLOPSBENCH"

// ErrHelp is returned by Load when usage should be printed instead of
// running: -h, --help, or any flag that is not recognised.
var ErrHelp = errors.New("help requested")

// Config holds the resolved settings.
type Config struct {
	Budget      time.Duration
	Target      time.Duration
	MinTrial    time.Duration
	LogLevel    logrus.Level
	MetricsAddr string
	Version     bool
}

// Keys shared by flags, environment variables and config files.
const (
	keyBudget      = "budget"
	keyTarget      = "target"
	keyMinTrial    = "min-trial"
	keyLogLevel    = "log-level"
	keyMetricsAddr = "metrics-addr"
	keyConfig      = "config"
	keyVersion     = "version"
)

// NewFlagSet returns the flag set of the flopsbench command.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Duration(keyBudget, flopsbench.DefaultBudget, "total measurement time across all workloads")
	fs.Duration(keyTarget, flopsbench.DefaultTarget, "duration each trial is calibrated towards")
	fs.Duration(keyMinTrial, flopsbench.DefaultMinTrial, "shortest trial whose sample is kept")
	fs.String(keyLogLevel, logrus.WarnLevel.String(), "log level written to stderr (debug, info, warn, error)")
	fs.String(keyMetricsAddr, "", "serve Prometheus metrics on this address, e.g. :9090")
	fs.String(keyConfig, "", "read settings from this file (yaml, json, toml)")
	fs.Bool(keyVersion, false, "print the version and exit")
	fs.BoolP("help", "h", false, "print this help and exit")
	return fs
}

// Usage writes the help text of the command name, whose flags are fs, to w.
func Usage(w io.Writer, name string, fs *pflag.FlagSet) {
	fmt.Fprintf(w, "Usage: %s [options]\n\n", name)
	fmt.Fprintln(w, "Measures floating-point throughput of 1- to 4-way interleaved FMA chains")
	fmt.Fprintln(w, "in single and double precision, and reports median and quartile FLOPS.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Options:")
	fmt.Fprint(w, fs.FlagUsages())
}

// Load parses args with fs and resolves the configuration.
// It returns ErrHelp for help requests and for any argument beginning with
// '-' that is not a known flag, including "-", "--" and everything after it.
func Load(fs *pflag.FlagSet, args []string) (Config, error) {
	if err := fs.Parse(args); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrHelp, err)
	}
	if help, _ := fs.GetBool("help"); help {
		return Config{}, ErrHelp
	}
	if fs.ArgsLenAtDash() >= 0 {
		return Config{}, fmt.Errorf("%w: unexpected \"--\"", ErrHelp)
	}
	for _, arg := range fs.Args() {
		if strings.HasPrefix(arg, "-") {
			return Config{}, fmt.Errorf("%w: unexpected %q", ErrHelp, arg)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, flopsbench.NewConfigError("Load", "binding flags", err)
	}

	if path := v.GetString(keyConfig); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, flopsbench.NewConfigError("Load", "reading "+path, err)
		}
	}

	level, err := logrus.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return Config{}, flopsbench.NewConfigError("Load", "invalid log level", err)
	}

	cfg := Config{
		Budget:      v.GetDuration(keyBudget),
		Target:      v.GetDuration(keyTarget),
		MinTrial:    v.GetDuration(keyMinTrial),
		LogLevel:    level,
		MetricsAddr: v.GetString(keyMetricsAddr),
		Version:     v.GetBool(keyVersion),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the durations describe a usable calibration.
func (c Config) Validate() error {
	switch {
	case c.Budget <= 0:
		return flopsbench.NewConfigError("Validate", fmt.Sprintf("budget must be positive, got %v", c.Budget), nil)
	case c.Target <= 0:
		return flopsbench.NewConfigError("Validate", fmt.Sprintf("target must be positive, got %v", c.Target), nil)
	case c.MinTrial < 0:
		return flopsbench.NewConfigError("Validate", fmt.Sprintf("min-trial must not be negative, got %v", c.MinTrial), nil)
	case c.MinTrial > c.Target:
		return flopsbench.NewConfigError("Validate",
			fmt.Sprintf("min-trial %v exceeds target %v", c.MinTrial, c.Target), nil)
	}
	return nil
}

// Options converts the configuration into calibrator options.
func (c Config) Options() []flopsbench.Option {
	return []flopsbench.Option{
		flopsbench.WithBudget(c.Budget),
		flopsbench.WithTarget(c.Target),
		flopsbench.WithMinTrial(c.MinTrial),
	}
}
