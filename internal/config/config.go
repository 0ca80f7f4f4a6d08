// SPDX-License-Identifier: Apache-2.0

// Package config holds the process wide configuration. There is no
// configuration file by design: everything is defaulted and may be
// overridden through the environment.
//
//	DEBUG=true                enables verbose diagnostic tracing to stderr
//	SCANPREP_PACKAGES         comma separated target package list
//	SCANPREP_LOG_DIR          directory of the run log file
package config

import (
	"strings"

	"github.com/automa-saga/logx"
	"github.com/joomcode/errorx"
	"github.com/spf13/viper"

	"github.com/probelab/scanprep/internal/core"
)

// Config holds the global configuration for the application.
type Config struct {
	// Debug enables verbose execution tracing. Diagnostic only, no
	// behavioral change.
	Debug bool `yaml:"debug" json:"debug"`

	// Packages are the target packages to install and verify, in order.
	Packages []string `yaml:"packages" json:"packages"`

	// LogDir is the directory holding the run log file.
	LogDir string `yaml:"logDir" json:"logDir"`

	// Log configures the structured diagnostic logger. Distinct from the
	// run log, which has its own fixed format.
	Log logx.LoggingConfig `yaml:"log" json:"log"`
}

// Validate rejects configurations no run could execute meaningfully.
func (c Config) Validate() error {
	for _, name := range c.Packages {
		if strings.TrimSpace(name) == "" {
			return errorx.IllegalArgument.New("package names cannot be blank")
		}
	}

	if strings.TrimSpace(c.LogDir) == "" {
		return errorx.IllegalArgument.New("log directory cannot be blank")
	}

	return nil
}

var globalConfig = defaultConfig()

func defaultConfig() Config {
	return Config{
		Debug:    false,
		Packages: append([]string{}, core.TargetPackages...),
		LogDir:   core.LogDir,
		Log: logx.LoggingConfig{
			// silent by default so the console carries only run log lines
			Level:          "error",
			ConsoleLogging: true,
			FileLogging:    false,
		},
	}
}

// Initialize rebuilds the global configuration from defaults and the
// environment.
func Initialize() error {
	v := viper.New()
	v.SetEnvPrefix(strings.ToUpper(core.AppName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// the bare DEBUG variable is honored alongside the prefixed form
	if err := v.BindEnv("debug", "DEBUG", "SCANPREP_DEBUG"); err != nil {
		return errorx.InitializationFailed.Wrap(err, "failed to bind debug environment variable")
	}

	cfg := defaultConfig()

	if v.GetBool("debug") {
		cfg.Debug = true
		cfg.Log.Level = "debug"
	}

	if packages := v.GetString("packages"); packages != "" {
		cfg.Packages = splitPackageList(packages)
	}

	if logDir := v.GetString("log_dir"); logDir != "" {
		cfg.LogDir = logDir
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	globalConfig = cfg
	return nil
}

func splitPackageList(raw string) []string {
	var out []string
	for _, name := range strings.Split(raw, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			out = append(out, name)
		}
	}

	return out
}

// Get returns the loaded configuration.
func Get() Config {
	return globalConfig
}

// Set replaces the global configuration, validating it first.
func Set(c *Config) error {
	if c == nil {
		return errorx.IllegalArgument.New("configuration cannot be nil")
	}

	if err := c.Validate(); err != nil {
		return err
	}

	globalConfig = *c
	return nil
}
