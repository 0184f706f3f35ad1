// Package config loads idlvet settings from idlvet.yml.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Config holds settings for a run. Command-line flags override file values.
type Config struct {
	Naming NamingConfig
	Report ReportConfig
	IDL    IDLConfig
}

// NamingConfig controls the naming-convention pass.
type NamingConfig struct {
	Enabled bool
	Strict  bool
	Exempt  []string
}

// ReportConfig controls report rendering.
type ReportConfig struct {
	Color bool
}

// IDLConfig controls how the IDL document is located.
type IDLConfig struct {
	Filename string
}

// Default returns the configuration used when no idlvet.yml exists.
func Default() *Config {
	return &Config{
		Report: ReportConfig{Color: true},
		IDL:    IDLConfig{Filename: "idl.json"},
	}
}

// Load reads idlvet.yml from dir, falling back to defaults when the file is
// absent. Environment variables prefixed IDLVET override file values.
func Load(dir string) (*Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("idlvet")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.AutomaticEnv()
	v.SetEnvPrefix("IDLVET")

	v.SetDefault("naming.enabled", cfg.Naming.Enabled)
	v.SetDefault("naming.strict", cfg.Naming.Strict)
	v.SetDefault("report.color", cfg.Report.Color)
	v.SetDefault("idl.filename", cfg.IDL.Filename)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading idlvet.yml: %w", err)
		}
	}

	cfg.Naming.Enabled = v.GetBool("naming.enabled")
	cfg.Naming.Strict = v.GetBool("naming.strict")
	cfg.Naming.Exempt = v.GetStringSlice("naming.exempt")
	cfg.Report.Color = v.GetBool("report.color")
	cfg.IDL.Filename = v.GetString("idl.filename")

	return cfg, nil
}
