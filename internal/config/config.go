// Package config loads and validates .casevet.yaml.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/unbound-force/casevet/internal/analysis"
	"github.com/unbound-force/casevet/internal/diagnostic"
)

// DefaultName is the config file looked up in the working directory
// when no explicit path is given.
const DefaultName = ".casevet.yaml"

// Config is the on-disk configuration.
type Config struct {
	// Checks maps check slugs to severities: off, info, warning, or
	// error. Unlisted checks keep their catalog defaults.
	Checks map[string]string `yaml:"checks"`

	// SourcePackages and VerifyPackages extend the import paths
	// recognized as the casesource and verify packages.
	SourcePackages []string `yaml:"source_packages"`
	VerifyPackages []string `yaml:"verify_packages"`

	// FailOn is the minimum severity that makes the check command
	// exit non-zero: info, warning, or error.
	FailOn string `yaml:"fail_on"`
}

// DefaultConfig returns the configuration used when no file is
// present.
func DefaultConfig() Config {
	return Config{
		Checks: map[string]string{},
		FailOn: "error",
	}
}

// Load reads the configuration. With an empty path it looks for
// .casevet.yaml in dir and falls back to defaults when absent; an
// explicit path must exist. The loaded config is validated before
// being returned.
func Load(dir, path string) (Config, error) {
	explicit := path != ""
	if !explicit {
		path = filepath.Join(dir, DefaultName)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return DefaultConfig(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that every referenced check exists and every
// severity parses.
func (c Config) Validate() error {
	for slug, sev := range c.Checks {
		if _, ok := diagnostic.BySlug(slug); !ok {
			return fmt.Errorf("unknown check %q", slug)
		}
		if _, err := diagnostic.ParseSeverity(sev); err != nil {
			return fmt.Errorf("check %q: %w", slug, err)
		}
	}
	if c.FailOn != "" {
		sev, err := diagnostic.ParseSeverity(c.FailOn)
		if err != nil {
			return fmt.Errorf("fail_on: %w", err)
		}
		if sev == diagnostic.SeverityOff {
			return fmt.Errorf("fail_on: %q is not a reportable severity", c.FailOn)
		}
	}
	return nil
}

// Options converts the configuration into analysis options.
func (c Config) Options() analysis.Options {
	opts := analysis.DefaultOptions()
	opts.SourcePackages = append(opts.SourcePackages, c.SourcePackages...)
	opts.VerifyPackages = append(opts.VerifyPackages, c.VerifyPackages...)
	opts.Checks = c.Checks
	return opts
}

// FailSeverity returns the configured fail-on threshold.
func (c Config) FailSeverity() diagnostic.Severity {
	if c.FailOn == "" {
		return diagnostic.SeverityError
	}
	sev, err := diagnostic.ParseSeverity(c.FailOn)
	if err != nil {
		return diagnostic.SeverityError
	}
	return sev
}
