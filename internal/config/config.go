// Package config loads the sovrium application document and the generation
// options handed to the build pipeline.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sovrium/sovrium/internal/errors"
	"github.com/sovrium/sovrium/internal/i18n"
	"github.com/sovrium/sovrium/internal/schema"
)

// Config is the top-level parsed document: the declarative application schema
// plus deployment and logging settings.
type Config struct {
	App        schema.App    `yaml:"app"`
	Deployment Options       `yaml:"deployment,omitempty"`
	Logging    LoggingConfig `yaml:"logging,omitempty"`
}

// LoggingConfig selects log verbosity and output format.
type LoggingConfig struct {
	Level  string `yaml:"level,omitempty"`
	Format string `yaml:"format,omitempty"`
}

// Load reads, expands and validates a configuration file. Environment
// variables referenced as ${VAR} in the YAML are interpolated after the
// optional .env file has been loaded.
func Load(configPath string) (*Config, error) {
	loadEnvFile()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, errors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to read config file").
			WithContext("path", configPath)
	}

	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, errors.Wrap(err, errors.CategoryConfig, errors.SeverityFatal, "failed to unmarshal config").
			WithContext("path", configPath)
	}

	cfg.Deployment.applyDefaults()

	if err := cfg.App.Validate(); err != nil {
		return nil, err
	}
	if err := validateLanguageTags(cfg.App.Languages); err != nil {
		return nil, err
	}
	if err := cfg.Deployment.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validateLanguageTags rejects language codes and locales that are not valid
// BCP 47 tags, so hreflang emission downstream never sees a meaningless value.
func validateLanguageTags(langs schema.Languages) error {
	for _, lang := range langs.Supported {
		if _, err := i18n.ParseTag(lang.Code); err != nil {
			return errors.SchemaInvalid(err.Error())
		}
		if lang.Locale != "" {
			if _, err := i18n.ParseTag(lang.Locale); err != nil {
				return errors.SchemaInvalid(err.Error())
			}
		}
	}
	return nil
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		App: schema.App{
			Name:        "My App",
			Description: "A sovrium application",
			Version:     "0.1.0",
			Languages: schema.Languages{
				Default: "en",
				Supported: []schema.Language{
					{Code: "en", Locale: "en-US", Label: "English"},
				},
			},
			Pages: []schema.Page{
				{
					Name: "home",
					Path: "/",
					Meta: schema.Meta{Title: "Home", Priority: 1.0, Changefreq: "daily"},
				},
			},
		},
		Deployment: Options{
			BaseURL:           "https://example.com",
			Target:            string(TargetGeneric),
			GenerateSitemap:   true,
			GenerateRobotsTxt: true,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
