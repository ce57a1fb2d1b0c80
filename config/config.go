// Package config provides YAML configuration parsing for courtboard.
//
// This package enables running courtboard as a standalone binary with a
// configuration file, as an alternative to the programmatic SDK approach.
//
// Example configuration:
//
//	title: Court availability
//	port: 8080
//	status_url: http://localhost:8080/api/status
//	schema: daily
//	poll_interval: 15s
//	timeout: 5s
//	locale: zh-Hans
//
//	headers:
//	  Authorization: Bearer ${STATUS_TOKEN}
//
//	targets:
//	  status: status
//	  list: roomList
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jpalmerr/courtboard/internal/render"
	"github.com/jpalmerr/courtboard/internal/schema"
)

// minPollInterval is the minimum allowed polling interval.
// This prevents accidental DoS of the status resource.
const minPollInterval = 1 * time.Second

const (
	defaultPort     = 8080
	defaultStatusID = "status"
	defaultListID   = "roomList"
)

// Config is the root configuration structure for courtboard.
//
// It maps directly to the YAML configuration file structure.
// Use [Load] or [Parse] to create a Config from YAML.
type Config struct {
	// Title is the dashboard title. Defaults to "Courtboard" if not set.
	Title string `yaml:"title"`

	// Port is the HTTP server port. Defaults to 8080.
	Port int `yaml:"port"`

	// StatusURL is the status resource polled every cycle. Required.
	// Supports environment variable substitution: ${VAR} or ${VAR:-default}
	StatusURL string `yaml:"status_url"`

	// Schema is the payload shape: "daily" (default) or "flat".
	Schema string `yaml:"schema"`

	// PollInterval is the time between refresh cycles.
	// Defaults to 15s for the daily schema and 30s for the flat schema.
	PollInterval Duration `yaml:"poll_interval"`

	// Timeout is the per-request timeout. Defaults to 10s.
	Timeout Duration `yaml:"timeout"`

	// Locale selects the label language: "zh-Hans" (default) or "en".
	Locale string `yaml:"locale"`

	// Headers are custom HTTP headers sent with each request.
	// Values support environment variable substitution.
	Headers map[string]string `yaml:"headers"`

	// Targets names the two presentation targets.
	Targets TargetsConfig `yaml:"targets"`
}

// TargetsConfig holds the presentation target IDs.
type TargetsConfig struct {
	// Status is the ID of the status label. Defaults to "status".
	Status string `yaml:"status"`

	// List is the ID of the room list. Defaults to "roomList".
	List string `yaml:"list"`
}

// Duration wraps time.Duration for YAML unmarshalling.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler for Duration.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", s, err)
	}

	*d = Duration(parsed)
	return nil
}

// Duration returns the underlying time.Duration value.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns.
// Group 1: variable name
// Group 2: the ":-default" part (if present, indicates a default was specified)
// Group 3: the default value (may be empty for ${VAR:-})
var envVarPattern = regexp.MustCompile(`\$\{([^}:]+)(:-([^}]*))?\}`)

// expandEnvVars replaces ${VAR} and ${VAR:-default} patterns with environment values.
func expandEnvVars(s string) (string, error) {
	var firstErr error

	result := envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		if firstErr != nil {
			return match
		}

		submatches := envVarPattern.FindStringSubmatch(match)
		if len(submatches) < 2 {
			return match
		}

		varName := submatches[1]
		hasDefault := len(submatches) > 2 && submatches[2] != ""
		defaultVal := ""
		if hasDefault && len(submatches) > 3 {
			defaultVal = submatches[3]
		}

		value, exists := os.LookupEnv(varName)
		if !exists {
			if hasDefault {
				return defaultVal
			}
			firstErr = fmt.Errorf("environment variable %q is not set", varName)
			return match
		}
		return value
	})

	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses YAML configuration data.
//
// Environment variables are expanded in StatusURL and Header values.
// Defaults are applied for Port, Schema, PollInterval and Targets.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := cfg.expandAndValidate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// expandAndValidate expands environment variables, applies defaults and
// validates the config.
func (c *Config) expandAndValidate() error {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.StatusURL == "" {
		return errors.New("status_url is required")
	}
	expanded, err := expandEnvVars(c.StatusURL)
	if err != nil {
		return fmt.Errorf("status_url: %w", err)
	}
	c.StatusURL = expanded

	parsedURL, err := url.Parse(c.StatusURL)
	if err != nil {
		return fmt.Errorf("invalid status_url: %w", err)
	}
	if parsedURL.Scheme == "" {
		return errors.New("status_url must have a scheme (http:// or https://)")
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("status_url scheme must be http or https, got %q", parsedURL.Scheme)
	}
	if parsedURL.Host == "" {
		return errors.New("status_url must have a host")
	}

	s, err := schema.Parse(c.Schema)
	if err != nil {
		return err
	}
	c.Schema = s.String()

	if c.PollInterval == 0 {
		c.PollInterval = Duration(s.DefaultInterval())
	}
	if c.PollInterval.Duration() < minPollInterval {
		return fmt.Errorf("poll_interval must be at least %s, got %s", minPollInterval, c.PollInterval.Duration())
	}

	if c.Timeout != 0 {
		if c.Timeout.Duration() < 0 {
			return fmt.Errorf("timeout cannot be negative, got %s", c.Timeout.Duration())
		}
		if c.Timeout.Duration() < time.Second {
			return fmt.Errorf("timeout must be at least 1s if specified, got %s", c.Timeout.Duration())
		}
	}

	if c.Locale != "" {
		if _, err := render.ParseLocale(c.Locale); err != nil {
			return fmt.Errorf("locale: %w", err)
		}
	}

	for k, v := range c.Headers {
		expanded, err := expandEnvVars(v)
		if err != nil {
			return fmt.Errorf("headers[%s]: %w", k, err)
		}
		c.Headers[k] = expanded
	}

	if c.Targets.Status == "" {
		c.Targets.Status = defaultStatusID
	}
	if c.Targets.List == "" {
		c.Targets.List = defaultListID
	}
	if c.Targets.Status == c.Targets.List {
		return fmt.Errorf("targets.status and targets.list must differ, both are %q", c.Targets.Status)
	}

	return nil
}
