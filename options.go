package courtboard

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jpalmerr/courtboard/internal/render"
	"github.com/jpalmerr/courtboard/internal/schema"
)

// boardConfig holds mutable state during Board construction.
type boardConfig struct {
	title           string
	statusURL       string
	schema          Schema
	pollingInterval time.Duration
	timeout         time.Duration
	headers         map[string]string
	port            int
	locale          string
	statusID        string
	listID          string
	logger          *slog.Logger
	renderCallbacks []func(RenderResult)
}

// Option configures a [Board] during construction. Options return an error
// if validation fails.
type Option func(*boardConfig) error

// WithStatusURL sets the URL of the status resource. Required.
//
// The URL must be absolute with an http or https scheme.
func WithStatusURL(rawURL string) Option {
	return func(cfg *boardConfig) error {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("invalid status URL: %w", err)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return fmt.Errorf("status URL must use http or https, got %q", rawURL)
		}
		if u.Host == "" {
			return fmt.Errorf("status URL must have a host, got %q", rawURL)
		}
		cfg.statusURL = rawURL
		return nil
	}
}

// WithSchema selects the payload shape. Defaults to [SchemaDaily].
//
// The schema also determines the default polling interval: 15 seconds for
// [SchemaDaily], 30 seconds for [SchemaFlat].
func WithSchema(s Schema) Option {
	return func(cfg *boardConfig) error {
		parsed, err := schema.Parse(string(s))
		if err != nil {
			return err
		}
		cfg.schema = parsed
		return nil
	}
}

// WithPollingInterval overrides the schema's default polling interval.
//
// Returns an error if the duration is zero or negative.
func WithPollingInterval(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.pollingInterval = d
		return nil
	}
}

// WithTimeout sets the per-request timeout. Defaults to 10 seconds.
func WithTimeout(d time.Duration) Option {
	return func(cfg *boardConfig) error {
		if d <= 0 {
			return errors.New("timeout must be positive")
		}
		cfg.timeout = d
		return nil
	}
}

// WithHeaders adds HTTP headers sent with every status request.
// Arguments are key-value pairs.
//
// Example:
//
//	courtboard.WithHeaders("Authorization", "Bearer token")
func WithHeaders(kv ...string) Option {
	return func(cfg *boardConfig) error {
		if len(kv)%2 != 0 {
			return errors.New("headers must be key-value pairs")
		}
		if cfg.headers == nil {
			cfg.headers = make(map[string]string, len(kv)/2)
		}
		for i := 0; i < len(kv); i += 2 {
			if kv[i] == "" {
				return errors.New("header name cannot be empty")
			}
			cfg.headers[kv[i]] = kv[i+1]
		}
		return nil
	}
}

// WithPort sets the HTTP port for the dashboard server. Defaults to 8080.
func WithPort(port int) Option {
	return func(cfg *boardConfig) error {
		if port < 1 || port > 65535 {
			return errors.New("port must be between 1 and 65535")
		}
		cfg.port = port
		return nil
	}
}

// WithLocale sets the language of the label and day headings, as a BCP 47
// tag. Defaults to simplified Chinese; "en" selects English.
func WithLocale(tag string) Option {
	return func(cfg *boardConfig) error {
		if _, err := render.ParseLocale(tag); err != nil {
			return err
		}
		cfg.locale = tag
		return nil
	}
}

// WithTargetIDs sets the identifiers of the status label and room list
// targets. Defaults to "status" and "roomList".
func WithTargetIDs(statusID, listID string) Option {
	return func(cfg *boardConfig) error {
		if statusID == "" || listID == "" {
			return errors.New("target IDs cannot be empty")
		}
		if statusID == listID {
			return fmt.Errorf("status and list targets must differ, both are %q", statusID)
		}
		cfg.statusID = statusID
		cfg.listID = listID
		return nil
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *boardConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithRenderCallback registers a function called after every successful
// render, once the targets have been updated.
//
// Callbacks run on the cycle's goroutine, so with overlapping cycles they
// may run concurrently. They must not block. Panics are recovered and
// logged. Nil callbacks are ignored.
func WithRenderCallback(cb func(RenderResult)) Option {
	return func(cfg *boardConfig) error {
		if cb == nil {
			return nil
		}
		cfg.renderCallbacks = append(cfg.renderCallbacks, cb)
		return nil
	}
}

// WithTitle sets the dashboard title. Defaults to "Courtboard".
func WithTitle(title string) Option {
	return func(cfg *boardConfig) error {
		cfg.title = title
		return nil
	}
}
