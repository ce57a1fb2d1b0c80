package config

import (
	"sort"

	"github.com/jpalmerr/courtboard"
)

// BuildOptions converts parsed configuration into SDK options.
//
// The caller appends its own options (logger, callbacks) before passing the
// result to [courtboard.New].
func BuildOptions(cfg *Config) ([]courtboard.Option, error) {
	s, err := courtboard.ParseSchema(cfg.Schema)
	if err != nil {
		return nil, err
	}

	opts := []courtboard.Option{
		courtboard.WithStatusURL(cfg.StatusURL),
		courtboard.WithSchema(s),
		courtboard.WithPort(cfg.Port),
		courtboard.WithTargetIDs(cfg.Targets.Status, cfg.Targets.List),
	}

	if cfg.Title != "" {
		opts = append(opts, courtboard.WithTitle(cfg.Title))
	}

	if cfg.PollInterval != 0 {
		opts = append(opts, courtboard.WithPollingInterval(cfg.PollInterval.Duration()))
	}

	if cfg.Timeout != 0 {
		opts = append(opts, courtboard.WithTimeout(cfg.Timeout.Duration()))
	}

	if cfg.Locale != "" {
		opts = append(opts, courtboard.WithLocale(cfg.Locale))
	}

	if len(cfg.Headers) > 0 {
		opts = append(opts, courtboard.WithHeaders(mapToKeyValuePairs(cfg.Headers)...))
	}

	return opts, nil
}

// mapToKeyValuePairs converts a map to a sorted slice of key-value pairs.
func mapToKeyValuePairs(m map[string]string) []string {
	// sort keys for deterministic ordering
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(m)*2)
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return pairs
}
