package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestParse_MinimalConfig(t *testing.T) {
	yaml := `
status_url: http://localhost:8080/api/status
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// check defaults applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Schema != "daily" {
		t.Errorf("Schema = %q, want daily", cfg.Schema)
	}
	if cfg.PollInterval.Duration() != 15*time.Second {
		t.Errorf("PollInterval = %v, want 15s", cfg.PollInterval.Duration())
	}
	if cfg.Timeout != 0 {
		t.Errorf("Timeout = %v, want unset", cfg.Timeout.Duration())
	}
	if cfg.Targets.Status != "status" || cfg.Targets.List != "roomList" {
		t.Errorf("Targets = %+v, want {status roomList}", cfg.Targets)
	}
}

func TestParse_FlatSchemaDefaultInterval(t *testing.T) {
	yaml := `
status_url: http://localhost:8080/api/status
schema: flat
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Schema != "flat" {
		t.Errorf("Schema = %q, want flat", cfg.Schema)
	}
	if cfg.PollInterval.Duration() != 30*time.Second {
		t.Errorf("PollInterval = %v, want 30s", cfg.PollInterval.Duration())
	}
}

func TestParse_FullConfig(t *testing.T) {
	yaml := `
title: Court 3
port: 9090
status_url: https://courts.example.com/api/status
schema: FLAT
poll_interval: 45s
timeout: 5s
locale: en
headers:
  Authorization: Bearer token123
  X-Custom: value
targets:
  status: label
  list: rooms
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Title != "Court 3" {
		t.Errorf("Title = %q, want %q", cfg.Title, "Court 3")
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
	if cfg.StatusURL != "https://courts.example.com/api/status" {
		t.Errorf("StatusURL = %q", cfg.StatusURL)
	}
	if cfg.Schema != "flat" {
		t.Errorf("Schema = %q, want flat", cfg.Schema)
	}
	if cfg.PollInterval.Duration() != 45*time.Second {
		t.Errorf("PollInterval = %v, want 45s", cfg.PollInterval.Duration())
	}
	if cfg.Timeout.Duration() != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", cfg.Timeout.Duration())
	}
	if cfg.Locale != "en" {
		t.Errorf("Locale = %q, want en", cfg.Locale)
	}
	if cfg.Headers["Authorization"] != "Bearer token123" {
		t.Errorf("Headers[Authorization] = %q, want %q", cfg.Headers["Authorization"], "Bearer token123")
	}
	if cfg.Targets.Status != "label" || cfg.Targets.List != "rooms" {
		t.Errorf("Targets = %+v, want {label rooms}", cfg.Targets)
	}
}

func TestParse_EnvVarSubstitution(t *testing.T) {
	t.Setenv("STATUS_HOST", "courts.internal")
	t.Setenv("STATUS_TOKEN", "secret")

	yaml := `
status_url: https://${STATUS_HOST}/api/status
headers:
  Authorization: Bearer ${STATUS_TOKEN}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.StatusURL != "https://courts.internal/api/status" {
		t.Errorf("StatusURL = %q", cfg.StatusURL)
	}
	if cfg.Headers["Authorization"] != "Bearer secret" {
		t.Errorf("Headers[Authorization] = %q", cfg.Headers["Authorization"])
	}
}

func TestParse_EnvVarDefault(t *testing.T) {
	yaml := `
status_url: ${COURTBOARD_UNSET_URL:-http://localhost:8080/api/status}
`
	cfg, err := Parse([]byte(yaml))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.StatusURL != "http://localhost:8080/api/status" {
		t.Errorf("StatusURL = %q", cfg.StatusURL)
	}
}

func TestParse_EnvVarMissing(t *testing.T) {
	yaml := `
status_url: http://localhost/api/status
headers:
  Authorization: ${COURTBOARD_MISSING_TOKEN}
`
	_, err := Parse([]byte(yaml))
	if err == nil {
		t.Fatal("Parse() expected error for missing env var")
	}
	if !strings.Contains(err.Error(), "COURTBOARD_MISSING_TOKEN") {
		t.Errorf("error = %q, want variable name", err.Error())
	}
}

func TestParse_ValidationErrors(t *testing.T) {
	tests := []struct {
		name        string
		yaml        string
		wantErrLike string
	}{
		{
			name:        "missing status_url",
			yaml:        `port: 8080`,
			wantErrLike: "status_url is required",
		},
		{
			name:        "status_url without scheme",
			yaml:        `status_url: localhost/api/status`,
			wantErrLike: "must have a scheme",
		},
		{
			name:        "status_url wrong scheme",
			yaml:        `status_url: ftp://example.com/status`,
			wantErrLike: "must be http or https",
		},
		{
			name:        "status_url without host",
			yaml:        `status_url: "http:///api/status"`,
			wantErrLike: "must have a host",
		},
		{
			name: "unknown schema",
			yaml: `
status_url: http://localhost/api/status
schema: weekly
`,
			wantErrLike: "unknown schema",
		},
		{
			name: "port out of range",
			yaml: `
status_url: http://localhost/api/status
port: 70000
`,
			wantErrLike: "port must be between",
		},
		{
			name: "poll_interval too small",
			yaml: `
status_url: http://localhost/api/status
poll_interval: 500ms
`,
			wantErrLike: "poll_interval must be at least 1s",
		},
		{
			name: "timeout too small",
			yaml: `
status_url: http://localhost/api/status
timeout: 100ms
`,
			wantErrLike: "timeout must be at least 1s",
		},
		{
			name: "negative timeout",
			yaml: `
status_url: http://localhost/api/status
timeout: -5s
`,
			wantErrLike: "timeout cannot be negative",
		},
		{
			name: "malformed locale",
			yaml: `
status_url: http://localhost/api/status
locale: "@@"
`,
			wantErrLike: "locale",
		},
		{
			name: "same target ids",
			yaml: `
status_url: http://localhost/api/status
targets:
  status: box
  list: box
`,
			wantErrLike: "must differ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("Parse() expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErrLike) {
				t.Errorf("error = %q, want to contain %q", err.Error(), tt.wantErrLike)
			}
		})
	}
}

func TestParse_InvalidYAML(t *testing.T) {
	_, err := Parse([]byte("status_url: [unclosed"))
	if err == nil {
		t.Fatal("Parse() expected error for invalid YAML")
	}
	if !strings.Contains(err.Error(), "failed to parse YAML") {
		t.Errorf("error = %q, want YAML parse error", err.Error())
	}
}

func TestDuration_UnmarshalYAML(t *testing.T) {
	tests := []struct {
		input   string
		want    time.Duration
		wantErr bool
	}{
		{"poll_interval: 15s", 15 * time.Second, false},
		{"poll_interval: 1m", time.Minute, false},
		{"poll_interval: 1m30s", 90 * time.Second, false},
		{"poll_interval: fast", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cfg, err := Parse([]byte("status_url: http://localhost/api/status\n" + tt.input))
			if tt.wantErr {
				if err == nil {
					t.Fatal("Parse() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			if cfg.PollInterval.Duration() != tt.want {
				t.Errorf("PollInterval = %v, want %v", cfg.PollInterval.Duration(), tt.want)
			}
		})
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")
	t.Setenv("EMPTY_VAR", "") // set but empty

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"no vars", "plain text", "plain text", false},
		{"simple var", "${TEST_VAR}", "value", false},
		{"var in text", "prefix ${TEST_VAR} suffix", "prefix value suffix", false},
		{"multiple vars", "${TEST_VAR}-${TEST_VAR}", "value-value", false},
		{"with default (var set)", "${TEST_VAR:-default}", "value", false},
		{"with default (var unset)", "${UNSET:-default}", "default", false},
		{"missing required", "${MISSING}", "", true},
		{"empty default (var unset)", "${UNSET:-}", "", false},
		{"set but empty var", "${EMPTY_VAR}", "", false},
		{"set but empty with default", "${EMPTY_VAR:-fallback}", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// UNSET and MISSING are expected to not exist in environment
			got, err := expandEnvVars(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expandEnvVars() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("expandEnvVars() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandEnvVars() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courtboard.yaml")
	if err := os.WriteFile(path, []byte("status_url: http://localhost/api/status\ntitle: Loaded\n"), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Title != "Loaded" {
		t.Errorf("Title = %q, want Loaded", cfg.Title)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("Load() expected error for missing file")
	}
	if !strings.Contains(err.Error(), "failed to read config file") {
		t.Errorf("error = %q", err.Error())
	}
}
