package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jpalmerr/courtboard"
)

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()

	old := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := fn()

	_ = w.Close()
	os.Stdout = old
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)

	return buf.String(), err
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestRunValidate_ValidConfig(t *testing.T) {
	configPath := writeConfig(t, `
status_url: http://localhost:9000/api/status
schema: flat
port: 8081
targets:
  status: label
  list: rooms
`)

	rootCmd.SetArgs([]string{"validate", "-c", configPath})
	output, err := captureStdout(t, rootCmd.Execute)
	if err != nil {
		t.Fatalf("validate command error = %v", err)
	}

	expectedPhrases := []string{
		"Config is valid!",
		"Status URL:    http://localhost:9000/api/status",
		"Schema:        flat",
		"Port:          8081",
		"Poll interval: 30s",
		"Locale:        zh-Hans",
		"Targets:       label, rooms",
	}

	for _, phrase := range expectedPhrases {
		if !strings.Contains(output, phrase) {
			t.Errorf("output missing %q\nGot: %s", phrase, output)
		}
	}
}

func TestRunValidate_InvalidConfig(t *testing.T) {
	configPath := writeConfig(t, `
port: 8080
schema: daily
`)

	rootCmd.SetArgs([]string{"validate", "-c", configPath})
	_, err := captureStdout(t, rootCmd.Execute)
	if err == nil {
		t.Fatal("validate command expected error for invalid config, got nil")
	}

	if !strings.Contains(err.Error(), "status_url is required") {
		t.Errorf("error should mention 'status_url is required', got: %v", err)
	}
}

func TestRunValidate_MissingFile(t *testing.T) {
	rootCmd.SetArgs([]string{"validate", "-c", "/nonexistent/path/config.yaml"})
	_, err := captureStdout(t, rootCmd.Execute)
	if err == nil {
		t.Fatal("validate command expected error for missing file, got nil")
	}

	if !strings.Contains(err.Error(), "failed to read") {
		t.Errorf("error should mention 'failed to read', got: %v", err)
	}
}

func TestRunOnce(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"today_available":["A"],"tomorrow_available":["B","C"]}`))
	}))
	defer upstream.Close()

	configPath := writeConfig(t, "status_url: "+upstream.URL+"\nlocale: en\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"once", "-c", configPath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("once command error = %v", err)
	}

	want := "✅ Rooms available\ntoday:\n  - A\ntomorrow:\n  - B\n  - C\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunOnce_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	configPath := writeConfig(t, "status_url: "+upstream.URL+"\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	defer rootCmd.SetOut(nil)

	rootCmd.SetArgs([]string{"once", "-c", configPath})
	err := rootCmd.Execute()
	if err == nil {
		t.Fatal("once command expected error for 502 upstream")
	}
	if !strings.Contains(err.Error(), "refresh failed") {
		t.Errorf("error = %v, want 'refresh failed'", err)
	}
}

func TestPrintResult(t *testing.T) {
	unavailable := courtboard.RenderResult{Label: "❌ 场地已被预约", Color: "red"}
	flat := courtboard.RenderResult{
		Available: true,
		Label:     "✅ 有空闲场地",
		Color:     "green",
		ListHTML:  "<ul><li>Room 1</li></ul>",
		Groups:    []courtboard.RoomGroup{{Rooms: []string{"Room 1"}}},
	}

	tests := []struct {
		name   string
		result courtboard.RenderResult
		asHTML bool
		color  bool
		want   string
	}{
		{"unavailable plain", unavailable, false, false, "❌ 场地已被预约\n"},
		{"unavailable coloured", unavailable, false, true, "\x1b[31m❌ 场地已被预约\x1b[0m\n"},
		{"flat text", flat, false, false, "✅ 有空闲场地\n  - Room 1\n"},
		{"flat coloured", flat, false, true, "\x1b[32m✅ 有空闲场地\x1b[0m\n  - Room 1\n"},
		{"flat html", flat, true, false, "✅ 有空闲场地\n<ul><li>Room 1</li></ul>\n"},
		{"unavailable html", unavailable, true, false, "❌ 场地已被预约\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			printResult(&buf, tt.result, tt.asHTML, tt.color)
			if buf.String() != tt.want {
				t.Errorf("printResult() = %q, want %q", buf.String(), tt.want)
			}
		})
	}
}

func TestIsTerminal_Buffer(t *testing.T) {
	if isTerminal(&bytes.Buffer{}) {
		t.Error("isTerminal(buffer) = true, want false")
	}
}
