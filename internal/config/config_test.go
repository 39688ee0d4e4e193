package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"

	"inputfetcher/internal/fetcher"
)

var envVars = []string{
	"INPUT_CACHE_PATH",
	"INPUT_URL",
	"INPUT_SESSION",
	"INPUT_WRITE_POLICY",
	"INPUT_RATE_LIMIT",
}

// clearEnv unsets every variable Load reads for the duration of the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoad_FromFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
cache_path = "/var/cache/aoc"
url = "https://adventofcode.com/2020"
session = "53616c7465645f5f"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"CachePath", cfg.CachePath, "/var/cache/aoc"},
		{"URL", cfg.URL, "https://adventofcode.com/2020"},
		{"Session", cfg.Session, "53616c7465645f5f"},
		{"WritePolicy", cfg.WritePolicy, WritePolicyFailClosed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}

	if cfg.RateLimit != 0 {
		t.Errorf("RateLimit = %v, want 0", cfg.RateLimit)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
cache_path = "/var/cache/aoc"
url = "https://adventofcode.com/2020"
session = "from-file"
`)

	t.Setenv("INPUT_SESSION", "from-env")
	t.Setenv("INPUT_WRITE_POLICY", WritePolicyResilient)
	t.Setenv("INPUT_RATE_LIMIT", "0.5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() returned unexpected error: %v", err)
	}
	if cfg.Session != "from-env" {
		t.Errorf("Session = %q, want %q", cfg.Session, "from-env")
	}
	if cfg.WritePolicy != WritePolicyResilient {
		t.Errorf("WritePolicy = %q, want %q", cfg.WritePolicy, WritePolicyResilient)
	}
	if cfg.RateLimit != 0.5 {
		t.Errorf("RateLimit = %v, want 0.5", cfg.RateLimit)
	}
	if cfg.CachePath != "/var/cache/aoc" {
		t.Errorf("CachePath = %q, want value from file", cfg.CachePath)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !fetcher.IsType(err, fetcher.ErrorTypeConfiguration) {
		t.Fatalf("Load() error = %v, want configuration error", err)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `cache_path = [unterminated`)

	_, err := Load(path)
	if !fetcher.IsType(err, fetcher.ErrorTypeConfiguration) {
		t.Fatalf("Load() error = %v, want configuration error", err)
	}
}

func TestLoad_SearchPathWithoutFile(t *testing.T) {
	clearEnv(t)
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Setenv("INPUT_CACHE_PATH", "cache")
	t.Setenv("INPUT_URL", "https://adventofcode.com/2021")
	t.Setenv("INPUT_SESSION", "s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned unexpected error: %v", err)
	}
	if cfg.URL != "https://adventofcode.com/2021" {
		t.Errorf("URL = %q, want value from environment", cfg.URL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	tests := []struct {
		name        string
		setupEnv    map[string]string
		wantErrText string
	}{
		{
			name:        "missing all required",
			setupEnv:    map[string]string{},
			wantErrText: "missing required configuration: cache_path, url, session",
		},
		{
			name: "missing cache_path",
			setupEnv: map[string]string{
				"INPUT_URL":     "https://adventofcode.com/2020",
				"INPUT_SESSION": "s",
			},
			wantErrText: "cache_path",
		},
		{
			name: "missing url",
			setupEnv: map[string]string{
				"INPUT_CACHE_PATH": "cache",
				"INPUT_SESSION":    "s",
			},
			wantErrText: "url",
		},
		{
			name: "missing session",
			setupEnv: map[string]string{
				"INPUT_CACHE_PATH": "cache",
				"INPUT_URL":        "https://adventofcode.com/2020",
			},
			wantErrText: "session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for key, value := range tt.setupEnv {
				t.Setenv(key, value)
			}

			_, err := FromViper(viper.New())
			if err == nil {
				t.Fatal("FromViper() expected error, got nil")
			}
			if !fetcher.IsType(err, fetcher.ErrorTypeConfiguration) {
				t.Errorf("FromViper() error = %v, want configuration error", err)
			}
			if !strings.Contains(err.Error(), tt.wantErrText) {
				t.Errorf("FromViper() error = %q, want error containing %q", err.Error(), tt.wantErrText)
			}
		})
	}
}

func TestValidate_Optional(t *testing.T) {
	base := Config{CachePath: "cache", URL: "https://adventofcode.com/2020", Session: "s"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"resilient", func(c *Config) { c.WritePolicy = WritePolicyResilient }, false},
		{"fail closed", func(c *Config) { c.WritePolicy = WritePolicyFailClosed }, false},
		{"unknown policy", func(c *Config) { c.WritePolicy = "best-effort" }, true},
		{"negative rate", func(c *Config) { c.RateLimit = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base
			tt.mutate(&c)
			err := c.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir(%q): %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore Chdir(%q): %v", old, err)
		}
	})
}
