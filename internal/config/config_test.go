package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_FromFile(t *testing.T) {
	path := writeConfig(t, "endpoint_url = \"https://example.supabase.co\"\naccess_key = \"anon-key\"\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.EndpointURL != "https://example.supabase.co" {
		t.Fatalf("EndpointURL = %q", cfg.EndpointURL)
	}
	if cfg.AccessKey != "anon-key" {
		t.Fatalf("AccessKey = %q", cfg.AccessKey)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "endpoint_url = \"https://file.example\"\naccess_key = \"file-key\"\n")
	t.Setenv("PLATEWATCH_URL", "https://env.example")
	t.Setenv("PLATEWATCH_KEY", "env-key")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.EndpointURL != "https://env.example" || cfg.AccessKey != "env-key" {
		t.Fatalf("cfg = %+v, want env values", cfg)
	}
}

func TestLoad_MissingFileEnvOnly(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	t.Setenv("PLATEWATCH_URL", "https://env.example")
	t.Setenv("PLATEWATCH_KEY", "env-key")

	cfg, err := Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.EndpointURL != "https://env.example" {
		t.Fatalf("EndpointURL = %q, want env value", cfg.EndpointURL)
	}
}

func TestLoad_MissingSecretsFailFast(t *testing.T) {
	t.Setenv("PLATEWATCH_URL", "")
	t.Setenv("PLATEWATCH_KEY", "")

	path := writeConfig(t, "endpoint_url = \"https://example.supabase.co\"\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "access key missing") {
		t.Fatalf("error = %v, want access key missing", err)
	}

	path = writeConfig(t, "access_key = \"anon-key\"\n")
	_, err = Load(path)
	if err == nil || !strings.Contains(err.Error(), "endpoint URL missing") {
		t.Fatalf("error = %v, want endpoint URL missing", err)
	}
}

func TestLoad_MalformedTOML(t *testing.T) {
	path := writeConfig(t, "endpoint_url = [broken\n")
	_, err := Load(path)
	if err == nil || !strings.Contains(err.Error(), "parse config") {
		t.Fatalf("error = %v, want parse config error", err)
	}
}
