package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeTestConfig(t, `
name: meetscribe
debug: true
server:
  port: 9090
pipeline:
  language: fr
  overlap_threshold: 0.5
providers:
  transcription:
    timeout: 300s
`)

	var cfg AppConfig
	if err := Load("meetscribe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Name != "meetscribe" || !cfg.Debug {
		t.Errorf("Name = %q, Debug = %v", cfg.Name, cfg.Debug)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Pipeline.OverlapThreshold != 0.5 {
		t.Errorf("Pipeline.OverlapThreshold = %v", cfg.Pipeline.OverlapThreshold)
	}
	if cfg.Providers.Transcription.Timeout != 300*time.Second {
		t.Errorf("Transcription.Timeout = %s", cfg.Providers.Transcription.Timeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeTestConfig(t, "server:\n  port: 8080\n")
	t.Setenv("SERVER_PORT", "9999")
	t.Setenv("AUTH_JWT_SECRET", "une-cle-venue-de-l-environnement")

	var cfg AppConfig
	if err := Load("meetscribe", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Server.Port = %d, want 9999", cfg.Server.Port)
	}
	if cfg.Auth.JWTSecret != "une-cle-venue-de-l-environnement" {
		t.Errorf("Auth.JWTSecret = %q", cfg.Auth.JWTSecret)
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	var cfg AppConfig
	err := Load("meetscribe", &cfg, WithConfigFile(filepath.Join(t.TempDir(), "absent.yml")))
	if err == nil {
		t.Error("Load() accepted a missing config file")
	}
}

func TestEnvKeyVariants(t *testing.T) {
	tests := []struct {
		key  string
		want []string
	}{
		{"PORT", []string{"port"}},
		{"SERVER_PORT", []string{"server_port", "server.port"}},
		{
			"PROVIDERS_REPORT_API_KEY",
			[]string{
				"providers_report_api_key",
				"providers.report.api.key",
				"providers.report_api_key",
				"providers.report.api_key",
				"providers.report.api.key",
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := envKeyVariants(tt.key)
			for _, want := range tt.want {
				if !containsKey(got, want) {
					t.Errorf("envKeyVariants(%s) = %v, missing %s", tt.key, got, want)
				}
			}
		})
	}
}

func TestEnvKeyVariantsDeduplicates(t *testing.T) {
	got := envKeyVariants("A_B")
	want := []string{"a_b", "a.b"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("envKeyVariants(A_B) = %v, want %v", got, want)
	}
}

func containsKey(keys []string, want string) bool {
	for _, k := range keys {
		if k == want {
			return true
		}
	}
	return false
}
