package config

import (
	"os"
	"path/filepath"
	"testing"
)

func inTempDir(t *testing.T) string {
	t.Helper()
	origDir, _ := os.Getwd()
	t.Cleanup(func() { _ = os.Chdir(origDir) })
	tmpDir := t.TempDir()
	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	return tmpDir
}

func TestLoadAppConfig(t *testing.T) {
	origConfig := Config
	t.Cleanup(func() { Config = origConfig })

	tmpDir := inTempDir(t)
	body := `
server:
  port: 9000
backend:
  baseURL: https://efa.example.org/apb
  language: de
  minIntervalMS: 500
  maxConcurrent: 2
cache:
  stopTTLMS: 60000
requestLog:
  path: requests.log
`
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yml"), []byte(body), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if Config.Server.Port != 9000 {
		t.Errorf("expected port 9000, got %d", Config.Server.Port)
	}
	if Config.Backend.BaseURL != "https://efa.example.org/apb" || Config.Backend.Language != "de" {
		t.Errorf("backend config wrong: %+v", Config.Backend)
	}
	if Config.Cache.StopTTLMS != 60000 || Config.Cache.TripTTLMS != 0 {
		t.Errorf("cache config wrong: %+v", Config.Cache)
	}
	if Config.RequestLog.Path != "requests.log" {
		t.Errorf("request log path wrong: %q", Config.RequestLog.Path)
	}
}

func TestLoadAppConfigDefaultPort(t *testing.T) {
	origConfig := Config
	t.Cleanup(func() { Config = origConfig })

	tmpDir := inTempDir(t)
	if err := os.WriteFile(filepath.Join(tmpDir, "config.yml"), []byte("backend: {}\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if err := LoadAppConfig(); err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if Config.Server.Port != DefaultPort {
		t.Errorf("expected default port %d, got %d", DefaultPort, Config.Server.Port)
	}
}

func TestLoadAppConfigMissingFile(t *testing.T) {
	origConfig := Config
	t.Cleanup(func() { Config = origConfig })

	inTempDir(t)
	if err := LoadAppConfig(); err == nil {
		t.Errorf("loading without a config file must fail")
	}
}

func TestLoadAppConfigInvalid(t *testing.T) {
	origConfig := Config
	t.Cleanup(func() { Config = origConfig })

	tests := []struct {
		name string
		body string
	}{
		{"invalid yaml", "invalid: yaml: content: [[["},
		{"invalid url", "backend:\n  baseURL: not-a-url\n"},
		{"negative interval", "backend:\n  minIntervalMS: -5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := inTempDir(t)
			if err := os.WriteFile(filepath.Join(tmpDir, "config.yml"), []byte(tt.body), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}
			if err := LoadAppConfig(); err == nil {
				t.Errorf("expected validation error")
			}
		})
	}
}
