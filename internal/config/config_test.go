package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
server:
  host: "127.0.0.1"
  port: 9000
backend:
  url: "http://localhost:9999/ask"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Host != "127.0.0.1" || cfg.Server.Port != 9000 {
		t.Errorf("unexpected server config: %+v", cfg.Server)
	}
	if cfg.Backend.URL != "http://localhost:9999/ask" {
		t.Errorf("backend url: got %q", cfg.Backend.URL)
	}
	if cfg.Debug {
		t.Error("debug should default to false when unset")
	}
}

func TestLoad_defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("debug: true\n"), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Debug {
		t.Error("debug should be true when set in config")
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 8080 {
		t.Errorf("server defaults: got %+v", cfg.Server)
	}
	if cfg.Server.MaxUploadBytes != 32<<20 {
		t.Errorf("max_upload_bytes default: got %d", cfg.Server.MaxUploadBytes)
	}
	if cfg.Backend.URL != "http://localhost:8000/ask" {
		t.Errorf("backend url default: got %q", cfg.Backend.URL)
	}
	if cfg.Backend.TimeoutSeconds != 0 {
		t.Errorf("timeout should default to 0 (no timeout), got %d", cfg.Backend.TimeoutSeconds)
	}
	if cfg.Prompt.SnippetLength != 1000 {
		t.Errorf("snippet_length default: got %d", cfg.Prompt.SnippetLength)
	}
	if cfg.Ingest.OfficeExtraction {
		t.Error("office_extraction should default to false")
	}
}

func TestLoad_missingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoad_invalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("server: [not a map"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestLoad_snippetLengthOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
prompt:
  snippet_length: 500
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Prompt.SnippetLength != 500 {
		t.Errorf("snippet_length: got %d, want 500", cfg.Prompt.SnippetLength)
	}
}
