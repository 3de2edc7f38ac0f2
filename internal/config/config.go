// Package config provides configuration loading and structs for the docquery server.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug   bool          `yaml:"debug"`
	Server  ServerConfig  `yaml:"server"`
	Backend BackendConfig `yaml:"backend"`
	Ingest  IngestConfig  `yaml:"ingest"`
	Prompt  PromptConfig  `yaml:"prompt"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host           string `yaml:"host"`
	Port           int    `yaml:"port"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
}

// BackendConfig holds the AI backend endpoint settings. The endpoint is
// injected here rather than baked into the pipeline so tests can point it at
// a stub server.
type BackendConfig struct {
	// URL is the full endpoint that receives {"prompt": ...} and replies
	// with {"answer": ...}.
	URL string `yaml:"url"`
	// TimeoutSeconds bounds a single dispatch. Zero means no timeout: a slow
	// backend keeps the request in flight until it resolves.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// IngestConfig holds file ingestion settings.
type IngestConfig struct {
	// OfficeExtraction enables text extraction for office document formats
	// (docx, xlsx, pptx, odt, ods, odp, rtf). When false, only PDF content is
	// extracted and every other format is kept as the raw bytes read.
	OfficeExtraction bool `yaml:"office_extraction"`
}

// PromptConfig holds prompt composition settings.
type PromptConfig struct {
	// SnippetLength is the number of leading characters of file content
	// included in the prompt before the truncation marker.
	SnippetLength int `yaml:"snippet_length"`
}

// Load reads and parses the config file at path and applies defaults.
// Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	return &cfg, nil
}
