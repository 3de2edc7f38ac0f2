package config

// DefaultSnippetLength is the number of leading characters of file content
// included in a prompt. Kept configurable rather than baked in.
const DefaultSnippetLength = 1000

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.MaxUploadBytes == 0 {
		cfg.Server.MaxUploadBytes = 32 << 20
	}
	if cfg.Backend.URL == "" {
		cfg.Backend.URL = "http://localhost:8000/ask"
	}
	if cfg.Prompt.SnippetLength == 0 {
		cfg.Prompt.SnippetLength = DefaultSnippetLength
	}
	// Backend.TimeoutSeconds deliberately has no default: zero means the
	// dispatch waits as long as the backend takes.
}
