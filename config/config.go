package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultServerAddr     = ":8080"
	DefaultUploadMaxBytes = 32 << 20
)

// Config is the service configuration. Durations are Go duration strings.
type Config struct {
	ServerAddr     string          `json:"server_addr,omitempty" yaml:"server_addr,omitempty" toml:"server_addr,omitempty"`
	LogMode        string          `json:"log_mode,omitempty" yaml:"log_mode,omitempty" toml:"log_mode,omitempty"`
	UploadMaxBytes int64           `json:"upload_max_bytes,omitempty" yaml:"upload_max_bytes,omitempty" toml:"upload_max_bytes,omitempty"`
	Generator      GeneratorConfig `json:"generator" yaml:"generator" toml:"generator"`
	Pacing         PacingConfig    `json:"pacing" yaml:"pacing" toml:"pacing"`
}

// GeneratorConfig selects the content backend. Provider "mock" is the local simulator.
type GeneratorConfig struct {
	Provider string `json:"provider,omitempty" yaml:"provider,omitempty" toml:"provider,omitempty"`
	Model    string `json:"model,omitempty" yaml:"model,omitempty" toml:"model,omitempty"`
	APIKey   string `json:"api_key,omitempty" yaml:"api_key,omitempty" toml:"api_key,omitempty"`
	BaseURL  string `json:"base_url,omitempty" yaml:"base_url,omitempty" toml:"base_url,omitempty"`
}

// PacingConfig holds the simulator's per-step delays.
type PacingConfig struct {
	WordDelay      string `json:"word_delay,omitempty" yaml:"word_delay,omitempty" toml:"word_delay,omitempty"`
	LineDelay      string `json:"line_delay,omitempty" yaml:"line_delay,omitempty" toml:"line_delay,omitempty"`
	HighlightDelay string `json:"highlight_delay,omitempty" yaml:"highlight_delay,omitempty" toml:"highlight_delay,omitempty"`
}

// Durations parses the pacing strings. Empty values fall back to the given defaults.
func (p PacingConfig) Durations(word, line, highlight time.Duration) (time.Duration, time.Duration, time.Duration, error) {
	var err error
	if word, err = parseDuration("pacing.word_delay", p.WordDelay, word); err != nil {
		return 0, 0, 0, err
	}
	if line, err = parseDuration("pacing.line_delay", p.LineDelay, line); err != nil {
		return 0, 0, 0, err
	}
	if highlight, err = parseDuration("pacing.highlight_delay", p.HighlightDelay, highlight); err != nil {
		return 0, 0, 0, err
	}
	return word, line, highlight, nil
}

func parseDuration(name, raw string, fallback time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}

// Default returns the zero-config setup: simulator on :8080.
func Default() Config {
	return Config{
		ServerAddr:     DefaultServerAddr,
		LogMode:        "dev",
		UploadMaxBytes: DefaultUploadMaxBytes,
		Generator:      GeneratorConfig{Provider: "mock"},
	}
}

// Load reads path (JSON, YAML for .yaml/.yml, TOML for .toml) over the defaults and then applies
// environment overrides. A missing path is not an error when path is empty.
// A .env file next to the working directory is loaded first if present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, err
		}
		if err := decode(path, data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".toml":
		_, err := toml.Decode(string(data), cfg)
		return err
	default:
		return json.Unmarshal(data, cfg)
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("STUDIO_SERVER_ADDR"); v != "" {
		cfg.ServerAddr = v
	}
	if v := os.Getenv("STUDIO_LOG_MODE"); v != "" {
		cfg.LogMode = v
	}
	if v := os.Getenv("STUDIO_UPLOAD_MAX_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("STUDIO_UPLOAD_MAX_BYTES: %w", err)
		}
		cfg.UploadMaxBytes = n
	}
	if v := os.Getenv("STUDIO_GENERATOR_PROVIDER"); v != "" {
		cfg.Generator.Provider = v
	}
	if v := os.Getenv("STUDIO_GENERATOR_MODEL"); v != "" {
		cfg.Generator.Model = v
	}
	if v := os.Getenv("STUDIO_GENERATOR_BASE_URL"); v != "" {
		cfg.Generator.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" && cfg.Generator.APIKey == "" {
		cfg.Generator.APIKey = v
	}
	return nil
}

// Validate checks the fields that the rest of the service relies on.
func (c Config) Validate() error {
	switch c.Generator.Provider {
	case "", "mock":
	case "openai", "deepseek":
		if c.Generator.Model == "" {
			return errors.New("generator.model is required for provider " + c.Generator.Provider)
		}
		if c.Generator.Provider == "deepseek" && c.Generator.BaseURL == "" {
			return errors.New("generator provider deepseek requires base_url (OpenAI-compatible endpoint)")
		}
	default:
		return fmt.Errorf("generator provider %s not supported", c.Generator.Provider)
	}
	if c.UploadMaxBytes <= 0 {
		return errors.New("upload_max_bytes must be positive")
	}
	_, _, _, err := c.Pacing.Durations(0, 0, 0)
	return err
}
