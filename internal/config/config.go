// Package config provides configuration management with CLI > env > file precedence.
package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/tnglemongrass/pdfchat/internal/models"
	"github.com/tnglemongrass/pdfchat/internal/perplexity"
)

// Config holds all configuration options for pdfchat.
type Config struct {
	Model        string `yaml:"model"`
	APIKey       string `yaml:"api-key"`
	BaseURL      string `yaml:"base-url"`
	SystemPrompt string `yaml:"system-prompt"`
	PDFPath      string `yaml:"pdf"`
	Stream       bool   `yaml:"stream"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Model:        models.Default(),
		BaseURL:      perplexity.DefaultBaseURL,
		SystemPrompt: perplexity.DefaultSystemPrompt,
		Stream:       true,
	}
}

// Load builds a Config by merging CLI flags, environment variables, and
// config files. Precedence: CLI args > env vars > config files (cwd then
// $HOME). A .env file in the working directory is loaded before the
// environment is consulted.
func Load(args []string) (*Config, error) {
	cfg := DefaultConfig()

	if home, err := os.UserHomeDir(); err == nil {
		_ = cfg.loadYAML(filepath.Join(home, ".pdfchat.yml"))
	}
	_ = cfg.loadYAML(".pdfchat.yml")

	_ = godotenv.Load()
	cfg.applyEnv()

	if err := cfg.parseFlags(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, c)
}

func (c *Config) applyEnv() {
	if v := os.Getenv(perplexity.EnvAPIKey); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("PERPLEXITY_API_BASE"); v != "" {
		c.BaseURL = v
	}
	if v := os.Getenv("PDFCHAT_MODEL"); v != "" {
		c.Model = v
	}
}

func (c *Config) parseFlags(args []string) error {
	fs := flag.NewFlagSet("pdfchat", flag.ContinueOnError)
	fs.StringVar(&c.Model, "model", c.Model, "Perplexity model to use")
	fs.StringVar(&c.APIKey, "api-key", c.APIKey, "Perplexity API key")
	fs.StringVar(&c.BaseURL, "base-url", c.BaseURL, "API base URL")
	fs.StringVar(&c.SystemPrompt, "system-prompt", c.SystemPrompt, "System prompt for the session")
	fs.StringVar(&c.PDFPath, "pdf", c.PDFPath, "PDF file to load at startup")
	fs.BoolVar(&c.Stream, "stream", c.Stream, "Stream responses as they arrive")
	return fs.Parse(args)
}
