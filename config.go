package main

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const defaultConfigDir = ".doc-processor"

// Embedded configuration files
//
//go:embed config/settings.yaml
var defaultSettings string

//go:embed config/summarizer-system-prompt.md
var defaultSummarizerSystemPrompt string

//go:embed config/keywords-system-prompt.md
var defaultKeywordsSystemPrompt string

//go:embed config/keywords-output-schema.json
var defaultKeywordsSchema string

// Backend names accepted in settings and flags
const (
	BackendTextRank  = "textrank"
	BackendRAKE      = "rake"
	BackendAnthropic = "anthropic"
)

// ConfigOverrides allows overriding embedded defaults with file paths
type ConfigOverrides struct {
	SettingsPath         *string
	SummarizerPromptPath *string
	KeywordsPromptPath   *string
	KeywordsSchemaPath   *string
}

// AgentSettings holds the LLM request settings shared by the Anthropic backends
type AgentSettings struct {
	Model            string  `yaml:"model"`
	MaxTokens        int     `yaml:"max_tokens"`
	Temperature      float64 `yaml:"temperature"`
	ContentMaxTokens int     `yaml:"content_max_tokens"`
}

// SummarizerSettings selects and tunes the summarizer backend
type SummarizerSettings struct {
	Backend       string  `yaml:"backend"`
	Ratio         float64 `yaml:"ratio"`
	MaxSentences  int     `yaml:"max_sentences"`
	AgentSettings `yaml:",inline"`
}

// KeywordSettings selects and tunes the keyword extractor backend
type KeywordSettings struct {
	Backend       string `yaml:"backend"`
	TopN          int    `yaml:"top_n"`
	MaxWords      int    `yaml:"max_words"`
	AgentSettings `yaml:",inline"`
}

// Settings represents the YAML configuration structure
type Settings struct {
	Input struct {
		ConvertHTML bool `yaml:"convert_html"`
	} `yaml:"input"`
	Summarizer SummarizerSettings `yaml:"summarizer"`
	Keywords   KeywordSettings    `yaml:"keywords"`
	Log        struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Config holds settings, overrides and secrets
type Config struct {
	Settings  *Settings
	Overrides *ConfigOverrides
	APIKey    string
}

// NewConfig loads settings (honouring overrides) and the API key from the environment
func NewConfig(overrides *ConfigOverrides) (*Config, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	var settings *Settings
	var err error
	if overrides != nil && overrides.SettingsPath != nil {
		// Explicit settings file must exist
		settings, err = loadSettingsRequired(*overrides.SettingsPath)
	} else {
		settings, err = loadSettings(getConfigPath("settings.yaml"))
	}
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	return &Config{
		Settings:  settings,
		Overrides: overrides,
		APIKey:    os.Getenv("ANTHROPIC_API_KEY"),
	}, nil
}

// GetSummarizerSystemPrompt returns the summarizer system prompt (from override file or embedded)
func (c *Config) GetSummarizerSystemPrompt() (string, error) {
	return c.readOverride(c.overridePath(func(o *ConfigOverrides) *string { return o.SummarizerPromptPath }), defaultSummarizerSystemPrompt)
}

// GetKeywordsSystemPrompt returns the keyword extractor system prompt with top_n filled in
func (c *Config) GetKeywordsSystemPrompt() (string, error) {
	prompt, err := c.readOverride(c.overridePath(func(o *ConfigOverrides) *string { return o.KeywordsPromptPath }), defaultKeywordsSystemPrompt)
	if err != nil {
		return "", err
	}
	topN := c.Settings.Keywords.TopN
	if topN <= 0 {
		topN = 10
	}
	return strings.ReplaceAll(prompt, "{{.top_n}}", fmt.Sprint(topN)), nil
}

// GetKeywordsSchema returns the keyword extractor output schema (from override file or embedded)
func (c *Config) GetKeywordsSchema() (string, error) {
	return c.readOverride(c.overridePath(func(o *ConfigOverrides) *string { return o.KeywordsSchemaPath }), defaultKeywordsSchema)
}

func (c *Config) overridePath(pick func(*ConfigOverrides) *string) *string {
	if c.Overrides == nil {
		return nil
	}
	return pick(c.Overrides)
}

// readOverride reads an explicitly overridden file, which must exist
func (c *Config) readOverride(path *string, fallback string) (string, error) {
	if path == nil {
		return strings.TrimSpace(fallback), nil
	}
	data, err := os.ReadFile(*path)
	if err != nil {
		return "", fmt.Errorf("reading override %s: %w", *path, err)
	}
	return strings.TrimSpace(string(data)), nil
}

// loadSettings loads settings from YAML file with fallback to embedded defaults
func loadSettings(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if os.IsNotExist(err) {
		return parseSettings([]byte(defaultSettings))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

// loadSettingsRequired loads settings from YAML file, failing if file doesn't exist
func loadSettingsRequired(settingsPath string) (*Settings, error) {
	data, err := os.ReadFile(settingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read settings file %s: %w", settingsPath, err)
	}
	return parseSettings(data)
}

// parseSettings decodes YAML on top of the embedded defaults and validates the result
func parseSettings(data []byte) (*Settings, error) {
	var settings Settings
	if err := yaml.Unmarshal([]byte(defaultSettings), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse embedded settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings YAML: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

// Validate checks backend names, numeric ranges and the log level
func (s *Settings) Validate() error {
	switch s.Summarizer.Backend {
	case BackendTextRank, BackendAnthropic:
	default:
		return &ConfigError{Field: "summarizer.backend", Message: fmt.Sprintf("%q is not one of %s, %s", s.Summarizer.Backend, BackendTextRank, BackendAnthropic)}
	}
	switch s.Keywords.Backend {
	case BackendRAKE, BackendAnthropic:
	default:
		return &ConfigError{Field: "keywords.backend", Message: fmt.Sprintf("%q is not one of %s, %s", s.Keywords.Backend, BackendRAKE, BackendAnthropic)}
	}
	if s.Summarizer.Ratio <= 0 || s.Summarizer.Ratio > 1 {
		return &ConfigError{Field: "summarizer.ratio", Message: fmt.Sprintf("%v must be in (0, 1]", s.Summarizer.Ratio)}
	}
	if s.Summarizer.MaxSentences < 0 {
		return &ConfigError{Field: "summarizer.max_sentences", Message: "must not be negative"}
	}
	if s.Keywords.TopN < 0 {
		return &ConfigError{Field: "keywords.top_n", Message: "must not be negative"}
	}
	if s.Keywords.MaxWords < 0 {
		return &ConfigError{Field: "keywords.max_words", Message: "must not be negative"}
	}
	if s.Log.Level != "" {
		if _, err := logrus.ParseLevel(s.Log.Level); err != nil {
			return &ConfigError{Field: "log.level", Message: fmt.Sprintf("%q is not a log level", s.Log.Level)}
		}
	}
	return nil
}

// YAML returns the settings as YAML
func (s *Settings) YAML() (string, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return "", fmt.Errorf("marshaling settings: %w", err)
	}
	return string(data), nil
}

// getConfigPath returns the path to a config file in .doc-processor directory
func getConfigPath(filename string) string {
	return filepath.Join(defaultConfigDir, filename)
}
