// Package config assembles StudyMate's runtime settings from defaults, an
// optional JSON or YAML file and command-line flags, in that order.
package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/studymate/internal/flagx"
)

// APIKeyEnvVar is consulted when no API key is configured elsewhere.
const APIKeyEnvVar = "GEMINI_API_KEY"

// Config holds runtime settings for the StudyMate CLI.
//
// Fields:
//   - DatabaseDSN: SQLite file path, or a postgres:// URL for shared storage.
//   - LocalesDir: directory holding ar.json and en.json.
//   - Language: initial UI language ("ar" or "en").
//   - GeminiAPIKey, GeminiModel, GeminiBaseURL: generative AI endpoint.
//   - ResponseLanguage: language requested from the model.
//   - Persona: how the assistant introduces itself; empty keeps the built-in line.
//   - SessionSecret: token signing key; generated and stored when empty.
//   - SessionValidity: lifetime of a session token; zero never expires.
//   - AutosaveInterval: period of the profile auto-saver.
//   - LogLevel: debug, info, warn or error.
//   - RenderStyle: glamour style for Markdown answers ("auto", "dark",
//     "light", "notty", "ascii").
type Config struct {
	DatabaseDSN      string
	LocalesDir       string
	Language         string
	GeminiAPIKey     string
	GeminiModel      string
	GeminiBaseURL    string
	ResponseLanguage string
	Persona          string
	SessionSecret    string
	SessionValidity  time.Duration
	AutosaveInterval time.Duration
	LogLevel         string
	RenderStyle      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabaseDSN = "studymate.db"
	c.LocalesDir = "locales"
	c.Language = "ar"
	c.GeminiModel = "gemini-2.5-flash"
	c.ResponseLanguage = "Arabic"
	c.SessionValidity = 30 * 24 * time.Hour
	c.AutosaveInterval = 5 * time.Second
	c.LogLevel = "info"
	c.RenderStyle = "auto"
}

// Load builds a Config from args (usually os.Args[1:]): defaults, then the
// file named by -c/-config or STUDYMATE_CONFIG, then flags. The API key
// falls back to GEMINI_API_KEY.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := parseFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}

	if cfg.GeminiAPIKey == "" {
		cfg.GeminiAPIKey = os.Getenv(APIKeyEnvVar)
	}

	return cfg, nil
}
