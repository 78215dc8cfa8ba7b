package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/timex"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape shared by JSON and YAML. Absent keys stay
// nil and leave the current value alone.
type fileConfig struct {
	DatabaseDSN      *string         `json:"database_dsn" yaml:"database_dsn"`
	LocalesDir       *string         `json:"locales_dir" yaml:"locales_dir"`
	Language         *string         `json:"language" yaml:"language"`
	GeminiAPIKey     *string         `json:"gemini_api_key" yaml:"gemini_api_key"`
	GeminiModel      *string         `json:"gemini_model" yaml:"gemini_model"`
	GeminiBaseURL    *string         `json:"gemini_base_url" yaml:"gemini_base_url"`
	ResponseLanguage *string         `json:"response_language" yaml:"response_language"`
	Persona          *string         `json:"persona" yaml:"persona"`
	SessionSecret    *string         `json:"session_secret" yaml:"session_secret"`
	SessionValidity  *timex.Duration `json:"session_validity" yaml:"session_validity"`
	AutosaveInterval *timex.Duration `json:"autosave_interval" yaml:"autosave_interval"`
	LogLevel         *string         `json:"log_level" yaml:"log_level"`
	RenderStyle      *string         `json:"render_style" yaml:"render_style"`
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// parseFile overlays cfg with the JSON or YAML document at path.
func parseFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	if isYAML(path) {
		err = yaml.Unmarshal(data, &fc)
	} else {
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func (fc fileConfig) apply(cfg *Config) {
	setString(&cfg.DatabaseDSN, fc.DatabaseDSN)
	setString(&cfg.LocalesDir, fc.LocalesDir)
	setString(&cfg.Language, fc.Language)
	setString(&cfg.GeminiAPIKey, fc.GeminiAPIKey)
	setString(&cfg.GeminiModel, fc.GeminiModel)
	setString(&cfg.GeminiBaseURL, fc.GeminiBaseURL)
	setString(&cfg.ResponseLanguage, fc.ResponseLanguage)
	setString(&cfg.Persona, fc.Persona)
	setString(&cfg.SessionSecret, fc.SessionSecret)
	setString(&cfg.LogLevel, fc.LogLevel)
	setString(&cfg.RenderStyle, fc.RenderStyle)

	if fc.SessionValidity != nil {
		cfg.SessionValidity = fc.SessionValidity.Duration
	}
	if fc.AutosaveInterval != nil {
		cfg.AutosaveInterval = fc.AutosaveInterval.Duration
	}
}
