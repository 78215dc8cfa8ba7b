package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/studymate/internal/flagx"
)

var ownFlags = []string{"-d", "-l", "-locales", "-k", "-m", "-log-level", "-autosave", "-style", "-persona"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-d string          database DSN (SQLite path or postgres:// URL)
//	-l string          UI language (ar or en)
//	-locales string    locale directory
//	-k string          Gemini API key
//	-m string          Gemini model
//	-log-level string  debug, info, warn or error
//	-autosave duration profile auto-save interval, e.g. 5s
//	-style string      Markdown render style
//	-persona string    assistant persona line
//
// Args are filtered through flagx.FilterArgs first so flags owned by other
// layers (-c) do not trip the parser.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("studymate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.Language, "l", cfg.Language, "UI language")
	fs.StringVar(&cfg.LocalesDir, "locales", cfg.LocalesDir, "locale directory")
	fs.StringVar(&cfg.GeminiAPIKey, "k", cfg.GeminiAPIKey, "Gemini API key")
	fs.StringVar(&cfg.GeminiModel, "m", cfg.GeminiModel, "Gemini model")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level")
	fs.DurationVar(&cfg.AutosaveInterval, "autosave", cfg.AutosaveInterval, "profile auto-save interval")
	fs.StringVar(&cfg.RenderStyle, "style", cfg.RenderStyle, "Markdown render style")
	fs.StringVar(&cfg.Persona, "persona", cfg.Persona, "assistant persona line")

	return fs.Parse(flagx.FilterArgs(args, ownFlags))
}
