// Package i18n loads the Arabic and English string tables and resolves keys
// with {placeholder} substitution.
package i18n

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/studymate/internal/logging"
	"golang.org/x/text/language"
)

type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
)

// Languages lists the supported languages; the first is the default.
var Languages = []Language{Arabic, English}

var matcher = language.NewMatcher([]language.Tag{language.Arabic, language.English})

// ParseLanguage maps a BCP 47 tag such as "en-GB" or "ar_EG" to a supported
// language.
func ParseLanguage(s string) (Language, error) {
	tag, err := language.Parse(strings.ReplaceAll(strings.TrimSpace(s), "_", "-"))
	if err != nil {
		return "", fmt.Errorf("parse language %q: %w", s, err)
	}
	_, idx, conf := matcher.Match(tag)
	if conf == language.No {
		return "", fmt.Errorf("unsupported language %q", s)
	}
	return Languages[idx], nil
}

// Tag returns the x/text tag of l.
func (l Language) Tag() language.Tag {
	if l == English {
		return language.English
	}
	return language.Arabic
}

type Dictionary map[string]string

type Translator struct {
	dicts map[Language]Dictionary
	lang  Language
}

// New returns a translator over dicts starting in lang.
func New(dicts map[Language]Dictionary, lang Language) *Translator {
	if dicts == nil {
		dicts = map[Language]Dictionary{}
	}
	return &Translator{dicts: dicts, lang: lang}
}

// Load reads <dir>/ar.json and <dir>/en.json. A missing or malformed file
// is logged and leaves that language with an empty dictionary.
func Load(ctx context.Context, dir string, lang Language, log logging.Logger) *Translator {
	dicts := make(map[Language]Dictionary, len(Languages))
	for _, l := range Languages {
		path := filepath.Join(dir, string(l)+".json")
		d, err := readDictionary(path)
		if err != nil {
			log.Warn(ctx, "locale not loaded", "path", path, "error", err)
			d = Dictionary{}
		}
		dicts[l] = d
	}
	return New(dicts, lang)
}

func readDictionary(path string) (Dictionary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var d Dictionary
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, err
	}
	if d == nil {
		d = Dictionary{}
	}
	return d, nil
}

func (t *Translator) Language() Language {
	return t.lang
}

func (t *Translator) SetLanguage(l Language) {
	t.lang = l
}

// Translate returns the template for key in the current language with every
// {name} replaced by params[name]. Unknown keys come back unchanged.
func (t *Translator) Translate(key string, params map[string]any) string {
	tmpl, ok := t.dicts[t.lang][key]
	if !ok {
		return key
	}
	for name, v := range params {
		tmpl = strings.ReplaceAll(tmpl, "{"+name+"}", fmt.Sprint(v))
	}
	return tmpl
}

// T is Translate without parameters.
func (t *Translator) T(key string) string {
	return t.Translate(key, nil)
}
