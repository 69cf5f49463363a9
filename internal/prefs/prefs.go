// Package prefs handles the display preferences: language and TUI theme.
// Both live in the key-value store as plain strings.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cocteler/cocteler/internal/catalog"
	"github.com/cocteler/cocteler/internal/kv"
)

// Prefs holds the display preferences.
type Prefs struct {
	Language string
	Theme    string
}

const defaultTheme = "Negroni"

// Defaults returns the preferences used before anything is stored.
func Defaults() Prefs {
	return Prefs{Language: catalog.English, Theme: defaultTheme}
}

// WithDefaults fills blank fields from d.
func (p Prefs) WithDefaults(d Prefs) Prefs {
	if strings.TrimSpace(p.Language) == "" {
		p.Language = d.Language
	}
	if strings.TrimSpace(p.Theme) == "" {
		p.Theme = d.Theme
	}
	p.Language = NormalizeLanguage(p.Language)
	return p
}

// Load reads stored preferences over defaults. Missing keys keep the
// default; read errors are returned alongside usable preferences.
func Load(ctx context.Context, adapter kv.Adapter, defaults Prefs) (Prefs, error) {
	p := defaults.WithDefaults(Defaults())

	var errs []error
	if lang, found, err := adapter.Get(ctx, kv.KeyLanguage); err != nil {
		errs = append(errs, fmt.Errorf("read language: %w", err))
	} else if found && strings.TrimSpace(lang) != "" {
		p.Language = NormalizeLanguage(lang)
	}
	if theme, found, err := adapter.Get(ctx, kv.KeyTheme); err != nil {
		errs = append(errs, fmt.Errorf("read theme: %w", err))
	} else if found && strings.TrimSpace(theme) != "" {
		p.Theme = strings.TrimSpace(theme)
	}
	return p, errors.Join(errs...)
}

// SaveLanguage schedules lang to be stored and returns the normalized code.
func SaveLanguage(w kv.Scheduler, lang string) string {
	lang = NormalizeLanguage(lang)
	w.Schedule(kv.KeyLanguage, lang)
	return lang
}

// SaveTheme schedules theme to be stored.
func SaveTheme(w kv.Scheduler, theme string) {
	w.Schedule(kv.KeyTheme, strings.TrimSpace(theme))
}

// NormalizeLanguage maps common spellings to a catalog language code.
// Anything unrecognized is English.
func NormalizeLanguage(lang string) string {
	switch strings.ToLower(strings.TrimSpace(lang)) {
	case "es", "es-es", "es_es", "spanish", "español", "espanol":
		return catalog.Spanish
	default:
		return catalog.English
	}
}

// NextLanguage cycles through the bundled catalog languages.
func NextLanguage(current string) string {
	langs := catalog.Languages()
	current = NormalizeLanguage(current)
	for i, l := range langs {
		if l == current {
			return langs[(i+1)%len(langs)]
		}
	}
	return langs[0]
}
