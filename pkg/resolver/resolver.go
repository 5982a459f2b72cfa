// Package resolver turns layered build settings into compile-time defines.
//
// Each setting has its own precedence chain of sources. The first source in
// the chain that supplies a non-empty value wins. A setting that no source
// supplies produces no define, unless its chain ends in a literal default.
// Resolution performs no I/O and is idempotent.
package resolver

import (
	"unicode/utf8"

	"github.com/bisonbyte/espenv/pkg/source"
	"github.com/rs/zerolog/log"
)

type (
	// ConfigEntry is the resolution result of a single setting.
	ConfigEntry struct {
		Name     string
		RawValue string
		Present  bool
		// Source names the source that supplied RawValue. Empty when absent.
		Source string
		Secret bool
	}

	// Define is a named, already quoted string constant for the native build.
	Define struct {
		Name        string
		QuotedValue string
		Secret      bool
	}

	// Resolver resolves a fixed settings table.
	Resolver struct {
		settings Settings
	}
)

// New creates a Resolver for settings. It panics if the table is invalid,
// since settings tables are defined in code.
func New(settings Settings) *Resolver {
	if err := settings.Validate(); err != nil {
		panic("invalid settings table: " + err.Error())
	}
	table := make(Settings, len(settings))
	copy(table, settings)
	return &Resolver{settings: table}
}

// Resolve resolves the default firmware settings against env and file.
func Resolve(env source.Environment, file *source.Dotenv) []Define {
	return New(DefaultSettings(env, file)).Defines()
}

// Entries resolves every setting in table order, including absent ones.
func (r *Resolver) Entries() []ConfigEntry {
	entries := make([]ConfigEntry, 0, len(r.settings))
	for _, setting := range r.settings {
		entries = append(entries, resolve(setting))
	}
	return entries
}

// Defines returns one Define per present setting, in table order.
func (r *Resolver) Defines() []Define {
	defines := make([]Define, 0, len(r.settings))
	for _, e := range r.Entries() {
		if !e.Present {
			log.Debug().Str("setting", e.Name).Msg("Setting not supplied by any source, define omitted")
			continue
		}
		if !utf8.ValidString(e.RawValue) {
			log.Warn().
				Str("setting", e.Name).
				Str("source", e.Source).
				Msg("Value is not valid UTF-8, invalid bytes are replaced in the define")
		}
		defines = append(defines, Define{
			Name:        e.Name,
			QuotedValue: Quote(e.RawValue),
			Secret:      e.Secret,
		})
	}
	return defines
}

func resolve(setting Setting) ConfigEntry {
	entry := ConfigEntry{Name: setting.Name, Secret: setting.Secret}
	for _, l := range setting.Chain {
		value, ok := l.Source.Lookup(l.Key)
		if !ok || value == "" {
			continue
		}
		entry.RawValue = value
		entry.Present = true
		entry.Source = l.Source.Name()
		log.Debug().
			Str("setting", setting.Name).
			Str("source", entry.Source).
			Str("key", l.Key).
			Msg("Resolved setting")
		return entry
	}
	return entry
}
