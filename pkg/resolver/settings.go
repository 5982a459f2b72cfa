package resolver

import (
	"regexp"

	"github.com/bisonbyte/espenv/pkg/source"
	"github.com/pkg/errors"
)

// Names of the emitted defines.
const (
	WifiSSIDDefine  = "DEFAULT_WIFI_SSID"
	WifiPassDefine  = "DEFAULT_WIFI_PASS"
	ServerURLDefine = "DEFAULT_SERVER_URL"
)

// Keys looked up in the environment and in the dotenv file.
const (
	WifiSSIDKey  = "ESP32_WIFI_SSID"
	WifiPassKey  = "ESP32_WIFI_PASSWORD"
	ServerURLKey = "ESP32_DEFAULT_SERVER_URL"
	AppURLKey    = "APP_URL"
)

// DefaultServerURL is used when no source supplies a server URL.
const DefaultServerURL = "https://proyecto.bisonbyte.io"

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

type (
	// Setting is one logical build setting and the ordered sources it is read from.
	Setting struct {
		Name   string
		Chain  []Lookup
		Secret bool
	}

	// Lookup reads Key from Source.
	Lookup struct {
		Source source.Source
		Key    string
	}

	// Settings is an ordered settings table.
	Settings []Setting
)

// DefaultSettings returns the firmware settings table in emission order.
// The server URL chain ends in a literal default, so it is always emitted.
func DefaultSettings(env, file source.Source) Settings {
	return Settings{
		{
			Name:  WifiSSIDDefine,
			Chain: []Lookup{{env, WifiSSIDKey}, {file, WifiSSIDKey}},
		},
		{
			Name:   WifiPassDefine,
			Chain:  []Lookup{{env, WifiPassKey}, {file, WifiPassKey}},
			Secret: true,
		},
		{
			Name: ServerURLDefine,
			Chain: []Lookup{
				{env, ServerURLKey},
				{file, ServerURLKey},
				{env, AppURLKey},
				{file, AppURLKey},
				{source.Default(DefaultServerURL), ""},
			},
		},
	}
}

// Validate checks every setting has a unique C identifier as name and a
// chain whose lookups all have a source.
func (s Settings) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, setting := range s {
		if !identifier.MatchString(setting.Name) {
			return errors.Errorf("setting name %q is not a valid identifier", setting.Name)
		}
		if _, dup := seen[setting.Name]; dup {
			return errors.Errorf("setting %q is defined more than once", setting.Name)
		}
		seen[setting.Name] = struct{}{}

		for i, l := range setting.Chain {
			if l.Source == nil {
				return errors.Errorf("setting %q has no source at chain position %d", setting.Name, i)
			}
		}
	}
	return nil
}
