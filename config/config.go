// Package config loads the optional `.nettlerc.yaml` declarative
// config file a REPL session reads before running its `~/.nettle_profile`
// startup script, grounded on funvibe-funxy's ext.Config/LoadConfig
// (a flat YAML struct decoded with gopkg.in/yaml.v3) and kept on
// afero.Fs so it can be loaded against an in-memory filesystem in
// tests the same way the command package's redirection layer is.
package config

import (
	"fmt"
	"os"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// FileName is the default rc file name looked up in the user's home
// directory, the way the teacher's runRepl loads ".andyrc" from cwd.
const FileName = ".nettlerc.yaml"

// Alias is one entry of the startup alias table: name bound to an
// expansion string, parsed the same way the `alias` builtin parses
// its own third argument.
type Alias struct {
	Name      string `yaml:"name"`
	Expansion string `yaml:"expansion"`
}

// History configures the persistent command-history store.
type History struct {
	// Enabled turns the history/ package's sqlite-backed logging on.
	// Defaults to true when the key is absent (see defaultConfig and Load).
	Enabled *bool `yaml:"enabled,omitempty"`

	// Path overrides where the history database is kept. When empty,
	// cmd/nettle uses "$HOME/.nettle_history".
	Path string `yaml:"path,omitempty"`

	// MaxEntries caps how many rows history.Store retains; 0 means
	// unbounded.
	MaxEntries int `yaml:"max_entries,omitempty"`
}

// Config is the top-level shape of .nettlerc.yaml.
type Config struct {
	// Prompt is a literal prompt string; cmd/nettle prints it as is, with
	// no placeholder substitution, and uses "$ " when it is empty.
	Prompt string `yaml:"prompt,omitempty"`

	// Path lists directories prepended to $PATH before any command in
	// the session is resolved.
	Path []string `yaml:"path,omitempty"`

	// Aliases seeds the command-alias table before the rc script runs,
	// so the script itself can still shadow or extend any of these.
	Aliases []Alias `yaml:"aliases,omitempty"`

	History History `yaml:"history,omitempty"`
}

func defaultConfig() Config {
	enabled := true
	return Config{History: History{Enabled: &enabled}}
}

// Load reads and parses path off fs. A missing file is not an error —
// it returns the defaults (history enabled, every other field zero), matching the teacher's runFile
// silently skipping a missing ".andyrc".
func Load(fs afero.Fs, path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return &cfg, nil
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.History.Enabled == nil {
		enabled := true
		cfg.History.Enabled = &enabled
	}
	return &cfg, nil
}

