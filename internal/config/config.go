// Package config loads user defaults for the bingoforge tools from an
// optional TOML file at $XDG_CONFIG_HOME/bingoforge/config.toml.
//
// Config values sit between the built-in defaults and explicit flags:
// a flag given on the command line always wins, a missing config file
// is not an error, and a malformed one is.
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/bingoforge/pkg/errors"
)

const appName = "bingoforge"

// Config holds the user-overridable defaults. Zero values mean "not
// set" and leave the built-in default in place.
type Config struct {
	CardSize          string `toml:"card_size"`           // "3x3", "4x4" or "5x5"
	CardsPerPage      int    `toml:"cards_per_page"`      // 1, 2 or 4
	CardFile          string `toml:"card_file"`           // output PDF path
	ColumnLabels      string `toml:"column_labels"`       // comma-delimited labels
	MultilineFontSize int    `toml:"multiline_font_size"` // fixed size for multi-line cells
	FreeText          string `toml:"free_text"`           // free-space marker text
}

// Path returns the config file location under the XDG config directory.
func Path() string {
	return filepath.Join(configHome(), appName, "config.toml")
}

// configHome returns $XDG_CONFIG_HOME or the ~/.config fallback.
func configHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// Load reads the config file. A missing file yields a zero Config and
// no error; a file that cannot be parsed fails with INVALID_CONFIG.
func Load() (Config, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (Config, error) {
	var cfg Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	return cfg, nil
}
