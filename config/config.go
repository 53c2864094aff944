// Package config provides configuration loading for manview using TOML.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Colors are terminal colors in any form lipgloss accepts ("#rrggbb", ANSI
// number, or name).
type Colors struct {
	Foreground     string `toml:"foreground"`
	Bold           string `toml:"bold"`
	Italic         string `toml:"italic"`
	Dim            string `toml:"dim"`
	Link           string `toml:"link"`
	Search         string `toml:"search"`
	SearchSelected string `toml:"search_selected"`
	Error          string `toml:"error"`
	Selection      string `toml:"selection"`
}

// Scroll settings
type Scroll struct {
	AmountLines  int `toml:"amount_lines"`   // lines moved per scroll step
	MinThumbRows int `toml:"min_thumb_rows"` // smallest scrollbar thumb
}

// Search tuning.
type Search struct {
	ScrollMarginLines int `toml:"scroll_margin_lines"` // scroll-into-view margin
	PositionPenalty   int `toml:"position_penalty"`    // catalog ranking weight
}

// Config is the whole configuration file.
type Config struct {
	Colors Colors `toml:"colors"`
	Scroll Scroll `toml:"scroll"`
	Search Search `toml:"search"`
}

// Default returns the built-in configuration, matching the original's
// palette.
func Default() Config {
	return Config{
		Colors: Colors{
			Foreground:     "#fdfde8",
			Bold:           "#a4d4f1",
			Italic:         "#ffce79",
			Dim:            "#7b7b7b",
			Link:           "#8fbfdc",
			Search:         "#1515b4",
			SearchSelected: "#15c815",
			Error:          "#ff1515",
			Selection:      "#ebb470",
		},
		Scroll: Scroll{
			AmountLines:  3,
			MinThumbRows: 1,
		},
		Search: Search{
			ScrollMarginLines: 3,
			PositionPenalty:   100,
		},
	}
}

// Path returns the configuration file location:
// $XDG_CONFIG_HOME/manview/config.toml, falling back to ~/.config.
func Path() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "manview", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".config", "manview", "config.toml"), nil
}

// Load reads the configuration file at path over the defaults. A missing file
// is not an error; a malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}
