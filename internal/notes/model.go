// Package notes holds the persisted sticky-note configuration: the note
// records, the default note size and the color palette, together with the
// file store that reads and writes them.
package notes

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	DefaultWidth  = 250
	DefaultHeight = 200
	DefaultX      = 100
	DefaultY      = 100

	// DefaultColor fills records that carry no usable color.
	DefaultColor = "#FFDFBA"

	// MinNoteSize is the exclusive lower bound for a note's width and height.
	MinNoteSize = 100
)

var ErrMalformed = errors.New("malformed notes configuration")

// DefaultPalette returns the ten pastel colors offered for new notes.
func DefaultPalette() []string {
	return []string{
		"#FFB3BA", "#FFDFBA", "#FFFFBA", "#BFFFBF", "#BAFFFF",
		"#BACDFF", "#F3BAFF", "#FFBAF7", "#FFBACD", "#FFD700",
	}
}

// Note is one persisted sticky note.
type Note struct {
	Text   string `json:"text"`
	Color  string `json:"color"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// Config is the whole persisted application state.
type Config struct {
	Notes         []Note   `json:"notes"`
	DefaultWidth  int      `json:"default_width"`
	DefaultHeight int      `json:"default_height"`
	Colors        []string `json:"colors"`
}

func DefaultConfig() *Config {
	return &Config{
		Notes:         []Note{},
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
		Colors:        DefaultPalette(),
	}
}

// Clone returns a deep copy.
func (c *Config) Clone() *Config {
	out := *c
	out.Notes = append([]Note(nil), c.Notes...)
	out.Colors = append([]string(nil), c.Colors...)
	if out.Notes == nil {
		out.Notes = []Note{}
	}
	return &out
}

// PaletteColor cycles through the palette.
func (c *Config) PaletteColor(i int) string {
	if len(c.Colors) == 0 {
		return DefaultColor
	}
	if i < 0 {
		i = -i
	}
	return c.Colors[i%len(c.Colors)]
}

// rawNote and rawConfig mirror the persisted shapes with pointer fields so
// that absent keys can be told apart from explicit zero values.
type rawNote struct {
	Text   *string `json:"text"`
	Color  *string `json:"color"`
	X      *int    `json:"x"`
	Y      *int    `json:"y"`
	Width  *int    `json:"width"`
	Height *int    `json:"height"`
}

type rawConfig struct {
	Notes         []rawNote `json:"notes"`
	DefaultWidth  *int      `json:"default_width"`
	DefaultHeight *int      `json:"default_height"`
	Colors        []string  `json:"colors"`
}

// Repair records a value that was replaced while decoding.
type Repair struct {
	Index int
	Field string
	Value string
}

// Decode parses a configuration document and back-fills every missing field
// with its default. Colors are kept as written; those that do not parse are
// replaced and reported.
func Decode(data []byte) (*Config, []Repair, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	cfg := &Config{
		DefaultWidth:  DefaultWidth,
		DefaultHeight: DefaultHeight,
		Colors:        DefaultPalette(),
		Notes:         make([]Note, 0, len(raw.Notes)),
	}
	if raw.DefaultWidth != nil {
		cfg.DefaultWidth = *raw.DefaultWidth
	}
	if raw.DefaultHeight != nil {
		cfg.DefaultHeight = *raw.DefaultHeight
	}

	var repairs []Repair
	if len(raw.Colors) > 0 {
		cfg.Colors = cfg.Colors[:0]
		for _, c := range raw.Colors {
			if _, err := ParseColor(c); err != nil {
				repairs = append(repairs, Repair{Index: -1, Field: "colors", Value: c})
				continue
			}
			cfg.Colors = append(cfg.Colors, c)
		}
		if len(cfg.Colors) == 0 {
			cfg.Colors = DefaultPalette()
		}
	}

	for i, rn := range raw.Notes {
		n := Note{
			Color:  DefaultColor,
			X:      DefaultX,
			Y:      DefaultY,
			Width:  cfg.DefaultWidth,
			Height: cfg.DefaultHeight,
		}
		if rn.Text != nil {
			n.Text = *rn.Text
		}
		if rn.Color != nil {
			if _, err := ParseColor(*rn.Color); err != nil {
				repairs = append(repairs, Repair{Index: i, Field: "color", Value: *rn.Color})
			} else {
				n.Color = *rn.Color
			}
		}
		if rn.X != nil {
			n.X = *rn.X
		}
		if rn.Y != nil {
			n.Y = *rn.Y
		}
		if rn.Width != nil {
			n.Width = *rn.Width
		}
		if rn.Height != nil {
			n.Height = *rn.Height
		}
		cfg.Notes = append(cfg.Notes, n)
	}

	return cfg, repairs, nil
}

// Settings holds the global keys of a document, nil or empty when the key is
// absent.
type Settings struct {
	DefaultWidth  *int
	DefaultHeight *int
	Colors        []string
}

// DecodeSettings reads only the global keys, without back-fill. Palette
// entries that do not parse are dropped.
func DecodeSettings(data []byte) (Settings, error) {
	var raw rawConfig
	if err := json.Unmarshal(data, &raw); err != nil {
		return Settings{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	s := Settings{DefaultWidth: raw.DefaultWidth, DefaultHeight: raw.DefaultHeight}
	for _, c := range raw.Colors {
		if _, err := ParseColor(c); err == nil {
			s.Colors = append(s.Colors, c)
		}
	}
	return s, nil
}

// Encode renders the configuration as indented JSON.
func Encode(cfg *Config) ([]byte, error) {
	out := cfg
	if cfg.Notes == nil || cfg.Colors == nil {
		out = cfg.Clone()
		if out.Colors == nil {
			out.Colors = []string{}
		}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode configuration: %w", err)
	}
	return append(data, '\n'), nil
}
