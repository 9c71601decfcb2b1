// Package config loads board settings from a TOML file.
package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"LocalCanvas/internal/canvas"
	"LocalCanvas/internal/colorconv"
)

type Config struct {
	Style     Style     `toml:"style"`
	Selection Selection `toml:"selection"`
	Export    Export    `toml:"export"`
}

// Style is the default brush. Colours are given as HSV triples in [0, 1],
// the way the colour picker reports them.
type Style struct {
	StrokeWidth  float64    `toml:"stroke_width"`
	StrokeHSV    [3]float64 `toml:"stroke_hsv"`
	Fill         bool       `toml:"fill"`
	FillHSV      [3]float64 `toml:"fill_hsv"`
	StripeWidths [2]float64 `toml:"stripe_widths"`
}

type Selection struct {
	HitPadding float64 `toml:"hit_padding"`
}

type Export struct {
	Orientation string  `toml:"orientation"`
	Unit        string  `toml:"unit"`
	PageSize    string  `toml:"page_size"`
	Scale       float64 `toml:"scale"`
	Margin      float64 `toml:"margin"`
}

func Default() Config {
	return Config{
		Style: Style{
			StrokeWidth: 3,
			FillHSV:     [3]float64{0, 0, 1},
		},
		Selection: Selection{HitPadding: 4},
		Export: Export{
			Orientation: "P",
			Unit:        "mm",
			PageSize:    "A4",
			Scale:       1.0 / 3,
			Margin:      10,
		},
	}
}

// Load reads path over the defaults. Keys the file sets that Config does not
// know about are an error.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("load config %s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.Style.StrokeWidth < 0 {
		return fmt.Errorf("style.stroke_width must not be negative, got %v", c.Style.StrokeWidth)
	}
	for _, hsv := range [][3]float64{c.Style.StrokeHSV, c.Style.FillHSV} {
		for _, x := range hsv {
			if x < 0 || x > 1 {
				return fmt.Errorf("hsv components must lie in [0, 1], got %v", hsv)
			}
		}
	}
	if c.Export.Scale <= 0 {
		return fmt.Errorf("export.scale must be positive, got %v", c.Export.Scale)
	}
	return nil
}

// Styling converts the configured brush into element styling.
func (s Style) Styling() canvas.StrokeAndFillStyling {
	fill := colorconv.NoFill
	if s.Fill {
		fill = packHSV(s.FillHSV)
	}
	return canvas.StrokeAndFillStyling{
		StrokeWidth:  s.StrokeWidth,
		StrokeColor:  packHSV(s.StrokeHSV),
		FillColor:    fill,
		StripeWidths: s.StripeWidths,
	}
}

func packHSV(hsv [3]float64) int {
	return colorconv.RGBToNumber(colorconv.HSVToRGB(hsv[0], hsv[1], hsv[2]))
}
