package config

import (
	"errors"
	"fmt"
	"image/color"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// ParseColor accepts an SVG colour name ("red", "steelblue") or a hex
// triplet ("#f00", "#ff0000").
func ParseColor(s string) (color.RGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.RGBA{}, errors.New("empty colour")
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("parse colour %q: %w", s, err)
		}
		r, g, b := c.RGB255()
		return color.RGBA{R: r, G: g, B: b, A: 255}, nil
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	if hint := suggest(s, colornames.Names); hint != "" {
		return color.RGBA{}, fmt.Errorf("unknown colour %q (did you mean %q?)", s, hint)
	}
	return color.RGBA{}, fmt.Errorf("unknown colour %q", s)
}

// ColorOr is ParseColor returning fallback on error.
func ColorOr(s string, fallback color.RGBA) color.RGBA {
	c, err := ParseColor(s)
	if err != nil {
		return fallback
	}
	return c
}
