// Package chart renders the report charts as PNG images with gonum/plot.
package chart

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/couchcryptid/covid-focus-report/internal/config"
	"github.com/couchcryptid/covid-focus-report/internal/domain"
)

// Theme carries the fixed styling and thresholds shared by every renderer.
type Theme struct {
	Palette    []color.RGBA
	Background color.RGBA
	DPI        int

	VaccinationTarget float64
	VaccinationBand   [2]float64
	VaccinationYRange [2]float64

	RecoveryBenchmark float64
	RecoveryYRange    [2]float64
}

// NewTheme builds a Theme from the analysis parameters.
func NewTheme(a config.Analysis) (Theme, error) {
	palette := make([]color.RGBA, len(a.Palette))
	for i, hex := range a.Palette {
		c, err := parseHex(hex)
		if err != nil {
			return Theme{}, fmt.Errorf("palette[%d]: %w", i, err)
		}
		palette[i] = c
	}

	return Theme{
		Palette:           palette,
		Background:        panelBackground,
		DPI:               a.DPI,
		VaccinationTarget: a.VaccinationTarget,
		VaccinationBand:   a.VaccinationBand,
		VaccinationYRange: a.VaccinationYRange,
		RecoveryBenchmark: a.RecoveryBenchmark,
		RecoveryYRange:    a.RecoveryYRange,
	}, nil
}

// ColorFor returns the country's palette color, fixed by its focus position.
func (t Theme) ColorFor(focus domain.FocusSet, country string) color.RGBA {
	i := focus.Index(country)
	if i < 0 || len(t.Palette) == 0 {
		return color.RGBA{A: 255}
	}
	return t.Palette[i%len(t.Palette)]
}

// paletteAt returns palette entry i, wrapping around short palettes.
func (t Theme) paletteAt(i int) color.RGBA {
	if len(t.Palette) == 0 {
		return color.RGBA{A: 255}
	}
	return t.Palette[i%len(t.Palette)]
}

func parseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
