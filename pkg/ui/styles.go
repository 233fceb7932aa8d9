package ui

import (
	"fmt"
	"image/color"

	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Dracula-inspired
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorBg          = lipgloss.AdaptiveColor{Light: "#F8F8F2", Dark: "#282A36"}
	ColorBgHighlight = lipgloss.AdaptiveColor{Light: "#DCDCE4", Dark: "#44475A"}
	ColorText        = lipgloss.AdaptiveColor{Light: "#282A36", Dark: "#F8F8F2"}
	ColorSubtext     = lipgloss.AdaptiveColor{Light: "#44475A", Dark: "#BFBFBF"}
	ColorMuted       = lipgloss.AdaptiveColor{Light: "#6272A4", Dark: "#6272A4"}

	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#7C4DDB", Dark: "#BD93F9"}
	ColorSecondary = lipgloss.AdaptiveColor{Light: "#6272A4", Dark: "#6272A4"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#1E9E48", Dark: "#50FA7B"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#D63A3A", Dark: "#FF5555"}
)

// Grid colors are used per half-block cell, so they are plain RGB.
var (
	gridBgDark  = color.RGBA{R: 21, G: 21, B: 21, A: 255}
	gridBgLight = color.RGBA{R: 0xEE, G: 0xEE, B: 0xF2, A: 255}
	pageDark    = color.RGBA{R: 0x28, G: 0x2A, B: 0x36, A: 255}
	pageLight   = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 255}
)

// Theme bundles the renderer and colors used by every view.
type Theme struct {
	Renderer *lipgloss.Renderer
	Name     string // glamour style name

	Primary   lipgloss.AdaptiveColor
	Secondary lipgloss.AdaptiveColor
	Text      lipgloss.AdaptiveColor
	Subtext   lipgloss.AdaptiveColor
	Muted     lipgloss.AdaptiveColor
	Border    lipgloss.AdaptiveColor
	Success   lipgloss.AdaptiveColor
	Danger    lipgloss.AdaptiveColor
	StatusBg  lipgloss.AdaptiveColor

	Grid color.RGBA // behind the honeycomb
	Page color.RGBA // live content while it animates
}

// DefaultTheme returns the theme for name ("dark" or "light").
func DefaultTheme(r *lipgloss.Renderer, name string) Theme {
	t := Theme{
		Renderer:  r,
		Name:      name,
		Primary:   ColorPrimary,
		Secondary: ColorSecondary,
		Text:      ColorText,
		Subtext:   ColorSubtext,
		Muted:     ColorMuted,
		Border:    ColorBgHighlight,
		Success:   ColorSuccess,
		Danger:    ColorDanger,
		StatusBg:  ColorBg,
		Grid:      gridBgDark,
		Page:      pageDark,
	}
	if name == "light" {
		r.SetHasDarkBackground(false)
		t.Grid = gridBgLight
		t.Page = pageLight
	} else {
		r.SetHasDarkBackground(true)
	}
	return t
}

// hexColor formats c for lipgloss.
func hexColor(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B))
}

func toRGBA(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 255,
	}
}
