package ui2d

import "image/color"

// Color represents an RGBA color with float components (0.0 to 1.0).
type Color struct {
	R, G, B, A float32
}

// Page palette.
var (
	ColorTransparent = Color{0, 0, 0, 0}
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}

	ColorPageBg       = Color{0.04, 0.04, 0.05, 1}
	ColorPanelBg      = Color{0.08, 0.08, 0.1, 0.95}
	ColorPanelBorder  = Color{0.25, 0.22, 0.1, 1}
	ColorButtonNormal = Color{0.12, 0.12, 0.14, 1}
	ColorButtonHover  = Color{0.2, 0.18, 0.1, 1}
	ColorAccent       = Color{1, 0.8, 0, 1}
	ColorText         = Color{0.9, 0.9, 0.9, 1}
	ColorTextDim      = Color{0.5, 0.5, 0.55, 1}
)

// RGB creates a color from 8-bit RGB values with full alpha.
func RGB(r, g, b uint8) Color {
	return Color{
		R: float32(r) / 255.0,
		G: float32(g) / 255.0,
		B: float32(b) / 255.0,
		A: 1.0,
	}
}

// Hex creates an opaque color from 0xRRGGBB.
func Hex(c uint32) Color {
	return RGB(uint8(c>>16), uint8(c>>8), uint8(c))
}

// WithAlpha returns a copy of the color with a different alpha value.
func (c Color) WithAlpha(a float32) Color {
	return Color{c.R, c.G, c.B, a}
}

// Lighten returns a lighter version of the color.
func (c Color) Lighten(factor float32) Color {
	return Color{
		R: c.R + (1-c.R)*factor,
		G: c.G + (1-c.G)*factor,
		B: c.B + (1-c.B)*factor,
		A: c.A,
	}
}

// RGBA8 converts to an 8-bit color for image rasterization.
func (c Color) RGBA8() color.RGBA {
	to8 := func(v float32) uint8 {
		if v <= 0 {
			return 0
		}
		if v >= 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return color.RGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}
