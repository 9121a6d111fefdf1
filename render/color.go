package render

import (
	"image/color"

	"github.com/gdamore/tcell/v2"
)

// RGB stores explicit 8-bit color channels, decoupled from tcell
type RGB struct {
	R, G, B uint8
}

// FromRGBA drops alpha
func FromRGBA(c color.RGBA) RGB {
	return RGB{c.R, c.G, c.B}
}

// Tcell converts to a true-color tcell value
func (c RGB) Tcell() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Blend performs alpha blending: result = src*alpha + dst*(1-alpha)
func (dst RGB) Blend(src RGB, alpha float64) RGB {
	if alpha <= 0 {
		return dst
	}
	if alpha >= 1 {
		return src
	}
	inv := 1.0 - alpha
	return RGB{
		R: uint8(float64(src.R)*alpha + float64(dst.R)*inv),
		G: uint8(float64(src.G)*alpha + float64(dst.G)*inv),
		B: uint8(float64(src.B)*alpha + float64(dst.B)*inv),
	}
}

// Luma is perceived brightness in [0,255]
func (c RGB) Luma() float64 {
	return 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)
}

// Contrast picks black or white text for a background
func (c RGB) Contrast() RGB {
	if c.Luma() > 140 {
		return RGBBlack
	}
	return RGBWhite
}

var (
	RGBBlack = RGB{0, 0, 0}
	RGBWhite = RGB{255, 255, 255}
)

// Palette
var (
	RgbBackground = RGB{26, 27, 38}    // Tokyo Night background
	RgbRing       = RGB{255, 255, 255} // Ring dots
	RgbStatusBar  = RGB{135, 206, 250} // Light sky blue
	RgbWinner     = RGB{0, 255, 0}   // WINNER banner
	RgbCountdown  = RGB{255, 165, 0} // Orange

	// RgbLabel is the ring color faded toward the background
	RgbLabel = RgbBackground.Blend(RgbRing, 0.7)
)

// fallbackColors tint bodies without imagery, indexed by handle
var fallbackColors = []RGB{
	{255, 80, 80},
	{80, 200, 80},
	{100, 150, 255},
	{255, 255, 0},
	{0, 200, 200},
	{255, 165, 0},
	{255, 192, 203},
	{200, 120, 255},
}

func fallbackColor(handle int) RGB {
	if handle < 0 {
		handle = -handle
	}
	return fallbackColors[handle%len(fallbackColors)]
}
