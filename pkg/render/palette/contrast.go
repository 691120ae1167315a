package palette

import "github.com/lucasb-eyer/go-colorful"

const (
	dark  = "#000000"
	light = "#ffffff"
)

// luminanceThreshold is where black and white text have equal WCAG contrast.
const luminanceThreshold = 0.179

// TextColor returns black or white, whichever reads better on bg.
// Unparseable input yields black.
func TextColor(bg string) string {
	c, err := colorful.Hex(bg)
	if err != nil {
		return dark
	}
	if Luminance(c) > luminanceThreshold {
		return dark
	}
	return light
}

// Luminance is the WCAG relative luminance of c.
func Luminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// Dim blends hex toward white by t in [0, 1], in Lab space.
func Dim(hex string, t float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	return c.BlendLab(colorful.Color{R: 1, G: 1, B: 1}, t).Clamped().Hex()
}
