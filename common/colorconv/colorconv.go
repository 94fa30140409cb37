package colorconv

import (
	"github.com/lucasb-eyer/go-colorful"
)

// HueToRGB converts a hue in degrees at full saturation and value to 8-bit RGB.
func HueToRGB(hue float64) (r, g, b uint8) {
	return colorful.Hsv(hue, 1.0, 1.0).Clamped().RGB255()
}

// ANSI256 maps 8-bit RGB onto the 6x6x6 cube of the xterm 256-color palette.
func ANSI256(r, g, b uint8) uint8 {
	ir := uint16(r) * 5 / 255
	ig := uint16(g) * 5 / 255
	ib := uint16(b) * 5 / 255
	return uint8(16 + 36*ir + 6*ig + ib)
}
