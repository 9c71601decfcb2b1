// Package colorconv converts between the HSV values produced by the colour
// picker, 8-bit RGB channels and the packed integer colours stored in stroke
// styling.
package colorconv

import (
	"image/color"
	"math"
)

// NoFill is a packed colour that no in-range RGB triple produces. Styling
// uses it to mean that a shape is not filled.
const NoFill = -1

// HSVToRGB converts h, s and v, each in [0, 1], to 8-bit channels.
func HSVToRGB(h, s, v float64) (r, g, b int) {
	i := math.Floor(h * 6)
	f := h*6 - i
	p := v * (1 - s)
	q := v * (1 - f*s)
	t := v * (1 - (1-f)*s)

	var rf, gf, bf float64
	switch sector(i) {
	case 0:
		rf, gf, bf = v, t, p
	case 1:
		rf, gf, bf = q, v, p
	case 2:
		rf, gf, bf = p, v, t
	case 3:
		rf, gf, bf = p, q, v
	case 4:
		rf, gf, bf = t, p, v
	case 5:
		rf, gf, bf = v, p, q
	}
	return round255(rf), round255(gf), round255(bf)
}

// RGBToHSV converts 8-bit channels to h, s and v in [0, 1]. Achromatic
// colours have a hue of 0.
func RGBToHSV(r, g, b int) (h, s, v float64) {
	hi, lo := max(r, g, b), min(r, g, b)
	d := float64(hi - lo)
	v = float64(hi) / 255
	if hi != 0 {
		s = d / float64(hi)
	}

	// Cases are tried in order, so a channel tied with the maximum resolves
	// to the earliest of r, g, b.
	switch hi {
	case lo:
		h = 0
	case r:
		h = float64(g-b) + d*wrap(g < b)
		h /= 6 * d
	case g:
		h = float64(b-r) + d*2
		h /= 6 * d
	case b:
		h = float64(r-g) + d*4
		h /= 6 * d
	}
	return h, s, v
}

// RGBToNumber packs three channels into 0xRRGGBB. Out-of-range channels are
// not checked.
func RGBToNumber(r, g, b int) int {
	return (r << 16) + (g << 8) + b
}

// NumberToRGB unpacks the low 24 bits of n.
func NumberToRGB(n int) (r, g, b int) {
	return (n >> 16) & 0xff, (n >> 8) & 0xff, n & 0xff
}

// NRGBA returns the opaque colour for a packed value.
func NRGBA(n int) color.NRGBA {
	r, g, b := NumberToRGB(n)
	return color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff}
}

// FromColor packs any color.Color, ignoring alpha.
func FromColor(c color.Color) int {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBToNumber(int(n.R), int(n.G), int(n.B))
}

// sector maps floor(h*6) onto 0..5 using a floored modulo.
func sector(i float64) int {
	m := math.Mod(i, 6)
	if m < 0 {
		m += 6
	}
	return int(m)
}

// round255 scales a unit channel to 0..255, rounding halves up.
func round255(x float64) int {
	return int(math.Floor(x*255 + 0.5))
}

func wrap(neg bool) float64 {
	if neg {
		return 6
	}
	return 0
}
