package report

import "image/color"

// Palette is the ordered set of series colours for a chart. Charts take
// an explicit palette argument; there is no process-wide shared palette.
type Palette []color.Color

// DefaultPalette mirrors the "Paired" hues the experiment's figures use.
func DefaultPalette() Palette {
	return Palette{
		color.RGBA{R: 0x1f, G: 0x78, B: 0xb4, A: 255}, // blue
		color.RGBA{R: 0xff, G: 0x7f, B: 0x00, A: 255}, // orange
		color.RGBA{R: 0x6a, G: 0x3d, B: 0x9a, A: 255}, // purple
		color.RGBA{R: 0x33, G: 0xa0, B: 0x2c, A: 255}, // green
		color.RGBA{R: 0xe3, G: 0x1a, B: 0x1c, A: 255}, // red
		color.RGBA{R: 0xb1, G: 0x59, B: 0x28, A: 255}, // brown
	}
}

// Color returns the i-th series colour, cycling when the palette is
// shorter than the series count. An empty palette falls back to evenly
// spaced hues.
func (p Palette) Color(i int) color.Color {
	if len(p) == 0 {
		r, g, b := hslToRGB(float64(i%8)/8.0, 0.7, 0.5)
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return p[i%len(p)]
}

// GeneratePalette returns n evenly spaced hues for charts with more
// series than the default palette covers.
func GeneratePalette(n int) Palette {
	if n <= 0 {
		return nil
	}
	colors := make(Palette, n)
	for i := 0; i < n; i++ {
		r, g, b := hslToRGB(float64(i)/float64(n), 0.7, 0.5)
		colors[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return colors
}

// hslToRGB converts HSL to RGB (0-255 range)
func hslToRGB(h, s, l float64) (r, g, b uint8) {
	var rf, gf, bf float64

	if s == 0 {
		rf, gf, bf = l, l, l
	} else {
		var q float64
		if l < 0.5 {
			q = l * (1 + s)
		} else {
			q = l + s - l*s
		}
		p := 2*l - q
		rf = hueToRGB(p, q, h+1.0/3.0)
		gf = hueToRGB(p, q, h)
		bf = hueToRGB(p, q, h-1.0/3.0)
	}

	return uint8(rf * 255), uint8(gf * 255), uint8(bf * 255)
}

func hueToRGB(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}
