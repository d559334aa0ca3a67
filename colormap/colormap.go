// Package colormap defines the reference colormaps a page is compared
// against. A colormap maps a scalar in [0, 1] to a color; every variant can be
// sampled at N evenly spaced positions.
package colormap

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Colormap is sampled at n evenly spaced positions in [0, 1], endpoints
// included.
type Colormap interface {
	Sample(n int) []colorful.Color
}

// positions returns n evenly spaced values from 0 to 1 inclusive.
func positions(n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{0}
	}
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i) / float64(n-1)
	}
	xs[n-1] = 1
	return xs
}

func sampleWith(n int, at func(x float64) colorful.Color) []colorful.Color {
	xs := positions(n)
	out := make([]colorful.Color, len(xs))
	for i, x := range xs {
		out[i] = at(x)
	}
	return out
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// Quantize reduces samples to the 8-bit colors a renderer would draw.
func Quantize(samples []colorful.Color) []color.RGBA {
	out := make([]color.RGBA, len(samples))
	for i, s := range samples {
		r, g, b := s.Clamped().RGB255()
		out[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
	return out
}

// Reversed samples m from 1 to 0.
type Reversed struct {
	Colormap Colormap
}

func (r Reversed) Sample(n int) []colorful.Color {
	samples := r.Colormap.Sample(n)
	for i, j := 0, len(samples)-1; i < j; i, j = i+1, j-1 {
		samples[i], samples[j] = samples[j], samples[i]
	}
	return samples
}
