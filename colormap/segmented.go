package colormap

import (
	"sort"

	"DistributedRainbow/misc"

	"github.com/lucasb-eyer/go-colorful"
)

// Anchor is one breakpoint of a piecewise linear channel. Below is the value
// approached from the left of X and Above the value leaving X to the right,
// which allows discontinuities.
type Anchor struct {
	X     float64
	Below float64
	Above float64
}

// Channel is a sorted list of anchors starting at 0 and ending at 1.
type Channel []Anchor

func (c Channel) at(x float64) float64 {
	if len(c) == 0 {
		return 0
	}
	if x <= c[0].X {
		return clamp01(c[0].Above)
	}
	last := c[len(c)-1]
	if x >= last.X {
		return clamp01(last.Below)
	}

	// First anchor strictly to the right of x.
	i := sort.Search(len(c), func(i int) bool { return c[i].X > x })
	lo, hi := c[i-1], c[i]
	f := (x - lo.X) / (hi.X - lo.X)
	return clamp01(misc.LerpFloat64(lo.Above, hi.Below, f))
}

func (c Channel) valid() bool {
	if len(c) < 2 || c[0].X != 0 || c[len(c)-1].X != 1 {
		return false
	}
	for i := 1; i < len(c); i++ {
		if c[i].X < c[i-1].X {
			return false
		}
	}
	return true
}

// Segmented is a piecewise linear colormap with independent red, green and
// blue channels.
type Segmented struct {
	Red   Channel
	Green Channel
	Blue  Channel
}

func (s Segmented) Sample(n int) []colorful.Color {
	return sampleWith(n, func(x float64) colorful.Color {
		return colorful.Color{R: s.Red.at(x), G: s.Green.at(x), B: s.Blue.at(x)}
	})
}

// Valid reports whether every channel covers [0, 1] with sorted anchors.
func (s Segmented) Valid() bool {
	return s.Red.valid() && s.Green.valid() && s.Blue.valid()
}

// Stop places a color at a position of a gradient.
type Stop struct {
	Color    colorful.Color
	Position float64
}

// Gradient builds a continuous Segmented colormap from color stops. Stops
// must be sorted by position, from 0 to 1.
func Gradient(stops ...Stop) Segmented {
	var s Segmented
	for _, stop := range stops {
		s.Red = append(s.Red, Anchor{stop.Position, stop.Color.R, stop.Color.R})
		s.Green = append(s.Green, Anchor{stop.Position, stop.Color.G, stop.Color.G})
		s.Blue = append(s.Blue, Anchor{stop.Position, stop.Color.B, stop.Color.B})
	}
	return s
}

// EvenGradient spreads colors evenly over [0, 1].
func EvenGradient(colors ...colorful.Color) Segmented {
	stops := make([]Stop, len(colors))
	for i, c := range colors {
		pos := 0.0
		if len(colors) > 1 {
			pos = float64(i) / float64(len(colors)-1)
		}
		stops[i] = Stop{Color: c, Position: pos}
	}
	return Gradient(stops...)
}

// HexGradient is EvenGradient over hex color strings.
func HexGradient(hexes ...string) Segmented {
	return EvenGradient(mustParseHexes(hexes)...)
}

func continuous(points ...[2]float64) Channel {
	c := make(Channel, len(points))
	for i, p := range points {
		c[i] = Anchor{X: p[0], Below: p[1], Above: p[1]}
	}
	return c
}
