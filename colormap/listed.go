package colormap

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Listed is a discrete colormap: x selects entry floor(x*len) without
// interpolation, the way qualitative palettes are drawn.
type Listed []colorful.Color

func (l Listed) Sample(n int) []colorful.Color {
	return sampleWith(n, func(x float64) colorful.Color {
		i := int(x * float64(len(l)))
		if i >= len(l) {
			i = len(l) - 1
		}
		return l[i]
	})
}

// Valid reports whether the list has at least one color.
func (l Listed) Valid() bool {
	return len(l) > 0
}

// HexList builds a Listed colormap from hex color strings.
func HexList(hexes ...string) Listed {
	return Listed(mustParseHexes(hexes))
}

func mustParseHex(hex string) colorful.Color {
	c, err := colorful.Hex(hex)
	if err != nil {
		panic("colormap: " + err.Error())
	}
	return c
}

func mustParseHexes(hexes []string) []colorful.Color {
	out := make([]colorful.Color, len(hexes))
	for i, h := range hexes {
		out[i] = mustParseHex(h)
	}
	return out
}
