package colormap

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// ChannelFunc computes one channel at x in [0, 1]. Results are clipped to
// [0, 1].
type ChannelFunc func(x float64) float64

// Functional is an analytic colormap defined by one function per channel.
type Functional struct {
	Red   ChannelFunc
	Green ChannelFunc
	Blue  ChannelFunc
}

func (f Functional) Sample(n int) []colorful.Color {
	return sampleWith(n, func(x float64) colorful.Color {
		return colorful.Color{R: clamp01(f.Red(x)), G: clamp01(f.Green(x)), B: clamp01(f.Blue(x))}
	})
}

// Valid reports whether every channel function is set.
func (f Functional) Valid() bool {
	return f.Red != nil && f.Green != nil && f.Blue != nil
}

// gnuplot's rgbformulae, indexed as in "set palette rgbformulae r,g,b".
var gnuplotFormulae = [...]ChannelFunc{
	0:  func(x float64) float64 { return 0 },
	1:  func(x float64) float64 { return 0.5 },
	2:  func(x float64) float64 { return 1 },
	3:  func(x float64) float64 { return x },
	4:  func(x float64) float64 { return x * x },
	5:  func(x float64) float64 { return x * x * x },
	6:  func(x float64) float64 { return x * x * x * x },
	7:  math.Sqrt,
	8:  func(x float64) float64 { return math.Sqrt(math.Sqrt(x)) },
	9:  func(x float64) float64 { return math.Sin(x * math.Pi / 2) },
	10: func(x float64) float64 { return math.Cos(x * math.Pi / 2) },
	11: func(x float64) float64 { return math.Abs(x - 0.5) },
	12: func(x float64) float64 { return (2*x - 1) * (2*x - 1) },
	13: func(x float64) float64 { return math.Sin(x * math.Pi) },
	14: func(x float64) float64 { return math.Abs(math.Cos(x * math.Pi)) },
	15: func(x float64) float64 { return math.Sin(x * 2 * math.Pi) },
	16: func(x float64) float64 { return math.Cos(x * 2 * math.Pi) },
	17: func(x float64) float64 { return math.Abs(math.Sin(x * 2 * math.Pi)) },
	18: func(x float64) float64 { return math.Abs(math.Cos(x * 2 * math.Pi)) },
	19: func(x float64) float64 { return math.Abs(math.Sin(x * 4 * math.Pi)) },
	20: func(x float64) float64 { return math.Abs(math.Cos(x * 4 * math.Pi)) },
	21: func(x float64) float64 { return 3 * x },
	22: func(x float64) float64 { return 3*x - 1 },
	23: func(x float64) float64 { return 3*x - 2 },
	24: func(x float64) float64 { return math.Abs(3*x - 1) },
	25: func(x float64) float64 { return math.Abs(3*x - 2) },
	26: func(x float64) float64 { return (3*x - 1) / 2 },
	27: func(x float64) float64 { return (3*x - 2) / 2 },
	28: func(x float64) float64 { return math.Abs((3*x - 1) / 2) },
	29: func(x float64) float64 { return math.Abs((3*x - 2) / 2) },
	30: func(x float64) float64 { return x/0.32 - 0.78125 },
	31: func(x float64) float64 { return 2*x - 0.84 },
	32: func(x float64) float64 {
		switch {
		case x < 0.25:
			return 4 * x
		case x < 0.92:
			return -2*x + 1.84
		default:
			return x/0.08 - 11.5
		}
	},
	33: func(x float64) float64 { return math.Abs(2*x - 0.5) },
	34: func(x float64) float64 { return 2 * x },
	35: func(x float64) float64 { return 2*x - 0.5 },
	36: func(x float64) float64 { return 2*x - 1 },
}

// Gnuplot builds a colormap from three rgbformulae indices.
func Gnuplot(r, g, b int) Functional {
	return Functional{Red: gnuplotFormulae[r], Green: gnuplotFormulae[g], Blue: gnuplotFormulae[b]}
}

// Cubehelix implements Green's cubehelix scheme (D. A. Green, Bulletin of the
// Astronomical Society of India 39, 2011).
func Cubehelix(gamma, start, rotations, hue float64) Functional {
	channel := func(p0, p1 float64) ChannelFunc {
		return func(x float64) float64 {
			xg := math.Pow(x, gamma)
			a := hue * xg * (1 - xg) / 2
			phi := 2 * math.Pi * (start/3 + rotations*x)
			return xg + a*(p0*math.Cos(phi)+p1*math.Sin(phi))
		}
	}
	return Functional{
		Red:   channel(-0.14861, 1.78277),
		Green: channel(-0.29227, -0.90649),
		Blue:  channel(1.97294, 0.0),
	}
}

// periodic returns amp*sin((x*freq+phase)*pi)+offset.
func periodic(amp, freq, phase, offset float64) ChannelFunc {
	return func(x float64) float64 {
		return amp*math.Sin((x*freq+phase)*math.Pi) + offset
	}
}

// pink is sqrt((2*gray + hot) / 3) per channel.
func pink() Functional {
	hot := hotMap()
	channel := func(c Channel) ChannelFunc {
		return func(x float64) float64 {
			return math.Sqrt((2*x + c.at(x)) / 3)
		}
	}
	return Functional{Red: channel(hot.Red), Green: channel(hot.Green), Blue: channel(hot.Blue)}
}
