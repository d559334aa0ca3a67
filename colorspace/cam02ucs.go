/*
Package colorspace converts 8-bit sRGB colors into CAM02-UCS, a perceptually
uniform space in which Euclidean distance approximates perceived color
difference.

	+-----------+-------------+-----------+
	| Component | Description |   Range   |
	+-----------+-------------+-----------+
	| J         | lightness   | [0, 100]  |
	| A         | green-red   | ~[-50,50] |
	| B         | blue-yellow | ~[-50,50] |
	+-----------+-------------+-----------+

Inputs are always 8 bits per channel (0-255). Images with a different bit
depth must be rescaled before conversion.

The viewing conditions are those of the sRGB standard: D65 white point,
background luminance factor Y_b = 20, adapting luminance L_A = 64/π/5 cd/m²
and an average surround.

CIECAM02 reference: Moroney et al., "The CIECAM02 color appearance model",
IS&T/SID Color Imaging Conference, 2002.
CAM02-UCS reference: Luo, Cui & Li, "Uniform colour spaces based on CIECAM02
colour appearance model", Color Research & Application 31(4), 2006.
*/
package colorspace

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// JAB is a color in CAM02-UCS coordinates.
type JAB struct {
	J float64
	A float64
	B float64
}

// At returns the component along axis d (0 = J, 1 = A, 2 = B).
func (c JAB) At(d int) float64 {
	switch d {
	case 0:
		return c.J
	case 1:
		return c.A
	default:
		return c.B
	}
}

func (c JAB) DistanceSquared(o JAB) float64 {
	dj, da, db := c.J-o.J, c.A-o.A, c.B-o.B
	return dj*dj + da*da + db*db
}

func (c JAB) Distance(o JAB) float64 {
	return math.Sqrt(c.DistanceSquared(o))
}

type mat3 [3][3]float64

func (m mat3) mul(v [3]float64) [3]float64 {
	return [3]float64{
		m[0][0]*v[0] + m[0][1]*v[1] + m[0][2]*v[2],
		m[1][0]*v[0] + m[1][1]*v[1] + m[1][2]*v[2],
		m[2][0]*v[0] + m[2][1]*v[1] + m[2][2]*v[2],
	}
}

// IEC 61966-2-1 linear sRGB to XYZ, scaled so that white has Y = 100.
var linearSRGBToXYZ100 = mat3{
	{41.24, 35.76, 18.05},
	{21.26, 71.52, 7.22},
	{1.93, 11.92, 95.05},
}

var (
	mCAT02 = mat3{
		{0.7328, 0.4296, -0.1624},
		{-0.7036, 1.6975, 0.0061},
		{0.0030, 0.0136, 0.9834},
	}
	mCAT02Inverse = mat3{
		{1.096123820835514, -0.278869000218287, 0.182745179382773},
		{0.454369041975359, 0.473533154307412, 0.072097803717229},
		{-0.009627608738429, -0.005698031216113, 1.015325639954543},
	}
	mHPE = mat3{
		{0.38971, 0.68898, -0.07868},
		{-0.22981, 1.18340, 0.04641},
		{0.0, 0.0, 1.0},
	}
)

const (
	// CAM02-UCS coefficients
	ucsKL = 1.0
	ucsC1 = 0.007
	ucsC2 = 0.0228
)

// viewingConditions holds the CIECAM02 terms that depend only on the
// environment. They are computed once; conversion never mutates them.
type viewingConditions struct {
	c, nc         float64
	n, z          float64
	fl, flQuarter float64
	nbb, ncb      float64
	dRGB          [3]float64
	aw            float64
	chromaScale   float64
}

var sRGBViewing = newViewingConditions([3]float64{95.047, 100.0, 108.883}, 20, 64/math.Pi/5, 1.0, 0.69, 1.0)

func newViewingConditions(white [3]float64, yb, la, f, c, nc float64) viewingConditions {
	v := viewingConditions{c: c, nc: nc}
	yw := white[1]

	rgbW := mCAT02.mul(white)

	d := f * (1 - (1/3.6)*math.Exp((-la-42)/92))
	d = math.Max(0, math.Min(1, d))
	for i := range v.dRGB {
		v.dRGB[i] = d*yw/rgbW[i] + 1 - d
	}

	k := 1 / (5*la + 1)
	k4 := k * k * k * k
	v.fl = 0.2*k4*(5*la) + 0.1*(1-k4)*(1-k4)*math.Cbrt(5*la)
	v.flQuarter = math.Pow(v.fl, 0.25)

	v.n = yb / yw
	v.z = 1.48 + math.Sqrt(v.n)
	v.nbb = 0.725 * math.Pow(v.n, -0.2)
	v.ncb = v.nbb
	v.chromaScale = math.Pow(1.64-math.Pow(0.29, v.n), 0.73)

	var rgbWC [3]float64
	for i := range rgbWC {
		rgbWC[i] = v.dRGB[i] * rgbW[i]
	}
	aw := v.adapt(mHPE.mul(mCAT02Inverse.mul(rgbWC)))
	v.aw = (2*aw[0] + aw[1] + aw[2]/20 - 0.305) * v.nbb

	return v
}

// adapt applies the post-adaptation non-linear response compression.
func (v *viewingConditions) adapt(rgb [3]float64) [3]float64 {
	var out [3]float64
	for i, x := range rgb {
		p := math.Pow(v.fl*math.Abs(x)/100, 0.42)
		out[i] = 400*math.Copysign(1, x)*p/(27.13+p) + 0.1
	}
	return out
}

// jmh returns CIECAM02 lightness J, colorfulness M and hue angle h (radians).
func (v *viewingConditions) jmh(xyz [3]float64) (j, m, h float64) {
	rgb := mCAT02.mul(xyz)
	for i := range rgb {
		rgb[i] *= v.dRGB[i]
	}
	ra := v.adapt(mHPE.mul(mCAT02Inverse.mul(rgb)))

	a := ra[0] - 12*ra[1]/11 + ra[2]/11
	b := (ra[0] + ra[1] - 2*ra[2]) / 9
	h = math.Atan2(b, a)

	hDeg := math.Mod(h*180/math.Pi, 360)
	if hDeg < 0 {
		hDeg += 360
	}
	if hDeg < 20.14 {
		hDeg += 360
	}
	et := 0.25 * (math.Cos(hDeg*math.Pi/180+2) + 3.8)

	achromatic := (2*ra[0] + ra[1] + ra[2]/20 - 0.305) * v.nbb
	// Rounding can push black fractionally below zero.
	achromatic = math.Max(0, achromatic)
	j = 100 * math.Pow(achromatic/v.aw, v.c*v.z)

	t := (50000.0 / 13.0 * v.nc * v.ncb) * et * math.Hypot(a, b) / (ra[0] + ra[1] + 21.0/20.0*ra[2])
	chroma := math.Pow(t, 0.9) * math.Sqrt(j/100) * v.chromaScale
	m = chroma * v.flQuarter

	return j, m, h
}

func (v *viewingConditions) ucs(j, m, h float64) JAB {
	jp := (1 + 100*ucsC1) * j / (1 + ucsC1*j) / ucsKL
	mp := math.Log1p(ucsC2*m) / ucsC2
	return JAB{
		J: jp,
		A: mp * math.Cos(h),
		B: mp * math.Sin(h),
	}
}

// FromRGB255 converts one 8-bit sRGB color to CAM02-UCS.
func FromRGB255(r, g, b uint8) JAB {
	c := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	lr, lg, lb := c.LinearRgb()
	xyz := linearSRGBToXYZ100.mul([3]float64{lr, lg, lb})
	j, m, h := sRGBViewing.jmh(xyz)
	return sRGBViewing.ucs(j, m, h)
}

// FromColor converts c after reducing it to 8-bit RGB. Callers are expected
// to pass opaque colors.
func FromColor(c color.Color) JAB {
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	return FromRGB255(rgba.R, rgba.G, rgba.B)
}

// FromColors converts a slice of 8-bit colors; the result has the same order.
func FromColors(colors []color.RGBA) []JAB {
	out := make([]JAB, len(colors))
	for i, c := range colors {
		out[i] = FromRGB255(c.R, c.G, c.B)
	}
	return out
}
