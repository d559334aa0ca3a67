package colormap

import (
	"github.com/lucasb-eyer/go-colorful"
)

func rgb(r, g, b float64) colorful.Color {
	return colorful.Color{R: r, G: g, B: b}
}

// seg builds a channel from (x, below, above) triples.
func seg(points ...[3]float64) Channel {
	c := make(Channel, len(points))
	for i, p := range points {
		c[i] = Anchor{X: p[0], Below: p[1], Above: p[2]}
	}
	return c
}

func linear(from, to float64) Channel {
	return continuous([2]float64{0, from}, [2]float64{1, to})
}

func constant(v float64) ChannelFunc {
	return func(float64) float64 { return v }
}

func jetMap() Segmented {
	return Segmented{
		Red: continuous(
			[2]float64{0, 0}, [2]float64{0.35, 0}, [2]float64{0.66, 1},
			[2]float64{0.89, 1}, [2]float64{1, 0.5}),
		Green: continuous(
			[2]float64{0, 0}, [2]float64{0.125, 0}, [2]float64{0.375, 1},
			[2]float64{0.64, 1}, [2]float64{0.91, 0}, [2]float64{1, 0}),
		Blue: continuous(
			[2]float64{0, 0.5}, [2]float64{0.11, 1}, [2]float64{0.34, 1},
			[2]float64{0.65, 0}, [2]float64{1, 0}),
	}
}

func hsvMap() Segmented {
	return Segmented{
		Red: continuous(
			[2]float64{0, 1}, [2]float64{0.158730, 1}, [2]float64{0.174603, 0.968750},
			[2]float64{0.333333, 0.031250}, [2]float64{0.349206, 0}, [2]float64{0.666667, 0},
			[2]float64{0.682540, 0.031250}, [2]float64{0.841270, 0.968750},
			[2]float64{0.857143, 1}, [2]float64{1, 1}),
		Green: continuous(
			[2]float64{0, 0}, [2]float64{0.158730, 0.937500}, [2]float64{0.174603, 1},
			[2]float64{0.507937, 1}, [2]float64{0.666667, 0.062500},
			[2]float64{0.682540, 0}, [2]float64{1, 0}),
		Blue: continuous(
			[2]float64{0, 0}, [2]float64{0.333333, 0}, [2]float64{0.349206, 0.062500},
			[2]float64{0.507937, 1}, [2]float64{0.841270, 1},
			[2]float64{0.857143, 0.937500}, [2]float64{1, 0.09375}),
	}
}

func gistRainbowMap() Segmented {
	return Gradient(
		Stop{rgb(1.00, 0.00, 0.16), 0.000},
		Stop{rgb(1.00, 0.00, 0.00), 0.030},
		Stop{rgb(1.00, 1.00, 0.00), 0.215},
		Stop{rgb(0.00, 1.00, 0.00), 0.400},
		Stop{rgb(0.00, 1.00, 1.00), 0.586},
		Stop{rgb(0.00, 0.00, 1.00), 0.770},
		Stop{rgb(1.00, 0.00, 1.00), 0.954},
		Stop{rgb(1.00, 0.00, 0.75), 1.000},
	)
}

func nipySpectralMap() Segmented {
	steps := func(values ...float64) Channel {
		c := make(Channel, len(values))
		for i, v := range values {
			c[i] = Anchor{X: float64(i) * 0.05, Below: v, Above: v}
		}
		c[len(c)-1].X = 1
		return c
	}
	return Segmented{
		Red: steps(0, 0.4667, 0.5333, 0, 0, 0, 0, 0, 0, 0, 0,
			0, 0, 0.7333, 0.9333, 1, 1, 1, 0.8667, 0.80, 0.80),
		Green: steps(0, 0, 0, 0, 0, 0.4667, 0.6000, 0.6667, 0.6667, 0.6000, 0.7333,
			0.8667, 1, 1, 0.9333, 0.8000, 0.6000, 0, 0, 0, 0.80),
		Blue: steps(0, 0.5333, 0.6000, 0.6667, 0.8667, 0.8667, 0.8667, 0.6667, 0.5333, 0, 0,
			0, 0, 0, 0, 0, 0, 0, 0, 0, 0.80),
	}
}

func gistNcarMap() Segmented {
	return Segmented{
		Red: continuous(
			[2]float64{0, 0}, [2]float64{0.3098, 0}, [2]float64{0.3725, 0.3993},
			[2]float64{0.4235, 0.5003}, [2]float64{0.5333, 1}, [2]float64{0.7922, 1},
			[2]float64{0.8471, 0.6218}, [2]float64{0.8980, 0.9235}, [2]float64{1, 0.9961}),
		Green: continuous(
			[2]float64{0, 0}, [2]float64{0.0510, 0.3722}, [2]float64{0.1059, 0},
			[2]float64{0.1569, 0.7202}, [2]float64{0.1608, 0.7537}, [2]float64{0.1647, 0.7752},
			[2]float64{0.2157, 1}, [2]float64{0.2588, 0.9804}, [2]float64{0.2706, 0.9804},
			[2]float64{0.3176, 1}, [2]float64{0.3686, 0.8081}, [2]float64{0.4275, 1},
			[2]float64{0.5216, 1}, [2]float64{0.6314, 0.7292}, [2]float64{0.6863, 0.2796},
			[2]float64{0.7451, 0}, [2]float64{0.7922, 0}, [2]float64{0.8431, 0.1753},
			[2]float64{0.8980, 0.5}, [2]float64{1, 0.9725}),
		Blue: continuous(
			[2]float64{0, 0.5020}, [2]float64{0.0510, 0.0222}, [2]float64{0.1098, 1},
			[2]float64{0.2039, 1}, [2]float64{0.2627, 0.6145}, [2]float64{0.3216, 0},
			[2]float64{0.4157, 0}, [2]float64{0.4745, 0.2342}, [2]float64{0.5333, 0},
			[2]float64{0.5804, 0}, [2]float64{0.6314, 0.0549}, [2]float64{0.6902, 0},
			[2]float64{0.7373, 0}, [2]float64{0.7922, 0.9738}, [2]float64{0.8000, 1},
			[2]float64{0.8431, 1}, [2]float64{0.8980, 0.9341}, [2]float64{1, 0.9961}),
	}
}

func flagMap() Functional {
	return Functional{
		Red:   periodic(0.75, 31.5, 0.25, 0.5),
		Green: periodic(1, 31.5, 0, 0),
		Blue:  periodic(0.75, 31.5, -0.25, 0.5),
	}
}

func prismMap() Functional {
	return Functional{
		Red:   periodic(0.75, 20.9, 0.25, 0.67),
		Green: periodic(0.75, 20.9, -0.25, 0.33),
		Blue:  periodic(-1.1, 20.9, 0, 0),
	}
}

func hotMap() Segmented {
	return Segmented{
		Red:   continuous([2]float64{0, 0.0416}, [2]float64{0.365079, 1}, [2]float64{1, 1}),
		Green: continuous([2]float64{0, 0}, [2]float64{0.365079, 0}, [2]float64{0.746032, 1}, [2]float64{1, 1}),
		Blue:  continuous([2]float64{0, 0}, [2]float64{0.746032, 0}, [2]float64{1, 1}),
	}
}

func boneMap() Segmented {
	return Segmented{
		Red:   continuous([2]float64{0, 0}, [2]float64{0.746032, 0.652778}, [2]float64{1, 1}),
		Green: continuous([2]float64{0, 0}, [2]float64{0.365079, 0.319444}, [2]float64{0.746032, 0.777778}, [2]float64{1, 1}),
		Blue:  continuous([2]float64{0, 0}, [2]float64{0.365079, 0.444444}, [2]float64{1, 1}),
	}
}

func copperMap() Segmented {
	return Segmented{
		Red:   continuous([2]float64{0, 0}, [2]float64{0.809524, 1}, [2]float64{1, 1}),
		Green: linear(0, 0.7812),
		Blue:  linear(0, 0.4975),
	}
}

func grayMap() Segmented {
	return Segmented{Red: linear(0, 1), Green: linear(0, 1), Blue: linear(0, 1)}
}

func gistHeatMap() Functional {
	return Functional{
		Red:   func(x float64) float64 { return 1.5 * x },
		Green: func(x float64) float64 { return 2*x - 1 },
		Blue:  func(x float64) float64 { return 4*x - 3 },
	}
}

func gistSternMap() Segmented {
	return Segmented{
		Red:   seg([3]float64{0, 0, 0}, [3]float64{0.0547, 1, 1}, [3]float64{0.250, 0.027, 0.250}, [3]float64{1, 1, 1}),
		Green: linear(0, 1),
		Blue:  continuous([2]float64{0, 0}, [2]float64{0.5, 1}, [2]float64{0.735, 0}, [2]float64{1, 1}),
	}
}

func cmrMap() Segmented {
	eighths := func(values ...float64) Channel {
		c := make(Channel, len(values))
		for i, v := range values {
			c[i] = Anchor{X: float64(i) / 8, Below: v, Above: v}
		}
		return c
	}
	return Segmented{
		Red:   eighths(0, 0.15, 0.30, 0.60, 1.00, 0.90, 0.90, 0.90, 1),
		Green: eighths(0, 0.15, 0.15, 0.20, 0.25, 0.50, 0.75, 0.90, 1),
		Blue:  eighths(0, 0.50, 0.75, 0.50, 0.15, 0.00, 0.10, 0.50, 1),
	}
}

func terrainMap() Segmented {
	return Gradient(
		Stop{rgb(0.2, 0.2, 0.6), 0.00},
		Stop{rgb(0.0, 0.6, 1.0), 0.15},
		Stop{rgb(0.0, 0.8, 0.4), 0.25},
		Stop{rgb(1.0, 1.0, 0.6), 0.50},
		Stop{rgb(0.5, 0.36, 0.33), 0.75},
		Stop{rgb(1.0, 1.0, 1.0), 1.00},
	)
}

func brgMap() Segmented {
	return EvenGradient(rgb(0, 0, 1), rgb(1, 0, 0), rgb(0, 1, 0))
}

func bwrMap() Segmented {
	return EvenGradient(rgb(0, 0, 1), rgb(1, 1, 1), rgb(1, 0, 0))
}

func seismicMap() Segmented {
	return EvenGradient(rgb(0, 0, 0.3), rgb(0, 0, 1), rgb(1, 1, 1), rgb(1, 0, 0), rgb(0.5, 0, 0))
}

func springMap() Functional {
	return Functional{Red: constant(1), Green: func(x float64) float64 { return x }, Blue: func(x float64) float64 { return 1 - x }}
}

func summerMap() Functional {
	return Functional{Red: func(x float64) float64 { return x }, Green: func(x float64) float64 { return 0.5 + x/2 }, Blue: constant(0.4)}
}

func autumnMap() Functional {
	return Functional{Red: constant(1), Green: func(x float64) float64 { return x }, Blue: constant(0)}
}

func winterMap() Functional {
	return Functional{Red: constant(0), Green: func(x float64) float64 { return x }, Blue: func(x float64) float64 { return 1 - x/2 }}
}

func coolMap() Functional {
	return Functional{Red: func(x float64) float64 { return x }, Green: func(x float64) float64 { return 1 - x }, Blue: constant(1)}
}

var (
	viridis = packedList(viridisTable)
	plasma  = packedList(plasmaTable)
	inferno = packedList(infernoTable)
	magma   = packedList(magmaTable)
)

// Nine-class ColorBrewer sequential schemes, light to dark.
var brewerSequential = map[string][]string{
	"Greys":   {"#ffffff", "#f0f0f0", "#d9d9d9", "#bdbdbd", "#969696", "#737373", "#525252", "#252525", "#000000"},
	"Purples": {"#fcfbfd", "#efedf5", "#dadaeb", "#bcbddc", "#9e9ac8", "#807dba", "#6a51a3", "#54278f", "#3f007d"},
	"Blues":   {"#f7fbff", "#deebf7", "#c6dbef", "#9ecae1", "#6baed6", "#4292c6", "#2171b5", "#08519c", "#08306b"},
	"Greens":  {"#f7fcf5", "#e5f5e0", "#c7e9c0", "#a1d99b", "#74c476", "#41ab5d", "#238b45", "#006d2c", "#00441b"},
	"Oranges": {"#fff5eb", "#fee6ce", "#fdd0a2", "#fdae6b", "#fd8d3c", "#f16913", "#d94801", "#a63603", "#7f2704"},
	"Reds":    {"#fff5f0", "#fee0d2", "#fcbba1", "#fc9272", "#fb6a4a", "#ef3b2c", "#cb181d", "#a50f15", "#67000d"},
	"YlOrBr":  {"#ffffe5", "#fff7bc", "#fee391", "#fec44f", "#fe9929", "#ec7014", "#cc4c02", "#993404", "#662506"},
	"YlOrRd":  {"#ffffcc", "#ffeda0", "#fed976", "#feb24c", "#fd8d3c", "#fc4e2a", "#e31a1c", "#bd0026", "#800026"},
	"OrRd":    {"#fff7ec", "#fee8c8", "#fdd49e", "#fdbb84", "#fc8d59", "#ef6548", "#d7301f", "#b30000", "#7f0000"},
	"PuRd":    {"#f7f4f9", "#e7e1ef", "#d4b9da", "#c994c7", "#df65b0", "#e7298a", "#ce1256", "#980043", "#67001f"},
	"RdPu":    {"#fff7f3", "#fde0dd", "#fcc5c0", "#fa9fb5", "#f768a1", "#dd3497", "#ae017e", "#7a0177", "#49006a"},
	"BuPu":    {"#f7fcfd", "#e0ecf4", "#bfd3e6", "#9ebcda", "#8c96c6", "#8c6bb1", "#88419d", "#810f7c", "#4d004b"},
	"GnBu":    {"#f7fcf0", "#e0f3db", "#ccebc5", "#a8ddb5", "#7bccc4", "#4eb3d3", "#2b8cbe", "#0868ac", "#084081"},
	"PuBu":    {"#fff7fb", "#ece7f2", "#d0d1e6", "#a6bddb", "#74a9cf", "#3690c0", "#0570b0", "#045a8d", "#023858"},
	"YlGnBu":  {"#ffffd9", "#edf8b1", "#c7e9b4", "#7fcdbb", "#41b6c4", "#1d91c0", "#225ea8", "#253494", "#081d58"},
	"PuBuGn":  {"#fff7fb", "#ece2f0", "#d0d1e6", "#a6bddb", "#67a9cf", "#3690c0", "#02818a", "#016c59", "#014636"},
	"BuGn":    {"#f7fcfd", "#e5f5f9", "#ccece6", "#99d8c9", "#66c2a4", "#41ae76", "#238b45", "#006d2c", "#00441b"},
	"YlGn":    {"#ffffe5", "#f7fcb9", "#d9f0a3", "#addd8e", "#78c679", "#41ab5d", "#238443", "#006837", "#004529"},
}

// Eleven-class ColorBrewer diverging schemes.
var brewerDiverging = map[string][]string{
	"PiYG":     {"#8e0152", "#c51b7d", "#de77ae", "#f1b6da", "#fde0ef", "#f7f7f7", "#e6f5d0", "#b8e186", "#7fbc41", "#4d9221", "#276419"},
	"PRGn":     {"#40004b", "#762a83", "#9970ab", "#c2a5cf", "#e7d4e8", "#f7f7f7", "#d9f0d3", "#a6dba0", "#5aae61", "#1b7837", "#00441b"},
	"BrBG":     {"#543005", "#8c510a", "#bf812d", "#dfc27d", "#f6e8c3", "#f5f5f5", "#c7eae5", "#80cdc1", "#35978f", "#01665e", "#003c30"},
	"PuOr":     {"#7f3b08", "#b35806", "#e08214", "#fdb863", "#fee0b6", "#f7f7f7", "#d8daeb", "#b2abd2", "#8073ac", "#542788", "#2d004b"},
	"RdGy":     {"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#ffffff", "#e0e0e0", "#bababa", "#878787", "#4d4d4d", "#1a1a1a"},
	"RdBu":     {"#67001f", "#b2182b", "#d6604d", "#f4a582", "#fddbc7", "#f7f7f7", "#d1e5f0", "#92c5de", "#4393c3", "#2166ac", "#053061"},
	"RdYlBu":   {"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee090", "#ffffbf", "#e0f3f8", "#abd9e9", "#74add1", "#4575b4", "#313695"},
	"RdYlGn":   {"#a50026", "#d73027", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#d9ef8b", "#a6d96a", "#66bd63", "#1a9850", "#006837"},
	"Spectral": {"#9e0142", "#d53e4f", "#f46d43", "#fdae61", "#fee08b", "#ffffbf", "#e6f598", "#abdda4", "#66c2a5", "#3288bd", "#5e4fa2"},
}

var coolwarm = HexGradient("#3b4cc0", "#6788ee", "#9abbff", "#c9d7f0", "#edd1c2", "#f7a889", "#e26952", "#b40426")

var wistia = HexGradient("#e4ff7a", "#ffe81a", "#ffbd00", "#ffa000", "#fc7f00")

var gistEarth = HexGradient("#000000", "#1a2874", "#2c6e85", "#3d9064", "#5ca546", "#9ab34f",
	"#b9a75a", "#c3a27f", "#e6d1c4", "#fdfbfb")

var qualitative = map[string][]string{
	"Pastel1": {"#fbb4ae", "#b3cde3", "#ccebc5", "#decbe4", "#fed9a6", "#ffffcc", "#e5d8bd", "#fddaec", "#f2f2f2"},
	"Pastel2": {"#b3e2cd", "#fdcdac", "#cbd5e8", "#f4cae4", "#e6f5c9", "#fff2ae", "#f1e2cc", "#cccccc"},
	"Paired": {"#a6cee3", "#1f78b4", "#b2df8a", "#33a02c", "#fb9a99", "#e31a1c", "#fdbf6f", "#ff7f00",
		"#cab2d6", "#6a3d9a", "#ffff99", "#b15928"},
	"Accent": {"#7fc97f", "#beaed4", "#fdc086", "#ffff99", "#386cb0", "#f0027f", "#bf5b17", "#666666"},
	"Dark2":  {"#1b9e77", "#d95f02", "#7570b3", "#e7298a", "#66a61e", "#e6ab02", "#a6761d", "#666666"},
	"Set1":   {"#e41a1c", "#377eb8", "#4daf4a", "#984ea3", "#ff7f00", "#ffff33", "#a65628", "#f781bf", "#999999"},
	"Set2":   {"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854", "#ffd92f", "#e5c494", "#b3b3b3"},
	"Set3": {"#8dd3c7", "#ffffb3", "#bebada", "#fb8072", "#80b1d3", "#fdb462", "#b3de69", "#fccde5",
		"#d9d9d9", "#bc80bd", "#ccebc5", "#ffed6f"},
	"tab10": {"#1f77b4", "#ff7f0e", "#2ca02c", "#d62728", "#9467bd", "#8c564b", "#e377c2", "#7f7f7f",
		"#bcbd22", "#17becf"},
	"tab20": {"#1f77b4", "#aec7e8", "#ff7f0e", "#ffbb78", "#2ca02c", "#98df8a", "#d62728", "#ff9896",
		"#9467bd", "#c5b0d5", "#8c564b", "#c49c94", "#e377c2", "#f7b6d2", "#7f7f7f", "#c7c7c7",
		"#bcbd22", "#dbdb8d", "#17becf", "#9edae5"},
	"tab20b": {"#393b79", "#5254a3", "#6b6ecf", "#9c9ede", "#637939", "#8ca252", "#b5cf6b", "#cedb9c",
		"#8c6d31", "#bd9e39", "#e7ba52", "#e7cb94", "#843c39", "#ad494a", "#d6616b", "#e7969c",
		"#7b4173", "#a55194", "#ce6dbd", "#de9ed6"},
	"tab20c": {"#3182bd", "#6baed6", "#9ecae1", "#c6dbef", "#e6550d", "#fd8d3c", "#fdae6b", "#fdd0a2",
		"#31a354", "#74c476", "#a1d99b", "#c7e9c0", "#756bb1", "#9e9ac8", "#bcbddc", "#dadaeb",
		"#636363", "#969696", "#bdbdbd", "#d9d9d9"},
}

// builtin returns the definition of a named colormap.
func builtin(name string) (Colormap, bool) {
	if hexes, ok := brewerSequential[name]; ok {
		return HexGradient(hexes...), true
	}
	if hexes, ok := brewerDiverging[name]; ok {
		return HexGradient(hexes...), true
	}
	if hexes, ok := qualitative[name]; ok {
		return HexList(hexes...), true
	}

	switch name {
	case "viridis":
		return viridis, true
	case "plasma":
		return plasma, true
	case "inferno":
		return inferno, true
	case "magma":
		return magma, true
	case "binary", "gist_yarg":
		return Reversed{Colormap: grayMap()}, true
	case "gist_gray", "gray":
		return grayMap(), true
	case "bone":
		return boneMap(), true
	case "pink":
		return pink(), true
	case "spring":
		return springMap(), true
	case "summer":
		return summerMap(), true
	case "autumn":
		return autumnMap(), true
	case "winter":
		return winterMap(), true
	case "cool":
		return coolMap(), true
	case "Wistia":
		return wistia, true
	case "hot":
		return hotMap(), true
	case "afmhot":
		return Gnuplot(34, 35, 36), true
	case "gist_heat":
		return gistHeatMap(), true
	case "copper":
		return copperMap(), true
	case "coolwarm":
		return coolwarm, true
	case "bwr":
		return bwrMap(), true
	case "seismic":
		return seismicMap(), true
	case "flag":
		return flagMap(), true
	case "prism":
		return prismMap(), true
	case "ocean":
		return Gnuplot(23, 28, 3), true
	case "gist_earth":
		return gistEarth, true
	case "terrain":
		return terrainMap(), true
	case "gist_stern":
		return gistSternMap(), true
	case "gnuplot":
		return Gnuplot(7, 5, 15), true
	case "gnuplot2":
		return Gnuplot(30, 31, 32), true
	case "CMRmap":
		return cmrMap(), true
	case "cubehelix":
		return Cubehelix(1.0, 0.5, -1.5, 1.0), true
	case "brg":
		return brgMap(), true
	case "hsv":
		return hsvMap(), true
	case "gist_rainbow":
		return gistRainbowMap(), true
	case "rainbow":
		return Gnuplot(33, 13, 10), true
	case "jet":
		return jetMap(), true
	case "nipy_spectral":
		return nipySpectralMap(), true
	case "gist_ncar":
		return gistNcarMap(), true
	}
	return nil, false
}
