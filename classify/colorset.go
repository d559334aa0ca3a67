package classify

import (
	"DistributedRainbow/colorspace"
	"DistributedRainbow/histogram"
	"DistributedRainbow/page"
)

// ColorSet is a page histogram expressed in CAM02-UCS. Row i of Colors has
// Counts[i] pixels.
type ColorSet struct {
	Page   page.ID
	Colors []colorspace.JAB
	Counts []int
	Total  int
}

func NewColorSet(h histogram.Histogram) ColorSet {
	cs := ColorSet{
		Page:   h.Page(),
		Colors: make([]colorspace.JAB, h.Len()),
		Counts: make([]int, h.Len()),
		Total:  h.Total(),
	}
	for i := 0; i < h.Len(); i++ {
		e := h.At(i)
		cs.Colors[i] = colorspace.FromRGB255(e.R, e.G, e.B)
		cs.Counts[i] = e.Count
	}
	return cs
}

func (cs ColorSet) Len() int { return len(cs.Colors) }
