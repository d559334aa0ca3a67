package reference

import (
	"DistributedRainbow/colorspace"

	"gonum.org/v1/gonum/spatial/kdtree"
)

// sample is one distinct colormap color stored in the kd-tree. The index is
// the color's group and survives the tree's reordering.
type sample struct {
	jab   colorspace.JAB
	index int
}

func (p sample) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	q := c.(sample)
	return p.jab.At(int(d)) - q.jab.At(int(d))
}

func (p sample) Dims() int { return 3 }

// Distance is squared, as kdtree expects.
func (p sample) Distance(c kdtree.Comparable) float64 {
	return p.jab.DistanceSquared(c.(sample).jab)
}

type samples []sample

func (p samples) Index(i int) kdtree.Comparable { return p[i] }
func (p samples) Len() int                      { return len(p) }
func (p samples) Pivot(d kdtree.Dim) int        { return plane{samples: p, dim: d}.pivot() }
func (p samples) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

// plane sorts samples along a single axis.
type plane struct {
	samples
	dim kdtree.Dim
}

func (p plane) Less(i, j int) bool {
	return p.samples[i].jab.At(int(p.dim)) < p.samples[j].jab.At(int(p.dim))
}
func (p plane) Swap(i, j int) { p.samples[i], p.samples[j] = p.samples[j], p.samples[i] }
func (p plane) Slice(start, end int) kdtree.SortSlicer {
	return plane{samples: p.samples[start:end], dim: p.dim}
}
func (p plane) pivot() int { return kdtree.Partition(p, kdtree.MedianOfMedians(p)) }

func newTree(points []colorspace.JAB) *kdtree.Tree {
	s := make(samples, len(points))
	for i, jab := range points {
		s[i] = sample{jab: jab, index: i}
	}
	return kdtree.New(s, false)
}
