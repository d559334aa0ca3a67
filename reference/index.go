/*
Package reference builds the nearest-neighbour indices that the page
classifier queries. Each retained colormap is sampled at Resolution evenly
spaced positions and quantized to 8-bit RGB. Samples that quantize to the
same color share one entry in the kd-tree, so a page color that finds the
entry finds all of them. Pure black and pure white never reach a page
histogram and are left out of the tree. A Set never changes after Build returns and may be shared by
any number of goroutines.
*/
package reference

import (
	"fmt"
	"math"

	"DistributedRainbow/colormap"
	"DistributedRainbow/colorspace"
	"DistributedRainbow/histogram"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/spatial/kdtree"
)

const DefaultResolution = 256

type Settings struct {
	Resolution int
	Exclude    []string
}

// DefaultSettings samples 256 points and drops the near-grayscale maps.
func DefaultSettings() Settings {
	return Settings{
		Resolution: DefaultResolution,
		Exclude:    append([]string(nil), colormap.DefaultExclusions...),
	}
}

func (s *Settings) String() string {
	return fmt.Sprintf("{Reference Resolution: %d Exclude: %v}", s.Resolution, s.Exclude)
}

// Verify fills an unset resolution and rejects exclusions that are not in
// the catalog.
func (s *Settings) Verify() error {
	if s.Resolution == 0 {
		s.Resolution = DefaultResolution
	}
	if s.Resolution < 2 {
		return errors.Errorf("resolution must be at least 2, got %d", s.Resolution)
	}
	if s.Exclude == nil {
		s.Exclude = append([]string(nil), colormap.DefaultExclusions...)
	}
	for _, name := range s.Exclude {
		if _, err := colormap.Lookup(name); err != nil {
			return err
		}
	}
	return nil
}

// Index holds the perceptual samples of one colormap.
type Index struct {
	Name     string
	Category colormap.Category
	Samples  []colorspace.JAB

	// groups lists the sample positions of every distinct visible color.
	groups     [][]int
	observable int
	tree       *kdtree.Tree
}

// Len is the sampling resolution N.
func (ix *Index) Len() int { return len(ix.Samples) }

// Observable is the number of samples a page histogram can contain.
func (ix *Index) Observable() int { return ix.observable }

// Groups is the number of distinct visible sample colors.
func (ix *Index) Groups() int { return len(ix.groups) }

// Group lists the sample positions that share color g.
func (ix *Index) Group(g int) []int { return ix.groups[g] }

// Nearest returns the distance from q to the closest visible sample color
// and the group of that color. An index without visible colors returns
// +Inf and -1.
func (ix *Index) Nearest(q colorspace.JAB) (float64, int) {
	if ix.tree == nil {
		return math.Inf(1), -1
	}
	got, d2 := ix.tree.Nearest(sample{jab: q})
	return math.Sqrt(d2), got.(sample).index
}

// Set is the ordered collection of indices, in catalog order.
type Set struct {
	Resolution int
	indices    []*Index
}

func (s *Set) Len() int { return len(s.indices) }

func (s *Set) At(i int) *Index { return s.indices[i] }

// Names lists the indexed colormaps in order.
func (s *Set) Names() []string {
	names := make([]string, len(s.indices))
	for i, ix := range s.indices {
		names[i] = ix.Name
	}
	return names
}

// Lookup returns the index of the named colormap, or nil.
func (s *Set) Lookup(name string) *Index {
	for _, ix := range s.indices {
		if ix.Name == name {
			return ix
		}
	}
	return nil
}

// Build indexes every catalog entry not excluded by s. Unknown exclusions and
// malformed colormaps are errors.
func Build(catalog []colormap.Entry, s Settings) (*Set, error) {
	if err := s.Verify(); err != nil {
		return nil, errors.Wrap(err, "reference settings")
	}
	entries, err := colormap.Exclude(catalog, s.Exclude)
	if err != nil {
		return nil, errors.Wrap(err, "reference exclusions")
	}

	set := &Set{Resolution: s.Resolution}
	for _, e := range entries {
		ix, err := NewIndex(e, s.Resolution)
		if err != nil {
			return nil, err
		}
		set.indices = append(set.indices, ix)
	}
	return set, nil
}

// NewIndex samples one colormap n times.
func NewIndex(e colormap.Entry, n int) (*Index, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	if n < 2 {
		return nil, errors.Errorf("colormap %s: resolution must be at least 2, got %d", e.Name, n)
	}
	colors := e.Map.Sample(n)
	if len(colors) != n {
		return nil, errors.Errorf("colormap %s: expected %d samples, got %d", e.Name, n, len(colors))
	}
	for i, c := range colors {
		if math.IsNaN(c.R) || math.IsNaN(c.G) || math.IsNaN(c.B) {
			return nil, errors.Errorf("colormap %s: sample %d is not a number", e.Name, i)
		}
	}

	quantized := colormap.Quantize(colors)
	points := colorspace.FromColors(quantized)
	ix := &Index{
		Name:     e.Name,
		Category: e.Category,
		Samples:  points,
	}

	seen := make(map[[3]uint8]int)
	var firsts []colorspace.JAB
	for i, c := range quantized {
		if histogram.Background(c.R, c.G, c.B) {
			continue
		}
		ix.observable++
		key := [3]uint8{c.R, c.G, c.B}
		g, ok := seen[key]
		if !ok {
			g = len(ix.groups)
			seen[key] = g
			ix.groups = append(ix.groups, nil)
			firsts = append(firsts, points[i])
		}
		ix.groups[g] = append(ix.groups[g], i)
	}
	if len(firsts) > 0 {
		ix.tree = newTree(firsts)
	}
	return ix, nil
}
