/*
Package classify scores a page's colors against every reference colormap and
turns the scores of a whole paper into a verdict.

For one page and one colormap, colormap coverage is the fraction of the
colormap's observable samples that some page color lies within MatchDistance
of. Samples that quantize to the same 8-bit color are hit together, and
samples that are pure black or pure white are not counted at all. Page
coverage is the fraction of the page's counted pixels whose color lies
within MatchDistance of some sample. Both are fractions in [0, 1].
*/
package classify

import (
	"fmt"
	"sort"

	"DistributedRainbow/page"
	"DistributedRainbow/reference"

	"github.com/pkg/errors"
)

const DefaultMatchDistance = 1.0

// CoverageStats is the score of one colormap on one page.
type CoverageStats struct {
	Page             page.ID
	Colormap         string
	ColormapCoverage float64
	PageCoverage     float64
}

func (c CoverageStats) String() string {
	return fmt.Sprintf("{%s %s colormap: %.3f page: %.3f}", c.Page, c.Colormap, c.ColormapCoverage, c.PageCoverage)
}

type Settings struct {
	MatchDistance float64
}

func (s *Settings) Verify() error {
	if s.MatchDistance == 0 {
		s.MatchDistance = DefaultMatchDistance
	}
	if s.MatchDistance < 0 {
		return errors.Errorf("match distance must be positive, got %g", s.MatchDistance)
	}
	return nil
}

// Classifier is safe for concurrent use; it only reads its reference set.
type Classifier struct {
	set      *reference.Set
	settings Settings
}

func NewClassifier(set *reference.Set, settings Settings) (*Classifier, error) {
	if set == nil {
		return nil, errors.New("classifier needs a reference set")
	}
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	return &Classifier{set: set, settings: settings}, nil
}

// Page returns one row per reference colormap, ordered by descending
// colormap coverage. Ties keep catalog order. A page without colors scores
// zero everywhere.
func (c *Classifier) Page(cs ColorSet) []CoverageStats {
	rows := make([]CoverageStats, c.set.Len())
	for i := range rows {
		ix := c.set.At(i)
		rows[i] = CoverageStats{Page: cs.Page, Colormap: ix.Name}
		if cs.Len() == 0 || cs.Total == 0 {
			continue
		}

		hits := make(map[int]struct{})
		matched, covered := 0, 0
		for k, color := range cs.Colors {
			d, group := ix.Nearest(color)
			if d > c.settings.MatchDistance {
				continue
			}
			if _, ok := hits[group]; !ok {
				hits[group] = struct{}{}
				covered += len(ix.Group(group))
			}
			matched += cs.Counts[k]
		}
		if n := ix.Observable(); n > 0 {
			rows[i].ColormapCoverage = float64(covered) / float64(n)
		}
		rows[i].PageCoverage = float64(matched) / float64(cs.Total)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].ColormapCoverage > rows[j].ColormapCoverage
	})
	return rows
}
