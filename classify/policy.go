package classify

import (
	"sort"

	"DistributedRainbow/colormap"
	"DistributedRainbow/page"

	"github.com/pkg/errors"
)

const DefaultThreshold = 0.5

// Policy decides which rows count as evidence. A row matches when its
// colormap coverage is strictly greater than Threshold; a match flags its
// page when the colormap is in Rainbow.
type Policy struct {
	Threshold float64
	Rainbow   map[string]bool
}

func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold, Rainbow: colormap.RainbowSet()}
}

func (p *Policy) Verify() error {
	if p.Threshold < 0 || p.Threshold > 1 {
		return errors.Errorf("coverage threshold must be within [0, 1], got %g", p.Threshold)
	}
	if p.Rainbow == nil {
		p.Rainbow = colormap.RainbowSet()
	}
	return nil
}

// Verdict is the outcome for one paper.
type Verdict struct {
	// Flagged holds ascending, distinct page numbers.
	Flagged []int
	// Matches are the rows above the threshold, whatever the colormap.
	Matches []CoverageStats
	// Coverage is every row that was scored.
	Coverage []CoverageStats
	// Skipped pages could not be read as three channel color images.
	Skipped []page.ID
	// Failed pages could not be decoded at all.
	Failed []page.ID
}

func (v Verdict) FlaggedPages() []int {
	return append([]int(nil), v.Flagged...)
}

// CoverageTable returns the rows above the threshold.
func (v Verdict) CoverageTable() []CoverageStats {
	return append([]CoverageStats(nil), v.Matches...)
}

func (v Verdict) HasRainbow() bool {
	return len(v.Flagged) > 0
}

// Decide applies p to the rows of a whole paper.
func Decide(rows []CoverageStats, p Policy) Verdict {
	v := Verdict{Coverage: append([]CoverageStats(nil), rows...)}

	flagged := make(map[int]struct{})
	for _, r := range rows {
		if r.ColormapCoverage <= p.Threshold {
			continue
		}
		v.Matches = append(v.Matches, r)
		if p.Rainbow[r.Colormap] {
			flagged[r.Page.Number] = struct{}{}
		}
	}

	for n := range flagged {
		v.Flagged = append(v.Flagged, n)
	}
	sort.Ints(v.Flagged)
	return v
}
