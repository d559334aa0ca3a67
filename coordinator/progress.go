package coordinator

import (
	"sort"

	"DistributedRainbow/biorxiv"
	"DistributedRainbow/classify"
	"DistributedRainbow/page"
	"DistributedRainbow/task"
)

// progress collects the returned tasks of one paper until every page is in.
type progress struct {
	paper   Paper
	pending int
	rows    []classify.CoverageStats
	skipped []page.ID
	failed  []page.ID
	reasons []string
	err     string

	authors biorxiv.Authors
	posted  string
}

func newProgress(paper Paper, pages int) *progress {
	return &progress{paper: paper, pending: pages}
}

// add records a returned task and reports whether the paper is complete.
func (p *progress) add(t task.Task) bool {
	switch t.Status {
	case task.Done:
		p.rows = append(p.rows, t.Results...)
	case task.Skipped:
		p.skipped = append(p.skipped, t.Page)
	default:
		p.failed = append(p.failed, t.Page)
		p.reasons = append(p.reasons, t.Page.String()+": "+t.Error)
	}
	p.pending--
	return p.pending <= 0
}

// verdict decides the paper from its rows in page order.
func (p *progress) verdict(policy classify.Policy) classify.Verdict {
	sort.SliceStable(p.rows, func(i, j int) bool {
		return p.rows[i].Page.Number < p.rows[j].Page.Number
	})
	v := classify.Decide(p.rows, policy)
	byNumber := func(ids []page.ID) []page.ID {
		sort.Slice(ids, func(i, j int) bool { return ids[i].Number < ids[j].Number })
		return ids
	}
	v.Skipped = byNumber(p.skipped)
	v.Failed = byNumber(p.failed)
	return v
}

// summary is written next to the coverage table of every paper.
type summary struct {
	Paper         string                   `json:"paper"`
	Posted        string                   `json:"posted,omitempty"`
	Authors       []string                 `json:"authors,omitempty"`
	Corresponding []string                 `json:"corresponding,omitempty"`
	Flagged       []int                    `json:"flagged"`
	Matches       []classify.CoverageStats `json:"matches"`
	Skipped       []string                 `json:"skipped,omitempty"`
	Failed        []string                 `json:"failed,omitempty"`
	Error         string                   `json:"error,omitempty"`
}

func (p *progress) summary(v classify.Verdict) summary {
	s := summary{
		Paper:         p.paper.ID,
		Posted:        p.posted,
		Authors:       p.authors.All,
		Corresponding: p.authors.Corresponding,
		Flagged:       v.FlaggedPages(),
		Matches:       v.CoverageTable(),
		Failed:        p.reasons,
		Error:         p.err,
	}
	if s.Flagged == nil {
		s.Flagged = []int{}
	}
	for _, id := range v.Skipped {
		s.Skipped = append(s.Skipped, id.String())
	}
	return s
}
