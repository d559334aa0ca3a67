package main

import (
	"bytes"
	"strings"
	"testing"

	"DistributedRainbow/classify"
	"DistributedRainbow/page"

	"github.com/google/go-cmp/cmp"
)

func testVerdict() classify.Verdict {
	rows := []classify.CoverageStats{
		{Page: page.New("p", 1), Colormap: "jet", ColormapCoverage: 0.9, PageCoverage: 0.2},
		{Page: page.New("p", 4), Colormap: "hsv", ColormapCoverage: 0.7, PageCoverage: 0.1},
		{Page: page.New("p", 2), Colormap: "viridis", ColormapCoverage: 0.3, PageCoverage: 0.05},
	}
	v := classify.Decide(rows, classify.DefaultPolicy())
	v.Skipped = []page.ID{page.New("p", 3)}
	v.Failed = []page.ID{page.New("p", 5)}
	return v
}

func TestPipedVerdictKeepsOutcome(t *testing.T) {
	var out, status bytes.Buffer
	if err := writeVerdict(&out, &status, false, testVerdict()); err != nil {
		t.Fatal(err)
	}

	rows, err := classify.ReadCSV(&out)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2 {
		t.Errorf("csv has %d rows, want 2", len(rows))
	}

	want := "Rainbow colormaps on pages [1 4]\nSkipped pages [p-3]\nUndecodable pages [p-5]\n"
	if diff := cmp.Diff(want, status.String()); diff != "" {
		t.Errorf("status (-want +got):\n%s", diff)
	}
}

func TestTableVerdict(t *testing.T) {
	var out, status bytes.Buffer
	if err := writeVerdict(&out, &status, true, testVerdict()); err != nil {
		t.Fatal(err)
	}
	if status.Len() != 0 {
		t.Errorf("status written for a terminal: %q", status.String())
	}
	text := out.String()
	for _, want := range []string{"COLORMAP COVERAGE", "p-1", "Rainbow colormaps on pages [1 4]", "Undecodable pages [p-5]"} {
		if !strings.Contains(text, want) {
			t.Errorf("table lacks %q:\n%s", want, text)
		}
	}

	out.Reset()
	if err := writeVerdict(&out, &status, true, classify.Verdict{}); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No rainbow colormaps found") {
		t.Errorf("clean paper output:\n%s", out.String())
	}
}

func TestOverrideFlags(t *testing.T) {
	var s localSettings
	if err := s.override(0.8, " hsv,jet ,"); err != nil {
		t.Fatal(err)
	}
	if s.Detector.CoverageThreshold != 0.8 {
		t.Errorf("threshold = %g", s.Detector.CoverageThreshold)
	}
	if diff := cmp.Diff([]string{"hsv", "jet"}, s.Detector.Exclude); diff != "" {
		t.Errorf("exclude (-want +got):\n%s", diff)
	}
	if err := s.Detector.Verify(); err != nil {
		t.Fatal(err)
	}

	untouched := localSettings{}
	if err := untouched.override(0, ""); err != nil {
		t.Fatal(err)
	}
	if untouched.Detector.Exclude != nil || untouched.Detector.CoverageThreshold != 0 {
		t.Errorf("unset flags changed settings: %+v", untouched.Detector)
	}

	if err := (&localSettings{}).override(0, "jet,rainbw"); err == nil {
		t.Error("misspelled colormap accepted")
	}
}
