package colormap

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
)

func TestCatalogComplete(t *testing.T) {
	entries := Catalog()
	if len(entries) != 79 {
		t.Errorf("catalog has %d entries, want 79", len(entries))
	}

	seen := make(map[string]bool)
	for _, e := range entries {
		if seen[e.Name] {
			t.Errorf("duplicate colormap %s", e.Name)
		}
		seen[e.Name] = true

		if err := e.Validate(); err != nil {
			t.Errorf("%s: %v", e, err)
			continue
		}
		samples := e.Map.Sample(64)
		if len(samples) != 64 {
			t.Errorf("%s: got %d samples, want 64", e.Name, len(samples))
		}
		for i, s := range samples {
			if math.IsNaN(s.R) || math.IsNaN(s.G) || math.IsNaN(s.B) || !s.IsValid() {
				t.Errorf("%s: sample %d is out of gamut: %v", e.Name, i, s)
				break
			}
		}
	}

	for _, name := range append(append([]string{}, RainbowNames...), DefaultExclusions...) {
		if !seen[name] {
			t.Errorf("%s is not in the catalog", name)
		}
	}
}

func TestJetEndpoints(t *testing.T) {
	e, err := Lookup("jet")
	if err != nil {
		t.Fatal(err)
	}
	samples := e.Map.Sample(3)
	want := []colorful.Color{
		{R: 0, G: 0, B: 0.5},
		{R: 0.15 / 0.31, G: 1, B: 1 - 0.16/0.31},
		{R: 0.5, G: 0, B: 0},
	}
	approx := cmp.Comparer(func(a, b float64) bool { return math.Abs(a-b) < 1e-9 })
	if d := cmp.Diff(want, samples, approx); d != "" {
		t.Errorf("jet samples mismatch (-want +got):\n%s", d)
	}
}

func TestSegmentedDiscontinuity(t *testing.T) {
	s := Segmented{
		Red:   seg([3]float64{0, 0, 0}, [3]float64{0.5, 0.2, 0.8}, [3]float64{1, 1, 1}),
		Green: linear(0, 0),
		Blue:  linear(0, 0),
	}
	if got := s.Red.at(0.25); math.Abs(got-0.1) > 1e-12 {
		t.Errorf("left of jump = %f, want 0.1", got)
	}
	if got := s.Red.at(0.5); math.Abs(got-0.8) > 1e-12 {
		t.Errorf("at jump = %f, want 0.8", got)
	}
	if got := s.Red.at(0.75); math.Abs(got-0.9) > 1e-12 {
		t.Errorf("right of jump = %f, want 0.9", got)
	}
}

func TestListedDoesNotInterpolate(t *testing.T) {
	l := HexList("#ff0000", "#0000ff")
	got := Quantize(l.Sample(5))
	// positions 0 and 0.25 select the first entry, 0.5 and beyond the second
	want := []struct{ r, g, b uint8 }{
		{255, 0, 0}, {255, 0, 0}, {0, 0, 255}, {0, 0, 255}, {0, 0, 255},
	}
	for i, w := range want {
		if got[i].R != w.r || got[i].G != w.g || got[i].B != w.b {
			t.Errorf("sample %d = %v, want %v", i, got[i], w)
		}
	}
}

func TestPerceptuallyUniformTables(t *testing.T) {
	tests := []struct {
		name             string
		first, mid, last string
	}{
		{"viridis", "#440154", "#21918c", "#fde725"},
		{"plasma", "#0d0887", "#cc4778", "#f0f921"},
		{"inferno", "#000004", "#bc3754", "#fcffa4"},
		{"magma", "#000004", "#b73779", "#fcfdbf"},
	}
	for _, test := range tests {
		e, err := Lookup(test.name)
		if err != nil {
			t.Fatal(err)
		}
		l, ok := e.Map.(Listed)
		if !ok || len(l) != 256 {
			t.Fatalf("%s is not a 256 entry table", test.name)
		}
		var got []string
		for _, c := range e.Map.Sample(3) {
			got = append(got, c.Hex())
		}
		if diff := cmp.Diff([]string{test.first, test.mid, test.last}, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", test.name, diff)
		}
	}
}

func TestReversed(t *testing.T) {
	gray := grayMap().Sample(5)
	rev := Reversed{Colormap: grayMap()}.Sample(5)
	for i := range gray {
		if gray[i] != rev[len(rev)-1-i] {
			t.Errorf("reversed sample %d = %v, want %v", i, rev[len(rev)-1-i], gray[i])
		}
	}
}

func TestExclude(t *testing.T) {
	kept, err := Exclude(Catalog(), DefaultExclusions)
	if err != nil {
		t.Fatal(err)
	}
	if len(kept) != len(Catalog())-len(DefaultExclusions) {
		t.Errorf("kept %d entries", len(kept))
	}
	for _, e := range kept {
		for _, name := range DefaultExclusions {
			if e.Name == name {
				t.Errorf("%s was not excluded", name)
			}
		}
	}

	_, err = Exclude(Catalog(), []string{"jet", "jett"})
	var unknown *UnknownColormapError
	if !errors.As(err, &unknown) || unknown.Name != "jett" {
		t.Errorf("Exclude with a typo: err = %v, want UnknownColormapError for jett", err)
	}
}

func TestParseNames(t *testing.T) {
	names, err := ParseNames(" gray, Greys ,,binary")
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"Greys", "binary", "gray"}, names); d != "" {
		t.Errorf("ParseNames mismatch (-want +got):\n%s", d)
	}
	if _, err := ParseNames("viridis,nope"); err == nil {
		t.Error("ParseNames accepted an unknown name")
	}
}

func TestCubehelixStartsBlackEndsWhite(t *testing.T) {
	s := Cubehelix(1.0, 0.5, -1.5, 1.0).Sample(2)
	if s[0] != (colorful.Color{}) {
		t.Errorf("cubehelix(0) = %v, want black", s[0])
	}
	if math.Abs(s[1].R-1) > 1e-9 || math.Abs(s[1].G-1) > 1e-9 || math.Abs(s[1].B-1) > 1e-9 {
		t.Errorf("cubehelix(1) = %v, want white", s[1])
	}
}
