package coordinator

import (
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"DistributedRainbow/classify"
	"DistributedRainbow/colormap"
	"DistributedRainbow/page"
	"DistributedRainbow/reference"
	"DistributedRainbow/task"
	"DistributedRainbow/worker"

	"github.com/google/go-cmp/cmp"
)

// figurePage is a white page with text lines and, unless figure is empty,
// a strip painted with every sample of that colormap.
func figurePage(t *testing.T, figure string) *image.RGBA {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 100, 300))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	for y := 8; y < 300; y += 10 {
		for x := 4; x < 96; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}
	if figure == "" {
		return img
	}
	e, err := colormap.Lookup(figure)
	if err != nil {
		t.Fatal(err)
	}
	for y, c := range colormap.Quantize(e.Map.Sample(reference.DefaultResolution)) {
		for x := 30; x < 70; x++ {
			img.SetRGBA(x, 20+y, c)
		}
	}
	return img
}

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func writeJSON(t *testing.T, path string, v interface{}) {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}

const articlePage = `<html><head>
<meta name="DC.Date" content="2020-03-02">
<meta name="citation_author_email" content="a@example.org">
</head><body></body></html>`

// iiifServer serves paper remote1: page 1 carries an hsv figure, page 2 is
// text only. Its article page lives under /content. Every other paper is
// unknown.
func iiifServer(t *testing.T) *httptest.Server {
	t.Helper()
	pages := map[int]image.Image{1: figurePage(t, "hsv"), 2: figurePage(t, "")}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/content/remote1" {
			w.Write([]byte(articlePage))
			return
		}
		if !strings.Contains(r.URL.Path, "biorxiv:remote1.pdf") {
			http.NotFound(w, r)
			return
		}
		n, _ := strconv.Atoi(r.URL.Query().Get("page"))
		img, ok := pages[n]
		if !ok {
			http.Error(w, "Index "+strconv.Itoa(n-1)+" out of bounds for length 2", http.StatusInternalServerError)
			return
		}
		png.Encode(w, img)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	pagesDir := filepath.Join(dir, "paperA")
	if err := os.Mkdir(pagesDir, 0o755); err != nil {
		t.Fatal(err)
	}
	writePNG(t, filepath.Join(pagesDir, "paperA-1.png"), figurePage(t, ""))
	writePNG(t, filepath.Join(pagesDir, "paperA-2.png"), figurePage(t, "jet"))
	if err := os.WriteFile(filepath.Join(pagesDir, "notes.txt"), []byte("not a page"), 0o644); err != nil {
		t.Fatal(err)
	}

	srv := iiifServer(t)
	coordinatorFile := filepath.Join(dir, "coordinator.json")
	writeJSON(t, coordinatorFile, map[string]interface{}{
		"RunName":       "run",
		"SavePath":      dir,
		"ServerAddress": "127.0.0.1:0",
		"Detector":      map[string]interface{}{"Workers": 1},
		"IIIF":          map[string]interface{}{"BaseURL": srv.URL},
		"Biorxiv":       map[string]interface{}{"BaseURL": srv.URL + "/content"},
		"Papers": []map[string]string{
			{"Pages": pagesDir},
			{"ID": "remote1"},
			{"ID": "gone"},
		},
	})
	c := NewCoordinator(coordinatorFile)

	workerFile := filepath.Join(dir, "worker.json")
	writeJSON(t, workerFile, map[string]string{
		"CoordinatorAddress": c.Server.Address(),
		"ServerAddress":      "127.0.0.1:0",
	})
	w := worker.NewWorker(workerFile)

	verdicts := c.Wait()
	w.Wait()

	flagged := make(map[string][]int)
	for id, v := range verdicts {
		flagged[id] = v.FlaggedPages()
	}
	want := map[string][]int{"paperA": {2}, "remote1": {1}, "gone": nil}
	if diff := cmp.Diff(want, flagged); diff != "" {
		t.Errorf("flagged (-want +got):\n%s", diff)
	}

	run := filepath.Join(dir, "run")
	f, err := os.Open(filepath.Join(run, "paperA.csv"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := classify.ReadCSV(f)
	if err != nil {
		t.Fatal(err)
	}
	set, err := reference.NewLoader(reference.DefaultSettings()).Get()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 2*set.Len() {
		t.Errorf("coverage table has %d rows, want %d", len(rows), 2*set.Len())
	}
	if rows[0].Page != page.New("paperA", 1) {
		t.Errorf("first row is %s", rows[0].Page)
	}

	var gone summary
	data, err := os.ReadFile(filepath.Join(run, "gone.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &gone); err != nil {
		t.Fatal(err)
	}
	if gone.Error == "" || len(gone.Flagged) != 0 {
		t.Errorf("unreachable paper summary: %+v", gone)
	}

	var remote summary
	data, err = os.ReadFile(filepath.Join(run, "remote1.json"))
	if err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal(data, &remote); err != nil {
		t.Fatal(err)
	}
	if remote.Posted != "2020-03-02" || len(remote.Matches) == 0 {
		t.Errorf("remote paper summary: %+v", remote)
	}
	if diff := cmp.Diff([]string{"a@example.org"}, remote.Authors); diff != "" {
		t.Errorf("authors (-want +got):\n%s", diff)
	}

	for _, name := range []string{"coordinator.json", "coordinator.log", "remote1.csv"} {
		if _, err := os.Stat(filepath.Join(run, name)); err != nil {
			t.Error(err)
		}
	}
}

func TestPageFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"x-10.png", "x-2.png", "cover.jpg", "readme.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	pages, err := pageFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	var numbers []int
	for _, p := range pages {
		names = append(names, filepath.Base(p.Path))
		numbers = append(numbers, p.ID.Number)
	}
	if diff := cmp.Diff([]string{"cover.jpg", "x-2.png", "x-10.png"}, names); diff != "" {
		t.Errorf("pages (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 10}, numbers); diff != "" {
		t.Errorf("numbers (-want +got):\n%s", diff)
	}

	if _, err := pageFiles(filepath.Join(dir, "missing")); err == nil {
		t.Error("expected an error for a missing directory")
	}
}

func TestProgress(t *testing.T) {
	p := newProgress(Paper{ID: "p"}, 3)

	done := task.NewTask(0, page.New("p", 2))
	done.Complete([]classify.CoverageStats{
		{Page: page.New("p", 2), Colormap: "jet", ColormapCoverage: 0.9, PageCoverage: 0.1},
		{Page: page.New("p", 2), Colormap: "viridis", ColormapCoverage: 0.2, PageCoverage: 0.01},
	})
	skipped := task.NewTask(1, page.New("p", 3))
	skipped.Skip(os.ErrInvalid)
	failed := task.NewTask(2, page.New("p", 1))
	failed.Fail(os.ErrNotExist)

	if p.add(done) || p.add(skipped) {
		t.Fatal("paper complete too early")
	}
	if !p.add(failed) {
		t.Fatal("paper not complete after every page")
	}

	v := p.verdict(classify.DefaultPolicy())
	if diff := cmp.Diff([]page.ID{page.New("p", 1)}, v.Failed); diff != "" {
		t.Errorf("verdict failed (-want +got):\n%s", diff)
	}
	s := p.summary(v)
	if diff := cmp.Diff([]int{2}, s.Flagged); diff != "" {
		t.Errorf("flagged (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"p-3"}, s.Skipped); diff != "" {
		t.Errorf("skipped (-want +got):\n%s", diff)
	}
	if len(s.Failed) != 1 || !strings.HasPrefix(s.Failed[0], "p-1: ") {
		t.Errorf("failed = %v", s.Failed)
	}
	if len(s.Matches) != 1 || s.Matches[0].Colormap != "jet" {
		t.Errorf("matches = %v", s.Matches)
	}
}

func TestSettingsVerify(t *testing.T) {
	s := settings{Papers: []Paper{{PDF: "/tmp/172627_short.pdf"}, {Pages: "/data/pages/515643v1/"}, {ID: "x"}}}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, p := range s.Papers {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"172627_short", "515643v1", "x"}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	bad := []settings{
		{},
		{Papers: []Paper{{ID: "a"}, {ID: "a"}}},
		{Papers: []Paper{{PDF: "a.pdf", Pages: "a"}}},
		{Papers: []Paper{{ID: "a"}}, Transport: "udp"},
	}
	for i := range bad {
		if err := bad[i].Verify(); err == nil {
			t.Errorf("%+v accepted", bad[i].Papers)
		}
	}
}
