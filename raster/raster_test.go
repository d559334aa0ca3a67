package raster

import (
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"DistributedRainbow/page"

	"github.com/google/go-cmp/cmp"
)

func TestArgs(t *testing.T) {
	r, err := NewRasterizer(Settings{Format: JPEG, DPI: 72, ScaleTo: 1000, JPEGQuality: 80})
	if err != nil {
		t.Fatal(err)
	}
	got := r.args("paper.pdf", 2, 5, "/tmp/out/paper")
	want := []string{
		"-jpeg", "-jpegopt", "quality=80", "-r", "72", "-scale-to", "1000",
		"-f", "2", "-l", "5", "paper.pdf", "/tmp/out/paper",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("args (-want +got):\n%s", diff)
	}

	r, _ = NewRasterizer(Settings{})
	if diff := cmp.Diff([]string{"-png", "a.pdf", "out/a"}, r.args("a.pdf", 0, 0, "out/a")); diff != "" {
		t.Errorf("default args (-want +got):\n%s", diff)
	}
}

func TestSettingsVerify(t *testing.T) {
	s := Settings{}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	if s.Command != "pdftoppm" || s.Format != PNG {
		t.Errorf("defaults not filled: %v", s.String())
	}
	for _, bad := range []Settings{{Format: "gif"}, {DPI: -1}, {JPEGQuality: 101}} {
		if err := bad.Verify(); err == nil {
			t.Errorf("%v accepted", bad.String())
		}
	}
}

func TestCollect(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"doc-10.png", "doc-02.png", "doc-1.png", "doc-x.png", "other-3.png", "doc-4.jpg"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	pages, err := collect(dir, "doc", PNG)
	if err != nil {
		t.Fatal(err)
	}
	want := []Page{
		{ID: page.New("doc", 1), Path: filepath.Join(dir, "doc-1.png")},
		{ID: page.New("doc", 2), Path: filepath.Join(dir, "doc-02.png")},
		{ID: page.New("doc", 10), Path: filepath.Join(dir, "doc-10.png")},
	}
	if diff := cmp.Diff(want, pages); diff != "" {
		t.Errorf("pages (-want +got):\n%s", diff)
	}
}

func TestRasterizeWithStub(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("needs a POSIX shell")
	}
	dir := t.TempDir()
	stub := filepath.Join(dir, "fake-pdftoppm")
	script := "#!/bin/sh\nfor last; do :; done\ntouch \"$last-1.png\" \"$last-2.png\"\n"
	if err := os.WriteFile(stub, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "out")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatal(err)
	}
	r, err := NewRasterizer(Settings{Command: stub})
	if err != nil {
		t.Fatal(err)
	}
	pages, err := r.Rasterize(context.Background(), "/papers/515643v1.pdf", 0, 0, out)
	if err != nil {
		t.Fatal(err)
	}
	var ids []page.ID
	for _, p := range pages {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]page.ID{page.New("515643v1", 1), page.New("515643v1", 2)}, ids); diff != "" {
		t.Errorf("ids (-want +got):\n%s", diff)
	}

	if _, err := r.Rasterize(context.Background(), "x.pdf", 5, 2, out); err == nil {
		t.Error("reversed range accepted")
	}
}

func TestRasterizeFailure(t *testing.T) {
	r, _ := NewRasterizer(Settings{Command: filepath.Join(t.TempDir(), "missing")})
	if _, err := r.Rasterize(context.Background(), "x.pdf", 0, 0, t.TempDir()); err == nil {
		t.Error("expected an error from a missing tool")
	}
}

func TestShrinkKeepsColours(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 40, 20))
	palette := map[color.RGBA]bool{
		{255, 0, 0, 255}: true,
		{0, 0, 255, 255}: true,
	}
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			c := color.RGBA{255, 0, 0, 255}
			if (x/3+y/3)%2 == 1 {
				c = color.RGBA{0, 0, 255, 255}
			}
			src.SetRGBA(x, y, c)
		}
	}

	dst := Shrink(src, 10)
	if got := dst.Bounds().Size(); got != image.Pt(10, 5) {
		t.Fatalf("size = %v", got)
	}
	rgba := dst.(*image.RGBA)
	for y := 0; y < 5; y++ {
		for x := 0; x < 10; x++ {
			if c := rgba.RGBAAt(x, y); !palette[c] {
				t.Fatalf("new colour %v at %d,%d", c, x, y)
			}
		}
	}

	if Shrink(src, 0) != image.Image(src) || Shrink(src, 100) != image.Image(src) {
		t.Error("image within bounds was scaled")
	}
	gray := image.NewGray(image.Rect(0, 0, 50, 50))
	if Shrink(gray, 10) != image.Image(gray) {
		t.Error("gray image was converted")
	}
}

func TestCountPagesMissingFile(t *testing.T) {
	if _, err := CountPages(filepath.Join(t.TempDir(), "none.pdf")); err == nil {
		t.Error("expected an error")
	}
}
