package histogram

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"DistributedRainbow/page"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"
)

func filled(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestBackgroundOnlyPageIsEmpty(t *testing.T) {
	img := filled(8, 8, color.RGBA{255, 255, 255, 255})
	for x := 0; x < 8; x++ {
		img.SetRGBA(x, 3, color.RGBA{0, 0, 0, 255})
	}
	h, err := FromImage(img, page.New("p", 1))
	if err != nil {
		t.Fatal(err)
	}
	if h.Len() != 0 || h.Total() != 0 {
		t.Errorf("expected empty histogram, got %d colors / %d pixels", h.Len(), h.Total())
	}
	if h.Page() != page.New("p", 1) {
		t.Errorf("page = %v", h.Page())
	}
}

func TestCountsAndOrder(t *testing.T) {
	img := filled(4, 2, color.RGBA{255, 255, 255, 255})
	img.SetRGBA(0, 0, color.RGBA{10, 0, 0, 255})
	img.SetRGBA(1, 0, color.RGBA{0, 0, 200, 255})
	img.SetRGBA(2, 0, color.RGBA{10, 0, 0, 255})
	img.SetRGBA(3, 1, color.RGBA{0, 5, 0, 255})

	h, err := FromImage(img, page.New("p", 2))
	if err != nil {
		t.Fatal(err)
	}
	want := []Entry{
		{R: 0, G: 0, B: 200, Count: 1},
		{R: 0, G: 5, B: 0, Count: 1},
		{R: 10, G: 0, B: 0, Count: 2},
	}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("entries (-want +got):\n%s", diff)
	}
	if h.Total() != 4 {
		t.Errorf("total = %d", h.Total())
	}
}

func TestSubImageBounds(t *testing.T) {
	img := filled(4, 4, color.RGBA{1, 2, 3, 255})
	sub := img.SubImage(image.Rect(1, 1, 3, 3))
	h, err := FromImage(sub, page.ID{})
	if err != nil {
		t.Fatal(err)
	}
	if h.Total() != 4 || h.Len() != 1 {
		t.Errorf("got %d colors / %d pixels", h.Len(), h.Total())
	}
}

func TestOtherLayouts(t *testing.T) {
	rgba64 := image.NewRGBA64(image.Rect(0, 0, 1, 1))
	rgba64.SetRGBA64(0, 0, color.RGBA64{R: 0x1234, G: 0xff00, B: 0x00ff, A: 0xffff})

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	for i := range ycc.Y {
		ycc.Y[i], ycc.Cb[i], ycc.Cr[i] = 100, 128, 128
	}

	pal := image.NewPaletted(image.Rect(0, 0, 2, 1), color.Palette{
		color.RGBA{255, 255, 255, 255}, color.RGBA{0, 128, 0, 255},
	})
	pal.Pix[1] = 1

	cases := []struct {
		name string
		img  image.Image
		want []Entry
	}{
		{"rgba64", rgba64, []Entry{{R: 0x12, G: 0xff, B: 0x00, Count: 1}}},
		{"ycbcr", ycc, []Entry{{R: 100, G: 100, B: 100, Count: 4}}},
		{"paletted", pal, []Entry{{R: 0, G: 128, B: 0, Count: 1}}},
	}
	for _, c := range cases {
		h, err := FromImage(c.img, page.ID{})
		if err != nil {
			t.Errorf("%s: %v", c.name, err)
			continue
		}
		if diff := cmp.Diff(c.want, h.Entries()); diff != "" {
			t.Errorf("%s (-want +got):\n%s", c.name, diff)
		}
	}
}

func TestRejectsAlphaAndGray(t *testing.T) {
	r := image.Rect(0, 0, 2, 2)
	translucent := image.NewPaletted(r, color.Palette{color.RGBA{0, 0, 0, 0}, color.RGBA{255, 0, 0, 255}})
	for _, img := range []image.Image{
		image.NewNRGBA(r),
		image.NewNRGBA64(r),
		image.NewGray(r),
		image.NewGray16(r),
		image.NewAlpha(r),
		image.NewCMYK(r),
		image.NewNYCbCrA(r, image.YCbCrSubsampleRatio420),
		translucent,
	} {
		if _, err := FromImage(img, page.ID{}); !errors.Is(err, ErrFormat) {
			t.Errorf("%T: expected ErrFormat, got %v", img, err)
		}
	}
}

func TestFromFileDerivesPage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "172627_short-03.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, filled(3, 3, color.RGBA{0, 0, 143, 255})); err != nil {
		t.Fatal(err)
	}
	f.Close()

	h, err := FromFile(path, page.ID{})
	if err != nil {
		t.Fatal(err)
	}
	if want := page.New("172627_short", 3); h.Page() != want {
		t.Errorf("page = %v, want %v", h.Page(), want)
	}
	if h.Total() != 9 {
		t.Errorf("total = %d", h.Total())
	}

	if _, err := FromFile(filepath.Join(dir, "missing.png"), page.ID{}); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestWriteCSV(t *testing.T) {
	h := New(page.New("p", 4), []Entry{
		{R: 1, G: 2, B: 3, Count: 5},
		{R: 255, G: 255, B: 255, Count: 100},
		{R: 1, G: 2, B: 3, Count: 1},
	})
	var buf bytes.Buffer
	if err := WriteCSV(&buf, h); err != nil {
		t.Fatal(err)
	}
	want := "R,G,B,count,page\n1,2,3,6,p-4\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("csv (-want +got):\n%s", diff)
	}
}
