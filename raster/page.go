package raster

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"DistributedRainbow/page"

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// Page is one rendered page on disk.
type Page struct {
	ID   page.ID
	Path string
}

// Open decodes the page. When maxSide is positive and the page is larger,
// it is shrunk with nearest-neighbour sampling so that no colour is
// produced that the page did not already contain.
func (p Page) Open(maxSide int) (image.Image, error) {
	f, err := os.Open(p.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening page %s", p.ID)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, &page.DecodeError{Page: p.ID, Err: err}
	}
	return Shrink(img, maxSide), nil
}

// Shrink scales img down so its longer side is at most maxSide pixels.
// Layouts the histogram rejects are returned untouched so they still fail
// there.
func Shrink(img image.Image, maxSide int) image.Image {
	switch img.(type) {
	case *image.RGBA, *image.RGBA64, *image.YCbCr, *image.Paletted:
	default:
		return img
	}

	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return img
	}

	if w >= h {
		h = max(1, h*maxSide/w)
		w = maxSide
	} else {
		w = max(1, w*maxSide/h)
		h = maxSide
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}
