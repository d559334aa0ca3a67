/*
Package histogram reduces a decoded page image to the distinct colors it
contains and the number of pixels of each.

Pure white and pure black pixels are dropped while counting; they cover most
of a typical page and say nothing about which colormap drew a figure. Only
three channel images are accepted. Images carrying an alpha channel and
single channel grayscale images fail with ErrFormat.
*/
package histogram

import (
	"image"
	"image/color"
	"sort"

	"DistributedRainbow/page"

	"github.com/pkg/errors"
)

// ErrFormat is returned for image layouts that are not three channel color.
var ErrFormat = errors.New("unsupported image format")

// Entry is one distinct color and the number of pixels that have it.
type Entry struct {
	R, G, B uint8
	Count   int
}

func (e Entry) RGBA() color.RGBA {
	return color.RGBA{R: e.R, G: e.G, B: e.B, A: 0xff}
}

func (e Entry) key() uint32 {
	return uint32(e.R)<<16 | uint32(e.G)<<8 | uint32(e.B)
}

// Histogram is immutable once built. Entries are ordered by packed RGB value.
type Histogram struct {
	id      page.ID
	entries []Entry
	total   int
}

func (h Histogram) Page() page.ID { return h.id }

// Len is the number of distinct colors.
func (h Histogram) Len() int { return len(h.entries) }

// Total is the number of counted pixels.
func (h Histogram) Total() int { return h.total }

func (h Histogram) At(i int) Entry { return h.entries[i] }

// Entries returns a copy of the entries.
func (h Histogram) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// New builds a histogram from raw entries, merging duplicate colors and
// dropping background and empty entries.
func New(id page.ID, entries []Entry) Histogram {
	c := newCounter()
	for _, e := range entries {
		if e.Count > 0 {
			c.addN(e.R, e.G, e.B, e.Count)
		}
	}
	return c.histogram(id)
}

// Background reports pure white and pure black, which are never counted.
func Background(r, g, b uint8) bool {
	sum := int(r) + int(g) + int(b)
	return sum == 0 || sum == 3*0xff
}

type counter struct {
	counts map[uint32]int
	total  int
}

func newCounter() *counter {
	return &counter{counts: make(map[uint32]int)}
}

func (c *counter) add(r, g, b uint8) {
	c.addN(r, g, b, 1)
}

func (c *counter) addN(r, g, b uint8, n int) {
	if Background(r, g, b) {
		return
	}
	c.counts[uint32(r)<<16|uint32(g)<<8|uint32(b)] += n
	c.total += n
}

func (c *counter) histogram(id page.ID) Histogram {
	h := Histogram{id: id, total: c.total, entries: make([]Entry, 0, len(c.counts))}
	for k, n := range c.counts {
		h.entries = append(h.entries, Entry{R: uint8(k >> 16), G: uint8(k >> 8), B: uint8(k), Count: n})
	}
	sort.Slice(h.entries, func(i, j int) bool {
		return h.entries[i].key() < h.entries[j].key()
	})
	return h
}

// FromImage counts the colors of img. An image with nothing but white and
// black pixels gives an empty histogram.
func FromImage(img image.Image, id page.ID) (Histogram, error) {
	c := newCounter()
	b := img.Bounds()

	switch m := img.(type) {
	case *image.RGBA:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				c.add(m.Pix[i], m.Pix[i+1], m.Pix[i+2])
				i += 4
			}
		}
	case *image.RGBA64:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				p := m.RGBA64At(x, y)
				c.add(uint8(p.R>>8), uint8(p.G>>8), uint8(p.B>>8))
			}
		}
	case *image.YCbCr:
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				yi, ci := m.YOffset(x, y), m.COffset(x, y)
				r, g, bl := color.YCbCrToRGB(m.Y[yi], m.Cb[ci], m.Cr[ci])
				c.add(r, g, bl)
			}
		}
	case *image.Paletted:
		palette, err := opaquePalette(m.Palette)
		if err != nil {
			return Histogram{}, err
		}
		for y := b.Min.Y; y < b.Max.Y; y++ {
			i := m.PixOffset(b.Min.X, y)
			for x := b.Min.X; x < b.Max.X; x++ {
				p := palette[m.Pix[i]]
				c.add(p.R, p.G, p.B)
				i++
			}
		}
	default:
		return Histogram{}, errors.Wrapf(ErrFormat, "%T", img)
	}

	return c.histogram(id), nil
}

// opaquePalette expands a palette to 256 entries. Pixel values past the end
// of a short palette read as black.
func opaquePalette(p color.Palette) ([256]color.RGBA, error) {
	var out [256]color.RGBA
	for i, c := range p {
		if i >= len(out) {
			break
		}
		r, g, b, a := c.RGBA()
		if a != 0xffff {
			return out, errors.Wrapf(ErrFormat, "palette entry %d is translucent", i)
		}
		out[i] = color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: 0xff}
	}
	return out, nil
}
