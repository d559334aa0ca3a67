package histogram

import (
	"encoding/csv"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"DistributedRainbow/page"

	"github.com/pkg/errors"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// FromFile decodes an image file and counts its colors. A zero id is derived
// from the file name; names without a page number use the base name as the
// paper identifier.
func FromFile(path string, id page.ID) (Histogram, error) {
	f, err := os.Open(path)
	if err != nil {
		return Histogram{}, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return Histogram{}, errors.Wrapf(err, "decoding %s", path)
	}

	if id == (page.ID{}) {
		id, err = page.FromFilename(path)
		if err != nil {
			base := filepath.Base(path)
			id = page.ID{PaperID: strings.TrimSuffix(base, filepath.Ext(base))}
		}
	}

	h, err := FromImage(img, id)
	if err != nil {
		return Histogram{}, errors.Wrapf(err, "counting colors of %s", path)
	}
	return h, nil
}

// WriteCSV dumps the colors of every histogram, one row per entry.
func WriteCSV(w io.Writer, hs ...Histogram) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"R", "G", "B", "count", "page"}); err != nil {
		return errors.Wrap(err, "writing header")
	}
	for _, h := range hs {
		label := h.Page().String()
		for _, e := range h.entries {
			row := []string{
				strconv.Itoa(int(e.R)),
				strconv.Itoa(int(e.G)),
				strconv.Itoa(int(e.B)),
				strconv.Itoa(e.Count),
				label,
			}
			if err := cw.Write(row); err != nil {
				return errors.Wrapf(err, "writing page %s", label)
			}
		}
	}
	cw.Flush()
	return errors.Wrap(cw.Error(), "flushing color dump")
}
