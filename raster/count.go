package raster

import (
	"github.com/pkg/errors"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/pagetree"
)

// CountPages reads the number of pages from the document's page tree.
func CountPages(path string) (int, error) {
	r, err := pdf.Open(path, nil)
	if err != nil {
		return 0, errors.Wrapf(err, "opening %s", path)
	}
	defer r.Close()

	n, err := pagetree.NumPages(r)
	if err != nil {
		return 0, errors.Wrapf(err, "counting pages of %s", path)
	}
	return n, nil
}
