package page

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ID identifies one page of one paper. Page numbers start at 1.
type ID struct {
	PaperID string
	Number  int
}

func New(paperID string, number int) ID {
	return ID{PaperID: paperID, Number: number}
}

func (id ID) String() string {
	if id.PaperID == "" {
		return strconv.Itoa(id.Number)
	}
	return fmt.Sprintf("%s-%d", id.PaperID, id.Number)
}

// ParseLabel recovers an ID from a composite label such as "172627_short-03"
// (pdftoppm output) or "515643v1-12" (ID.String). The paper prefix is
// everything before the last '-' or '_'; the remainder must be numeric.
func ParseLabel(label string) (ID, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return ID{}, errors.New("empty page label")
	}

	cut := strings.LastIndexAny(label, "-_")
	prefix, suffix := "", label
	if cut >= 0 {
		prefix, suffix = label[:cut], label[cut+1:]
	}

	number, err := strconv.Atoi(suffix)
	if err != nil {
		return ID{}, errors.Wrapf(err, "page label %q has no numeric suffix", label)
	}
	if number < 0 {
		return ID{}, errors.Errorf("page label %q has a negative page number", label)
	}

	return ID{PaperID: prefix, Number: number}, nil
}

// FromFilename derives an ID from a rasterized page file name, ignoring the
// directory and extension.
func FromFilename(path string) (ID, error) {
	base := filepath.Base(path)
	return ParseLabel(strings.TrimSuffix(base, filepath.Ext(base)))
}

// Numbers returns the page numbers of ids in the order given.
func Numbers(ids []ID) []int {
	numbers := make([]int, len(ids))
	for i, id := range ids {
		numbers[i] = id.Number
	}
	return numbers
}

// DecodeError is returned when the bytes of a page are not an image the
// decoders understand.
type DecodeError struct {
	Page ID
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decoding page %s: %s", e.Page, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }
