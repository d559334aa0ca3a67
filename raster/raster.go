/*
Package raster turns PDF pages into images with the pdftoppm tool from
poppler. Output files are named <prefix>-<n>.<ext>, possibly with leading
zeros, so every file maps back to exactly one page number.
*/
package raster

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"DistributedRainbow/page"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
)

type Format string

func (f Format) extensions() []string {
	if f == JPEG {
		return []string{".jpg", ".jpeg"}
	}
	return []string{".png"}
}

type Settings struct {
	Command string
	Format  Format
	// DPI is passed as -r. Zero keeps the pdftoppm default of 150.
	DPI int
	// ScaleTo bounds the longer side of every page in pixels when positive.
	ScaleTo     int
	JPEGQuality int
}

func (s *Settings) String() string {
	return fmt.Sprintf("{Rasterizer Command: %s Format: %s DPI: %d ScaleTo: %d}", s.Command, s.Format, s.DPI, s.ScaleTo)
}

func (s *Settings) Verify() error {
	if s.Command == "" {
		s.Command = "pdftoppm"
	}
	switch s.Format {
	case "":
		s.Format = PNG
	case PNG, JPEG:
	default:
		return errors.Errorf("unknown raster format %q", s.Format)
	}
	if s.DPI < 0 || s.ScaleTo < 0 {
		return errors.New("DPI and ScaleTo must not be negative")
	}
	if s.JPEGQuality < 0 || s.JPEGQuality > 100 {
		return errors.Errorf("JPEG quality must be within [0, 100], got %d", s.JPEGQuality)
	}
	return nil
}

// Rasterizer runs pdftoppm.
type Rasterizer struct {
	logger   bslogger.Logger
	settings Settings
}

func NewRasterizer(settings Settings) (*Rasterizer, error) {
	if err := settings.Verify(); err != nil {
		return nil, err
	}
	return &Rasterizer{
		logger:   bslogger.NewLogger("Rasterizer", bslogger.Normal, nil),
		settings: settings,
	}, nil
}

func (r *Rasterizer) args(pdf string, first, last int, prefix string) []string {
	var args []string
	switch r.settings.Format {
	case JPEG:
		args = append(args, "-jpeg")
		if r.settings.JPEGQuality > 0 {
			args = append(args, "-jpegopt", fmt.Sprintf("quality=%d", r.settings.JPEGQuality))
		}
	default:
		args = append(args, "-png")
	}
	if r.settings.DPI > 0 {
		args = append(args, "-r", strconv.Itoa(r.settings.DPI))
	}
	if r.settings.ScaleTo > 0 {
		args = append(args, "-scale-to", strconv.Itoa(r.settings.ScaleTo))
	}
	if first > 0 {
		args = append(args, "-f", strconv.Itoa(first))
	}
	if last > 0 {
		args = append(args, "-l", strconv.Itoa(last))
	}
	return append(args, pdf, prefix)
}

// Rasterize renders pages first through last of pdf into outDir. Zero for
// first or last leaves that end of the range open. The pages come back in
// ascending order and are tagged with paper, the PDF's base name.
func (r *Rasterizer) Rasterize(ctx context.Context, pdf string, first, last int, outDir string) ([]Page, error) {
	if first > 0 && last > 0 && first > last {
		return nil, errors.Errorf("empty page range %d-%d", first, last)
	}
	paper := strings.TrimSuffix(filepath.Base(pdf), filepath.Ext(pdf))
	prefix := filepath.Join(outDir, paper)

	cmd := exec.CommandContext(ctx, r.settings.Command, r.args(pdf, first, last, prefix)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	r.logger.Debugf("Running %s", strings.Join(cmd.Args, " "))
	if err := cmd.Run(); err != nil {
		return nil, errors.Wrapf(err, "rasterizing %s: %s", pdf, strings.TrimSpace(stderr.String()))
	}

	pages, err := collect(outDir, paper, r.settings.Format)
	if err != nil {
		return nil, err
	}
	r.logger.Infof("Rasterized %d pages of %s", len(pages), pdf)
	return pages, nil
}

// collect finds the files pdftoppm wrote for paper.
func collect(dir, paper string, format Format) ([]Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}

	var pages []Page
	for _, e := range entries {
		name := e.Name()
		ext := filepath.Ext(name)
		if e.IsDir() || !hasExtension(format, ext) || !strings.HasPrefix(name, paper+"-") {
			continue
		}
		number, err := strconv.Atoi(strings.TrimSuffix(strings.TrimPrefix(name, paper+"-"), ext))
		if err != nil {
			continue
		}
		pages = append(pages, Page{ID: page.New(paper, number), Path: filepath.Join(dir, name)})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].ID.Number < pages[j].ID.Number })
	return pages, nil
}

func hasExtension(f Format, ext string) bool {
	for _, e := range f.extensions() {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
