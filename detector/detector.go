/*
Package detector runs the whole classification of a paper: every page is
opened, its colours counted and scored against the reference colormaps, and
the rows of all pages are reduced to a verdict.

Pages are processed by a fixed number of goroutines. Each page writes only
its own result slot, so a page that fails to load leaves the others intact.
*/
package detector

import (
	"context"
	"os"
	"sync"
	"time"

	"DistributedRainbow/classify"
	"DistributedRainbow/colormap"
	"DistributedRainbow/histogram"
	"DistributedRainbow/iiif"
	"DistributedRainbow/page"
	"DistributedRainbow/raster"
	"DistributedRainbow/reference"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

type Detector struct {
	classifier *classify.Classifier
	logger     bslogger.Logger
	policy     classify.Policy
	settings   Settings
}

// New builds the reference colormaps and returns a ready detector.
func New(settings Settings) (*Detector, error) {
	if err := settings.Verify(); err != nil {
		return nil, errors.Wrap(err, "detector settings")
	}
	set, err := reference.Build(colormap.Catalog(), settings.Reference())
	if err != nil {
		return nil, err
	}
	return NewWithSet(set, settings)
}

// NewWithSet reuses an existing reference set. The set's resolution wins
// over the one in settings.
func NewWithSet(set *reference.Set, settings Settings) (*Detector, error) {
	if err := settings.Verify(); err != nil {
		return nil, errors.Wrap(err, "detector settings")
	}
	classifier, err := classify.NewClassifier(set, settings.classifier())
	if err != nil {
		return nil, err
	}
	settings.Resolution = set.Resolution
	return &Detector{
		classifier: classifier,
		logger:     bslogger.NewLogger("Detector", bslogger.Normal, nil),
		policy:     settings.Policy(),
		settings:   settings,
	}, nil
}

func (d *Detector) Settings() Settings { return d.settings }

func (d *Detector) Policy() classify.Policy { return d.policy }

// Page scores a single page. Images in an unsupported layout fail with an
// error matching histogram.ErrFormat.
func (d *Detector) Page(ctx context.Context, src Source) ([]classify.CoverageStats, error) {
	img, err := src.Open(ctx)
	if err != nil {
		return nil, errors.Wrapf(err, "loading page %s", src.Page())
	}
	img = raster.Shrink(img, d.settings.MaxSide)

	h, err := histogram.FromImage(img, src.Page())
	if err != nil {
		return nil, errors.Wrapf(err, "page %s", src.Page())
	}
	return d.classifier.Page(classify.NewColorSet(h)), nil
}

type slot struct {
	rows []classify.CoverageStats
	err  error
}

// Classify scores every source and decides the paper's verdict. Pages in an
// unsupported image layout are listed in Verdict.Skipped and pages that do
// not decode in Verdict.Failed. Any other failure, such as a page that could
// not be fetched, is returned after the remaining pages finish.
func (d *Detector) Classify(ctx context.Context, sources []Source) (classify.Verdict, error) {
	var startTime = time.Now()
	slots := make([]slot, len(sources))

	jobs := make(chan int)
	wg := &sync.WaitGroup{}
	for w := 0; w < d.settings.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				slots[i].rows, slots[i].err = d.Page(ctx, sources[i])
			}
		}()
	}

feed:
	for i := range sources {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return classify.Verdict{}, errors.Wrap(err, "classification interrupted")
	}

	rows, skipped, failed, err := d.collect(sources, slots)
	if err != nil {
		return classify.Verdict{}, err
	}
	verdict := d.Decide(rows)
	verdict.Skipped = skipped
	verdict.Failed = failed

	d.logger.Debugf("Classified %d pages in %s, flagged %v", len(sources), time.Since(startTime), verdict.Flagged)
	return verdict, nil
}

func (d *Detector) collect(sources []Source, slots []slot) (rows []classify.CoverageStats, skipped, failed []page.ID, err error) {
	var undecodable *page.DecodeError
	for i, s := range slots {
		switch {
		case errors.Is(s.err, histogram.ErrFormat):
			d.logger.Warningf("Skipping page %s: %s", sources[i].Page(), s.err)
			skipped = append(skipped, sources[i].Page())
		case errors.As(s.err, &undecodable):
			d.logger.Errorf("Page %s does not decode: %s", sources[i].Page(), s.err)
			failed = append(failed, sources[i].Page())
		case s.err != nil:
			d.logger.Errorf("Page %s failed: %s", sources[i].Page(), s.err)
			if err == nil {
				err = s.err
			}
		default:
			rows = append(rows, s.rows...)
		}
	}
	return rows, skipped, failed, err
}

// Decide applies the detector's policy to rows gathered elsewhere, such as
// rows returned by workers.
func (d *Detector) Decide(rows []classify.CoverageStats) classify.Verdict {
	return classify.Decide(rows, d.policy)
}

// ClassifyPDF renders a PDF with r into a scratch directory and classifies
// every page.
func (d *Detector) ClassifyPDF(ctx context.Context, r *raster.Rasterizer, pdf string) (classify.Verdict, error) {
	dir, err := os.MkdirTemp("", "rainbow-")
	if err != nil {
		return classify.Verdict{}, errors.Wrap(err, "creating scratch directory")
	}
	defer os.RemoveAll(dir)

	pages, err := r.Rasterize(ctx, pdf, 0, 0, dir)
	if err != nil {
		return classify.Verdict{}, err
	}
	return d.Classify(ctx, FileSources(pages))
}

// ClassifyRemote discovers the page count of a paper on a IIIF server and
// classifies every page.
func (d *Detector) ClassifyRemote(ctx context.Context, client *iiif.Client, paperID string) (classify.Verdict, error) {
	n, err := client.CountPages(ctx, paperID)
	if err != nil {
		return classify.Verdict{}, err
	}
	return d.Classify(ctx, RemoteSources(client, paperID, n))
}
