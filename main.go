package main

import (
	"context"
	"os"
	"os/signal"
	"sort"

	"DistributedRainbow/classify"
	"DistributedRainbow/coordinator"
	"DistributedRainbow/detector"
	"DistributedRainbow/iiif"
	"DistributedRainbow/misc"
	"DistributedRainbow/raster"
	"DistributedRainbow/worker"

	"github.com/BrugadaSyndrome/bslogger"
)

func main() {
	logger := bslogger.NewLogger("Main", bslogger.Normal, nil)
	parseArguments(logger)

	switch {
	case isCoordinator:
		startCoordinator(logger)
	case isWorker:
		startWorker()
	default:
		classifyLocally(logger)
	}
}

func startCoordinator(logger bslogger.Logger) {
	c := coordinator.NewCoordinator(settingsFile)
	verdicts := c.Wait()

	papers := make([]string, 0, len(verdicts))
	for id := range verdicts {
		papers = append(papers, id)
	}
	sort.Strings(papers)
	for _, id := range papers {
		logger.Infof("Paper %s flagged pages %v", id, verdicts[id].FlaggedPages())
	}
	logger.Info("Shutting down")
}

func startWorker() {
	w := worker.NewWorker(settingsFile)
	w.Wait()
}

// classifyLocally renders a PDF, or fetches a bioRxiv paper by ID when no
// such file exists, and classifies it in this process.
func classifyLocally(logger bslogger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := loadLocalSettings(logger)
	d, err := detector.New(s.Detector)
	misc.CheckError(err, logger, misc.Fatal)

	var v classify.Verdict
	if _, statErr := os.Stat(classifyTarget); statErr == nil {
		r, err := raster.NewRasterizer(s.Rasterizer)
		misc.CheckError(err, logger, misc.Fatal)
		if n, err := raster.CountPages(classifyTarget); err == nil {
			logger.Infof("Classifying %d pages of %s", n, classifyTarget)
		}
		if debug {
			v, err = classifyPDFWithHistograms(ctx, d, r)
		} else {
			v, err = d.ClassifyPDF(ctx, r, classifyTarget)
		}
		misc.CheckError(err, logger, misc.Fatal)
	} else {
		client, err := iiif.NewClient(iiif.Settings{})
		misc.CheckError(err, logger, misc.Fatal)
		logger.Infof("Classifying bioRxiv paper %s", classifyTarget)
		if debug {
			v, err = classifyRemoteWithHistograms(ctx, d, client)
		} else {
			v, err = d.ClassifyRemote(ctx, client, classifyTarget)
		}
		misc.CheckError(err, logger, misc.Fatal)
	}

	misc.CheckError(printVerdict(os.Stdout, v), logger, misc.Error)
}

func classifyPDFWithHistograms(ctx context.Context, d *detector.Detector, r *raster.Rasterizer) (classify.Verdict, error) {
	dir, err := os.MkdirTemp("", "rainbow-")
	if err != nil {
		return classify.Verdict{}, err
	}
	defer os.RemoveAll(dir)

	pages, err := r.Rasterize(ctx, classifyTarget, 0, 0, dir)
	if err != nil {
		return classify.Verdict{}, err
	}
	sources := detector.FileSources(pages)
	if err := dumpHistograms(ctx, d, paperName(classifyTarget), sources); err != nil {
		return classify.Verdict{}, err
	}
	return d.Classify(ctx, sources)
}

func classifyRemoteWithHistograms(ctx context.Context, d *detector.Detector, client *iiif.Client) (classify.Verdict, error) {
	n, err := client.CountPages(ctx, classifyTarget)
	if err != nil {
		return classify.Verdict{}, err
	}
	sources := detector.RemoteSources(client, classifyTarget, n)
	if err := dumpHistograms(ctx, d, paperName(classifyTarget), sources); err != nil {
		return classify.Verdict{}, err
	}
	return d.Classify(ctx, sources)
}
