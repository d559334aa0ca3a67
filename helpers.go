package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"DistributedRainbow/classify"
	"DistributedRainbow/colormap"
	"DistributedRainbow/detector"
	"DistributedRainbow/histogram"
	"DistributedRainbow/misc"
	"DistributedRainbow/page"
	"DistributedRainbow/raster"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

var (
	classifyTarget, exclude, settingsFile string
	debug, isCoordinator, isWorker        bool
	threshold                             float64
)

func parseArguments(logger bslogger.Logger) {
	flag.BoolVar(&isCoordinator, "isCoordinator", false, "Is this instance the coordinator")
	flag.BoolVar(&isWorker, "isWorker", false, "Is this instance a worker")
	flag.StringVar(&classifyTarget, "classify", "", "PDF file or bioRxiv paper ID to classify locally")
	flag.StringVar(&settingsFile, "settingsFile", "", "Json file with the settings of this instance")
	flag.Float64Var(&threshold, "threshold", 0, "Colormap coverage a page needs to be flagged (default 0.5)")
	flag.StringVar(&exclude, "exclude", "", "Comma separated colormaps to leave out of the reference set (default the grayscale maps)")
	flag.BoolVar(&debug, "debug", false, "Write the color histogram of every page next to the results")
	flag.Parse()

	modes := 0
	for _, set := range []bool{isCoordinator, isWorker, classifyTarget != ""} {
		if set {
			modes++
		}
	}
	if modes != 1 {
		logger.Fatal("Please specify exactly one of -isCoordinator, -isWorker or -classify")
	}
	if (isCoordinator || isWorker) && settingsFile == "" {
		logger.Fatal("Coordinators and workers need a -settingsFile")
	}
}

// localSettings holds the options of a -classify run.
type localSettings struct {
	Detector   detector.Settings
	Rasterizer raster.Settings
}

func loadLocalSettings(logger bslogger.Logger) localSettings {
	var s localSettings
	if settingsFile != "" {
		err, bytes := misc.ReadFile(settingsFile)
		misc.CheckError(err, logger, misc.Fatal)
		misc.CheckError(json.Unmarshal(bytes, &s), logger, misc.Fatal)
	}
	misc.CheckError(s.override(threshold, exclude), logger, misc.Fatal)
	misc.CheckError(s.Detector.Verify(), logger, misc.Fatal)
	misc.CheckError(s.Rasterizer.Verify(), logger, misc.Fatal)
	logger.Debug(s.Detector.String())
	return s
}

// override applies the command line flags that were given on top of the
// settings file.
func (s *localSettings) override(threshold float64, exclude string) error {
	if threshold != 0 {
		s.Detector.CoverageThreshold = threshold
	}
	if exclude != "" {
		names, err := colormap.ParseNames(exclude)
		if err != nil {
			return err
		}
		s.Detector.Exclude = append([]string{}, names...)
	}
	return nil
}

// dumpHistograms writes the color histograms of pages to <paper>_histograms.csv.
func dumpHistograms(ctx context.Context, d *detector.Detector, name string, sources []detector.Source) error {
	var hs []histogram.Histogram
	for _, src := range sources {
		img, err := src.Open(ctx)
		var undecodable *page.DecodeError
		if errors.As(err, &undecodable) {
			continue
		}
		if err != nil {
			return err
		}
		h, err := histogram.FromImage(raster.Shrink(img, d.Settings().MaxSide), src.Page())
		if err != nil {
			continue
		}
		hs = append(hs, h)
	}
	return misc.CreateFile(name+"_histograms.csv", func(w io.Writer) error {
		return histogram.WriteCSV(w, hs...)
	})
}

func paperName(target string) string {
	return strings.TrimSuffix(filepath.Base(target), filepath.Ext(target))
}

// printVerdict writes a table for people. Pipes get CSV on out and the
// verdict itself on stderr.
func printVerdict(out *os.File, v classify.Verdict) error {
	return writeVerdict(out, os.Stderr, term.IsTerminal(int(out.Fd())), v)
}

func writeVerdict(out, status io.Writer, table bool, v classify.Verdict) error {
	if !table {
		if err := classify.WriteCSV(out, v.CoverageTable()); err != nil {
			return err
		}
		return writeOutcome(status, v)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "PAGE\tCOLORMAP\tCOLORMAP COVERAGE\tPAGE COVERAGE")
	for _, r := range v.CoverageTable() {
		fmt.Fprintf(tw, "%s\t%s\t%.3f\t%.3f\n", r.Page, r.Colormap, r.ColormapCoverage, r.PageCoverage)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintln(out)
	return writeOutcome(out, v)
}

func writeOutcome(w io.Writer, v classify.Verdict) error {
	var err error
	if v.HasRainbow() {
		_, err = fmt.Fprintf(w, "Rainbow colormaps on pages %v\n", v.FlaggedPages())
	} else {
		_, err = fmt.Fprintln(w, "No rainbow colormaps found")
	}
	if err != nil {
		return err
	}
	if len(v.Skipped) > 0 {
		if _, err := fmt.Fprintf(w, "Skipped pages %v\n", v.Skipped); err != nil {
			return err
		}
	}
	if len(v.Failed) > 0 {
		if _, err := fmt.Fprintf(w, "Undecodable pages %v\n", v.Failed); err != nil {
			return err
		}
	}
	return nil
}
