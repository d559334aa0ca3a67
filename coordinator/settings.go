package coordinator

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"DistributedRainbow/biorxiv"
	"DistributedRainbow/detector"
	"DistributedRainbow/iiif"
	"DistributedRainbow/misc"
	"DistributedRainbow/raster"
	"DistributedRainbow/rpc"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

// Paper names one paper and where its pages come from. Exactly one of PDF
// (rendered locally with pdftoppm), Pages (a directory of rendered page
// images) or neither (pages fetched from the IIIF server by ID) applies.
type Paper struct {
	ID    string
	PDF   string
	Pages string
}

func (p Paper) String() string {
	switch {
	case p.PDF != "":
		return fmt.Sprintf("%s (pdf %s)", p.ID, p.PDF)
	case p.Pages != "":
		return fmt.Sprintf("%s (pages in %s)", p.ID, p.Pages)
	}
	return fmt.Sprintf("%s (iiif)", p.ID)
}

type settings struct {
	logger bslogger.Logger

	// Biorxiv enables the article metadata lookup for papers fetched by ID.
	Biorxiv       *biorxiv.Settings
	Detector      detector.Settings
	IIIF          iiif.Settings
	Papers        []Paper
	Rasterizer    raster.Settings
	RunName       string
	SavePath      string
	ServerAddress string
	Transport     rpc.Transport
}

func NewSettings(settingsFile string) settings {
	s := settings{
		logger:        bslogger.NewLogger("CoordinatorSettings", bslogger.Normal, nil),
		ServerAddress: "",
	}
	err, fileBytes := misc.ReadFile(settingsFile)
	misc.CheckError(err, s.logger, misc.Fatal)
	misc.CheckError(json.Unmarshal(fileBytes, &s), s.logger, misc.Fatal)
	misc.CheckError(s.Verify(), s.logger, misc.Fatal)
	s.logger.Debug(s.String())
	return s
}

func (s *settings) String() string {
	output := "\nCoordinator settings\n"
	output += fmt.Sprintf("My Address: %s\n", s.ServerAddress)
	output += fmt.Sprintf("Transport: %s\n", s.Transport)
	output += fmt.Sprintf("Run: %s\n", filepath.Join(s.SavePath, s.RunName))
	for _, p := range s.Papers {
		output += fmt.Sprintf("Paper: %s\n", p)
	}
	output += s.Detector.String()
	return output
}

func (s *settings) Verify() error {
	if s.RunName == "" {
		s.RunName = "run_" + time.Now().Format("2006_01_02-03_04_05")
	}
	if s.SavePath == "" {
		s.SavePath, _ = os.Getwd()
	}
	if s.ServerAddress == "" {
		s.ServerAddress = fmt.Sprintf("%s:%s", misc.GetLocalAddress(), "51000")
	}
	if s.Transport == "" {
		s.Transport = rpc.Tcp
	}
	if err := s.Transport.Verify(); err != nil {
		return err
	}
	if err := s.Detector.Verify(); err != nil {
		return errors.Wrap(err, "detector settings")
	}
	if err := s.IIIF.Verify(); err != nil {
		return errors.Wrap(err, "IIIF settings")
	}
	if s.Biorxiv != nil {
		if err := s.Biorxiv.Verify(); err != nil {
			return errors.Wrap(err, "bioRxiv settings")
		}
	}
	if err := s.Rasterizer.Verify(); err != nil {
		return errors.Wrap(err, "rasterizer settings")
	}

	if len(s.Papers) == 0 {
		return errors.New("no papers to classify")
	}
	seen := make(map[string]bool)
	for i := range s.Papers {
		p := &s.Papers[i]
		if p.PDF != "" && p.Pages != "" {
			return errors.Errorf("paper %d names both a PDF and a page directory", i+1)
		}
		if p.ID == "" && p.PDF != "" {
			p.ID = strings.TrimSuffix(filepath.Base(p.PDF), filepath.Ext(p.PDF))
		}
		if p.ID == "" && p.Pages != "" {
			p.ID = filepath.Base(filepath.Clean(p.Pages))
		}
		if p.ID == "" {
			return errors.Errorf("paper %d has no ID", i+1)
		}
		if seen[p.ID] {
			return errors.Errorf("paper %s is listed twice", p.ID)
		}
		seen[p.ID] = true
	}

	return nil
}
