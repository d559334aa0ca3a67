package detector

import (
	"fmt"
	"runtime"

	"DistributedRainbow/classify"
	"DistributedRainbow/reference"

	"github.com/pkg/errors"
)

// Settings tunes classification. Zero values are replaced by the defaults
// in Verify.
type Settings struct {
	Resolution        int
	MatchDistance     float64
	CoverageThreshold float64
	Exclude           []string
	Workers           int
	// MaxSide shrinks larger pages before counting colours. Zero disables it.
	MaxSide int
}

func DefaultSettings() Settings {
	s := Settings{}
	s.Verify()
	return s
}

func (s *Settings) String() string {
	output := "\nDetector settings\n"
	output += fmt.Sprintf("Resolution: %d\n", s.Resolution)
	output += fmt.Sprintf("Match Distance: %g\n", s.MatchDistance)
	output += fmt.Sprintf("Coverage Threshold: %g\n", s.CoverageThreshold)
	output += fmt.Sprintf("Exclude: %v\n", s.Exclude)
	output += fmt.Sprintf("Workers: %d\n", s.Workers)
	output += fmt.Sprintf("Max Side: %d\n", s.MaxSide)
	return output
}

func (s *Settings) Verify() error {
	ref := s.Reference()
	if err := ref.Verify(); err != nil {
		return err
	}
	s.Resolution, s.Exclude = ref.Resolution, ref.Exclude

	cs := s.classifier()
	if err := cs.Verify(); err != nil {
		return err
	}
	s.MatchDistance = cs.MatchDistance

	if s.CoverageThreshold == 0 {
		s.CoverageThreshold = classify.DefaultThreshold
	}
	p := s.Policy()
	if err := p.Verify(); err != nil {
		return err
	}

	if s.Workers <= 0 {
		s.Workers = runtime.NumCPU()
	}
	if s.MaxSide < 0 {
		return errors.Errorf("max side must not be negative, got %d", s.MaxSide)
	}
	return nil
}

// Reference selects the reference colormaps the detector is built from.
func (s *Settings) Reference() reference.Settings {
	return reference.Settings{Resolution: s.Resolution, Exclude: s.Exclude}
}

func (s *Settings) classifier() classify.Settings {
	return classify.Settings{MatchDistance: s.MatchDistance}
}

// Policy is the decision policy the settings describe.
func (s *Settings) Policy() classify.Policy {
	p := classify.DefaultPolicy()
	p.Threshold = s.CoverageThreshold
	return p
}
