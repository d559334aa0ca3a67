package reference

import (
	"sync"
	"time"

	"DistributedRainbow/colormap"

	"github.com/BrugadaSyndrome/bslogger"
)

// Loader builds a Set on first use. Concurrent first callers wait for the
// same build and all receive its result.
type Loader struct {
	logger   bslogger.Logger
	once     sync.Once
	set      *Set
	err      error
	settings Settings

	builds int
}

func NewLoader(settings Settings) *Loader {
	return &Loader{
		logger:   bslogger.NewLogger("ReferenceLoader", bslogger.Normal, nil),
		settings: settings,
	}
}

func (l *Loader) Get() (*Set, error) {
	l.once.Do(func() {
		var startTime = time.Now()
		l.builds++
		l.set, l.err = Build(colormap.Catalog(), l.settings)
		if l.err != nil {
			l.logger.Errorf("Building reference colormaps: %s", l.err)
			return
		}
		l.logger.Debugf("Built %d reference colormaps at resolution %d in %s", l.set.Len(), l.set.Resolution, time.Since(startTime))
	})
	return l.set, l.err
}
