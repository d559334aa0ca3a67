package task

import (
	"fmt"

	"DistributedRainbow/classify"
	"DistributedRainbow/detector"
	"DistributedRainbow/iiif"
	"DistributedRainbow/page"
)

const (
	Todo Status = iota
	Done
	Skipped
	Failed
)

type Status int

func (s Status) String() string {
	return []string{
		"Todo", "Done", "Skipped", "Failed",
	}[s]
}

// Task asks a worker to score one page. Image carries the encoded page when
// the coordinator rendered it; an empty Image means the worker fetches the
// page from the IIIF server itself.
type Task struct {
	ID            uint
	Error         string
	Image         []byte
	Page          page.ID
	Results       []classify.CoverageStats
	Status        Status
	WorkerAddress string
}

func NewTask(id uint, pageID page.ID) Task {
	return Task{
		ID:   id,
		Page: pageID,
	}
}

func (t *Task) String() string {
	output := "{Task "
	output += fmt.Sprintf("ID: %d ", t.ID)
	output += fmt.Sprintf("Page: %s ", t.Page)
	output += fmt.Sprintf("Status: %s ", t.Status)
	output += fmt.Sprintf("Image Bytes: %d ", len(t.Image))
	output += fmt.Sprintf("Result Count: %d}", len(t.Results))
	return output
}

// Remote reports whether the worker has to fetch the page.
func (t *Task) Remote() bool {
	return len(t.Image) == 0
}

// Complete records the rows of a scored page. The image is dropped so it is
// not sent back.
func (t *Task) Complete(results []classify.CoverageStats) {
	t.Results = results
	t.Status = Done
	t.Image = nil
}

// Skip marks a page whose image layout cannot be classified.
func (t *Task) Skip(reason error) {
	t.Status = Skipped
	t.Error = reason.Error()
	t.Image = nil
}

// Fail marks a page that could not be loaded.
func (t *Task) Fail(reason error) {
	t.Status = Failed
	t.Error = reason.Error()
	t.Image = nil
}

// AllHandedOut is the error text GetTask replies with once every task is
// finished; net/rpc only carries the text across.
const AllHandedOut = "all tasks handed out"

// Config is what a worker needs from the coordinator to score pages.
type Config struct {
	Detector detector.Settings
	IIIF     iiif.Settings
}
