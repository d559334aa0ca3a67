package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"DistributedRainbow/detector"
	"DistributedRainbow/histogram"
	"DistributedRainbow/iiif"
	"DistributedRainbow/misc"
	"DistributedRainbow/reference"
	"DistributedRainbow/rpc"
	"DistributedRainbow/task"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

type Worker struct {
	config         task.Config
	detector       *detector.Detector
	iiif           *iiif.Client
	loader         *reference.Loader
	logger         bslogger.Logger
	myAddress      string
	mutex          sync.Mutex
	tasksCompleted int
	tasksSkipped   int
	tasksFailed    int

	ServerClient rpc.ServerClient
}

func NewWorker(settingsFile string) *Worker {
	settings := NewSettings(settingsFile)
	worker := &Worker{
		logger: bslogger.NewLogger("Worker", bslogger.Normal, nil),
	}
	misc.CheckError(settings.Verify(), worker.logger, misc.Fatal)

	worker.ServerClient = rpc.NewServerClient(settings.Transport, worker, settings.ServerAddress, settings.ServerAddress, settings.CoordinatorAddress, settings.CoordinatorAddress)
	misc.CheckError(worker.ServerClient.Server.Run(), worker.logger, misc.Fatal)
	worker.myAddress = worker.ServerClient.Server.Address()
	worker.logger = bslogger.NewLogger(fmt.Sprintf("Worker %s", worker.myAddress), bslogger.Normal, nil)

	// Register with the coordinator
	misc.CheckError(worker.ServerClient.Client.Connect(), worker.logger, misc.Fatal)
	var nothing misc.Nothing
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.RegisterWorker", worker.myAddress, &nothing), worker.logger, misc.Fatal)

	// Get the detector settings from the coordinator
	misc.CheckError(worker.ServerClient.Client.Call("Coordinator.GetConfig", nothing, &worker.config), worker.logger, misc.Fatal)
	misc.CheckError(worker.config.Detector.Verify(), worker.logger, misc.Fatal)
	worker.loader = reference.NewLoader(worker.config.Detector.Reference())

	var err error
	worker.iiif, err = iiif.NewClient(worker.config.IIIF)
	misc.CheckError(err, worker.logger, misc.Fatal)

	go worker.tickers()
	go worker.processTasks()

	return worker
}

// Wait blocks until the worker has shut down.
func (w *Worker) Wait() {
	w.ServerClient.Server.Wait().Wait()
}

func (w *Worker) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)
	defer rollCall.Stop()
	defer heartBeat.Stop()

	for {
		select {
		case <-rollCall.C:
			w.logger.Debug("Roll call ticker")
			var junk misc.Nothing
			var reply bool
			err := w.ServerClient.Client.Call("Coordinator.RollCall", junk, &reply)
			if err != nil {
				// Cannot communicate with the Coordinator so we should shut down
				w.logger.Warningf("Coordinator missed roll call: %s", err)
				w.ServerClient.Client.Disconnect()
				w.ServerClient.Server.Stop()
				return
			}

		case <-heartBeat.C:
			w.logger.Debug("Heart beat ticker")
			w.mutex.Lock()
			w.logger.Infof("Tasks [Completed: %d] [Skipped: %d] [Failed: %d]", w.tasksCompleted, w.tasksSkipped, w.tasksFailed)
			w.mutex.Unlock()
		}
	}
}

// getDetector builds the reference colormaps on first use.
func (w *Worker) getDetector() (*detector.Detector, error) {
	if w.detector != nil {
		return w.detector, nil
	}
	set, err := w.loader.Get()
	if err != nil {
		return nil, err
	}
	w.detector, err = detector.NewWithSet(set, w.config.Detector)
	return w.detector, err
}

func (w *Worker) processTasks() {
	w.logger.Info("Processing tasks")

	var nothing misc.Nothing
	var elapsedTime time.Duration
	var startTime = time.Now()
	ctx := context.Background()

	for {
		var taskTodo task.Task
		var err error

		err = w.ServerClient.Client.Call("Coordinator.GetTask", w.myAddress, &taskTodo)
		if err != nil {
			// This is an expected error. No more work to do
			if err.Error() == task.AllHandedOut {
				break
			}
			w.logger.Errorf("Unable to get a task: %s", err.Error())
			break
		}

		w.process(ctx, &taskTodo)

		err = w.ServerClient.Client.Call("Coordinator.ReturnTask", taskTodo, &nothing)
		if err != nil {
			w.logger.Errorf("Unable to return a task: %s", err.Error())
			break
		}
	}

	elapsedTime = time.Since(startTime)

	w.logger.Info("Done processing tasks")
	w.mutex.Lock()
	w.logger.Debugf("Processed %d tasks in %s", w.tasksCompleted+w.tasksSkipped+w.tasksFailed, elapsedTime)
	w.mutex.Unlock()

	w.logger.Info("Shutting down")
	misc.CheckError(w.ServerClient.Client.Call("Coordinator.DeRegisterWorker", w.myAddress, &nothing), w.logger, misc.Warning)
	misc.CheckError(w.ServerClient.Client.Disconnect(), w.logger, misc.Warning)
	misc.CheckError(w.ServerClient.Server.Stop(), w.logger, misc.Warning)
}

// process scores the page of t and records the outcome on it.
func (w *Worker) process(ctx context.Context, t *task.Task) {
	d, err := w.getDetector()
	if err != nil {
		w.logger.Errorf("Unable to build the reference colormaps: %s", err)
		t.Fail(err)
		w.count(t.Status)
		return
	}

	var src detector.Source = detector.EncodedSource{ID: t.Page, Data: t.Image}
	if t.Remote() {
		src = detector.RemoteSource{Client: w.iiif, ID: t.Page}
	}

	rows, err := d.Page(ctx, src)
	switch {
	case errors.Is(err, histogram.ErrFormat):
		w.logger.Warningf("Skipping page %s: %s", t.Page, err)
		t.Skip(err)
	case err != nil:
		w.logger.Errorf("Page %s failed: %s", t.Page, err)
		t.Fail(err)
	default:
		t.Complete(rows)
	}
	w.count(t.Status)
}

func (w *Worker) count(status task.Status) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	switch status {
	case task.Done:
		w.tasksCompleted++
	case task.Skipped:
		w.tasksSkipped++
	default:
		w.tasksFailed++
	}
}

func (w *Worker) RollCall(request misc.Nothing, reply *bool) error {
	*reply = true
	return nil
}
