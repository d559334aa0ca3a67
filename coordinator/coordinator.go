package coordinator

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"DistributedRainbow/biorxiv"
	"DistributedRainbow/classify"
	"DistributedRainbow/iiif"
	"DistributedRainbow/misc"
	"DistributedRainbow/page"
	"DistributedRainbow/raster"
	"DistributedRainbow/rpc"
	"DistributedRainbow/task"

	"github.com/BrugadaSyndrome/bslogger"
	"github.com/pkg/errors"
)

type Coordinator struct {
	biorxiv            *biorxiv.Client
	clients            map[string]rpc.Client
	finished           chan bool
	generated          chan uint
	iiif               *iiif.Client
	logger             bslogger.Logger
	mutex              sync.Mutex
	papers             map[string]*progress
	papersDone         uint
	policy             classify.Policy
	rasterizer         *raster.Rasterizer
	settings           settings
	taskGeneratedCount uint
	taskIngestedCount  uint
	tasksHandedOut     map[string]map[uint]task.Task // keep track of all tasks workers have
	tasksDone          chan task.Task
	tasksTodo          chan task.Task
	verdicts           map[string]classify.Verdict
	workerWait         *sync.WaitGroup

	Server rpc.Server
}

func NewCoordinator(settingsFile string) *Coordinator {
	settings := NewSettings(settingsFile)
	coordinator := newCoordinator(settings)

	// Copy the settings to the directory so the run can be duplicated in the future
	bytes, err := json.MarshalIndent(settings, "", "  ")
	misc.CheckError(err, coordinator.logger, misc.Warning)
	bytesWritten, err := misc.WriteFile(filepath.Join(coordinator.runPath(), filepath.Base(settingsFile)), bytes)
	if err != nil || bytesWritten == 0 {
		coordinator.logger.Fatalf("Unable to make a backup copy of settingsFile: %s", settingsFile)
	}

	coordinator.Start()
	return coordinator
}

func newCoordinator(settings settings) *Coordinator {
	coordinator := &Coordinator{
		clients:        make(map[string]rpc.Client),
		finished:       make(chan bool),
		generated:      make(chan uint, 1),
		logger:         bslogger.NewLogger("Coordinator", bslogger.Normal, nil),
		papers:         make(map[string]*progress),
		settings:       settings,
		tasksHandedOut: make(map[string]map[uint]task.Task),
		tasksDone:      make(chan task.Task, 1000),
		tasksTodo:      make(chan task.Task, 1000),
		verdicts:       make(map[string]classify.Verdict),
		workerWait:     &sync.WaitGroup{},
	}
	misc.CheckError(coordinator.settings.Verify(), coordinator.logger, misc.Fatal)
	coordinator.policy = coordinator.settings.Detector.Policy()

	var err error
	coordinator.rasterizer, err = raster.NewRasterizer(coordinator.settings.Rasterizer)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	coordinator.iiif, err = iiif.NewClient(coordinator.settings.IIIF)
	misc.CheckError(err, coordinator.logger, misc.Fatal)
	if coordinator.settings.Biorxiv != nil {
		coordinator.biorxiv, err = biorxiv.NewClient(*coordinator.settings.Biorxiv)
		misc.CheckError(err, coordinator.logger, misc.Fatal)
	}

	// Create directory to store files for this run
	err = os.MkdirAll(coordinator.runPath(), os.ModePerm)
	if err != nil {
		coordinator.logger.Fatalf("Unable to create folder: %s", err)
	}

	// Create a log file to record the run
	logFile, err := os.Create(filepath.Join(coordinator.runPath(), "coordinator.log"))
	misc.CheckError(err, coordinator.logger, misc.Warning)
	if err == nil {
		coordinator.logger = bslogger.NewLogger("Coordinator", bslogger.Normal, logFile)
	}

	// Start up the rpc server to allow workers to communicate with the coordinator
	coordinator.Server = rpc.NewServer(coordinator.settings.Transport, coordinator, coordinator.settings.ServerAddress, "CoordinatorServer")
	return coordinator
}

// Start opens the rpc server and begins handing out tasks.
func (c *Coordinator) Start() {
	misc.CheckError(c.Server.Run(), c.logger, misc.Fatal)

	go c.tickers()
	go c.generateTasks()
	go c.ingestTasks()
}

// Wait blocks until every paper is decided and the server has stopped.
func (c *Coordinator) Wait() map[string]classify.Verdict {
	c.Server.Wait().Wait()
	c.mutex.Lock()
	defer c.mutex.Unlock()
	verdicts := make(map[string]classify.Verdict, len(c.verdicts))
	for k, v := range c.verdicts {
		verdicts[k] = v
	}
	return verdicts
}

func (c *Coordinator) runPath() string {
	return filepath.Join(c.settings.SavePath, c.settings.RunName)
}

func (c *Coordinator) tickers() {
	rollCall := time.NewTicker(time.Minute)
	heartBeat := time.NewTicker(30 * time.Second)
	defer rollCall.Stop()
	defer heartBeat.Stop()

	for {
		select {
		case <-c.finished:
			return

		case <-rollCall.C:
			c.logger.Debug("Roll call ticker")
			var junk misc.Nothing
			c.mutex.Lock()
			clients := make([]rpc.Client, 0, len(c.clients))
			for _, v := range c.clients {
				clients = append(clients, v)
			}
			c.mutex.Unlock()
			for _, v := range clients {
				var reply bool
				err := v.Call("Worker.RollCall", junk, &reply)
				if err != nil {
					// Cannot communicate with the worker
					c.logger.Warningf("Worker %s missed roll call: %s", v.Address(), err)

					// Remove worker from pool
					var nothing misc.Nothing
					misc.CheckError(c.DeRegisterWorker(v.Address(), &nothing), c.logger, misc.Warning)
				}
			}

		case <-heartBeat.C:
			c.logger.Debug("Heart beat ticker")
			c.mutex.Lock()
			c.logger.Infof("Tasks [Generated: %d] [Ingested: %d] | Papers [Completed: %d] [Total: %d]", c.taskGeneratedCount, c.taskIngestedCount, c.papersDone, len(c.settings.Papers))
			c.mutex.Unlock()
		}
	}
}

func (c *Coordinator) generateTasks() {
	c.logger.Info("Generating tasks")

	var elapsedTime time.Duration
	var startTime = time.Now()
	ctx := context.Background()

	for _, paper := range c.settings.Papers {
		todo, err := c.paperTasks(ctx, paper)
		if err != nil {
			c.logger.Errorf("Unable to enumerate the pages of %s: %s", paper.ID, err)
		}

		p := newProgress(paper, len(todo))
		if err != nil {
			p.err = err.Error()
		}
		c.lookup(ctx, p)
		c.mutex.Lock()
		c.papers[paper.ID] = p
		c.mutex.Unlock()

		if len(todo) == 0 {
			c.finishPaper(p)
			continue
		}
		for _, t := range todo {
			c.mutex.Lock()
			t.ID = c.taskGeneratedCount
			c.taskGeneratedCount++
			c.mutex.Unlock()
			c.tasksTodo <- t
		}
	}

	elapsedTime = time.Since(startTime)
	c.mutex.Lock()
	count := c.taskGeneratedCount
	c.mutex.Unlock()
	c.generated <- count

	c.logger.Debugf("Done generating %d tasks in %s", count, elapsedTime)
}

// paperTasks lists one task per page of paper.
func (c *Coordinator) paperTasks(ctx context.Context, paper Paper) ([]task.Task, error) {
	switch {
	case paper.PDF != "":
		if n, err := raster.CountPages(paper.PDF); err == nil {
			c.logger.Infof("Rasterizing %d pages of %s", n, paper.PDF)
		} else {
			c.logger.Warningf("Unable to count the pages of %s: %s", paper.PDF, err)
		}
		dir := filepath.Join(c.runPath(), "pages", paper.ID)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, errors.Wrap(err, "creating page directory")
		}
		pages, err := c.rasterizer.Rasterize(ctx, paper.PDF, 0, 0, dir)
		if err != nil {
			return nil, err
		}
		return fileTasks(paper.ID, pages)

	case paper.Pages != "":
		pages, err := pageFiles(paper.Pages)
		if err != nil {
			return nil, err
		}
		return fileTasks(paper.ID, pages)

	default:
		n, err := c.iiif.CountPages(ctx, paper.ID)
		if err != nil {
			return nil, err
		}
		c.logger.Infof("Paper %s has %d pages on the IIIF server", paper.ID, n)
		todo := make([]task.Task, n)
		for i := range todo {
			todo[i] = task.NewTask(0, page.New(paper.ID, i+1))
		}
		return todo, nil
	}
}

// lookup fills in the article metadata of papers fetched by ID. Failures
// only cost the metadata.
func (c *Coordinator) lookup(ctx context.Context, p *progress) {
	if c.biorxiv == nil || p.paper.PDF != "" || p.paper.Pages != "" {
		return
	}
	authors, err := c.biorxiv.FindAuthors(ctx, p.paper.ID)
	if err != nil {
		c.logger.Warningf("Unable to find the authors of %s: %s", p.paper.ID, err)
	}
	p.authors = authors
	p.posted, err = c.biorxiv.FindDate(ctx, p.paper.ID)
	if err != nil {
		c.logger.Warningf("Unable to find the posting date of %s: %s", p.paper.ID, err)
	}
}

// pageFiles lists the images of a directory. Files named <prefix>-<n> keep
// their page number; the others are numbered in name order.
func pageFiles(dir string) ([]raster.Page, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrapf(err, "listing %s", dir)
	}
	var pages []raster.Page
	for _, e := range entries {
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".gif", ".tif", ".tiff", ".bmp", ".webp":
		default:
			continue
		}
		if e.IsDir() {
			continue
		}
		id, err := page.FromFilename(e.Name())
		if err != nil {
			id = page.ID{Number: len(pages) + 1}
		}
		pages = append(pages, raster.Page{ID: id, Path: filepath.Join(dir, e.Name())})
	}
	sort.SliceStable(pages, func(i, j int) bool { return pages[i].ID.Number < pages[j].ID.Number })
	return pages, nil
}

// fileTasks reads every page into a task filed under paperID.
func fileTasks(paperID string, pages []raster.Page) ([]task.Task, error) {
	todo := make([]task.Task, 0, len(pages))
	for _, p := range pages {
		err, data := misc.ReadFile(p.Path)
		if err != nil {
			return nil, err
		}
		t := task.NewTask(0, page.New(paperID, p.ID.Number))
		t.Image = data
		todo = append(todo, t)
	}
	return todo, nil
}

func (c *Coordinator) ingestTasks() {
	c.logger.Info("Ingesting tasks")

	var elapsedTime time.Duration
	var startTime = time.Now()
	var total uint
	generated := c.generated

	for {
		c.mutex.Lock()
		ingested := c.taskIngestedCount
		c.mutex.Unlock()
		if generated == nil && ingested == total {
			// There are no more tasks to ingest
			break
		}

		select {
		case total = <-generated:
			generated = nil
		case taskReceived := <-c.tasksDone:
			c.ingest(taskReceived)
		}
	}

	elapsedTime = time.Since(startTime)
	close(c.finished)
	c.logger.Debugf("Done ingesting %d tasks in %s", total, elapsedTime)

	c.mutex.Lock()
	c.logger.Infof("Waiting for %d workers to disconnect", len(c.clients))
	c.mutex.Unlock()
	c.workerWait.Wait()
	misc.CheckError(c.Server.Stop(), c.logger, misc.Warning)
}

func (c *Coordinator) ingest(t task.Task) {
	c.mutex.Lock()
	handedOut, ok := c.tasksHandedOut[t.WorkerAddress][t.ID]
	if !ok {
		// Already returned, or requeued after its worker was dropped
		c.mutex.Unlock()
		c.logger.Debugf("Ignoring stale task %d from %s", t.ID, t.WorkerAddress)
		return
	}
	delete(c.tasksHandedOut[t.WorkerAddress], t.ID)
	c.taskIngestedCount++
	p := c.papers[handedOut.Page.PaperID]
	complete := p != nil && p.add(t)
	c.mutex.Unlock()

	if t.Status != task.Done {
		c.logger.Warningf("Page %s %s: %s", t.Page, strings.ToLower(t.Status.String()), t.Error)
	}
	if complete {
		c.finishPaper(p)
	}
}

// finishPaper decides a paper and writes its coverage table and summary.
func (c *Coordinator) finishPaper(p *progress) {
	c.mutex.Lock()
	v := p.verdict(c.policy)
	s := p.summary(v)
	c.verdicts[p.paper.ID] = v
	c.papersDone++
	c.mutex.Unlock()

	if len(v.Flagged) > 0 {
		c.logger.Infof("Paper %s: rainbow colormaps on pages %v", p.paper.ID, v.Flagged)
	} else {
		c.logger.Infof("Paper %s: no rainbow colormaps found", p.paper.ID)
	}

	table := filepath.Join(c.runPath(), p.paper.ID+".csv")
	misc.CheckError(misc.CreateFile(table, func(w io.Writer) error {
		return classify.WriteCSV(w, v.Coverage)
	}), c.logger, misc.Error)

	bytes, err := json.MarshalIndent(s, "", "  ")
	misc.CheckError(err, c.logger, misc.Error)
	_, err = misc.WriteFile(filepath.Join(c.runPath(), p.paper.ID+".json"), bytes)
	misc.CheckError(err, c.logger, misc.Error)
}

func (c *Coordinator) RegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	// Create a client to communicate with this worker
	client := rpc.NewClient(c.settings.Transport, workerServerAddress, workerServerAddress)
	if err := client.Connect(); err != nil {
		c.logger.Warningf("Unable to call back worker %s: %s", workerServerAddress, err)
		return err
	}

	c.mutex.Lock()
	c.clients[workerServerAddress] = client
	// Track all tasks this worker checks out
	c.tasksHandedOut[workerServerAddress] = make(map[uint]task.Task)
	c.mutex.Unlock()

	c.logger.Infof("Worker joined: %s", workerServerAddress)
	c.workerWait.Add(1)

	return nil
}

func (c *Coordinator) DeRegisterWorker(workerServerAddress string, reply *misc.Nothing) error {
	c.mutex.Lock()
	client, ok := c.clients[workerServerAddress]
	if !ok {
		c.mutex.Unlock()
		return errors.Errorf("unknown worker %s", workerServerAddress)
	}
	tasks := c.tasksHandedOut[workerServerAddress]

	// Remove stored values associated with this worker
	delete(c.tasksHandedOut, workerServerAddress)
	delete(c.clients, workerServerAddress)
	c.mutex.Unlock()

	// Put tasks this worker has not returned yet back into the tasksTodo pool
	go func(tasks map[uint]task.Task) {
		for _, v := range tasks {
			c.logger.Infof("Requeueing page %s", v.Page)
			v.WorkerAddress = ""
			c.tasksTodo <- v
		}
	}(tasks)

	// Disconnect from worker
	misc.CheckError(client.Disconnect(), c.logger, misc.Warning)

	c.logger.Infof("Worker left: %s", workerServerAddress)
	c.workerWait.Done()

	return nil
}

func (c *Coordinator) RollCall(nothing misc.Nothing, present *bool) error {
	*present = true
	return nil
}

func (c *Coordinator) GetTask(workerAddress string, assigned *task.Task) error {
	select {
	case todo := <-c.tasksTodo:
		c.mutex.Lock()
		handedOut, ok := c.tasksHandedOut[workerAddress]
		if !ok {
			c.mutex.Unlock()
			c.tasksTodo <- todo
			return errors.Errorf("unknown worker %s", workerAddress)
		}
		todo.WorkerAddress = workerAddress
		handedOut[todo.ID] = todo
		c.mutex.Unlock()
		*assigned = todo
		return nil
	case <-c.finished:
		c.logger.Info("Telling worker that all tasks are handed out")
		return errors.New(task.AllHandedOut)
	}
}

func (c *Coordinator) ReturnTask(done task.Task, nothing *misc.Nothing) error {
	c.tasksDone <- done
	return nil
}

func (c *Coordinator) GetConfig(nothing misc.Nothing, config *task.Config) error {
	*config = task.Config{
		Detector: c.settings.Detector,
		IIIF:     c.settings.IIIF,
	}
	return nil
}
