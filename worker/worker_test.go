package worker

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"testing"

	"DistributedRainbow/detector"
	"DistributedRainbow/page"
	"DistributedRainbow/reference"
	"DistributedRainbow/rpc"
	"DistributedRainbow/task"

	"github.com/BrugadaSyndrome/bslogger"
)

func newTestWorker(t *testing.T) *Worker {
	t.Helper()
	config := task.Config{Detector: detector.Settings{Workers: 1}}
	if err := config.Detector.Verify(); err != nil {
		t.Fatal(err)
	}
	return &Worker{
		config: config,
		loader: reference.NewLoader(config.Detector.Reference()),
		logger: bslogger.NewLogger("TestWorker", bslogger.Normal, nil),
	}
}

func encode(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestProcess(t *testing.T) {
	w := newTestWorker(t)

	rgba := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := range rgba.Pix {
		rgba.Pix[i] = 0xff
	}
	for x := 0; x < 16; x++ {
		rgba.SetRGBA(x, 3, color.RGBA{255, 0, 0, 255})
	}
	gray := image.NewGray(image.Rect(0, 0, 4, 4))

	tests := []struct {
		name  string
		image []byte
		want  task.Status
	}{
		{"rgba page", encode(t, rgba), task.Done},
		{"gray page", encode(t, gray), task.Skipped},
		{"corrupt page", []byte("not a png"), task.Failed},
	}
	for i, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			todo := task.NewTask(uint(i), page.New("p", i+1))
			todo.Image = test.image
			w.process(context.Background(), &todo)
			if todo.Status != test.want {
				t.Fatalf("status = %s, want %s (%s)", todo.Status, test.want, todo.Error)
			}
			if todo.Image != nil {
				t.Error("image sent back")
			}
			if test.want == task.Done && len(todo.Results) == 0 {
				t.Error("no coverage rows")
			}
		})
	}

	if w.tasksCompleted != 1 || w.tasksSkipped != 1 || w.tasksFailed != 1 {
		t.Errorf("counts = %d/%d/%d", w.tasksCompleted, w.tasksSkipped, w.tasksFailed)
	}
}

func TestSettingsVerify(t *testing.T) {
	s := settings{CoordinatorAddress: "10.0.0.1:51000"}
	if err := s.Verify(); err != nil {
		t.Fatal(err)
	}
	if s.ServerAddress == "" || s.Transport != rpc.Tcp {
		t.Errorf("defaults not filled: %s", s.String())
	}

	bad := settings{CoordinatorAddress: "10.0.0.1:51000", ServerAddress: "127.0.0.1:0", Transport: "pigeon"}
	if err := bad.Verify(); err == nil {
		t.Error("unknown transport accepted")
	}
}
