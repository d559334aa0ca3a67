package task

import (
	"bytes"
	"encoding/gob"
	"errors"
	"testing"

	"DistributedRainbow/classify"
	"DistributedRainbow/page"

	"github.com/google/go-cmp/cmp"
)

func TestLifecycle(t *testing.T) {
	todo := NewTask(7, page.New("515643v1", 3))
	if !todo.Remote() {
		t.Error("task without image should be remote")
	}
	todo.Image = []byte{1, 2, 3}
	if todo.Remote() {
		t.Error("task with image should not be remote")
	}

	done := todo
	done.Complete([]classify.CoverageStats{{Page: todo.Page, Colormap: "jet", ColormapCoverage: 0.9}})
	if done.Status != Done || done.Image != nil || len(done.Results) != 1 {
		t.Errorf("complete: %s", done.String())
	}

	skipped := todo
	skipped.Skip(errors.New("gray page"))
	if skipped.Status != Skipped || skipped.Error != "gray page" {
		t.Errorf("skip: %s", skipped.String())
	}

	failed := todo
	failed.Fail(errors.New("timeout"))
	if failed.Status != Failed || failed.Status.String() != "Failed" {
		t.Errorf("fail: %s", failed.String())
	}
}

// Tasks cross the wire with encoding/gob through net/rpc.
func TestGobTransfer(t *testing.T) {
	in := NewTask(1, page.New("p", 2))
	in.WorkerAddress = "10.0.0.2:4000"
	in.Complete([]classify.CoverageStats{{Page: in.Page, Colormap: "hsv", ColormapCoverage: 0.75, PageCoverage: 0.25}})

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(in); err != nil {
		t.Fatal(err)
	}
	var out Task
	if err := gob.NewDecoder(&buf).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("task (-want +got):\n%s", diff)
	}
}
