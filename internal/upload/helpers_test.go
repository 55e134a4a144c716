package upload

import (
	"context"
	"errors"
	"sync"

	"github.com/ytget/hfs-uploader/internal/model"
)

var errConnReset = errors.New("connection reset by peer")

// fakeTransport reports four progress ticks per file and fails the files
// listed in failures. Entries in failOnce fail only on their first call.
type fakeTransport struct {
	mu          sync.Mutex
	calls       []string
	inFlight    int
	maxInFlight int

	failures     map[string]error
	failOnce     map[string]bool
	unknownTotal bool
	stopAtHalf   bool
	lastProgress ProgressFunc
}

func newFakeTransport() *fakeTransport {
	return &fakeTransport{
		failures: make(map[string]error),
		failOnce: make(map[string]bool),
	}
}

func (f *fakeTransport) Upload(_ context.Context, file model.SelectedFile, onProgress ProgressFunc) error {
	f.mu.Lock()
	f.calls = append(f.calls, file.Name)
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	err := f.failures[file.Name]
	if err != nil && f.failOnce[file.Name] {
		delete(f.failures, file.Name)
	}
	f.lastProgress = onProgress
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	total := file.Size
	if f.unknownTotal {
		total = -1
	}

	onProgress(0, total)
	if err != nil {
		onProgress(file.Size/2, total)
		return err
	}
	if f.stopAtHalf {
		onProgress(file.Size/2, total)
		return nil
	}
	for i := int64(1); i <= 4; i++ {
		onProgress(file.Size*i/4, total)
	}
	return nil
}

func (f *fakeTransport) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeTransport) MaxInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.maxInFlight
}

type event struct {
	kind     string
	task     model.UploadTask
	progress model.Progress
	isLast   bool
	err      error
	added    []model.SelectedFile
}

// recorder captures every observer notification in arrival order
type recorder struct {
	mu     sync.Mutex
	events []event
}

func (r *recorder) add(e event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

func (r *recorder) OnFilesAdded(added []model.SelectedFile) {
	r.add(event{kind: "added", added: added})
}

func (r *recorder) OnTaskStarted(task model.UploadTask) {
	r.add(event{kind: "started", task: task})
}

func (r *recorder) OnProgress(task model.UploadTask, progress model.Progress) {
	r.add(event{kind: "progress", task: task, progress: progress})
}

func (r *recorder) OnTaskSucceeded(task model.UploadTask, isLast bool) {
	r.add(event{kind: "succeeded", task: task, isLast: isLast})
}

func (r *recorder) OnTaskFailed(task model.UploadTask, err error) {
	r.add(event{kind: "failed", task: task, err: err})
}

func (r *recorder) OnBatchComplete() {
	r.add(event{kind: "batch"})
}

func (r *recorder) Events() []event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]event(nil), r.events...)
}

func (r *recorder) Kind(kind string) []event {
	var out []event
	for _, e := range r.Events() {
		if e.kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) ProgressFor(name string) []model.Progress {
	var out []model.Progress
	for _, e := range r.Kind("progress") {
		if e.task.File.Name == name {
			out = append(out, e.progress)
		}
	}
	return out
}

func sized(name string, size int) model.SelectedFile {
	return model.NewFileFromBytes(name, make([]byte, size))
}
