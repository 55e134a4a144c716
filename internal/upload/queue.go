package upload

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ytget/hfs-uploader/internal/model"
)

// Queue composes a Registry and a Sequencer behind one observer. It owns the
// upload state for one selection session; start a new Queue for the next one.
type Queue struct {
	registry  *Registry
	sequencer *Sequencer
	observer  Observer
	logger    *slog.Logger
}

var _ Uploader = (*Queue)(nil)

// NewQueue creates a queue uploading through transport
func NewQueue(transport Transport, observer Observer, opts ...Option) *Queue {
	if observer == nil {
		observer = NopObserver{}
	}
	o := buildOptions(opts)
	return &Queue{
		registry:  NewRegistry(),
		sequencer: NewSequencer(transport, observer, opts...),
		observer:  observer,
		logger:    o.logger,
	}
}

// Select registers one selection batch and notifies the observer with the
// files that were actually added after name deduplication.
func (q *Queue) Select(files ...model.SelectedFile) []model.SelectedFile {
	added := q.registry.AddFiles(files)
	if dropped := len(files) - len(added); dropped > 0 {
		q.logger.Debug("duplicate selections dropped", "count", dropped)
	}
	q.observer.OnFilesAdded(added)
	return added
}

// Entries returns the registered files in selection order
func (q *Queue) Entries() []model.SelectedFile {
	return q.registry.Entries()
}

// Pending returns registered files that are not part of the started batch.
// Before Upload this is every entry; afterwards it holds late selections.
func (q *Queue) Pending() []model.SelectedFile {
	entries := q.registry.Entries()
	started := len(q.sequencer.Tasks())
	if started >= len(entries) {
		return nil
	}
	return entries[started:]
}

// Upload starts sequential upload of every registered file
func (q *Queue) Upload(ctx context.Context) error {
	if err := q.sequencer.Start(ctx, q.registry.Entries()); err != nil {
		return fmt.Errorf("start upload: %w", err)
	}
	return nil
}

// Retry re-issues the failed task that halted the queue
func (q *Queue) Retry() error {
	return q.sequencer.Retry()
}

// Skip abandons the failed task that halted the queue
func (q *Queue) Skip() error {
	return q.sequencer.Skip()
}

// Tasks returns a snapshot of the upload tasks
func (q *Queue) Tasks() []model.UploadTask {
	return q.sequencer.Tasks()
}

// State returns the sequencer state
func (q *Queue) State() State {
	return q.sequencer.State()
}

// Wait blocks until the queue is done or halted
func (q *Queue) Wait() {
	q.sequencer.Wait()
}
