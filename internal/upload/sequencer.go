package upload

import (
	"context"
	"log/slog"
	"sync"

	"github.com/ytget/hfs-uploader/internal/model"
)

// State is the lifecycle state of a Sequencer
type State int

const (
	// StateIdle means Start has not been called
	StateIdle State = iota
	// StateRunning means a task is in flight or about to be issued
	StateRunning
	// StateHalted means a failed task is holding the queue until Retry or Skip
	StateHalted
	// StateDone means every task was processed
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateHalted:
		return "halted"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Option configures a Sequencer or Queue
type Option func(*options)

type options struct {
	logger           *slog.Logger
	advanceOnFailure bool
}

// WithLogger sets the structured logger used for lifecycle events
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithAdvanceOnFailure makes a failed task advance the queue instead of halting it.
// Batch completion then fires once the last task reaches any terminal state.
func WithAdvanceOnFailure(advance bool) Option {
	return func(o *options) {
		o.advanceOnFailure = advance
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Sequencer uploads a fixed list of files strictly one after another.
// Task i+1 is never issued before task i reached a terminal state, and at most
// one Transport call is in flight at any time.
type Sequencer struct {
	transport Transport
	observer  Observer
	logger    *slog.Logger
	advance   bool

	mu            sync.Mutex
	ctx           context.Context
	tasks         []*model.UploadTask
	next          int
	state         State
	batchNotified bool

	running sync.WaitGroup
}

// NewSequencer creates a sequencer that reports to observer
func NewSequencer(transport Transport, observer Observer, opts ...Option) *Sequencer {
	o := buildOptions(opts)
	if observer == nil {
		observer = NopObserver{}
	}
	return &Sequencer{
		transport: transport,
		observer:  observer,
		logger:    o.logger,
		advance:   o.advanceOnFailure,
	}
}

// Start snapshots files into pending tasks and begins uploading the first one.
// It returns immediately; progress and outcomes arrive through the observer.
func (s *Sequencer) Start(ctx context.Context, files []model.SelectedFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateIdle {
		return ErrAlreadyStarted
	}
	if len(files) == 0 {
		return ErrNothingToUpload
	}

	s.ctx = ctx
	s.tasks = make([]*model.UploadTask, 0, len(files))
	for _, f := range files {
		s.tasks = append(s.tasks, model.NewUploadTask(f))
	}
	s.next = 0
	s.state = StateRunning

	s.logger.Info("upload batch started", "files", len(s.tasks))
	s.launchLocked()
	return nil
}

// Retry replaces the failed task holding the queue with a fresh pending task
// for the same file and resumes from it.
func (s *Sequencer) Retry() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHalted {
		return ErrNotHalted
	}

	failed := s.tasks[s.next]
	fresh := model.NewUploadTask(failed.File)
	fresh.Attempt = failed.Attempt + 1
	s.tasks[s.next] = fresh
	s.state = StateRunning

	s.logger.Info("retrying upload", "file", fresh.File.Name, "attempt", fresh.Attempt)
	s.launchLocked()
	return nil
}

// Skip abandons the failed task holding the queue and resumes with the next one.
// Skipping the last task ends the batch without a batch-complete notification,
// since the last task did not succeed.
func (s *Sequencer) Skip() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateHalted {
		return ErrNotHalted
	}

	s.logger.Info("skipping failed upload", "file", s.tasks[s.next].File.Name)
	s.next++
	if s.next >= len(s.tasks) {
		s.state = StateDone
		return nil
	}
	s.state = StateRunning
	s.launchLocked()
	return nil
}

// Tasks returns a snapshot of every task in queue order
func (s *Sequencer) Tasks() []model.UploadTask {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.UploadTask, len(s.tasks))
	for i, t := range s.tasks {
		out[i] = *t
	}
	return out
}

// State returns the current lifecycle state
func (s *Sequencer) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Wait blocks until the sequencer stops running, either done or halted
func (s *Sequencer) Wait() {
	s.running.Wait()
}

// launchLocked starts the drive loop. Callers hold s.mu and have set StateRunning.
func (s *Sequencer) launchLocked() {
	s.running.Add(1)
	go s.drive()
}

// drive issues tasks one at a time until the queue halts or drains
func (s *Sequencer) drive() {
	defer s.running.Done()

	for {
		task, index, ok := s.begin()
		if !ok {
			return
		}

		err := s.transport.Upload(s.ctx, task.File, func(sent, total int64) {
			s.updateProgress(task, sent, total)
		})

		if !s.finish(task, index, err) {
			return
		}
	}
}

// begin moves the next pending task to InProgress
func (s *Sequencer) begin() (*model.UploadTask, int, bool) {
	s.mu.Lock()
	if s.state != StateRunning || s.next >= len(s.tasks) {
		s.mu.Unlock()
		return nil, 0, false
	}

	index := s.next
	task := s.tasks[index]
	if err := task.Transition(model.TaskStatusInProgress); err != nil {
		s.mu.Unlock()
		s.logger.Error("cannot start task", "task", task.ID, "err", err)
		return nil, 0, false
	}
	snapshot := *task
	s.mu.Unlock()

	s.logger.Debug("upload started", "task", task.ID, "file", task.File.Name, "index", index)
	if so, ok := s.observer.(StartObserver); ok {
		so.OnTaskStarted(snapshot)
	}
	return task, index, true
}

// updateProgress records a transport tick and forwards it. Ticks arriving after
// the task left InProgress, or going backwards, are dropped.
func (s *Sequencer) updateProgress(task *model.UploadTask, sent, total int64) {
	s.mu.Lock()
	if task.Status != model.TaskStatusInProgress || sent < task.BytesSent {
		s.mu.Unlock()
		return
	}
	if total < 0 {
		total = model.UnknownSize
	}
	task.BytesSent = sent
	task.BytesTotal = total
	snapshot := *task
	s.mu.Unlock()

	s.observer.OnProgress(snapshot, snapshot.Progress())
}

// finish applies the terminal outcome of task and reports whether the drive
// loop should continue with the next task.
func (s *Sequencer) finish(task *model.UploadTask, index int, uploadErr error) bool {
	if uploadErr != nil {
		return s.fail(task, index, uploadErr)
	}
	return s.succeed(task, index)
}

func (s *Sequencer) succeed(task *model.UploadTask, index int) bool {
	s.mu.Lock()
	var finalTick *model.UploadTask
	if task.BytesTotal >= 0 && task.BytesSent < task.BytesTotal {
		task.BytesSent = task.BytesTotal
		tick := *task
		finalTick = &tick
	}
	if err := task.Transition(model.TaskStatusSucceeded); err != nil {
		s.mu.Unlock()
		s.logger.Error("cannot complete task", "task", task.ID, "err", err)
		return false
	}
	isLast := index == len(s.tasks)-1
	batchDone := false
	if isLast {
		s.state = StateDone
		batchDone = s.markBatchLocked()
	} else {
		s.next = index + 1
	}
	snapshot := *task
	s.mu.Unlock()

	s.logger.Info("upload succeeded", "task", task.ID, "file", task.File.Name, "bytes", task.BytesSent)
	if finalTick != nil {
		s.observer.OnProgress(*finalTick, finalTick.Progress())
	}
	s.observer.OnTaskSucceeded(snapshot, isLast)
	if batchDone {
		s.logger.Info("upload batch complete", "files", index+1)
		s.observer.OnBatchComplete()
	}
	return !isLast
}

func (s *Sequencer) fail(task *model.UploadTask, index int, uploadErr error) bool {
	s.mu.Lock()
	task.LastError = uploadErr.Error()
	if err := task.Transition(model.TaskStatusFailed); err != nil {
		s.mu.Unlock()
		s.logger.Error("cannot fail task", "task", task.ID, "err", err)
		return false
	}
	isLast := index == len(s.tasks)-1
	proceed := false
	batchDone := false
	switch {
	case !s.advance:
		s.state = StateHalted
	case isLast:
		s.next = index + 1
		s.state = StateDone
		batchDone = s.markBatchLocked()
	default:
		s.next = index + 1
		proceed = true
	}
	snapshot := *task
	s.mu.Unlock()

	s.logger.Warn("upload failed", "task", task.ID, "file", task.File.Name, "attempt", task.Attempt, "err", uploadErr)
	s.observer.OnTaskFailed(snapshot, &TransportError{
		TaskID:   task.ID,
		FileName: task.File.Name,
		Attempt:  task.Attempt,
		Err:      uploadErr,
	})
	if batchDone {
		s.observer.OnBatchComplete()
	}
	return proceed
}

func (s *Sequencer) markBatchLocked() bool {
	if s.batchNotified {
		return false
	}
	s.batchNotified = true
	return true
}
