package upload

import "github.com/ytget/hfs-uploader/internal/model"

// Observer receives notifications from the queue. Tasks are passed by value so
// observers never share mutable state with the sequencer.
type Observer interface {
	OnFilesAdded(added []model.SelectedFile)
	OnProgress(task model.UploadTask, progress model.Progress)
	OnTaskSucceeded(task model.UploadTask, isLast bool)
	OnTaskFailed(task model.UploadTask, err error)
	OnBatchComplete()
}

// StartObserver is optionally implemented by observers that want to know when
// a request is issued, before the first progress tick arrives.
type StartObserver interface {
	OnTaskStarted(task model.UploadTask)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	FilesAdded    func(added []model.SelectedFile)
	TaskStarted   func(task model.UploadTask)
	Progress      func(task model.UploadTask, progress model.Progress)
	TaskSucceeded func(task model.UploadTask, isLast bool)
	TaskFailed    func(task model.UploadTask, err error)
	BatchComplete func()
}

func (f ObserverFuncs) OnFilesAdded(added []model.SelectedFile) {
	if f.FilesAdded != nil {
		f.FilesAdded(added)
	}
}

func (f ObserverFuncs) OnTaskStarted(task model.UploadTask) {
	if f.TaskStarted != nil {
		f.TaskStarted(task)
	}
}

func (f ObserverFuncs) OnProgress(task model.UploadTask, progress model.Progress) {
	if f.Progress != nil {
		f.Progress(task, progress)
	}
}

func (f ObserverFuncs) OnTaskSucceeded(task model.UploadTask, isLast bool) {
	if f.TaskSucceeded != nil {
		f.TaskSucceeded(task, isLast)
	}
}

func (f ObserverFuncs) OnTaskFailed(task model.UploadTask, err error) {
	if f.TaskFailed != nil {
		f.TaskFailed(task, err)
	}
}

func (f ObserverFuncs) OnBatchComplete() {
	if f.BatchComplete != nil {
		f.BatchComplete()
	}
}

// NopObserver ignores every notification
type NopObserver struct{}

func (NopObserver) OnFilesAdded([]model.SelectedFile)            {}
func (NopObserver) OnProgress(model.UploadTask, model.Progress) {}
func (NopObserver) OnTaskSucceeded(model.UploadTask, bool)      {}
func (NopObserver) OnTaskFailed(model.UploadTask, error)        {}
func (NopObserver) OnBatchComplete()                            {}

// MultiObserver fans every notification out to each observer in order
type MultiObserver []Observer

func (m MultiObserver) OnFilesAdded(added []model.SelectedFile) {
	for _, o := range m {
		o.OnFilesAdded(added)
	}
}

func (m MultiObserver) OnTaskStarted(task model.UploadTask) {
	for _, o := range m {
		if so, ok := o.(StartObserver); ok {
			so.OnTaskStarted(task)
		}
	}
}

func (m MultiObserver) OnProgress(task model.UploadTask, progress model.Progress) {
	for _, o := range m {
		o.OnProgress(task, progress)
	}
}

func (m MultiObserver) OnTaskSucceeded(task model.UploadTask, isLast bool) {
	for _, o := range m {
		o.OnTaskSucceeded(task, isLast)
	}
}

func (m MultiObserver) OnTaskFailed(task model.UploadTask, err error) {
	for _, o := range m {
		o.OnTaskFailed(task, err)
	}
}

func (m MultiObserver) OnBatchComplete() {
	for _, o := range m {
		o.OnBatchComplete()
	}
}
