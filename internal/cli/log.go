package cli

import (
	"log/slog"
	"sync"

	"github.com/ytget/hfs-uploader/internal/model"
	"github.com/ytget/hfs-uploader/internal/upload"
)

// DefaultLogStep is the percent interval between progress log records
const DefaultLogStep = 25

// NewProgressLogger returns an observer that logs upload progress at debug
// level each time a task crosses another multiple of step percent. Tasks with
// an unknown total are not logged, there is no percentage to report.
func NewProgressLogger(logger *slog.Logger, step int) upload.Observer {
	if step <= 0 || step > 100 {
		step = DefaultLogStep
	}

	var (
		mu      sync.Mutex
		reached = make(map[string]int)
	)
	forget := func(task model.UploadTask) {
		mu.Lock()
		delete(reached, task.ID)
		mu.Unlock()
	}

	return upload.ObserverFuncs{
		Progress: func(task model.UploadTask, progress model.Progress) {
			percent, ok := progress.Percent()
			if !ok {
				return
			}
			mark := percent / step * step

			mu.Lock()
			crossed := mark > reached[task.ID]
			if crossed {
				reached[task.ID] = mark
			}
			mu.Unlock()

			if crossed {
				logger.Debug("upload progress",
					"file", task.File.Name,
					"percent", mark,
					"sent", progress.Sent,
					"total", progress.Total,
				)
			}
		},
		TaskSucceeded: func(task model.UploadTask, _ bool) { forget(task) },
		TaskFailed:    func(task model.UploadTask, _ error) { forget(task) },
	}
}
