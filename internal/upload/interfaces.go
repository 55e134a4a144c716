package upload

import (
	"context"

	"github.com/ytget/hfs-uploader/internal/model"
)

// ProgressFunc receives body bytes sent so far and the body length.
// total is negative when the length cannot be computed.
type ProgressFunc func(sent, total int64)

// Transport issues a single upload request for one file. It must call
// onProgress from at most one goroutine at a time and return only after the
// request reached a terminal outcome.
type Transport interface {
	Upload(ctx context.Context, file model.SelectedFile, onProgress ProgressFunc) error
}

// Uploader defines the interface presentation layers use to drive a queue.
type Uploader interface {
	Select(files ...model.SelectedFile) []model.SelectedFile
	Entries() []model.SelectedFile
	Upload(ctx context.Context) error
	Retry() error
	Skip() error
	Tasks() []model.UploadTask
	State() State
	Wait()
}
