package upload

import (
	"errors"
	"fmt"
)

var (
	// ErrNothingToUpload is returned when an upload is started with no selected files
	ErrNothingToUpload = errors.New("nothing to upload")

	// ErrAlreadyStarted is returned when a sequencer is started a second time
	ErrAlreadyStarted = errors.New("upload already started")

	// ErrNotHalted is returned by Retry and Skip when no failed task is holding the queue
	ErrNotHalted = errors.New("queue is not halted on a failed task")
)

// TransportError is delivered to OnTaskFailed when an upload request could not complete.
type TransportError struct {
	TaskID   string
	FileName string
	Attempt  int
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("upload %s (attempt %d): %v", e.FileName, e.Attempt, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
