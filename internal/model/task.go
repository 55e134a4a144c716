package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// File size formatting constants
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// TaskIDPrefix prefixes every generated task ID
const TaskIDPrefix = "task-"

// ErrInvalidTransition is returned when a status change would move a task backwards
var ErrInvalidTransition = errors.New("invalid task status transition")

// UploadTask represents the upload state bound to one SelectedFile
type UploadTask struct {
	ID         string
	File       SelectedFile
	Status     TaskStatus
	BytesSent  int64     // request body bytes handed to the connection
	BytesTotal int64     // request body length, UnknownSize if not computable
	Attempt    int       // 1 for the first upload of a file, incremented on retry
	LastError  string    // last error message if any
	StartedAt  time.Time // when the request was issued
	FinishedAt time.Time // when a terminal state was reached
}

// NewUploadTask creates a pending task for file
func NewUploadTask(file SelectedFile) *UploadTask {
	return &UploadTask{
		ID:         generateTaskID(),
		File:       file,
		Status:     TaskStatusPending,
		BytesTotal: UnknownSize,
		Attempt:    1,
	}
}

// Transition moves the task to next, refusing anything but a forward move
func (t *UploadTask) Transition(next TaskStatus) error {
	if !t.Status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, t.Status, next)
	}

	now := time.Now()
	switch {
	case next == TaskStatusInProgress:
		t.StartedAt = now
	case next.IsFinished():
		t.FinishedAt = now
	}
	t.Status = next
	return nil
}

// Progress returns the current byte progress of the task
func (t *UploadTask) Progress() Progress {
	return Progress{Sent: t.BytesSent, Total: t.BytesTotal}
}

// GetDisplayName returns the file name, falling back to the local path
func (t *UploadTask) GetDisplayName() string {
	if name := strings.TrimSpace(t.File.Name); name != "" {
		return name
	}
	return t.File.Path
}

// GetSizeString returns the file size in human readable form, or "—" if unknown
func (t *UploadTask) GetSizeString() string {
	if !t.File.SizeKnown() {
		return "—"
	}
	return FormatFileSize(t.File.Size)
}

// FormatFileSize formats file size in bytes to human readable format
func FormatFileSize(bytes int64) string {
	if bytes < FileSizeUnit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(FileSizeUnit), 0
	for n := bytes / FileSizeUnit; n >= FileSizeUnit; n /= FileSizeUnit {
		div *= FileSizeUnit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), FileSizeUnits[exp])
}

// generateTaskID generates a unique task ID
func generateTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}
