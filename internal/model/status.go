package model

// TaskStatus represents the status of an upload task
type TaskStatus string

const (
	// TaskStatusPending means the task is queued but no request was issued
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusInProgress means the request is open and the body is being sent
	TaskStatusInProgress TaskStatus = "InProgress"

	// TaskStatusSucceeded means a response arrived without a transport error
	TaskStatusSucceeded TaskStatus = "Succeeded"

	// TaskStatusFailed means the transport reported an error
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if a request for the task is in flight
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusInProgress
}

// IsFinished returns true if the task is in a terminal state (succeeded or failed)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusSucceeded || ts == TaskStatusFailed
}

// CanTransitionTo reports whether moving from ts to next is a forward transition.
// Pending -> InProgress -> {Succeeded, Failed}; terminal states never move.
func (ts TaskStatus) CanTransitionTo(next TaskStatus) bool {
	switch ts {
	case TaskStatusPending:
		return next == TaskStatusInProgress
	case TaskStatusInProgress:
		return next == TaskStatusSucceeded || next == TaskStatusFailed
	default:
		return false
	}
}
