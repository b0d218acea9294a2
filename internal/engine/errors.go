package engine

import "fmt"

// TaskStateError indicates an operation was attempted on a task that is not
// in the active set. The engine state is left untouched; callers surface the
// message to the user.
type TaskStateError struct {
	TaskID int64
	Status Status
	Op     string
}

func (e TaskStateError) Error() string {
	return fmt.Sprintf("cannot %s task %d in status %q", e.Op, e.TaskID, e.Status)
}

// UnknownTaskError indicates the task id does not exist in the active set.
type UnknownTaskError struct {
	TaskID int64
}

func (e UnknownTaskError) Error() string {
	return fmt.Sprintf("task %d is not an active task", e.TaskID)
}
