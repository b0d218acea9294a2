package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gamelife/internal/storage"
)

// AddTaskInput carries what the presentation layer collected. Due-date
// format validation is the caller's job; the engine only requires a
// non-empty title and a valid priority.
type AddTaskInput struct {
	Title       string
	Priority    Priority
	DueDate     *time.Time
	Description string
}

// AddTask persists a new pending task for the current user and appends it to
// the active set.
func (s *Service) AddTask(ctx context.Context, in AddTaskInput) (*Task, error) {
	if err := s.requireSession(); err != nil {
		return nil, err
	}
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = DefaultPriority
	}
	if !priority.IsValid() {
		return nil, fmt.Errorf("invalid priority: %q", priority)
	}

	now := s.now().UTC()
	id, err := storage.NewTaskRepo(s.db).Insert(ctx, storage.TaskInsert{
		UserID:      s.user.ID,
		Title:       title,
		Priority:    string(priority),
		Status:      string(StatusPending),
		DueDate:     in.DueDate,
		Description: in.Description,
		CreatedAt:   now,
	})
	if err != nil {
		return nil, err
	}

	task := &Task{
		ID:          id,
		Title:       title,
		Priority:    priority,
		Status:      StatusPending,
		DueDate:     in.DueDate,
		Description: in.Description,
		CreatedAt:   now,
	}
	s.active = append(s.active, task)
	return task, nil
}

// DeleteTask removes an active task from the session and the store. Terminal
// tasks are immutable and cannot be deleted.
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	if err := s.requireSession(); err != nil {
		return err
	}
	idx, task := s.findActive(id)
	if task == nil {
		return UnknownTaskError{TaskID: id}
	}
	if err := storage.NewTaskRepo(s.db).Delete(ctx, task.ID); err != nil {
		return err
	}
	s.active = append(s.active[:idx], s.active[idx+1:]...)
	return nil
}

// CheckOverdueTasks flags active tasks whose due date has passed and returns
// how many it flipped. The flag is advisory: overdue tasks stay in the
// active set and can still be completed or failed.
func (s *Service) CheckOverdueTasks(ctx context.Context) (int, error) {
	if err := s.requireSession(); err != nil {
		return 0, err
	}
	now := s.now().UTC()
	repo := storage.NewTaskRepo(s.db)

	flipped := 0
	for _, t := range s.active {
		if t.Status == StatusOverdue || t.DueDate == nil || !t.DueDate.Before(now) {
			continue
		}
		if err := repo.UpdateStatus(ctx, t.ID, string(StatusOverdue), nil); err != nil {
			return flipped, err
		}
		t.Status = StatusOverdue
		flipped++
	}
	return flipped, nil
}

// ActiveTasks returns a freshly ordered snapshot of the active set. The
// underlying set is never reordered.
func (s *Service) ActiveTasks(order SortOrder) []Task {
	out := make([]Task, 0, len(s.active))
	for _, t := range s.active {
		out = append(out, *t)
	}

	switch order {
	case SortByPriority:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Priority.SortRank() < out[j].Priority.SortRank()
		})
	case SortByDueDate:
		// Tasks without a due date sort last.
		sort.SliceStable(out, func(i, j int) bool {
			di, dj := out[i].DueDate, out[j].DueDate
			switch {
			case di == nil:
				return false
			case dj == nil:
				return true
			default:
				return di.Before(*dj)
			}
		})
	}
	return out
}

// CompletedTasks returns a snapshot of the completed set in completion order.
func (s *Service) CompletedTasks() []Task {
	out := make([]Task, 0, len(s.completed))
	for _, t := range s.completed {
		out = append(out, *t)
	}
	return out
}

// FailedTasks returns a snapshot of the failed set.
func (s *Service) FailedTasks() []Task {
	out := make([]Task, 0, len(s.failed))
	for _, t := range s.failed {
		out = append(out, *t)
	}
	return out
}
