package repository

import (
	"time"

	"studioflow-backend/internal/task/domain"
)

// TaskRepository defines the interface for task data access. It is also
// the task half of the calendar's occurrence store: FindWithDueDate feeds
// the task-derived collection and UpdateDueDate is the reschedule write
// target for it.
type TaskRepository interface {
	// Create creates a new task
	Create(task *domain.Task) error

	// FindByID finds a task by its ID
	FindByID(id string) (*domain.Task, error)

	// FindByUserID finds all tasks created by or assigned to a user,
	// with optional status filter
	FindByUserID(userID string, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error)

	// FindWithDueDate returns the user's tasks that carry a due date
	// (the task-derived calendar collection)
	FindWithDueDate(userID string) ([]*domain.Task, error)

	// UpdateDueDate sets only the due date (drag-reschedule write)
	UpdateDueDate(id string, due time.Time) error

	// Update updates an existing task
	Update(task *domain.Task) error

	// Delete deletes a task by ID
	Delete(id string) error

	// Assign links a user to a task; Unassign removes the link
	Assign(taskID, userID string) error
	Unassign(taskID, userID string) error

	// ListAssignees returns the user ids assigned to a task, in
	// assignment order
	ListAssignees(taskID string) ([]string, error)

	// ListTaskIDsAssignedTo returns ids of tasks the user is assigned to
	// (the assignment-store join used by the assignee filter)
	ListTaskIDsAssignedTo(userID string) ([]string, error)

	// FindPendingReminders finds tasks that need reminder notifications:
	// reminder_at <= now AND reminder_sent = false AND status != completed
	FindPendingReminders(now time.Time) ([]*domain.Task, error)

	// MarkReminderSent marks a task's reminder as sent
	MarkReminderSent(id string) error
}
