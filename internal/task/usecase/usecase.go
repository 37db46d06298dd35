package usecase

import "studioflow-backend/internal/task/domain"

// TaskUsecase defines the interface for task business logic
type TaskUsecase interface {
	// CreateTask creates a new task, optionally assigning team members
	CreateTask(userID, title, description, projectID string, dueDate, reminderAt *string, priority string, assigneeIDs []string) (*domain.Task, error)

	// GetTaskByID retrieves a task by ID (with access check)
	GetTaskByID(userID, taskID string) (*domain.Task, error)

	// GetUserTasks retrieves all tasks for a user with optional status filter
	GetUserTasks(userID string, status *string, limit, offset int) ([]*domain.Task, int64, error)

	// UpdateTask updates an existing task
	UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error)

	// DeleteTask deletes a task
	DeleteTask(userID, taskID string) error

	// AssignTask links a team member to a task
	AssignTask(userID, taskID, assigneeID string) error

	// UnassignTask removes a team member from a task
	UnassignTask(userID, taskID, assigneeID string) error
}

// TaskUpdateRequest represents the fields that can be updated
type TaskUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	DueDate     *string `json:"due_date,omitempty"`
	Priority    *string `json:"priority,omitempty"`
	Status      *string `json:"status,omitempty"`
	ReminderAt  *string `json:"reminder_at,omitempty"`
}
