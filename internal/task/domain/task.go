package domain

import "time"

// Priority represents task priority level
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// TaskStatus represents the current state of a task
type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

// Task represents a unit of project work. Tasks with a due date surface on
// the calendar as task-derived occurrences.
type Task struct {
	ID           string     `json:"id" gorm:"primaryKey"`
	CreatorID    string     `json:"creator_id" gorm:"index;not null"`
	ProjectID    string     `json:"project_id,omitempty" gorm:"index"`
	Title        string     `json:"title" gorm:"not null"`
	Description  string     `json:"description,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Priority     Priority   `json:"priority" gorm:"default:medium"`
	Status       TaskStatus `json:"status" gorm:"default:pending"`
	ReminderAt   *time.Time `json:"reminder_at,omitempty"`              // When to send the push reminder
	ReminderSent bool       `json:"reminder_sent" gorm:"default:false"` // Track if reminder was sent
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// TaskAssignment links a task to a team member working on it
type TaskAssignment struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	TaskID    string    `json:"task_id" gorm:"index:idx_task_user;not null"`
	UserID    string    `json:"user_id" gorm:"index:idx_task_user;index;not null"`
	CreatedAt time.Time `json:"created_at"`
}
