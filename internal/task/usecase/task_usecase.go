package usecase

import (
	"errors"
	"log"

	"studioflow-backend/internal/task/domain"
	"studioflow-backend/internal/task/repository"
	"studioflow-backend/pkg/cache"
	"studioflow-backend/pkg/dateutil"
)

// taskUsecase implements TaskUsecase interface
type taskUsecase struct {
	taskRepo   repository.TaskRepository
	queryCache *cache.Store
}

// NewTaskUsecase creates a new instance of taskUsecase
func NewTaskUsecase(taskRepo repository.TaskRepository, queryCache *cache.Store) TaskUsecase {
	return &taskUsecase{
		taskRepo:   taskRepo,
		queryCache: queryCache,
	}
}

func (u *taskUsecase) CreateTask(userID, title, description, projectID string, dueDate, reminderAt *string, priority string, assigneeIDs []string) (*domain.Task, error) {
	task := &domain.Task{
		CreatorID:   userID,
		ProjectID:   projectID,
		Title:       title,
		Description: description,
		Priority:    parsePriority(priority),
		Status:      domain.TaskStatusPending,
	}

	if dueDate != nil && *dueDate != "" {
		if t, ok := dateutil.ParseDateOrNone(*dueDate); ok {
			task.DueDate = &t
		}
	}

	if reminderAt != nil && *reminderAt != "" {
		if t, ok := dateutil.ParseDateOrNone(*reminderAt); ok {
			task.ReminderAt = &t
		}
	}

	if err := u.taskRepo.Create(task); err != nil {
		return nil, err
	}

	for _, assigneeID := range assigneeIDs {
		if err := u.taskRepo.Assign(task.ID, assigneeID); err != nil {
			log.Printf("[TaskUsecase] Failed to assign user %s to task %s: %v", assigneeID, task.ID, err)
		}
	}

	u.invalidateCalendar()
	return task, nil
}

func (u *taskUsecase) GetTaskByID(userID, taskID string) (*domain.Task, error) {
	task, err := u.taskRepo.FindByID(taskID)
	if err != nil {
		return nil, err
	}
	if task == nil {
		return nil, errors.New("task not found")
	}
	if task.CreatorID != userID && !u.isAssigned(taskID, userID) {
		return nil, errors.New("unauthorized")
	}
	return task, nil
}

func (u *taskUsecase) GetUserTasks(userID string, status *string, limit, offset int) ([]*domain.Task, int64, error) {
	var statusFilter *domain.TaskStatus
	if status != nil && *status != "" {
		s := domain.TaskStatus(*status)
		statusFilter = &s
	}
	return u.taskRepo.FindByUserID(userID, statusFilter, limit, offset)
}

func (u *taskUsecase) UpdateTask(userID, taskID string, updates TaskUpdateRequest) (*domain.Task, error) {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		task.Title = *updates.Title
	}
	if updates.Description != nil {
		task.Description = *updates.Description
	}
	if updates.ProjectID != nil {
		task.ProjectID = *updates.ProjectID
	}
	if updates.Priority != nil {
		task.Priority = parsePriority(*updates.Priority)
	}
	if updates.Status != nil {
		task.Status = domain.TaskStatus(*updates.Status)
	}
	if updates.DueDate != nil {
		if *updates.DueDate == "" {
			task.DueDate = nil
		} else if t, ok := dateutil.ParseDateOrNone(*updates.DueDate); ok {
			task.DueDate = &t
		}
	}
	if updates.ReminderAt != nil {
		if *updates.ReminderAt == "" {
			task.ReminderAt = nil
			task.ReminderSent = false
		} else if t, ok := dateutil.ParseDateOrNone(*updates.ReminderAt); ok {
			task.ReminderAt = &t
			task.ReminderSent = false // Reset reminder status when time changes
		}
	}

	if err := u.taskRepo.Update(task); err != nil {
		return nil, err
	}

	u.invalidateCalendar()
	return task, nil
}

func (u *taskUsecase) DeleteTask(userID, taskID string) error {
	task, err := u.GetTaskByID(userID, taskID)
	if err != nil {
		return err
	}
	if err := u.taskRepo.Delete(task.ID); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *taskUsecase) AssignTask(userID, taskID, assigneeID string) error {
	if _, err := u.GetTaskByID(userID, taskID); err != nil {
		return err
	}
	if u.isAssigned(taskID, assigneeID) {
		return nil
	}
	if err := u.taskRepo.Assign(taskID, assigneeID); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *taskUsecase) UnassignTask(userID, taskID, assigneeID string) error {
	if _, err := u.GetTaskByID(userID, taskID); err != nil {
		return err
	}
	if err := u.taskRepo.Unassign(taskID, assigneeID); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *taskUsecase) isAssigned(taskID, userID string) bool {
	assignees, err := u.taskRepo.ListAssignees(taskID)
	if err != nil {
		return false
	}
	for _, id := range assignees {
		if id == userID {
			return true
		}
	}
	return false
}

// Task writes change what the calendar sees, so drop cached snapshots.
func (u *taskUsecase) invalidateCalendar() {
	if u.queryCache != nil {
		u.queryCache.Invalidate("calendar:occurrences")
	}
}

func parsePriority(p string) domain.Priority {
	switch domain.Priority(p) {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		return domain.Priority(p)
	default:
		return domain.PriorityMedium
	}
}
