package repository

import (
	"errors"
	"time"

	"studioflow-backend/internal/task/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormTaskRepository implements TaskRepository using GORM
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-based TaskRepository
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Create(task *domain.Task) error {
	if task.ID == "" {
		task.ID = uuid.New().String()
	}
	task.CreatedAt = time.Now()
	task.UpdatedAt = time.Now()
	return r.db.Create(task).Error
}

func (r *gormTaskRepository) FindByID(id string) (*domain.Task, error) {
	var task domain.Task
	err := r.db.Where("id = ?", id).First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &task, nil
}

func (r *gormTaskRepository) FindByUserID(userID string, status *domain.TaskStatus, limit, offset int) ([]*domain.Task, int64, error) {
	var tasks []*domain.Task
	var total int64

	query := r.db.Model(&domain.Task{}).
		Where("creator_id = ? OR id IN (?)", userID,
			r.db.Model(&domain.TaskAssignment{}).Select("task_id").Where("user_id = ?", userID))

	if status != nil {
		query = query.Where("status = ?", *status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Due-dated tasks first (nulls last), then newest
	err := query.Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END, due_date ASC, created_at DESC").
		Limit(limit).Offset(offset).Find(&tasks).Error

	return tasks, total, err
}

func (r *gormTaskRepository) FindWithDueDate(userID string) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.
		Where("due_date IS NOT NULL").
		Where("creator_id = ? OR id IN (?)", userID,
			r.db.Model(&domain.TaskAssignment{}).Select("task_id").Where("user_id = ?", userID)).
		Order("due_date ASC").
		Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) UpdateDueDate(id string, due time.Time) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"due_date":   due,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormTaskRepository) Update(task *domain.Task) error {
	task.UpdatedAt = time.Now()
	return r.db.Save(task).Error
}

func (r *gormTaskRepository) Delete(id string) error {
	if err := r.db.Where("task_id = ?", id).Delete(&domain.TaskAssignment{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Task{}, "id = ?", id).Error
}

func (r *gormTaskRepository) Assign(taskID, userID string) error {
	assignment := &domain.TaskAssignment{
		ID:        uuid.New().String(),
		TaskID:    taskID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	return r.db.Create(assignment).Error
}

func (r *gormTaskRepository) Unassign(taskID, userID string) error {
	return r.db.Where("task_id = ? AND user_id = ?", taskID, userID).
		Delete(&domain.TaskAssignment{}).Error
}

func (r *gormTaskRepository) ListAssignees(taskID string) ([]string, error) {
	var userIDs []string
	err := r.db.Model(&domain.TaskAssignment{}).
		Where("task_id = ?", taskID).
		Order("created_at ASC").
		Pluck("user_id", &userIDs).Error
	return userIDs, err
}

func (r *gormTaskRepository) ListTaskIDsAssignedTo(userID string) ([]string, error) {
	var taskIDs []string
	err := r.db.Model(&domain.TaskAssignment{}).
		Where("user_id = ?", userID).
		Pluck("task_id", &taskIDs).Error
	return taskIDs, err
}

func (r *gormTaskRepository) FindPendingReminders(now time.Time) ([]*domain.Task, error) {
	var tasks []*domain.Task
	err := r.db.Where("reminder_at <= ? AND reminder_sent = ? AND status != ?",
		now, false, domain.TaskStatusCompleted).Find(&tasks).Error
	return tasks, err
}

func (r *gormTaskRepository) MarkReminderSent(id string) error {
	return r.db.Model(&domain.Task{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"reminder_sent": true,
			"updated_at":    time.Now(),
		}).Error
}
