package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	authrepo "studioflow-backend/internal/auth/repository"
	"studioflow-backend/internal/task/repository"
	"studioflow-backend/pkg/fcm"
)

// ReminderScheduler sends push reminders for tasks whose reminder time
// has passed.
type ReminderScheduler struct {
	taskRepo  repository.TaskRepository
	tokenRepo authrepo.DeviceTokenRepository
	fcmClient *fcm.Client
	interval  time.Duration
	stopChan  chan struct{}
}

// NewReminderScheduler creates a new scheduler
func NewReminderScheduler(
	taskRepo repository.TaskRepository,
	tokenRepo authrepo.DeviceTokenRepository,
	fcmClient *fcm.Client,
) *ReminderScheduler {
	return &ReminderScheduler{
		taskRepo:  taskRepo,
		tokenRepo: tokenRepo,
		fcmClient: fcmClient,
		interval:  1 * time.Minute,
		stopChan:  make(chan struct{}),
	}
}

// Start begins the scheduler loop
func (s *ReminderScheduler) Start() {
	if s.fcmClient == nil {
		log.Println("[ReminderScheduler] FCM client not available, scheduler disabled")
		return
	}

	log.Printf("[ReminderScheduler] Starting reminder scheduler (interval: %s)", s.interval)

	go func() {
		// Run immediately on start
		s.checkAndSendReminders()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.checkAndSendReminders()
			case <-s.stopChan:
				log.Println("[ReminderScheduler] Scheduler stopped")
				return
			}
		}
	}()
}

// Stop gracefully stops the scheduler
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

// checkAndSendReminders finds tasks with due reminders and pushes them
// to each of the creator's registered devices
func (s *ReminderScheduler) checkAndSendReminders() {
	now := time.Now()

	tasks, err := s.taskRepo.FindPendingReminders(now)
	if err != nil {
		log.Printf("[ReminderScheduler] Error finding pending reminders: %v", err)
		return
	}

	if len(tasks) == 0 {
		return
	}

	log.Printf("[ReminderScheduler] Found %d tasks with pending reminders", len(tasks))

	for _, task := range tasks {
		tokens, err := s.tokenRepo.GetTokensByUserID(task.CreatorID)
		if err != nil {
			log.Printf("[ReminderScheduler] Error getting device tokens for user %s: %v", task.CreatorID, err)
			continue
		}

		if len(tokens) == 0 {
			// No registered devices; don't retry this reminder forever
			s.taskRepo.MarkReminderSent(task.ID)
			continue
		}

		title := "Reminder: " + task.Title
		body := task.Description
		if body == "" {
			body = "You have a task coming up"
		}
		if task.DueDate != nil {
			body = fmt.Sprintf("%s\nDue %s", body, task.DueDate.Format("Jan 2, 2006 15:04"))
		}

		var tokenStrings []string
		for _, t := range tokens {
			tokenStrings = append(tokenStrings, t.Token)
		}

		notification := fcm.NotificationData{
			Title: title,
			Body:  body,
			Data: map[string]string{
				"type":         "task_reminder",
				"task_id":      task.ID,
				"priority":     string(task.Priority),
				"click_action": "/dashboard/tasks",
			},
		}

		failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokenStrings, notification)
		if err != nil {
			log.Printf("[ReminderScheduler] Error sending reminder for task %s: %v", task.ID, err)
		} else {
			log.Printf("[ReminderScheduler] Sent reminder for task '%s' to %d devices", task.Title, len(tokenStrings)-len(failedTokens))
		}

		// Cleanup failed tokens
		for _, token := range failedTokens {
			s.tokenRepo.DeleteToken(token)
		}

		// Mark reminder as sent regardless of push outcome to avoid spamming
		if err := s.taskRepo.MarkReminderSent(task.ID); err != nil {
			log.Printf("[ReminderScheduler] Error marking reminder as sent for task %s: %v", task.ID, err)
		}
	}
}
