package usecase

import (
	"time"

	"studioflow-backend/internal/calendar/domain"
)

// EventSource is the native-event half of the occurrence store
type EventSource interface {
	// ListEvents returns the user's native events as occurrences
	ListEvents(userID string) ([]domain.Occurrence, error)

	// ListEventIDsAttendedBy returns ids of events the user attends
	ListEventIDsAttendedBy(userID string) ([]string, error)

	// UpdateEventDates persists a rescheduled event's timestamps
	UpdateEventDates(id string, start time.Time, end *time.Time) error
}

// TaskSource is the task-derived half of the occurrence store
type TaskSource interface {
	// ListTasksWithDueDate returns the user's due-dated tasks as occurrences
	ListTasksWithDueDate(userID string) ([]domain.Occurrence, error)

	// ListTaskIDsAssignedTo returns ids of tasks the user is assigned to
	ListTaskIDsAssignedTo(userID string) ([]string, error)

	// UpdateTaskDueDate persists a rescheduled task's due date
	UpdateTaskDueDate(id string, due time.Time) error
}

// IdentityStore resolves user ids to display names. Enrichment only:
// failures degrade to missing names, never to a failed fetch.
type IdentityStore interface {
	ResolveDisplayNames(userIDs []string) (map[string]string, error)
}

// RescheduleWriter is the write side of the occurrence store, routed by
// source collection during a confirmed drag.
type RescheduleWriter interface {
	UpdateEventDates(id string, start time.Time, end *time.Time) error
	UpdateTaskDueDate(id string, due time.Time) error
}

// ActivityNotifier receives confirmed reschedules for fan-out (push
// notifications, activity topic). Implementations must be best-effort:
// the write has already committed when this is called.
type ActivityNotifier interface {
	OccurrenceRescheduled(userID string, occ domain.Occurrence, preview ReschedulePreview)
}
