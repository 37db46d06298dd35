package repository

import (
	"time"

	"studioflow-backend/internal/event/domain"
)

// EventRepository defines the interface for native calendar event access.
// It is the event half of the calendar's occurrence store; UpdateDates is
// the reschedule write target for native events.
type EventRepository interface {
	// Create creates a new event
	Create(event *domain.Event) error

	// FindByID finds an event by its ID
	FindByID(id string) (*domain.Event, error)

	// FindForUser returns events the user created or attends
	FindForUser(userID string) ([]*domain.Event, error)

	// UpdateDates sets only the start/end timestamps (drag-reschedule write)
	UpdateDates(id string, start time.Time, end *time.Time) error

	// Update updates an existing event
	Update(event *domain.Event) error

	// Delete deletes an event by ID
	Delete(id string) error

	// AddAttendee links a user to an event
	AddAttendee(attendee *domain.EventAttendee) error

	// RemoveAttendee removes a user from an event
	RemoveAttendee(eventID, userID string) error

	// UpdateAttendeeResponse records an attendee's RSVP
	UpdateAttendeeResponse(eventID, userID string, status domain.ResponseStatus) error

	// ListAttendees returns attendees of one event, in creation order
	ListAttendees(eventID string) ([]*domain.EventAttendee, error)

	// ListAttendeesForEvents batch-loads attendees for many events
	ListAttendeesForEvents(eventIDs []string) (map[string][]*domain.EventAttendee, error)

	// ListEventIDsAttendedBy returns ids of events the user attends
	// (the assignment-store join used by the assignee filter)
	ListEventIDsAttendedBy(userID string) ([]string, error)
}
