package usecase

import "studioflow-backend/internal/event/domain"

// CreateEventRequest carries the fields for a new calendar event
type CreateEventRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	ProjectID   string   `json:"project_id"`
	Kind        string   `json:"kind"`
	StartAt     string   `json:"start_at" binding:"required"`
	EndAt       string   `json:"end_at"`
	AllDay      bool     `json:"all_day"`
	AttendeeIDs []string `json:"attendee_ids"`
}

// EventUpdateRequest represents the fields that can be updated
type EventUpdateRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	ProjectID   *string `json:"project_id,omitempty"`
	Kind        *string `json:"kind,omitempty"`
	StartAt     *string `json:"start_at,omitempty"`
	EndAt       *string `json:"end_at,omitempty"`
	AllDay      *bool   `json:"all_day,omitempty"`
}

// EventUsecase defines the interface for calendar event business logic
type EventUsecase interface {
	CreateEvent(userID string, req CreateEventRequest) (*domain.Event, error)
	GetEventByID(userID, eventID string) (*domain.Event, error)
	GetUserEvents(userID string) ([]*domain.Event, error)
	UpdateEvent(userID, eventID string, updates EventUpdateRequest) (*domain.Event, error)
	DeleteEvent(userID, eventID string) error
	AddAttendee(userID, eventID, attendeeID, role string) error
	RemoveAttendee(userID, eventID, attendeeID string) error
	RespondToEvent(userID, eventID, response string) error
}
