package domain

import "time"

// EventKind classifies a native calendar event
type EventKind string

const (
	EventKindMeeting   EventKind = "meeting"
	EventKindMilestone EventKind = "milestone"
	EventKindReminder  EventKind = "reminder"
	EventKindTask      EventKind = "task"
)

// ValidKind reports whether k is a known event kind
func ValidKind(k EventKind) bool {
	switch k {
	case EventKindMeeting, EventKindMilestone, EventKindReminder, EventKindTask:
		return true
	}
	return false
}

// AttendeeRole describes a participant's role on an event
type AttendeeRole string

const (
	RoleOrganizer AttendeeRole = "organizer"
	RoleRequired  AttendeeRole = "required"
	RoleOptional  AttendeeRole = "optional"
)

// ResponseStatus is an attendee's RSVP state
type ResponseStatus string

const (
	ResponsePending  ResponseStatus = "pending"
	ResponseAccepted ResponseStatus = "accepted"
	ResponseDeclined ResponseStatus = "declined"
)

// Event represents an ad-hoc calendar entry (meeting, milestone, reminder).
// EndAt, when set, must not precede StartAt; multi-day events carry both.
type Event struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	CreatorID   string     `json:"creator_id" gorm:"index;not null"`
	ProjectID   string     `json:"project_id,omitempty" gorm:"index"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description,omitempty"`
	Kind        EventKind  `json:"kind" gorm:"default:meeting"`
	StartAt     time.Time  `json:"start_at" gorm:"index;not null"`
	EndAt       *time.Time `json:"end_at,omitempty"`
	AllDay      bool       `json:"all_day" gorm:"default:false"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// EventAttendee links a team member to an event
type EventAttendee struct {
	ID             string         `json:"id" gorm:"primaryKey"`
	EventID        string         `json:"event_id" gorm:"index:idx_event_user;not null"`
	UserID         string         `json:"user_id" gorm:"index:idx_event_user;index;not null"`
	Role           AttendeeRole   `json:"role" gorm:"default:required"`
	ResponseStatus ResponseStatus `json:"response_status" gorm:"default:pending"`
	CreatedAt      time.Time      `json:"created_at"`
}
