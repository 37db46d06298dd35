package domain

import "studioflow-backend/pkg/dateutil"

// SourceCollection tags which backing store an occurrence came from.
// Reschedule writes are routed by this tag; the two collections must
// never be conflated.
type SourceCollection string

const (
	SourceEvents SourceCollection = "events"
	SourceTasks  SourceCollection = "tasks"
)

// OccurrenceKind classifies an occurrence for display and filtering
type OccurrenceKind string

const (
	KindTask      OccurrenceKind = "task"
	KindMeeting   OccurrenceKind = "meeting"
	KindMilestone OccurrenceKind = "milestone"
	KindReminder  OccurrenceKind = "reminder"
)

// ProjectRef is the (id, name) pair shown on calendar entries
type ProjectRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Attendee is one participant of a native event. DisplayName is filled
// by best-effort enrichment and may be empty.
type Attendee struct {
	UserID         string `json:"user_id"`
	Role           string `json:"role"`
	ResponseStatus string `json:"response_status"`
	DisplayName    string `json:"display_name,omitempty"`
}

// Occurrence is the normalized calendar unit: either a native event or a
// task surfaced by its due date. Dates are carried as strings exactly as
// the backing store produced them; consumers parse with ParseDateOrNone
// so a malformed date is a typed case, not a crash.
type Occurrence struct {
	ID          string           `json:"id"`
	Source      SourceCollection `json:"source"`
	Kind        OccurrenceKind   `json:"kind"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	StartDate   string           `json:"start_date"`
	EndDate     string           `json:"end_date,omitempty"`
	AllDay      bool             `json:"all_day"`
	Project     *ProjectRef      `json:"project,omitempty"`
	Attendees   []Attendee       `json:"attendees,omitempty"`
	CreatorID   string           `json:"creator_id"`
	CreatorName string           `json:"creator_name,omitempty"`
}

// TaskDerived reports whether the occurrence came from the task
// collection (always all-day, no attendees, due-date reschedule).
func (o *Occurrence) TaskDerived() bool {
	return o.Source == SourceTasks
}

// StartDay returns the occurrence's local calendar day as yyyy-MM-dd.
// ok is false when the stored start date cannot be parsed.
func (o *Occurrence) StartDay() (string, bool) {
	t, ok := dateutil.ParseDateOrNone(o.StartDate)
	if !ok {
		return "", false
	}
	return dateutil.DayKey(t), true
}

// HasAttendee reports whether userID appears in the attendee list
func (o *Occurrence) HasAttendee(userID string) bool {
	for _, a := range o.Attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}
