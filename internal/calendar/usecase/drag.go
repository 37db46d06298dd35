package usecase

import (
	"errors"
	"time"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/dateutil"
)

// DragState is the lifecycle phase of a drag session
type DragState string

const (
	DragIdle     DragState = "idle"
	DragDragging DragState = "dragging"
	DragPending  DragState = "pending_confirmation"
	DragCommit   DragState = "committing"
)

var (
	ErrNoActiveDrag      = errors.New("no active drag")
	ErrDragNotPending    = errors.New("no reschedule pending confirmation")
	ErrDragBusy          = errors.New("reschedule already committing")
	ErrUnparseableDates  = errors.New("occurrence dates cannot be parsed")
	ErrInvalidTargetDay  = errors.New("invalid target day")
	ErrUnknownCollection = errors.New("unknown source collection")
)

// ReschedulePreview describes the pending date change a drop produced,
// shown for confirmation before anything is written.
type ReschedulePreview struct {
	OccurrenceID string                  `json:"occurrence_id"`
	Source       domain.SourceCollection `json:"source"`
	Title        string                  `json:"title"`
	TargetDay    string                  `json:"target_day"`
	NewStart     time.Time               `json:"new_start"`
	NewEnd       *time.Time              `json:"new_end,omitempty"`
}

// DragSession tracks one user's in-flight drag. Transitions are
// idle -> dragging -> pending_confirmation -> committing, then back to
// idle on success, cancel, or failure. No write happens before Confirm.
type DragSession struct {
	State    DragState          `json:"state"`
	Origin   *domain.Occurrence `json:"origin,omitempty"`
	HoverDay string             `json:"hover_day,omitempty"`
	Preview  *ReschedulePreview `json:"preview,omitempty"`
}

// NewDragSession returns an idle session
func NewDragSession() *DragSession {
	return &DragSession{State: DragIdle}
}

// Start begins dragging an occurrence. Starting over an existing drag
// replaces it; an unconfirmed previous drag is simply discarded.
func (d *DragSession) Start(occ domain.Occurrence) error {
	if d.State == DragCommit {
		return ErrDragBusy
	}
	d.State = DragDragging
	d.Origin = &occ
	d.HoverDay = ""
	d.Preview = nil
	return nil
}

// Over records the day currently hovered. Unparseable days are ignored
// so a stray value cannot poison the eventual drop.
func (d *DragSession) Over(day string) error {
	if d.State != DragDragging {
		return ErrNoActiveDrag
	}
	if _, ok := dateutil.ParseDateOrNone(day); !ok {
		return ErrInvalidTargetDay
	}
	d.HoverDay = day
	return nil
}

// Drop ends the drag. With a hovered day that differs from the origin
// day it computes a preview and moves to pending_confirmation; without
// one, or when dropped back on the same day, the session resets and
// nothing is written.
func (d *DragSession) Drop() (*ReschedulePreview, error) {
	if d.State != DragDragging {
		return nil, ErrNoActiveDrag
	}
	if d.HoverDay == "" {
		d.Reset()
		return nil, nil
	}

	originDay, ok := d.Origin.StartDay()
	if !ok {
		d.Reset()
		return nil, ErrUnparseableDates
	}
	if d.HoverDay == originDay {
		d.Reset()
		return nil, nil
	}

	preview, err := buildPreview(d.Origin, d.HoverDay)
	if err != nil {
		d.Reset()
		return nil, err
	}

	d.State = DragPending
	d.Preview = preview
	return preview, nil
}

// Cancel discards the session without writing anything
func (d *DragSession) Cancel() {
	if d.State == DragCommit {
		return
	}
	d.Reset()
}

// BeginCommit moves a pending session into committing and returns the
// preview to write. The caller must finish with Reset.
func (d *DragSession) BeginCommit() (*ReschedulePreview, error) {
	if d.State != DragPending || d.Preview == nil {
		return nil, ErrDragNotPending
	}
	d.State = DragCommit
	return d.Preview, nil
}

// Reset returns the session to idle
func (d *DragSession) Reset() {
	d.State = DragIdle
	d.Origin = nil
	d.HoverDay = ""
	d.Preview = nil
}

// buildPreview computes the rescheduled dates for a target day. A
// task-derived occurrence gets its due date replaced with the target
// day; a native event keeps its start clock time and, when it spans
// multiple days, its full duration: the end moves by the same number of
// whole days as the start.
func buildPreview(origin *domain.Occurrence, targetDay string) (*ReschedulePreview, error) {
	target, ok := dateutil.ParseDateOrNone(targetDay)
	if !ok {
		return nil, ErrInvalidTargetDay
	}

	preview := &ReschedulePreview{
		OccurrenceID: origin.ID,
		Source:       origin.Source,
		Title:        origin.Title,
		TargetDay:    dateutil.DayKey(target),
	}

	if origin.TaskDerived() {
		preview.NewStart = dateutil.TruncateToDay(target)
		return preview, nil
	}

	start, ok := dateutil.ParseDateOrNone(origin.StartDate)
	if !ok {
		return nil, ErrUnparseableDates
	}
	preview.NewStart = dateutil.ShiftPreservingClock(start, target)

	if origin.EndDate != "" {
		end, ok := dateutil.ParseDateOrNone(origin.EndDate)
		if !ok {
			return nil, ErrUnparseableDates
		}
		delta := dateutil.DaysBetween(dateutil.TruncateToDay(start), dateutil.TruncateToDay(target))
		newEnd := dateutil.AddDays(end, delta)
		preview.NewEnd = &newEnd
	}

	return preview, nil
}
