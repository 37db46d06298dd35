package usecase

import (
	"time"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/dateutil"
)

// Selection is the selected-day view over one occurrence snapshot.
// Day membership is decided by comparing normalized yyyy-MM-dd strings;
// occurrences whose dates cannot be normalized are excluded from every
// day rather than guessed into one.
type Selection struct {
	Day   string `json:"day"`
	index *DayIndex
}

// NewSelection builds a selection over a snapshot, anchored to day.
// An empty day defaults to today.
func NewSelection(index *DayIndex, day string) *Selection {
	if day == "" {
		day = dateutil.DayKey(time.Now())
	}
	return &Selection{Day: day, index: index}
}

// SelectDate moves the selection to another day
func (s *Selection) SelectDate(day string) {
	s.Day = day
}

// GoToToday resets the selection to the current local day
func (s *Selection) GoToToday() {
	s.Day = dateutil.DayKey(time.Now())
}

// Visible returns every occurrence on the selected day
func (s *Selection) Visible() []*domain.Occurrence {
	return s.index.OccurrencesOn(s.Day)
}

// VisibleEvents returns the selected day's native-event occurrences
func (s *Selection) VisibleEvents() []*domain.Occurrence {
	var out []*domain.Occurrence
	for _, o := range s.index.OccurrencesOn(s.Day) {
		if !o.TaskDerived() {
			out = append(out, o)
		}
	}
	return out
}

// VisibleTasks returns the selected day's task-derived occurrences
func (s *Selection) VisibleTasks() []*domain.Occurrence {
	var out []*domain.Occurrence
	for _, o := range s.index.OccurrencesOn(s.Day) {
		if o.TaskDerived() {
			out = append(out, o)
		}
	}
	return out
}
