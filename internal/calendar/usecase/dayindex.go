package usecase

import (
	"log"
	"sort"

	"studioflow-backend/internal/calendar/domain"
)

// maxDayMarkers caps how many per-day markers a month cell reports;
// anything beyond it collapses into the overflow badge.
const maxDayMarkers = 3

// DayIndex groups one occurrence snapshot by local calendar day. It
// holds pointers into the snapshot it was built from and is rebuilt,
// never patched, when the snapshot changes.
type DayIndex struct {
	byDay map[string][]*domain.Occurrence
}

// BuildDayIndex groups occurrences by their start day. Occurrences with
// a malformed start date are skipped and logged, never fatal.
func BuildDayIndex(occurrences []domain.Occurrence) *DayIndex {
	byDay := make(map[string][]*domain.Occurrence)
	for i := range occurrences {
		o := &occurrences[i]
		day, ok := o.StartDay()
		if !ok {
			log.Printf("[Calendar] Skipping occurrence %s with unparseable start date %q", o.ID, o.StartDate)
			continue
		}
		byDay[day] = append(byDay[day], o)
	}
	return &DayIndex{byDay: byDay}
}

// CountFor returns how many occurrences start on the given day
func (idx *DayIndex) CountFor(day string) int {
	return len(idx.byDay[day])
}

// HasAny reports whether any occurrence starts on the given day
func (idx *DayIndex) HasAny(day string) bool {
	return len(idx.byDay[day]) > 0
}

// OccurrencesOn returns the occurrences starting on the given day
func (idx *DayIndex) OccurrencesOn(day string) []*domain.Occurrence {
	return idx.byDay[day]
}

// Days returns the sorted list of days that have at least one occurrence
func (idx *DayIndex) Days() []string {
	days := make([]string, 0, len(idx.byDay))
	for day := range idx.byDay {
		days = append(days, day)
	}
	sort.Strings(days)
	return days
}

// DayMarkers is the per-cell summary a month grid renders: at most
// maxDayMarkers kinds plus an overflow count.
type DayMarkers struct {
	Day      string                  `json:"day"`
	Count    int                     `json:"count"`
	Kinds    []domain.OccurrenceKind `json:"kinds"`
	Overflow int                     `json:"overflow"`
}

// MarkerSummary returns the badge summary for one day
func (idx *DayIndex) MarkerSummary(day string) DayMarkers {
	occs := idx.byDay[day]
	markers := DayMarkers{Day: day, Count: len(occs)}
	for _, o := range occs {
		if len(markers.Kinds) == maxDayMarkers {
			markers.Overflow = len(occs) - maxDayMarkers
			break
		}
		markers.Kinds = append(markers.Kinds, o.Kind)
	}
	return markers
}

// Summaries returns marker summaries for every populated day, sorted
func (idx *DayIndex) Summaries() []DayMarkers {
	days := idx.Days()
	out := make([]DayMarkers, 0, len(days))
	for _, day := range days {
		out = append(out, idx.MarkerSummary(day))
	}
	return out
}
