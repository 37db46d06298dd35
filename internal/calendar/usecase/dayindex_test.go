package usecase

import (
	"testing"

	"studioflow-backend/internal/calendar/domain"
)

func TestBuildDayIndexGroupsByStartDay(t *testing.T) {
	occurrences := []domain.Occurrence{
		eventOcc("e1", "Morning sync", "2024-06-10T09:00:00Z"),
		eventOcc("e2", "Evening review", "2024-06-10T17:00:00Z"),
		taskOcc("t1", "Draft brief", "2024-06-11"),
	}

	idx := BuildDayIndex(occurrences)

	if got := idx.CountFor("2024-06-10"); got != 2 {
		t.Errorf("CountFor(2024-06-10) = %d, want 2", got)
	}
	if got := idx.CountFor("2024-06-11"); got != 1 {
		t.Errorf("CountFor(2024-06-11) = %d, want 1", got)
	}
	if idx.HasAny("2024-06-12") {
		t.Error("HasAny(2024-06-12) should be false")
	}
	if got := idx.CountFor("2024-06-12"); got != 0 {
		t.Errorf("CountFor on empty day = %d, want 0", got)
	}
}

func TestBuildDayIndexSkipsMalformedDates(t *testing.T) {
	occurrences := []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
		eventOcc("e2", "Broken", "not-a-date"),
		eventOcc("e3", "Empty", ""),
	}

	idx := BuildDayIndex(occurrences)

	total := 0
	for _, day := range idx.Days() {
		total += idx.CountFor(day)
	}
	if total != 1 {
		t.Errorf("index should hold only the parseable occurrence, got %d", total)
	}
}

func TestDaysAreSorted(t *testing.T) {
	occurrences := []domain.Occurrence{
		taskOcc("t1", "Late", "2024-06-20"),
		taskOcc("t2", "Early", "2024-06-01"),
		taskOcc("t3", "Mid", "2024-06-10"),
	}

	days := BuildDayIndex(occurrences).Days()
	want := []string{"2024-06-01", "2024-06-10", "2024-06-20"}
	if len(days) != len(want) {
		t.Fatalf("Days() = %v, want %v", days, want)
	}
	for i := range want {
		if days[i] != want[i] {
			t.Errorf("Days()[%d] = %s, want %s", i, days[i], want[i])
		}
	}
}

func TestMarkerSummaryCapsAtThree(t *testing.T) {
	occurrences := []domain.Occurrence{
		eventOcc("e1", "A", "2024-06-10T09:00:00Z"),
		eventOcc("e2", "B", "2024-06-10T10:00:00Z"),
		taskOcc("t1", "C", "2024-06-10"),
		taskOcc("t2", "D", "2024-06-10"),
		taskOcc("t3", "E", "2024-06-10"),
	}

	markers := BuildDayIndex(occurrences).MarkerSummary("2024-06-10")

	if markers.Count != 5 {
		t.Errorf("Count = %d, want 5", markers.Count)
	}
	if len(markers.Kinds) != maxDayMarkers {
		t.Errorf("Kinds length = %d, want %d", len(markers.Kinds), maxDayMarkers)
	}
	if markers.Overflow != 2 {
		t.Errorf("Overflow = %d, want 2", markers.Overflow)
	}
}

func TestMarkerSummaryUnderCap(t *testing.T) {
	occurrences := []domain.Occurrence{
		eventOcc("e1", "A", "2024-06-10T09:00:00Z"),
		taskOcc("t1", "B", "2024-06-10"),
	}

	markers := BuildDayIndex(occurrences).MarkerSummary("2024-06-10")

	if markers.Count != 2 || len(markers.Kinds) != 2 || markers.Overflow != 0 {
		t.Errorf("unexpected summary under cap: %+v", markers)
	}
}
