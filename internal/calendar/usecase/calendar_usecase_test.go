package usecase

import (
	"errors"
	"testing"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/cache"
)

type fakeNotifier struct {
	calls    int
	lastOcc  domain.Occurrence
	lastPrev ReschedulePreview
}

func (f *fakeNotifier) OccurrenceRescheduled(userID string, occ domain.Occurrence, preview ReschedulePreview) {
	f.calls++
	f.lastOcc = occ
	f.lastPrev = preview
}

func newTestCalendar(events *fakeEventSource, tasks *fakeTaskSource) (CalendarUsecase, *SourceService, *fakeNotifier) {
	source := NewSourceService(events, tasks, nil, cache.New())
	notifier := &fakeNotifier{}
	uc := NewCalendarUsecase(source, NewRescheduleWriter(events, tasks), notifier, nil)
	return uc, source, notifier
}

func TestConfirmDragCommitsEventAndInvalidates(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{multiDayEvent()}}
	tasks := &fakeTaskSource{}
	uc, _, notifier := newTestCalendar(events, tasks)

	if _, err := uc.StartDrag("u1", "e1"); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, err := uc.DragOver("u1", "2024-06-15"); err != nil {
		t.Fatalf("DragOver: %v", err)
	}
	session, err := uc.DropDrag("u1")
	if err != nil {
		t.Fatalf("DropDrag: %v", err)
	}
	if session.State != DragPending {
		t.Fatalf("session state = %s, want pending_confirmation", session.State)
	}

	preview, err := uc.ConfirmDrag("u1")
	if err != nil {
		t.Fatalf("ConfirmDrag: %v", err)
	}

	if events.updatedID != "e1" {
		t.Errorf("writer updated %q, want e1", events.updatedID)
	}
	if got := events.updatedStart.Format("2006-01-02 15:04"); got != "2024-06-15 09:00" {
		t.Errorf("written start = %s, want 2024-06-15 09:00", got)
	}
	if events.updatedEnd == nil {
		t.Fatal("written end missing")
	}
	if got := events.updatedEnd.Format("2006-01-02 15:04"); got != "2024-06-17 17:00" {
		t.Errorf("written end = %s, want 2024-06-17 17:00", got)
	}
	if tasks.updateCalls != 0 {
		t.Error("event reschedule must not touch the task store")
	}
	if notifier.calls != 1 || notifier.lastPrev.TargetDay != preview.TargetDay {
		t.Errorf("notifier calls = %d, last = %+v", notifier.calls, notifier.lastPrev)
	}

	// Session is idle again and the next fetch misses the cache.
	if _, err := uc.ConfirmDrag("u1"); !errors.Is(err, ErrDragNotPending) {
		t.Errorf("second confirm = %v, want ErrDragNotPending", err)
	}
	result, err := uc.GetOccurrences("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("GetOccurrences: %v", err)
	}
	if result.FromCache {
		t.Error("fetch after confirm should miss the cache")
	}
}

func TestConfirmDragTaskRoutesToTaskStore(t *testing.T) {
	events := &fakeEventSource{}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{taskOcc("t1", "Draft brief", "2024-06-11")}}
	uc, _, _ := newTestCalendar(events, tasks)

	if _, err := uc.StartDrag("u1", "t1"); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, err := uc.DragOver("u1", "2024-06-20"); err != nil {
		t.Fatalf("DragOver: %v", err)
	}
	if _, err := uc.DropDrag("u1"); err != nil {
		t.Fatalf("DropDrag: %v", err)
	}
	if _, err := uc.ConfirmDrag("u1"); err != nil {
		t.Fatalf("ConfirmDrag: %v", err)
	}

	if tasks.updatedID != "t1" {
		t.Errorf("task writer updated %q, want t1", tasks.updatedID)
	}
	if got := tasks.updatedDue.Format("2006-01-02"); got != "2024-06-20" {
		t.Errorf("written due = %s, want 2024-06-20", got)
	}
	if events.updateCalls != 0 {
		t.Error("task reschedule must not touch the event store")
	}
}

func TestConfirmDragWriteFailureLeavesNothingBehind(t *testing.T) {
	events := &fakeEventSource{
		occurrences: []domain.Occurrence{multiDayEvent()},
		updateErr:   errors.New("db down"),
	}
	tasks := &fakeTaskSource{}
	uc, _, notifier := newTestCalendar(events, tasks)

	if _, err := uc.StartDrag("u1", "e1"); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, err := uc.DragOver("u1", "2024-06-15"); err != nil {
		t.Fatalf("DragOver: %v", err)
	}
	if _, err := uc.DropDrag("u1"); err != nil {
		t.Fatalf("DropDrag: %v", err)
	}

	if _, err := uc.ConfirmDrag("u1"); err == nil {
		t.Fatal("expected write failure to surface")
	}
	if notifier.calls != 0 {
		t.Error("failed commit must not notify")
	}
	// Session has reset, a new drag can start cleanly.
	if _, err := uc.ConfirmDrag("u1"); !errors.Is(err, ErrDragNotPending) {
		t.Errorf("confirm after failed commit = %v, want ErrDragNotPending", err)
	}
	if _, err := uc.StartDrag("u1", "e1"); err != nil {
		t.Errorf("new drag after failed commit: %v", err)
	}
}

func TestCancelDragWritesNothing(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{multiDayEvent()}}
	tasks := &fakeTaskSource{}
	uc, _, notifier := newTestCalendar(events, tasks)

	if _, err := uc.StartDrag("u1", "e1"); err != nil {
		t.Fatalf("StartDrag: %v", err)
	}
	if _, err := uc.DragOver("u1", "2024-06-15"); err != nil {
		t.Fatalf("DragOver: %v", err)
	}
	if _, err := uc.DropDrag("u1"); err != nil {
		t.Fatalf("DropDrag: %v", err)
	}

	uc.CancelDrag("u1")

	if events.updateCalls != 0 || tasks.updateCalls != 0 {
		t.Error("cancel must not write")
	}
	if notifier.calls != 0 {
		t.Error("cancel must not notify")
	}
}

func TestStartDragUnknownOccurrence(t *testing.T) {
	uc, _, _ := newTestCalendar(&fakeEventSource{}, &fakeTaskSource{})

	if _, err := uc.StartDrag("u1", "missing"); !errors.Is(err, ErrOccurrenceNotFound) {
		t.Errorf("StartDrag(missing) = %v, want ErrOccurrenceNotFound", err)
	}
}

func TestOneShotReschedule(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{multiDayEvent()}}
	tasks := &fakeTaskSource{}
	uc, _, notifier := newTestCalendar(events, tasks)

	preview, err := uc.Reschedule("u1", "e1", "2024-06-15")
	if err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if preview.TargetDay != "2024-06-15" {
		t.Errorf("TargetDay = %s, want 2024-06-15", preview.TargetDay)
	}
	if events.updatedID != "e1" {
		t.Errorf("writer updated %q, want e1", events.updatedID)
	}
	if notifier.calls != 1 {
		t.Errorf("notifier calls = %d, want 1", notifier.calls)
	}
}

func TestOneShotRescheduleSameDayWritesNothing(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{multiDayEvent()}}
	tasks := &fakeTaskSource{}
	uc, _, notifier := newTestCalendar(events, tasks)

	if _, err := uc.Reschedule("u1", "e1", "2024-06-10"); err != nil {
		t.Fatalf("Reschedule: %v", err)
	}
	if events.updateCalls != 0 {
		t.Error("same-day reschedule must not write")
	}
	if notifier.calls != 0 {
		t.Error("same-day reschedule must not notify")
	}
}

func TestGetDayIndexMonthFilter(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "June thing", "2024-06-10T09:00:00"),
		eventOcc("e2", "July thing", "2024-07-02T09:00:00"),
	}}
	uc, _, _ := newTestCalendar(events, &fakeTaskSource{})

	summaries, _, err := uc.GetDayIndex("u1", domain.FilterState{}, "2024-06")
	if err != nil {
		t.Fatalf("GetDayIndex: %v", err)
	}
	if len(summaries) != 1 || summaries[0].Day != "2024-06-10" {
		t.Errorf("summaries = %+v, want only 2024-06-10", summaries)
	}
}

func TestGetDayDetailSplits(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00"),
	}}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Draft brief", "2024-06-10"),
	}}
	uc, _, _ := newTestCalendar(events, tasks)

	detail, err := uc.GetDayDetail("u1", domain.FilterState{}, "2024-06-10")
	if err != nil {
		t.Fatalf("GetDayDetail: %v", err)
	}
	if len(detail.Events) != 1 || detail.Events[0].ID != "e1" {
		t.Errorf("Events = %+v, want only e1", detail.Events)
	}
	if len(detail.Tasks) != 1 || detail.Tasks[0].ID != "t1" {
		t.Errorf("Tasks = %+v, want only t1", detail.Tasks)
	}
}

func TestSearchSuggestionsRanked(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Launch party", "2024-06-10T09:00:00"),
		eventOcc("e2", "Retro", "2024-06-11T09:00:00"),
	}}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Prepare launch checklist", "2024-06-11"),
	}}
	uc, _, _ := newTestCalendar(events, tasks)

	suggestions, err := uc.SearchSuggestions("u1", "launch", 10)
	if err != nil {
		t.Fatalf("SearchSuggestions: %v", err)
	}
	if len(suggestions) != 2 {
		t.Fatalf("suggestions = %+v, want 2 launch matches", suggestions)
	}
	for _, s := range suggestions {
		if s.ID == "e2" {
			t.Error("Retro should not match launch")
		}
	}

	empty, err := uc.SearchSuggestions("u1", "   ", 10)
	if err != nil {
		t.Fatalf("SearchSuggestions(blank): %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("blank query should return nothing, got %+v", empty)
	}
}
