package usecase

import (
	"errors"
	"testing"
	"time"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/cache"
)

type fakeEventSource struct {
	occurrences []domain.Occurrence
	attendedIDs []string
	listErr     error
	attendedErr error

	updatedID    string
	updatedStart time.Time
	updatedEnd   *time.Time
	updateErr    error
	updateCalls  int
}

func (f *fakeEventSource) ListEvents(userID string) ([]domain.Occurrence, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Occurrence, len(f.occurrences))
	copy(out, f.occurrences)
	return out, nil
}

func (f *fakeEventSource) ListEventIDsAttendedBy(userID string) ([]string, error) {
	if f.attendedErr != nil {
		return nil, f.attendedErr
	}
	return f.attendedIDs, nil
}

func (f *fakeEventSource) UpdateEventDates(id string, start time.Time, end *time.Time) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedStart = start
	f.updatedEnd = end
	return nil
}

type fakeTaskSource struct {
	occurrences []domain.Occurrence
	assignedIDs []string
	listErr     error
	assignedErr error

	updatedID   string
	updatedDue  time.Time
	updateErr   error
	updateCalls int
	listCalls   int
}

func (f *fakeTaskSource) ListTasksWithDueDate(userID string) ([]domain.Occurrence, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]domain.Occurrence, len(f.occurrences))
	copy(out, f.occurrences)
	return out, nil
}

func (f *fakeTaskSource) ListTaskIDsAssignedTo(userID string) ([]string, error) {
	if f.assignedErr != nil {
		return nil, f.assignedErr
	}
	return f.assignedIDs, nil
}

func (f *fakeTaskSource) UpdateTaskDueDate(id string, due time.Time) error {
	f.updateCalls++
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updatedID = id
	f.updatedDue = due
	return nil
}

type fakeIdentityStore struct {
	names map[string]string
	err   error
}

func (f *fakeIdentityStore) ResolveDisplayNames(userIDs []string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.names, nil
}

func eventOcc(id, title, start string) domain.Occurrence {
	return domain.Occurrence{
		ID:        id,
		Source:    domain.SourceEvents,
		Kind:      domain.KindMeeting,
		Title:     title,
		StartDate: start,
		CreatorID: "u1",
	}
}

func taskOcc(id, title, day string) domain.Occurrence {
	return domain.Occurrence{
		ID:        id,
		Source:    domain.SourceTasks,
		Kind:      domain.KindTask,
		Title:     title,
		StartDate: day,
		AllDay:    true,
		CreatorID: "u1",
	}
}

func newTestService(events *fakeEventSource, tasks *fakeTaskSource, identity IdentityStore) *SourceService {
	return NewSourceService(events, tasks, identity, cache.New())
}

func TestFetchMergesBothSources(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Draft brief", "2024-06-11"),
	}}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Occurrences) != 2 {
		t.Fatalf("expected 2 occurrences, got %d", len(result.Occurrences))
	}
	if len(result.Notices) != 0 {
		t.Errorf("expected no notices, got %v", result.Notices)
	}
}

func TestFetchEventFailureDegrades(t *testing.T) {
	events := &fakeEventSource{listErr: errors.New("db down")}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Draft brief", "2024-06-11"),
	}}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}
	if len(result.Occurrences) != 1 || result.Occurrences[0].ID != "t1" {
		t.Fatalf("expected only the task occurrence, got %+v", result.Occurrences)
	}
	if len(result.Notices) != 1 || result.Notices[0] != NoticeEventsUnavailable {
		t.Errorf("expected events notice, got %v", result.Notices)
	}
}

func TestFetchTaskFailureDegrades(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{listErr: errors.New("db down")}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("partial failure should not error: %v", err)
	}
	if len(result.Occurrences) != 1 || result.Occurrences[0].ID != "e1" {
		t.Fatalf("expected only the event occurrence, got %+v", result.Occurrences)
	}
	if len(result.Notices) != 1 || result.Notices[0] != NoticeTasksUnavailable {
		t.Errorf("expected tasks notice, got %v", result.Notices)
	}
}

func TestFetchBothFailuresError(t *testing.T) {
	events := &fakeEventSource{listErr: errors.New("db down")}
	tasks := &fakeTaskSource{listErr: errors.New("db down")}
	svc := newTestService(events, tasks, nil)

	_, err := svc.Fetch("u1", domain.FilterState{})
	if !errors.Is(err, ErrSourcesUnavailable) {
		t.Fatalf("expected ErrSourcesUnavailable, got %v", err)
	}
}

func TestFetchKindFilterSkipsTaskQuery(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
		{ID: "e2", Source: domain.SourceEvents, Kind: domain.KindMilestone, Title: "Launch", StartDate: "2024-06-12T00:00:00Z", CreatorID: "u1"},
	}}
	tasks := &fakeTaskSource{listErr: errors.New("should not be called")}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{Kind: domain.KindMilestone})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.listCalls != 0 {
		t.Errorf("task query should be skipped for non-task kind filter, got %d calls", tasks.listCalls)
	}
	if len(result.Occurrences) != 1 || result.Occurrences[0].ID != "e2" {
		t.Fatalf("expected only the milestone, got %+v", result.Occurrences)
	}
	if len(result.Notices) != 0 {
		t.Errorf("skipped query must not produce a notice, got %v", result.Notices)
	}
}

func TestFetchKindTaskStillQueriesTasks(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Draft brief", "2024-06-11"),
	}}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{Kind: domain.KindTask})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tasks.listCalls != 1 {
		t.Errorf("expected task query, got %d calls", tasks.listCalls)
	}
	if len(result.Occurrences) != 1 || result.Occurrences[0].ID != "t1" {
		t.Fatalf("expected only the task, got %+v", result.Occurrences)
	}
}

func TestFetchSearchFiltersBothKinds(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Launch party", "2024-06-10T09:00:00Z"),
		eventOcc("e2", "Retro", "2024-06-11T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{
		taskOcc("t1", "Prepare launch checklist", "2024-06-11"),
		taskOcc("t2", "Invoice client", "2024-06-12"),
	}}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{Search: "launch"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Occurrences) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(result.Occurrences))
	}
	for _, o := range result.Occurrences {
		if o.ID != "e1" && o.ID != "t1" {
			t.Errorf("unexpected match %s", o.ID)
		}
	}
}

func TestAssigneeFilterSelfKeepsCreated(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		// Created by u1, no attendee rows.
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
		// Created by u2 but u1 attends.
		{ID: "e2", Source: domain.SourceEvents, Kind: domain.KindMeeting, Title: "Review", StartDate: "2024-06-11T09:00:00Z", CreatorID: "u2",
			Attendees: []domain.Attendee{{UserID: "u1", Role: "attendee", ResponseStatus: "accepted"}}},
	}}
	tasks := &fakeTaskSource{
		occurrences: []domain.Occurrence{taskOcc("t1", "Draft brief", "2024-06-11")},
		assignedIDs: []string{},
	}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{AssigneeID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Occurrences) != 3 {
		t.Fatalf("self filter should keep created and attended items, got %d: %+v", len(result.Occurrences), result.Occurrences)
	}
}

func TestAssigneeFilterOtherUserIsMembershipOnly(t *testing.T) {
	events := &fakeEventSource{
		occurrences: []domain.Occurrence{
			// u2 created this, but attendance decides membership.
			{ID: "e1", Source: domain.SourceEvents, Kind: domain.KindMeeting, Title: "Kickoff", StartDate: "2024-06-10T09:00:00Z", CreatorID: "u2"},
			{ID: "e2", Source: domain.SourceEvents, Kind: domain.KindMeeting, Title: "Review", StartDate: "2024-06-11T09:00:00Z", CreatorID: "u1"},
		},
		attendedIDs: []string{"e2"},
	}
	tasks := &fakeTaskSource{
		occurrences: []domain.Occurrence{
			taskOcc("t1", "Draft brief", "2024-06-11"),
			taskOcc("t2", "Ship assets", "2024-06-12"),
		},
		assignedIDs: []string{"t2"},
	}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{AssigneeID: "u2"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Occurrences) != 2 {
		t.Fatalf("expected e2 and t2, got %+v", result.Occurrences)
	}
	for _, o := range result.Occurrences {
		if o.ID != "e2" && o.ID != "t2" {
			t.Errorf("unexpected item %s in teammate filter", o.ID)
		}
	}
}

func TestAssigneeFilterLookupFailureDegrades(t *testing.T) {
	events := &fakeEventSource{
		occurrences: []domain.Occurrence{eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z")},
		attendedErr: errors.New("db down"),
	}
	tasks := &fakeTaskSource{occurrences: []domain.Occurrence{taskOcc("t1", "Draft brief", "2024-06-11")}}
	svc := newTestService(events, tasks, nil)

	result, err := svc.Fetch("u1", domain.FilterState{AssigneeID: "u2"})
	if err != nil {
		t.Fatalf("filter failure should degrade, not error: %v", err)
	}
	if len(result.Occurrences) != 0 {
		t.Errorf("failed membership lookup should yield empty results, got %+v", result.Occurrences)
	}
	found := false
	for _, n := range result.Notices {
		if n == NoticeAssigneeFiltered {
			found = true
		}
	}
	if !found {
		t.Errorf("expected assignee notice, got %v", result.Notices)
	}
}

func TestFetchEnrichesDisplayNames(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		{ID: "e1", Source: domain.SourceEvents, Kind: domain.KindMeeting, Title: "Kickoff", StartDate: "2024-06-10T09:00:00Z", CreatorID: "u1",
			Attendees: []domain.Attendee{{UserID: "u2", Role: "attendee", ResponseStatus: "pending"}}},
	}}
	tasks := &fakeTaskSource{}
	identity := &fakeIdentityStore{names: map[string]string{"u1": "Ana", "u2": "Ben"}}
	svc := newTestService(events, tasks, identity)

	result, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	occ := result.Occurrences[0]
	if occ.CreatorName != "Ana" {
		t.Errorf("expected creator name Ana, got %q", occ.CreatorName)
	}
	if occ.Attendees[0].DisplayName != "Ben" {
		t.Errorf("expected attendee name Ben, got %q", occ.Attendees[0].DisplayName)
	}
}

func TestFetchEnrichmentFailureTolerated(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{}
	identity := &fakeIdentityStore{err: errors.New("db down")}
	svc := newTestService(events, tasks, identity)

	result, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("enrichment failure must not fail the fetch: %v", err)
	}
	if result.Occurrences[0].CreatorName != "" {
		t.Errorf("expected empty creator name, got %q", result.Occurrences[0].CreatorName)
	}
}

func TestFetchCachesPerUserAndFilter(t *testing.T) {
	events := &fakeEventSource{occurrences: []domain.Occurrence{
		eventOcc("e1", "Kickoff", "2024-06-10T09:00:00Z"),
	}}
	tasks := &fakeTaskSource{}
	svc := newTestService(events, tasks, nil)

	first, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.FromCache {
		t.Fatal("first fetch should miss the cache")
	}

	second, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.FromCache {
		t.Fatal("second fetch should hit the cache")
	}
	if tasks.listCalls != 1 {
		t.Errorf("cached fetch must not re-query, got %d task queries", tasks.listCalls)
	}

	// A different filter is a different key.
	third, err := svc.Fetch("u1", domain.FilterState{Search: "kick"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if third.FromCache {
		t.Error("different filter should miss the cache")
	}

	svc.Invalidate()
	fourth, err := svc.Fetch("u1", domain.FilterState{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fourth.FromCache {
		t.Error("fetch after invalidation should miss the cache")
	}
}
