package usecase

import (
	"errors"
	"log"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/cache"
)

const occurrenceQuery = "calendar:occurrences"

// Degradation notices attached to partial results
const (
	NoticeEventsUnavailable = "events temporarily unavailable"
	NoticeTasksUnavailable  = "tasks temporarily unavailable"
	NoticeAssigneeFiltered  = "assignee filter could not be applied"
)

var ErrSourcesUnavailable = errors.New("calendar sources unavailable")

// FetchResult is one evaluated snapshot of the merged calendar. Notices
// carry degradation messages when a secondary source failed; Occurrences
// is still usable in that case.
type FetchResult struct {
	Occurrences []domain.Occurrence `json:"occurrences"`
	Notices     []string            `json:"notices,omitempty"`
	FromCache   bool                `json:"from_cache"`
}

// SourceService merges native events and due-dated tasks into one
// occurrence list. Results are cached per (user, filter); writes
// elsewhere invalidate the whole occurrence query.
type SourceService struct {
	events   EventSource
	tasks    TaskSource
	identity IdentityStore
	cache    *cache.Store
}

// NewSourceService creates a SourceService
func NewSourceService(events EventSource, tasks TaskSource, identity IdentityStore, store *cache.Store) *SourceService {
	return &SourceService{events: events, tasks: tasks, identity: identity, cache: store}
}

// Fetch evaluates the merged occurrence list for one user and filter.
// Event and task fetches fail independently: one failed source degrades
// to an empty contribution plus a notice, both failing is an error.
func (s *SourceService) Fetch(userID string, filter domain.FilterState) (*FetchResult, error) {
	key := cache.Key(occurrenceQuery, userID, filter.CacheKey())
	if cached, ok := s.cache.Get(key); ok {
		result := cached.(*FetchResult)
		return &FetchResult{Occurrences: result.Occurrences, Notices: result.Notices, FromCache: true}, nil
	}

	var notices []string

	events, eventsErr := s.events.ListEvents(userID)
	if eventsErr != nil {
		log.Printf("[Calendar] Event fetch failed for user %s: %v", userID, eventsErr)
		events = nil
		notices = append(notices, NoticeEventsUnavailable)
	}

	var tasks []domain.Occurrence
	var tasksErr error
	if filter.SkipTasks() {
		// A kind filter that excludes tasks can never match them, so
		// the task query is skipped outright.
		tasks = nil
	} else {
		tasks, tasksErr = s.tasks.ListTasksWithDueDate(userID)
		if tasksErr != nil {
			log.Printf("[Calendar] Task fetch failed for user %s: %v", userID, tasksErr)
			tasks = nil
			notices = append(notices, NoticeTasksUnavailable)
		}
	}

	if eventsErr != nil && tasksErr != nil {
		return nil, ErrSourcesUnavailable
	}

	merged := make([]domain.Occurrence, 0, len(events)+len(tasks))
	merged = append(merged, events...)
	merged = append(merged, tasks...)

	merged, assigneeNotice := s.applyAssigneeFilter(userID, filter, merged)
	if assigneeNotice != "" {
		notices = append(notices, assigneeNotice)
	}

	filtered := merged[:0:0]
	for i := range merged {
		o := &merged[i]
		if !filter.MatchesKind(o) {
			continue
		}
		if !filter.MatchesSearch(o) {
			continue
		}
		filtered = append(filtered, *o)
	}

	s.enrichDisplayNames(filtered)

	result := &FetchResult{Occurrences: filtered, Notices: notices}
	// Degraded snapshots are not cached so the next read retries the
	// failed source instead of pinning the gap until a write.
	if len(notices) == 0 {
		s.cache.Set(key, result)
	}
	return result, nil
}

// Invalidate drops every cached occurrence snapshot. Called after any
// event or task write.
func (s *SourceService) Invalidate() {
	s.cache.Invalidate(occurrenceQuery)
}

// applyAssigneeFilter narrows the merged list to one person's items.
// Filtering by yourself keeps everything you created or attend (the base
// fetch already scoped to that); filtering by a teammate keeps only
// items they are explicitly attending or assigned to.
func (s *SourceService) applyAssigneeFilter(userID string, filter domain.FilterState, merged []domain.Occurrence) ([]domain.Occurrence, string) {
	if filter.AssigneeID == "" {
		return merged, ""
	}

	if filter.AssigneeID == userID {
		// Filtering by yourself is the broad form: everything you
		// created stays, plus anything you attend or are assigned to.
		taskIDs, err := s.tasks.ListTaskIDsAssignedTo(userID)
		if err != nil {
			log.Printf("[Calendar] Assignee task lookup failed for %s: %v", userID, err)
			return nil, NoticeAssigneeFiltered
		}
		assigned := make(map[string]bool, len(taskIDs))
		for _, id := range taskIDs {
			assigned[id] = true
		}
		kept := merged[:0:0]
		for i := range merged {
			o := &merged[i]
			if o.CreatorID == userID || o.HasAttendee(userID) || (o.TaskDerived() && assigned[o.ID]) {
				kept = append(kept, *o)
			}
		}
		return kept, ""
	}

	// Filtering by a teammate is attendee/assignee only: items you
	// merely created do not count as theirs.
	return s.keepByMembership(filter.AssigneeID, merged)
}

func (s *SourceService) keepByMembership(assigneeID string, merged []domain.Occurrence) ([]domain.Occurrence, string) {
	eventIDs, err := s.events.ListEventIDsAttendedBy(assigneeID)
	if err != nil {
		log.Printf("[Calendar] Assignee event lookup failed for %s: %v", assigneeID, err)
		return nil, NoticeAssigneeFiltered
	}
	taskIDs, err := s.tasks.ListTaskIDsAssignedTo(assigneeID)
	if err != nil {
		log.Printf("[Calendar] Assignee task lookup failed for %s: %v", assigneeID, err)
		return nil, NoticeAssigneeFiltered
	}

	attends := make(map[string]bool, len(eventIDs))
	for _, id := range eventIDs {
		attends[id] = true
	}
	assigned := make(map[string]bool, len(taskIDs))
	for _, id := range taskIDs {
		assigned[id] = true
	}

	kept := merged[:0:0]
	for i := range merged {
		o := &merged[i]
		if o.TaskDerived() {
			if assigned[o.ID] {
				kept = append(kept, *o)
			}
			continue
		}
		if attends[o.ID] {
			kept = append(kept, *o)
		}
	}
	return kept, ""
}

// enrichDisplayNames fills creator and attendee names in place. Lookup
// failures leave the names empty.
func (s *SourceService) enrichDisplayNames(occurrences []domain.Occurrence) {
	if s.identity == nil || len(occurrences) == 0 {
		return
	}

	seen := map[string]bool{}
	ids := []string{}
	for i := range occurrences {
		o := &occurrences[i]
		if o.CreatorID != "" && !seen[o.CreatorID] {
			seen[o.CreatorID] = true
			ids = append(ids, o.CreatorID)
		}
		for _, a := range o.Attendees {
			if a.UserID != "" && !seen[a.UserID] {
				seen[a.UserID] = true
				ids = append(ids, a.UserID)
			}
		}
	}
	if len(ids) == 0 {
		return
	}

	names, err := s.identity.ResolveDisplayNames(ids)
	if err != nil {
		log.Printf("[Calendar] Display name resolution failed: %v", err)
		return
	}

	for i := range occurrences {
		o := &occurrences[i]
		o.CreatorName = names[o.CreatorID]
		for j := range o.Attendees {
			o.Attendees[j].DisplayName = names[o.Attendees[j].UserID]
		}
	}
}
