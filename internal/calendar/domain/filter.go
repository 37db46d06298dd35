package domain

import "strings"

// FilterState holds the calendar's active constraints. Zero values mean
// "no constraint". A FilterState is immutable per evaluation: changing
// any field produces a new fetch, never an incremental patch of results.
type FilterState struct {
	Search     string         `json:"search,omitempty"`
	Kind       OccurrenceKind `json:"kind,omitempty"`
	AssigneeID string         `json:"assignee_id,omitempty"`
}

// IsZero reports whether no constraint is set
func (f FilterState) IsZero() bool {
	return f.Search == "" && f.Kind == "" && f.AssigneeID == ""
}

// SkipTasks reports whether the task-derived fetch can be skipped
// entirely: a kind filter for anything but tasks can never match them.
func (f FilterState) SkipTasks() bool {
	return f.Kind != "" && f.Kind != KindTask
}

// CacheKey returns a stable parameter string for query-cache keys
func (f FilterState) CacheKey() string {
	return "q=" + strings.ToLower(strings.TrimSpace(f.Search)) +
		"&kind=" + string(f.Kind) +
		"&assignee=" + f.AssigneeID
}

// MatchesSearch does a case-insensitive substring match over title and
// description.
func (f FilterState) MatchesSearch(o *Occurrence) bool {
	if f.Search == "" {
		return true
	}
	needle := strings.ToLower(strings.TrimSpace(f.Search))
	if strings.Contains(strings.ToLower(o.Title), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(o.Description), needle)
}

// MatchesKind checks the kind constraint
func (f FilterState) MatchesKind(o *Occurrence) bool {
	return f.Kind == "" || o.Kind == f.Kind
}
