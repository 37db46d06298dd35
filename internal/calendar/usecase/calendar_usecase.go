package usecase

import (
	"errors"
	"log"
	"sort"
	"strings"
	"sync"

	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/pkg/fuzzy"
	"studioflow-backend/pkg/realtime"
)

var ErrOccurrenceNotFound = errors.New("occurrence not found")

// CalendarUsecase is the calendar surface: merged occurrence reads,
// the day index, day detail, search suggestions, and the drag
// reschedule flow.
type CalendarUsecase interface {
	GetOccurrences(userID string, filter domain.FilterState) (*FetchResult, error)
	GetDayIndex(userID string, filter domain.FilterState, monthPrefix string) ([]DayMarkers, []string, error)
	GetDayDetail(userID string, filter domain.FilterState, day string) (*DayDetail, error)
	SearchSuggestions(userID string, query string, limit int) ([]domain.Occurrence, error)

	StartDrag(userID, occurrenceID string) (*DragSession, error)
	DragOver(userID, day string) (*DragSession, error)
	DropDrag(userID string) (*DragSession, error)
	ConfirmDrag(userID string) (*ReschedulePreview, error)
	CancelDrag(userID string)

	Reschedule(userID, occurrenceID, targetDay string) (*ReschedulePreview, error)
}

// DayDetail is the selected-day payload: the day's native events and
// task-derived occurrences split out the way the agenda panel shows them.
type DayDetail struct {
	Day     string               `json:"day"`
	Events  []*domain.Occurrence `json:"events"`
	Tasks   []*domain.Occurrence `json:"tasks"`
	Notices []string             `json:"notices,omitempty"`
}

type calendarUsecase struct {
	source   *SourceService
	writer   RescheduleWriter
	notifier ActivityNotifier
	hub      *realtime.Hub

	mu       sync.Mutex
	sessions map[string]*DragSession
}

// NewCalendarUsecase creates a CalendarUsecase
func NewCalendarUsecase(source *SourceService, writer RescheduleWriter, notifier ActivityNotifier, hub *realtime.Hub) CalendarUsecase {
	return &calendarUsecase{
		source:   source,
		writer:   writer,
		notifier: notifier,
		hub:      hub,
		sessions: make(map[string]*DragSession),
	}
}

func (u *calendarUsecase) GetOccurrences(userID string, filter domain.FilterState) (*FetchResult, error) {
	return u.source.Fetch(userID, filter)
}

// GetDayIndex returns per-day marker summaries, optionally narrowed to
// a yyyy-MM month prefix, plus any degradation notices from the fetch.
func (u *calendarUsecase) GetDayIndex(userID string, filter domain.FilterState, monthPrefix string) ([]DayMarkers, []string, error) {
	result, err := u.source.Fetch(userID, filter)
	if err != nil {
		return nil, nil, err
	}

	index := BuildDayIndex(result.Occurrences)
	summaries := index.Summaries()
	if monthPrefix != "" {
		kept := summaries[:0:0]
		for _, s := range summaries {
			if strings.HasPrefix(s.Day, monthPrefix) {
				kept = append(kept, s)
			}
		}
		summaries = kept
	}
	return summaries, result.Notices, nil
}

func (u *calendarUsecase) GetDayDetail(userID string, filter domain.FilterState, day string) (*DayDetail, error) {
	result, err := u.source.Fetch(userID, filter)
	if err != nil {
		return nil, err
	}

	selection := NewSelection(BuildDayIndex(result.Occurrences), day)
	return &DayDetail{
		Day:     selection.Day,
		Events:  selection.VisibleEvents(),
		Tasks:   selection.VisibleTasks(),
		Notices: result.Notices,
	}, nil
}

// SearchSuggestions ranks the user's occurrences against a typed query
// with fuzzy scoring, for the search dropdown.
func (u *calendarUsecase) SearchSuggestions(userID string, query string, limit int) ([]domain.Occurrence, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Occurrence{}, nil
	}
	if limit <= 0 {
		limit = 8
	}

	result, err := u.source.Fetch(userID, domain.FilterState{})
	if err != nil {
		return nil, err
	}

	type scored struct {
		occ   domain.Occurrence
		score float64
	}
	threshold := fuzzy.ThresholdFor(query)
	var matches []scored
	for _, o := range result.Occurrences {
		projectName := ""
		if o.Project != nil {
			projectName = o.Project.Name
		}
		if !fuzzy.Match(query, o.Title+" "+projectName+" "+o.Description, threshold) {
			continue
		}
		matches = append(matches, scored{
			occ:   o,
			score: fuzzy.ScoreOccurrence(query, o.Title, projectName, o.Description),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })
	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]domain.Occurrence, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.occ)
	}
	return out, nil
}

func (u *calendarUsecase) sessionFor(userID string) *DragSession {
	u.mu.Lock()
	defer u.mu.Unlock()
	session, ok := u.sessions[userID]
	if !ok {
		session = NewDragSession()
		u.sessions[userID] = session
	}
	return session
}

func (u *calendarUsecase) StartDrag(userID, occurrenceID string) (*DragSession, error) {
	occ, err := u.findOccurrence(userID, occurrenceID)
	if err != nil {
		return nil, err
	}

	session := u.sessionFor(userID)
	if err := session.Start(*occ); err != nil {
		return nil, err
	}
	return session, nil
}

func (u *calendarUsecase) DragOver(userID, day string) (*DragSession, error) {
	session := u.sessionFor(userID)
	if err := session.Over(day); err != nil {
		return nil, err
	}
	return session, nil
}

func (u *calendarUsecase) DropDrag(userID string) (*DragSession, error) {
	session := u.sessionFor(userID)
	if _, err := session.Drop(); err != nil {
		return nil, err
	}
	return session, nil
}

func (u *calendarUsecase) CancelDrag(userID string) {
	u.sessionFor(userID).Cancel()
}

// ConfirmDrag commits the pending reschedule. The write is routed by
// the occurrence's source collection; on success the occurrence cache
// is invalidated and listeners are notified. On failure nothing has
// been written and the session resets, leaving the calendar untouched.
func (u *calendarUsecase) ConfirmDrag(userID string) (*ReschedulePreview, error) {
	session := u.sessionFor(userID)
	preview, err := session.BeginCommit()
	if err != nil {
		return nil, err
	}
	origin := *session.Origin

	if err := u.commit(preview); err != nil {
		session.Reset()
		return nil, err
	}

	session.Reset()
	u.afterReschedule(userID, origin, *preview)
	return preview, nil
}

// Reschedule is the one-shot form of the drag flow: locate, preview,
// commit in a single call. Used by clients that do not animate drags.
func (u *calendarUsecase) Reschedule(userID, occurrenceID, targetDay string) (*ReschedulePreview, error) {
	occ, err := u.findOccurrence(userID, occurrenceID)
	if err != nil {
		return nil, err
	}

	originDay, ok := occ.StartDay()
	if !ok {
		return nil, ErrUnparseableDates
	}
	preview, err := buildPreview(occ, targetDay)
	if err != nil {
		return nil, err
	}
	if preview.TargetDay == originDay {
		return preview, nil
	}

	if err := u.commit(preview); err != nil {
		return nil, err
	}
	u.afterReschedule(userID, *occ, *preview)
	return preview, nil
}

func (u *calendarUsecase) commit(preview *ReschedulePreview) error {
	switch preview.Source {
	case domain.SourceTasks:
		return u.writer.UpdateTaskDueDate(preview.OccurrenceID, preview.NewStart)
	case domain.SourceEvents:
		return u.writer.UpdateEventDates(preview.OccurrenceID, preview.NewStart, preview.NewEnd)
	default:
		return ErrUnknownCollection
	}
}

func (u *calendarUsecase) afterReschedule(userID string, occ domain.Occurrence, preview ReschedulePreview) {
	u.source.Invalidate()

	if u.hub != nil {
		u.hub.SendToUser(userID, realtime.Message{
			Type: "calendar.invalidated",
			Data: preview,
		})
	}
	if u.notifier != nil {
		u.notifier.OccurrenceRescheduled(userID, occ, preview)
	}
	log.Printf("[Calendar] User %s rescheduled %s/%s to %s", userID, occ.Source, occ.ID, preview.TargetDay)
}

func (u *calendarUsecase) findOccurrence(userID, occurrenceID string) (*domain.Occurrence, error) {
	result, err := u.source.Fetch(userID, domain.FilterState{})
	if err != nil {
		return nil, err
	}
	for i := range result.Occurrences {
		if result.Occurrences[i].ID == occurrenceID {
			return &result.Occurrences[i], nil
		}
	}
	return nil, ErrOccurrenceNotFound
}
