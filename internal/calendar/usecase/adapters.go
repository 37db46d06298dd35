package usecase

import (
	"log"
	"time"

	"studioflow-backend/internal/calendar/domain"
	eventrepo "studioflow-backend/internal/event/repository"
	projectrepo "studioflow-backend/internal/project/repository"
	taskrepo "studioflow-backend/internal/task/repository"
	"studioflow-backend/pkg/dateutil"
)

// eventSourceAdapter normalizes native event rows into occurrences
type eventSourceAdapter struct {
	events   eventrepo.EventRepository
	projects projectrepo.ProjectRepository
}

// NewEventSourceAdapter wraps the event repository as an EventSource
func NewEventSourceAdapter(events eventrepo.EventRepository, projects projectrepo.ProjectRepository) EventSource {
	return &eventSourceAdapter{events: events, projects: projects}
}

func (a *eventSourceAdapter) ListEvents(userID string) ([]domain.Occurrence, error) {
	rows, err := a.events.FindForUser(userID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(rows))
	projectIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		if row.ProjectID != "" {
			projectIDs = append(projectIDs, row.ProjectID)
		}
	}

	// Attendee rows are part of the primary result; a failed batch load
	// degrades to empty attendee lists rather than failing the fetch.
	attendeesByEvent, err := a.events.ListAttendeesForEvents(ids)
	if err != nil {
		log.Printf("[Calendar] Attendee load failed, continuing without attendees: %v", err)
		attendeesByEvent = nil
	}

	projectNames := resolveProjectNames(a.projects, projectIDs)

	occurrences := make([]domain.Occurrence, 0, len(rows))
	for _, row := range rows {
		occ := domain.Occurrence{
			ID:          row.ID,
			Source:      domain.SourceEvents,
			Kind:        domain.OccurrenceKind(row.Kind),
			Title:       row.Title,
			Description: row.Description,
			StartDate:   row.StartAt.Format(time.RFC3339),
			AllDay:      row.AllDay,
			CreatorID:   row.CreatorID,
		}
		if row.EndAt != nil {
			occ.EndDate = row.EndAt.Format(time.RFC3339)
		}
		if row.ProjectID != "" {
			occ.Project = &domain.ProjectRef{ID: row.ProjectID, Name: projectNames[row.ProjectID]}
		}
		for _, att := range attendeesByEvent[row.ID] {
			occ.Attendees = append(occ.Attendees, domain.Attendee{
				UserID:         att.UserID,
				Role:           string(att.Role),
				ResponseStatus: string(att.ResponseStatus),
			})
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences, nil
}

func (a *eventSourceAdapter) ListEventIDsAttendedBy(userID string) ([]string, error) {
	return a.events.ListEventIDsAttendedBy(userID)
}

func (a *eventSourceAdapter) UpdateEventDates(id string, start time.Time, end *time.Time) error {
	return a.events.UpdateDates(id, start, end)
}

// taskSourceAdapter normalizes due-dated task rows into occurrences
type taskSourceAdapter struct {
	tasks    taskrepo.TaskRepository
	projects projectrepo.ProjectRepository
}

// NewTaskSourceAdapter wraps the task repository as a TaskSource
func NewTaskSourceAdapter(tasks taskrepo.TaskRepository, projects projectrepo.ProjectRepository) TaskSource {
	return &taskSourceAdapter{tasks: tasks, projects: projects}
}

func (a *taskSourceAdapter) ListTasksWithDueDate(userID string) ([]domain.Occurrence, error) {
	rows, err := a.tasks.FindWithDueDate(userID)
	if err != nil {
		return nil, err
	}

	projectIDs := make([]string, 0, len(rows))
	for _, row := range rows {
		if row.ProjectID != "" {
			projectIDs = append(projectIDs, row.ProjectID)
		}
	}
	projectNames := resolveProjectNames(a.projects, projectIDs)

	occurrences := make([]domain.Occurrence, 0, len(rows))
	for _, row := range rows {
		if row.DueDate == nil {
			continue
		}
		occ := domain.Occurrence{
			ID:          row.ID,
			Source:      domain.SourceTasks,
			Kind:        domain.KindTask,
			Title:       row.Title,
			Description: row.Description,
			StartDate:   dateutil.DayKey(*row.DueDate), // task-derived occurrences are all-day
			AllDay:      true,
			CreatorID:   row.CreatorID,
		}
		if row.ProjectID != "" {
			occ.Project = &domain.ProjectRef{ID: row.ProjectID, Name: projectNames[row.ProjectID]}
		}
		occurrences = append(occurrences, occ)
	}

	return occurrences, nil
}

func (a *taskSourceAdapter) ListTaskIDsAssignedTo(userID string) ([]string, error) {
	return a.tasks.ListTaskIDsAssignedTo(userID)
}

func (a *taskSourceAdapter) UpdateTaskDueDate(id string, due time.Time) error {
	return a.tasks.UpdateDueDate(id, due)
}

// sourceRoutedWriter routes reschedule writes to the collection the
// occurrence came from.
type sourceRoutedWriter struct {
	events EventSource
	tasks  TaskSource
}

// NewRescheduleWriter combines both sources' write paths
func NewRescheduleWriter(events EventSource, tasks TaskSource) RescheduleWriter {
	return &sourceRoutedWriter{events: events, tasks: tasks}
}

func (w *sourceRoutedWriter) UpdateEventDates(id string, start time.Time, end *time.Time) error {
	return w.events.UpdateEventDates(id, start, end)
}

func (w *sourceRoutedWriter) UpdateTaskDueDate(id string, due time.Time) error {
	return w.tasks.UpdateTaskDueDate(id, due)
}

// resolveProjectNames is best-effort enrichment; a failed lookup just
// leaves names empty.
func resolveProjectNames(projects projectrepo.ProjectRepository, ids []string) map[string]string {
	if projects == nil || len(ids) == 0 {
		return map[string]string{}
	}
	names, err := projects.ResolveNames(ids)
	if err != nil {
		log.Printf("[Calendar] Project name resolution failed: %v", err)
		return map[string]string{}
	}
	return names
}
