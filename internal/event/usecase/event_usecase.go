package usecase

import (
	"errors"
	"log"
	"time"

	"studioflow-backend/internal/event/domain"
	"studioflow-backend/internal/event/repository"
	"studioflow-backend/pkg/cache"
	"studioflow-backend/pkg/dateutil"
)

// eventUsecase implements EventUsecase interface
type eventUsecase struct {
	eventRepo  repository.EventRepository
	queryCache *cache.Store
}

// NewEventUsecase creates a new instance of eventUsecase
func NewEventUsecase(eventRepo repository.EventRepository, queryCache *cache.Store) EventUsecase {
	return &eventUsecase{
		eventRepo:  eventRepo,
		queryCache: queryCache,
	}
}

func (u *eventUsecase) CreateEvent(userID string, req CreateEventRequest) (*domain.Event, error) {
	start, ok := dateutil.ParseDateOrNone(req.StartAt)
	if !ok {
		return nil, errors.New("invalid start date")
	}

	var end *time.Time
	if req.EndAt != "" {
		e, ok := dateutil.ParseDateOrNone(req.EndAt)
		if !ok {
			return nil, errors.New("invalid end date")
		}
		if e.Before(start) {
			return nil, errors.New("end date before start date")
		}
		end = &e
	}

	kind := domain.EventKind(req.Kind)
	if req.Kind == "" {
		kind = domain.EventKindMeeting
	} else if !domain.ValidKind(kind) {
		return nil, errors.New("invalid event kind")
	}

	event := &domain.Event{
		CreatorID:   userID,
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Kind:        kind,
		StartAt:     start,
		EndAt:       end,
		AllDay:      req.AllDay,
	}

	if err := u.eventRepo.Create(event); err != nil {
		return nil, err
	}

	// The creator is always the organizer
	organizer := &domain.EventAttendee{
		EventID:        event.ID,
		UserID:         userID,
		Role:           domain.RoleOrganizer,
		ResponseStatus: domain.ResponseAccepted,
	}
	if err := u.eventRepo.AddAttendee(organizer); err != nil {
		log.Printf("[EventUsecase] Failed to add organizer for event %s: %v", event.ID, err)
	}

	for _, attendeeID := range req.AttendeeIDs {
		if attendeeID == userID {
			continue
		}
		attendee := &domain.EventAttendee{
			EventID: event.ID,
			UserID:  attendeeID,
		}
		if err := u.eventRepo.AddAttendee(attendee); err != nil {
			log.Printf("[EventUsecase] Failed to add attendee %s to event %s: %v", attendeeID, event.ID, err)
		}
	}

	u.invalidateCalendar()
	return event, nil
}

func (u *eventUsecase) GetEventByID(userID, eventID string) (*domain.Event, error) {
	event, err := u.eventRepo.FindByID(eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, errors.New("event not found")
	}
	if event.CreatorID != userID && !u.isAttendee(eventID, userID) {
		return nil, errors.New("unauthorized")
	}
	return event, nil
}

func (u *eventUsecase) GetUserEvents(userID string) ([]*domain.Event, error) {
	return u.eventRepo.FindForUser(userID)
}

func (u *eventUsecase) UpdateEvent(userID, eventID string, updates EventUpdateRequest) (*domain.Event, error) {
	event, err := u.GetEventByID(userID, eventID)
	if err != nil {
		return nil, err
	}

	if updates.Title != nil {
		event.Title = *updates.Title
	}
	if updates.Description != nil {
		event.Description = *updates.Description
	}
	if updates.ProjectID != nil {
		event.ProjectID = *updates.ProjectID
	}
	if updates.Kind != nil {
		kind := domain.EventKind(*updates.Kind)
		if !domain.ValidKind(kind) {
			return nil, errors.New("invalid event kind")
		}
		event.Kind = kind
	}
	if updates.StartAt != nil {
		start, ok := dateutil.ParseDateOrNone(*updates.StartAt)
		if !ok {
			return nil, errors.New("invalid start date")
		}
		event.StartAt = start
	}
	if updates.EndAt != nil {
		if *updates.EndAt == "" {
			event.EndAt = nil
		} else {
			end, ok := dateutil.ParseDateOrNone(*updates.EndAt)
			if !ok {
				return nil, errors.New("invalid end date")
			}
			event.EndAt = &end
		}
	}
	if updates.AllDay != nil {
		event.AllDay = *updates.AllDay
	}

	if event.EndAt != nil && event.EndAt.Before(event.StartAt) {
		return nil, errors.New("end date before start date")
	}

	if err := u.eventRepo.Update(event); err != nil {
		return nil, err
	}

	u.invalidateCalendar()
	return event, nil
}

func (u *eventUsecase) DeleteEvent(userID, eventID string) error {
	event, err := u.eventRepo.FindByID(eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return errors.New("event not found")
	}
	if event.CreatorID != userID {
		return errors.New("unauthorized")
	}
	if err := u.eventRepo.Delete(eventID); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *eventUsecase) AddAttendee(userID, eventID, attendeeID, role string) error {
	if _, err := u.GetEventByID(userID, eventID); err != nil {
		return err
	}
	if u.isAttendee(eventID, attendeeID) {
		return nil
	}
	attendee := &domain.EventAttendee{
		EventID: eventID,
		UserID:  attendeeID,
		Role:    domain.AttendeeRole(role),
	}
	if err := u.eventRepo.AddAttendee(attendee); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *eventUsecase) RemoveAttendee(userID, eventID, attendeeID string) error {
	if _, err := u.GetEventByID(userID, eventID); err != nil {
		return err
	}
	if err := u.eventRepo.RemoveAttendee(eventID, attendeeID); err != nil {
		return err
	}
	u.invalidateCalendar()
	return nil
}

func (u *eventUsecase) RespondToEvent(userID, eventID, response string) error {
	status := domain.ResponseStatus(response)
	switch status {
	case domain.ResponsePending, domain.ResponseAccepted, domain.ResponseDeclined:
	default:
		return errors.New("invalid response status")
	}
	return u.eventRepo.UpdateAttendeeResponse(eventID, userID, status)
}

func (u *eventUsecase) isAttendee(eventID, userID string) bool {
	attendees, err := u.eventRepo.ListAttendees(eventID)
	if err != nil {
		return false
	}
	for _, a := range attendees {
		if a.UserID == userID {
			return true
		}
	}
	return false
}

// Event writes change what the calendar sees, so drop cached snapshots.
func (u *eventUsecase) invalidateCalendar() {
	if u.queryCache != nil {
		u.queryCache.Invalidate("calendar:occurrences")
	}
}
