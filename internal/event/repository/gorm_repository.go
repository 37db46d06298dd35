package repository

import (
	"errors"
	"time"

	"studioflow-backend/internal/event/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gormEventRepository implements EventRepository using GORM
type gormEventRepository struct {
	db *gorm.DB
}

// NewGormEventRepository creates a new GORM-based EventRepository
func NewGormEventRepository(db *gorm.DB) EventRepository {
	return &gormEventRepository{db: db}
}

func (r *gormEventRepository) Create(event *domain.Event) error {
	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.Kind == "" {
		event.Kind = domain.EventKindMeeting
	}
	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()
	return r.db.Create(event).Error
}

func (r *gormEventRepository) FindByID(id string) (*domain.Event, error) {
	var event domain.Event
	err := r.db.Where("id = ?", id).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &event, nil
}

func (r *gormEventRepository) FindForUser(userID string) ([]*domain.Event, error) {
	var events []*domain.Event
	err := r.db.
		Where("creator_id = ? OR id IN (?)", userID,
			r.db.Model(&domain.EventAttendee{}).Select("event_id").Where("user_id = ?", userID)).
		Order("start_at ASC").
		Find(&events).Error
	return events, err
}

func (r *gormEventRepository) UpdateDates(id string, start time.Time, end *time.Time) error {
	return r.db.Model(&domain.Event{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"start_at":   start,
			"end_at":     end,
			"updated_at": time.Now(),
		}).Error
}

func (r *gormEventRepository) Update(event *domain.Event) error {
	event.UpdatedAt = time.Now()
	return r.db.Save(event).Error
}

func (r *gormEventRepository) Delete(id string) error {
	if err := r.db.Where("event_id = ?", id).Delete(&domain.EventAttendee{}).Error; err != nil {
		return err
	}
	return r.db.Delete(&domain.Event{}, "id = ?", id).Error
}

func (r *gormEventRepository) AddAttendee(attendee *domain.EventAttendee) error {
	if attendee.ID == "" {
		attendee.ID = uuid.New().String()
	}
	if attendee.Role == "" {
		attendee.Role = domain.RoleRequired
	}
	if attendee.ResponseStatus == "" {
		attendee.ResponseStatus = domain.ResponsePending
	}
	attendee.CreatedAt = time.Now()
	return r.db.Create(attendee).Error
}

func (r *gormEventRepository) RemoveAttendee(eventID, userID string) error {
	return r.db.Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&domain.EventAttendee{}).Error
}

func (r *gormEventRepository) UpdateAttendeeResponse(eventID, userID string, status domain.ResponseStatus) error {
	result := r.db.Model(&domain.EventAttendee{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Update("response_status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("not an attendee")
	}
	return nil
}

func (r *gormEventRepository) ListAttendees(eventID string) ([]*domain.EventAttendee, error) {
	var attendees []*domain.EventAttendee
	err := r.db.Where("event_id = ?", eventID).Order("created_at ASC").Find(&attendees).Error
	return attendees, err
}

func (r *gormEventRepository) ListAttendeesForEvents(eventIDs []string) (map[string][]*domain.EventAttendee, error) {
	byEvent := make(map[string][]*domain.EventAttendee)
	if len(eventIDs) == 0 {
		return byEvent, nil
	}

	var attendees []*domain.EventAttendee
	err := r.db.Where("event_id IN ?", eventIDs).Order("created_at ASC").Find(&attendees).Error
	if err != nil {
		return nil, err
	}
	for _, a := range attendees {
		byEvent[a.EventID] = append(byEvent[a.EventID], a)
	}
	return byEvent, nil
}

func (r *gormEventRepository) ListEventIDsAttendedBy(userID string) ([]string, error) {
	var eventIDs []string
	err := r.db.Model(&domain.EventAttendee{}).
		Where("user_id = ?", userID).
		Pluck("event_id", &eventIDs).Error
	return eventIDs, err
}
