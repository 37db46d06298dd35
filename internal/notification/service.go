package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	authrepo "studioflow-backend/internal/auth/repository"
	"studioflow-backend/internal/calendar/domain"
	"studioflow-backend/internal/calendar/usecase"
	"studioflow-backend/pkg/fcm"

	"cloud.google.com/go/pubsub"
	"google.golang.org/api/option"
)

// ActivityRecord is the message published to the activity topic for
// every confirmed reschedule.
type ActivityRecord struct {
	Type         string    `json:"type"`
	ActorID      string    `json:"actor_id"`
	OccurrenceID string    `json:"occurrence_id"`
	Source       string    `json:"source"`
	Title        string    `json:"title"`
	TargetDay    string    `json:"target_day"`
	Timestamp    time.Time `json:"timestamp"`
}

// Service fans confirmed reschedules out to the activity topic and to
// attendees' devices. Everything here is best-effort: the calendar
// write has already committed by the time the service is called.
type Service struct {
	pubsubClient *pubsub.Client
	userRepo     authrepo.UserRepository
	tokenRepo    authrepo.DeviceTokenRepository
	fcmClient    *fcm.Client
	topicName    string
}

// NewService creates the notification service. An empty projectID
// disables the pubsub publisher; push delivery still works.
func NewService(projectID, topicName, credentialsFile string, userRepo authrepo.UserRepository, tokenRepo authrepo.DeviceTokenRepository, fcmClient *fcm.Client) (*Service, error) {
	s := &Service{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		fcmClient: fcmClient,
		topicName: topicName,
	}

	if projectID != "" {
		var opts []option.ClientOption
		if credentialsFile != "" {
			opts = append(opts, option.WithCredentialsFile(credentialsFile))
		}
		client, err := pubsub.NewClient(context.Background(), projectID, opts...)
		if err != nil {
			return nil, fmt.Errorf("failed to create pubsub client: %v", err)
		}
		s.pubsubClient = client
	} else {
		log.Printf("[PubSub] No project configured, activity publishing disabled")
	}

	return s, nil
}

// OccurrenceRescheduled publishes the activity record and pushes to
// everyone on the occurrence except the actor.
func (s *Service) OccurrenceRescheduled(actorID string, occ domain.Occurrence, preview usecase.ReschedulePreview) {
	record := ActivityRecord{
		Type:         "occurrence_rescheduled",
		ActorID:      actorID,
		OccurrenceID: occ.ID,
		Source:       string(occ.Source),
		Title:        occ.Title,
		TargetDay:    preview.TargetDay,
		Timestamp:    time.Now(),
	}

	go s.publish(record)
	go s.pushToParticipants(actorID, occ, preview)
}

func (s *Service) publish(record ActivityRecord) {
	if s.pubsubClient == nil {
		return
	}

	data, err := json.Marshal(record)
	if err != nil {
		log.Printf("[PubSub] Failed to marshal activity record: %v", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	topic := s.pubsubClient.Topic(s.topicName)
	defer topic.Stop()

	result := topic.Publish(ctx, &pubsub.Message{Data: data})
	if _, err := result.Get(ctx); err != nil {
		log.Printf("[PubSub] Failed to publish activity record: %v", err)
		return
	}
	log.Printf("[PubSub] Published %s for occurrence %s", record.Type, record.OccurrenceID)
}

func (s *Service) pushToParticipants(actorID string, occ domain.Occurrence, preview usecase.ReschedulePreview) {
	if s.fcmClient == nil || s.tokenRepo == nil {
		return
	}

	recipients := map[string]bool{}
	if occ.CreatorID != "" && occ.CreatorID != actorID {
		recipients[occ.CreatorID] = true
	}
	for _, att := range occ.Attendees {
		if att.UserID != "" && att.UserID != actorID {
			recipients[att.UserID] = true
		}
	}
	if len(recipients) == 0 {
		return
	}

	actorName := s.resolveActorName(actorID)

	var tokens []string
	for userID := range recipients {
		rows, err := s.tokenRepo.GetTokensByUserID(userID)
		if err != nil {
			log.Printf("[FCM] Error getting tokens for user %s: %v", userID, err)
			continue
		}
		for _, t := range rows {
			tokens = append(tokens, t.Token)
		}
	}
	if len(tokens) == 0 {
		log.Printf("[FCM] No tokens for participants of occurrence %s, skipping push", occ.ID)
		return
	}

	failedTokens, err := s.fcmClient.SendToDevices(context.Background(), tokens, fcm.NotificationData{
		Title: fmt.Sprintf("%s rescheduled \"%s\"", actorName, occ.Title),
		Body:  fmt.Sprintf("Moved to %s", preview.TargetDay),
		Data: map[string]string{
			"type":          "occurrence_rescheduled",
			"occurrence_id": occ.ID,
			"source":        string(occ.Source),
			"target_day":    preview.TargetDay,
			"click_action":  buildCalendarClickAction(preview.TargetDay),
		},
	})
	if err != nil {
		log.Printf("[FCM] Error sending reschedule notifications: %v", err)
	} else {
		log.Printf("[FCM] Sent reschedule notification to %d devices", len(tokens)-len(failedTokens))
	}

	if len(failedTokens) > 0 {
		log.Printf("[FCM] Cleaning up %d failed tokens", len(failedTokens))
		for _, token := range failedTokens {
			s.tokenRepo.DeleteToken(token)
		}
	}
}

func (s *Service) resolveActorName(actorID string) string {
	names, err := s.userRepo.ResolveDisplayNames([]string{actorID})
	if err != nil || names[actorID] == "" {
		return "A teammate"
	}
	return names[actorID]
}

// buildCalendarClickAction returns the URL path for opening the
// calendar on a specific day
func buildCalendarClickAction(day string) string {
	if day == "" {
		return "/calendar"
	}
	return fmt.Sprintf("/calendar?date=%s", day)
}
