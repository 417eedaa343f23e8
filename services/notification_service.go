package services

import (
	"context"
	"encoding/json"
	"os"
	"strconv"
	"time"

	"faithhub.app/configs/configslog"
	"faithhub.app/models"
	"faithhub.app/pkg/rabbit"

	"go.uber.org/zap"
)

// INotificationService delivers calendar notifications. Delivery is
// fire-and-forget: a failed notification is logged, never surfaced to the
// calendar operation that triggered it.
type INotificationService interface {
	SendInvitation(ctx context.Context, event *models.CalendarEvent, invitee *models.User)
	SendInvitationAccepted(ctx context.Context, event *models.CalendarEvent, user *models.User)
	SendInvitationDeclined(ctx context.Context, event *models.CalendarEvent, user *models.User)
	SendRemoval(ctx context.Context, event *models.CalendarEvent, user *models.User)
	SendReminder(ctx context.Context, event *models.CalendarEvent, minutesBefore int)
}

// LogNotificationService writes notifications to the structured log. It is
// the default when no broker is configured.
type LogNotificationService struct{}

func NewLogNotificationService() INotificationService {
	return &LogNotificationService{}
}

func (s *LogNotificationService) SendInvitation(_ context.Context, event *models.CalendarEvent, invitee *models.User) {
	configslog.Log.Info("notification: invitation",
		zap.Uint("eventID", event.ID), zap.String("title", event.Title), zap.String("invitee", invitee.Email))
}

func (s *LogNotificationService) SendInvitationAccepted(_ context.Context, event *models.CalendarEvent, user *models.User) {
	configslog.Log.Info("notification: invitation accepted",
		zap.Uint("eventID", event.ID), zap.String("user", user.Email))
}

func (s *LogNotificationService) SendInvitationDeclined(_ context.Context, event *models.CalendarEvent, user *models.User) {
	configslog.Log.Info("notification: invitation declined",
		zap.Uint("eventID", event.ID), zap.String("user", user.Email))
}

func (s *LogNotificationService) SendRemoval(_ context.Context, event *models.CalendarEvent, user *models.User) {
	configslog.Log.Info("notification: removed from event",
		zap.Uint("eventID", event.ID), zap.String("user", user.Email))
}

func (s *LogNotificationService) SendReminder(_ context.Context, event *models.CalendarEvent, minutesBefore int) {
	configslog.Log.Info("notification: reminder",
		zap.Uint("eventID", event.ID), zap.String("title", event.Title), zap.Int("minutesBefore", minutesBefore))
}

var _ INotificationService = (*LogNotificationService)(nil)

// queueNotification is the JSON payload published for downstream senders.
type queueNotification struct {
	Kind          string    `json:"kind"`
	EventID       uint      `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	StartTime     time.Time `json:"start_time"`
	OwnerID       uint      `json:"owner_id"`
	UserID        uint      `json:"user_id,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	MinutesBefore int       `json:"minutes_before,omitempty"`
}

// RabbitNotificationService publishes notifications to a RabbitMQ queue for
// the mail and push senders to consume.
type RabbitNotificationService struct {
	provider *rabbit.Provider
}

func NewRabbitNotificationService(provider *rabbit.Provider) INotificationService {
	return &RabbitNotificationService{provider: provider}
}

func (s *RabbitNotificationService) publish(kind string, event *models.CalendarEvent, user *models.User, minutesBefore int) {
	msg := queueNotification{
		Kind:          kind,
		EventID:       event.ID,
		EventTitle:    event.Title,
		StartTime:     event.StartTime,
		OwnerID:       event.UserID,
		MinutesBefore: minutesBefore,
	}
	if user != nil {
		msg.UserID = user.ID
		msg.UserEmail = user.Email
	}
	body, err := json.Marshal(msg)
	if err != nil {
		configslog.Log.Error("notification: marshal failed", zap.String("kind", kind), zap.Error(err))
		return
	}
	if err := s.provider.Publish(body); err != nil {
		configslog.Log.Error("notification: publish failed",
			zap.String("kind", kind), zap.Uint("eventID", event.ID), zap.Error(err))
	}
}

func (s *RabbitNotificationService) SendInvitation(_ context.Context, event *models.CalendarEvent, invitee *models.User) {
	s.publish("invitation", event, invitee, 0)
}

func (s *RabbitNotificationService) SendInvitationAccepted(_ context.Context, event *models.CalendarEvent, user *models.User) {
	s.publish("invitation_accepted", event, user, 0)
}

func (s *RabbitNotificationService) SendInvitationDeclined(_ context.Context, event *models.CalendarEvent, user *models.User) {
	s.publish("invitation_declined", event, user, 0)
}

func (s *RabbitNotificationService) SendRemoval(_ context.Context, event *models.CalendarEvent, user *models.User) {
	s.publish("removal", event, user, 0)
}

func (s *RabbitNotificationService) SendReminder(_ context.Context, event *models.CalendarEvent, minutesBefore int) {
	s.publish("reminder", event, nil, minutesBefore)
}

var _ INotificationService = (*RabbitNotificationService)(nil)

// NewNotificationServiceFromEnv wires the RabbitMQ publisher when a broker is
// configured and falls back to log-only delivery otherwise.
func NewNotificationServiceFromEnv() INotificationService {
	host := os.Getenv("RABBITMQ_HOST")
	if host == "" {
		return NewLogNotificationService()
	}
	port, _ := strconv.Atoi(os.Getenv("RABBITMQ_PORT"))
	if port == 0 {
		port = 5672
	}
	provider := rabbit.New(rabbit.Config{
		Host:     host,
		Port:     port,
		User:     os.Getenv("RABBITMQ_USER"),
		Password: os.Getenv("RABBITMQ_PASSWORD"),
		Queue:    os.Getenv("RABBITMQ_QUEUE"),
	})
	if err := provider.Connect(); err != nil {
		configslog.Log.Warn("rabbitmq unavailable, using log notifications", zap.Error(err))
		return NewLogNotificationService()
	}
	return NewRabbitNotificationService(provider)
}
