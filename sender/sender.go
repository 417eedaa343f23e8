// Package sender drains the calendar notification queue and delivers each
// message. Log delivery is the only transport today; mail and push senders
// hang off the same loop.
package sender

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"faithhub.app/configs/configslog"
	"faithhub.app/pkg/rabbit"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// Notification mirrors the payload the notification service publishes.
type Notification struct {
	Kind          string    `json:"kind"`
	EventID       uint      `json:"event_id"`
	EventTitle    string    `json:"event_title"`
	StartTime     time.Time `json:"start_time"`
	OwnerID       uint      `json:"owner_id"`
	UserID        uint      `json:"user_id,omitempty"`
	UserEmail     string    `json:"user_email,omitempty"`
	MinutesBefore int       `json:"minutes_before,omitempty"`
}

// Consumer is the queue side the sender reads from.
type Consumer interface {
	Consume(ctx context.Context, process rabbit.MessageProcess) error
}

// Sender consumes queued notifications until its context is cancelled.
type Sender struct {
	consumer Consumer
}

func New(consumer Consumer) *Sender {
	return &Sender{consumer: consumer}
}

// Run blocks on the queue. A malformed message is logged and dropped so one
// bad payload never stalls the stream.
func (s *Sender) Run(ctx context.Context) error {
	return s.consumer.Consume(ctx, func(msg amqp.Delivery) {
		notification, err := Decode(msg.Body)
		if err != nil {
			configslog.Log.Error("sender: message dropped", zap.Error(err))
			return
		}
		deliver(notification)
	})
}

// Decode parses one queue message body.
func Decode(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("malformed notification payload: %w", err)
	}
	if n.Kind == "" {
		return nil, fmt.Errorf("notification payload without kind")
	}
	return &n, nil
}

func deliver(n *Notification) {
	configslog.Log.Info("notification delivered",
		zap.String("kind", n.Kind),
		zap.Uint("eventID", n.EventID),
		zap.String("title", n.EventTitle),
		zap.String("recipient", n.UserEmail),
		zap.Int("minutesBefore", n.MinutesBefore))
}
