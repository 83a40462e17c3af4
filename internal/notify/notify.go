// Package notify delivers booking events to their recipients. The current
// sink writes them to the notifications table; delivery is fire-and-forget
// from the booking core's perspective, so failures are logged here and not
// retried.
package notify

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
)

type Writer interface {
	InsertNotification(ctx context.Context, n *model.Notification) error
}

type Sink struct {
	w   Writer
	log *zap.Logger
}

func NewSink(w Writer, log *zap.Logger) *Sink {
	return &Sink{w: w, log: log}
}

func (s *Sink) Emit(ctx context.Context, event model.NotificationEvent) error {
	n := &model.Notification{
		ID:          uuid.New().String(),
		RecipientID: event.RecipientID,
		Content:     event.Content,
	}
	if err := s.w.InsertNotification(ctx, n); err != nil {
		s.log.Error("notification delivery failed",
			zap.String("recipient_id", event.RecipientID), zap.Error(err))
		return err
	}
	return nil
}
