package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// cancellation cutoff before the slot
const cancelLeadTime = 2 * time.Hour

// AppointmentStore is the persistence collaborator. Insert must enforce the
// one-active-appointment-per-provider-slot constraint and report a violation
// as store.ErrConflict; that constraint is the only serialization point for
// concurrent bookings of the same slot.
type AppointmentStore interface {
	ActiveBySlot(ctx context.Context, providerID string, slot time.Time) (*model.Appointment, error)
	Insert(ctx context.Context, a *model.Appointment) error
	ByID(ctx context.Context, id string) (*model.Appointment, error)
	Cancel(ctx context.Context, id string, at time.Time) error
	ListActive(ctx context.Context, clientID string, page int) ([]model.ClientAppointment, error)
}

// NotificationSink receives booking events. Delivery is best-effort; the
// sink logs its own failures.
type NotificationSink interface {
	Emit(ctx context.Context, event model.NotificationEvent) error
}

// Service is the single entry point for the booking use case: it validates,
// persists, and notifies. It holds no request state and is safe for
// concurrent use.
type Service struct {
	users  UserDirectory
	appts  AppointmentStore
	sink   NotificationSink
	locale string
	log    *zap.Logger
	now    func() time.Time
}

func NewService(users UserDirectory, appts AppointmentStore, sink NotificationSink, locale string, log *zap.Logger) *Service {
	return &Service{
		users:  users,
		appts:  appts,
		sink:   sink,
		locale: locale,
		log:    log,
		now:    time.Now,
	}
}

// RequestBooking books a slot with a provider for the given client. rawDate
// is an RFC 3339 timestamp. On rejection nothing is written; on success the
// appointment is persisted and a notification is emitted to the provider.
func (s *Service) RequestBooking(ctx context.Context, clientID, providerID, rawDate string) (*model.Appointment, error) {
	if clientID == "" || rawDate == "" {
		return nil, ErrInvalidInput
	}
	requestedAt, err := time.Parse(time.RFC3339, rawDate)
	if err != nil {
		return nil, ErrInvalidInput
	}

	norm, err := Validate(ctx, Request{
		ClientID:    clientID,
		ProviderID:  providerID,
		RequestedAt: requestedAt,
	}, s.users, s.appts, s.now())
	if err != nil {
		return nil, err
	}

	appt := &model.Appointment{
		ID:          uuid.New().String(),
		ClientID:    norm.ClientID,
		ProviderID:  norm.ProviderID,
		ScheduledAt: norm.ScheduledAt,
	}
	if err := s.appts.Insert(ctx, appt); err != nil {
		if errors.Is(err, store.ErrConflict) {
			// a concurrent request won the slot between the availability
			// check and the write
			return nil, ErrSlotTaken
		}
		return nil, fmt.Errorf("insert appointment: %w", err)
	}

	s.notify(ctx, appt.ProviderID, func(clientName string) string {
		return bookedMessage(s.locale, clientName, appt.ScheduledAt)
	}, appt.ClientID)

	return appt, nil
}

// CancelBooking cancels one of the client's active appointments, no later
// than 2 hours before the slot. The provider is notified.
func (s *Service) CancelBooking(ctx context.Context, clientID, appointmentID string) (*model.Appointment, error) {
	if clientID == "" || appointmentID == "" {
		return nil, ErrInvalidInput
	}

	appt, err := s.appts.ByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load appointment: %w", err)
	}
	// not the owner or already canceled: report not-found rather than
	// revealing the booking exists
	if appt.ClientID != clientID || !appt.Active() {
		return nil, ErrNotFound
	}

	now := s.now()
	if now.After(appt.ScheduledAt.Add(-cancelLeadTime)) {
		return nil, ErrTooLate
	}

	if err := s.appts.Cancel(ctx, appt.ID, now); err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}
	appt.CanceledAt = &now

	s.notify(ctx, appt.ProviderID, func(clientName string) string {
		return canceledMessage(s.locale, clientName, appt.ScheduledAt)
	}, appt.ClientID)

	return appt, nil
}

// ListBookings returns the client's active appointments, soonest first,
// annotated with each provider's identity. Pages are 1-based.
func (s *Service) ListBookings(ctx context.Context, clientID string, page int) ([]model.ClientAppointment, error) {
	if page < 1 {
		page = 1
	}
	return s.appts.ListActive(ctx, clientID, page)
}

// notify resolves the client's display name, formats the message, and emits
// the event. The booking already succeeded, so failures are logged and
// swallowed rather than surfaced to the caller.
func (s *Service) notify(ctx context.Context, recipientID string, message func(clientName string) string, clientID string) {
	client, err := s.users.UserByID(ctx, clientID)
	if err != nil {
		s.log.Warn("skipping notification, client lookup failed",
			zap.String("client_id", clientID), zap.Error(err))
		return
	}
	_ = s.sink.Emit(ctx, model.NotificationEvent{
		RecipientID: recipientID,
		Content:     message(client.Name),
	})
}
