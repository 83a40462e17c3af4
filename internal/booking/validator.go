package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

// UserDirectory resolves users for the provider check and for the
// requester's display name.
type UserDirectory interface {
	UserByID(ctx context.Context, id string) (*model.User, error)
}

// SlotReader is the read access Validate needs: whichever active
// appointment currently holds a provider's slot, if any.
type SlotReader interface {
	ActiveBySlot(ctx context.Context, providerID string, slot time.Time) (*model.Appointment, error)
}

// Request is a candidate booking before validation.
type Request struct {
	ClientID    string
	ProviderID  string
	RequestedAt time.Time
}

// Normalized is an accepted booking with its slot truncated to the hour.
type Normalized struct {
	ClientID    string
	ProviderID  string
	ScheduledAt time.Time
}

// Slot zeroes t's wall-clock minutes and seconds, keeping its offset. All
// comparisons and storage use the normalized value; two timestamps within
// the same hour are the same slot. time.Truncate would round against
// absolute time and misplace half-hour offsets like +05:30.
func Slot(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
}

// Validate decides whether a requested booking may proceed. It performs only
// reads and is safe for concurrent use. Checks run in a fixed order and the
// first failure is the rejection reason. "now" is pinned once by the caller
// so a single validation never sees inconsistent clocks.
func Validate(ctx context.Context, req Request, users UserDirectory, appts SlotReader, now time.Time) (Normalized, error) {
	if req.ProviderID == "" || req.RequestedAt.IsZero() {
		return Normalized{}, ErrInvalidInput
	}

	provider, err := users.UserByID(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Normalized{}, ErrNotAProvider
		}
		return Normalized{}, fmt.Errorf("look up provider: %w", err)
	}
	if !provider.IsProvider {
		return Normalized{}, ErrNotAProvider
	}

	slot := Slot(req.RequestedAt)
	if slot.Before(now) {
		return Normalized{}, ErrPastDate
	}

	_, err = appts.ActiveBySlot(ctx, req.ProviderID, slot)
	switch {
	case err == nil:
		return Normalized{}, ErrSlotTaken
	case errors.Is(err, store.ErrNotFound):
		// slot is free
	default:
		return Normalized{}, fmt.Errorf("check availability: %w", err)
	}

	return Normalized{
		ClientID:    req.ClientID,
		ProviderID:  req.ProviderID,
		ScheduledAt: slot,
	}, nil
}
