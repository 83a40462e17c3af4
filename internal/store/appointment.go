package store

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"appointment-booking-api/internal/model"
)

// listing page size, fixed
const pageSize = 20

// Insert persists a new active appointment. The partial unique index on
// (provider_id, scheduled_at) over active rows is what serializes concurrent
// bookings of the same slot; a violation comes back as ErrConflict.
func (s *Store) Insert(ctx context.Context, a *model.Appointment) error {
	err := s.pool.QueryRow(ctx,
		`INSERT INTO appointments (id, client_id, provider_id, scheduled_at)
		 VALUES ($1,$2,$3,$4)
		 RETURNING created_at, updated_at`,
		a.ID, a.ClientID, a.ProviderID, a.ScheduledAt,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrConflict
		}
		return err
	}
	return nil
}

// ActiveBySlot finds the active appointment holding a provider's slot, or
// ErrNotFound if the slot is free.
func (s *Store) ActiveBySlot(ctx context.Context, providerID string, slot time.Time) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id, provider_id, scheduled_at, canceled_at, created_at, updated_at
		 FROM appointments
		 WHERE provider_id = $1 AND scheduled_at = $2 AND canceled_at IS NULL`,
		providerID, slot,
	).Scan(&a.ID, &a.ClientID, &a.ProviderID, &a.ScheduledAt, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (s *Store) ByID(ctx context.Context, id string) (*model.Appointment, error) {
	a := &model.Appointment{}
	err := s.pool.QueryRow(ctx,
		`SELECT id, client_id, provider_id, scheduled_at, canceled_at, created_at, updated_at
		 FROM appointments WHERE id = $1`, id,
	).Scan(&a.ID, &a.ClientID, &a.ProviderID, &a.ScheduledAt, &a.CanceledAt, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// Cancel marks an appointment canceled. The row leaves the partial unique
// index, freeing the slot.
func (s *Store) Cancel(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE appointments SET canceled_at = $2, updated_at = NOW()
		 WHERE id = $1 AND canceled_at IS NULL`, id, at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListActive returns a page of the client's active appointments, soonest
// first, each annotated with the provider's identity and avatar.
func (s *Store) ListActive(ctx context.Context, clientID string, page int) ([]model.ClientAppointment, error) {
	if page < 1 {
		page = 1
	}
	rows, err := s.pool.Query(ctx,
		`SELECT a.id, a.scheduled_at, u.id, u.name, COALESCE(u.avatar_path, '')
		 FROM appointments a
		 JOIN users u ON u.id = a.provider_id
		 WHERE a.client_id = $1 AND a.canceled_at IS NULL
		 ORDER BY a.scheduled_at
		 LIMIT $2 OFFSET $3`,
		clientID, pageSize, (page-1)*pageSize,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.ClientAppointment
	for rows.Next() {
		var ca model.ClientAppointment
		if err := rows.Scan(
			&ca.ID, &ca.ScheduledAt,
			&ca.Provider.ID, &ca.Provider.Name, &ca.Provider.AvatarPath,
		); err != nil {
			return nil, err
		}
		out = append(out, ca)
	}
	return out, rows.Err()
}
