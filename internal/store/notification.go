package store

import (
	"context"

	"appointment-booking-api/internal/model"
)

func (s *Store) InsertNotification(ctx context.Context, n *model.Notification) error {
	return s.pool.QueryRow(ctx,
		`INSERT INTO notifications (id, recipient_id, content)
		 VALUES ($1,$2,$3) RETURNING created_at`,
		n.ID, n.RecipientID, n.Content,
	).Scan(&n.CreatedAt)
}

// NotificationsFor returns the recipient's 20 most recent notifications.
func (s *Store) NotificationsFor(ctx context.Context, recipientID string) ([]model.Notification, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, recipient_id, content, read, created_at
		 FROM notifications WHERE recipient_id = $1
		 ORDER BY created_at DESC LIMIT 20`, recipientID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.Content, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// MarkNotificationRead is scoped to the recipient so one user cannot touch
// another's notifications.
func (s *Store) MarkNotificationRead(ctx context.Context, id, recipientID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE notifications SET read = TRUE WHERE id = $1 AND recipient_id = $2`,
		id, recipientID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
