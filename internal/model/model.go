package model

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	IsProvider   bool
	AvatarPath   string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Appointment struct {
	ID          string
	ClientID    string
	ProviderID  string
	ScheduledAt time.Time
	CanceledAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Active reports whether the appointment still occupies its slot.
func (a *Appointment) Active() bool {
	return a.CanceledAt == nil
}

// ProviderInfo is the provider identity attached to listing entries.
type ProviderInfo struct {
	ID         string
	Name       string
	AvatarPath string
}

// ClientAppointment is one row of a client's booking list.
type ClientAppointment struct {
	ID          string
	ScheduledAt time.Time
	Provider    ProviderInfo
}

// NotificationEvent is handed to the notification sink on a successful
// booking or cancellation. It is not retried.
type NotificationEvent struct {
	RecipientID string
	Content     string
}

type Notification struct {
	ID          string
	RecipientID string
	Content     string
	Read        bool
	CreatedAt   time.Time
}
