package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"appointment-booking-api/internal/booking"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/model"
	"appointment-booking-api/internal/store"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	UserByEmail(ctx context.Context, email string) (*model.User, error)
	ListProviders(ctx context.Context) ([]model.ProviderInfo, error)
}

type TokenStore interface {
	CreateRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) (string, error)
	RefreshTokenByHash(ctx context.Context, tokenHash string) (*store.RefreshToken, error)
	RotateRefreshToken(ctx context.Context, oldID, newID, userID, newHash string, newExpiry time.Time) error
}

type NotificationStore interface {
	NotificationsFor(ctx context.Context, recipientID string) ([]model.Notification, error)
	MarkNotificationRead(ctx context.Context, id, recipientID string) error
}

type Handler struct {
	svc    *booking.Service
	users  UserStore
	tokens TokenStore
	notes  NotificationStore
	secret string
	log    *zap.Logger
}

func New(svc *booking.Service, users UserStore, tokens TokenStore, notes NotificationStore, secret string, log *zap.Logger) *Handler {
	return &Handler{svc: svc, users: users, tokens: tokens, notes: notes, secret: secret, log: log}
}

// Routes wires the public auth routes and the authenticated API.
func (h *Handler) Routes(rl *middleware.RateLimiter) *mux.Router {
	r := mux.NewRouter()

	pub := r.PathPrefix("/auth").Subrouter()
	pub.Use(middleware.RateLimit(rl))
	pub.HandleFunc("/register", h.register).Methods(http.MethodPost)
	pub.HandleFunc("/login", h.login).Methods(http.MethodPost)
	pub.HandleFunc("/refresh", h.refresh).Methods(http.MethodPost)

	api := r.PathPrefix("/").Subrouter()
	api.Use(middleware.Auth(h.secret))
	api.HandleFunc("/appointments", h.createAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", h.listAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", h.cancelAppointment).Methods(http.MethodDelete)
	api.HandleFunc("/providers", h.listProviders).Methods(http.MethodGet)
	api.HandleFunc("/notifications", h.listNotifications).Methods(http.MethodGet)
	api.HandleFunc("/notifications/{id}/read", h.markNotificationRead).Methods(http.MethodPut)

	return r
}

func uid(ctx context.Context) string {
	return middleware.UserID(ctx)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// rejectBooking maps a booking rejection to its HTTP status. Anything
// outside the taxonomy is an internal error and the message is not leaked.
func (h *Handler) rejectBooking(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, booking.ErrInvalidInput),
		errors.Is(err, booking.ErrPastDate),
		errors.Is(err, booking.ErrTooLate):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, booking.ErrNotAProvider):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, booking.ErrSlotTaken):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, booking.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		h.log.Error("booking request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
