package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"appointment-booking-api/internal/model"
)

type createAppointmentRequest struct {
	ProviderID string `json:"provider_id"`
	Date       string `json:"date"` // RFC 3339
}

type appointmentResponse struct {
	ID          string     `json:"id"`
	ClientID    string     `json:"client_id"`
	ProviderID  string     `json:"provider_id"`
	ScheduledAt time.Time  `json:"scheduled_at"`
	CanceledAt  *time.Time `json:"canceled_at,omitempty"`
}

func toResponse(a *model.Appointment) appointmentResponse {
	return appointmentResponse{
		ID:          a.ID,
		ClientID:    a.ClientID,
		ProviderID:  a.ProviderID,
		ScheduledAt: a.ScheduledAt,
		CanceledAt:  a.CanceledAt,
	}
}

func (h *Handler) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.svc.RequestBooking(r.Context(), uid(r.Context()), req.ProviderID, req.Date)
	if err != nil {
		h.rejectBooking(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toResponse(appt))
}

type listEntry struct {
	ID          string    `json:"id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Provider    struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar,omitempty"`
	} `json:"provider"`
}

func (h *Handler) listAppointments(w http.ResponseWriter, r *http.Request) {
	page := 1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "invalid page")
			return
		}
		page = n
	}

	appts, err := h.svc.ListBookings(r.Context(), uid(r.Context()), page)
	if err != nil {
		h.log.Error("list appointments failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	out := make([]listEntry, len(appts))
	for i, a := range appts {
		out[i].ID = a.ID
		out[i].ScheduledAt = a.ScheduledAt
		out[i].Provider.ID = a.Provider.ID
		out[i].Provider.Name = a.Provider.Name
		out[i].Provider.Avatar = a.Provider.AvatarPath
	}
	writeJSON(w, http.StatusOK, map[string]any{"appointments": out, "page": page})
}

func (h *Handler) cancelAppointment(w http.ResponseWriter, r *http.Request) {
	appt, err := h.svc.CancelBooking(r.Context(), uid(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.rejectBooking(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(appt))
}

func (h *Handler) listProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.users.ListProviders(r.Context())
	if err != nil {
		h.log.Error("list providers failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	type provider struct {
		ID     string `json:"id"`
		Name   string `json:"name"`
		Avatar string `json:"avatar,omitempty"`
	}
	out := make([]provider, len(providers))
	for i, p := range providers {
		out[i] = provider{ID: p.ID, Name: p.Name, Avatar: p.AvatarPath}
	}
	writeJSON(w, http.StatusOK, map[string]any{"providers": out})
}

func (h *Handler) listNotifications(w http.ResponseWriter, r *http.Request) {
	notes, err := h.notes.NotificationsFor(r.Context(), uid(r.Context()))
	if err != nil {
		h.log.Error("list notifications failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	type note struct {
		ID        string    `json:"id"`
		Content   string    `json:"content"`
		Read      bool      `json:"read"`
		CreatedAt time.Time `json:"created_at"`
	}
	out := make([]note, len(notes))
	for i, n := range notes {
		out[i] = note{ID: n.ID, Content: n.Content, Read: n.Read, CreatedAt: n.CreatedAt}
	}
	writeJSON(w, http.StatusOK, map[string]any{"notifications": out})
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	if err := h.notes.MarkNotificationRead(r.Context(), mux.Vars(r)["id"], uid(r.Context())); err != nil {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "read"})
}
