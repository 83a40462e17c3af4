package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/model"
)

type registerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	IsProvider bool   `json:"is_provider"`
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeError(w, http.StatusBadRequest, "all fields required")
		return
	}
	if len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "password too short")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		IsProvider:   req.IsProvider,
	}
	if err := h.users.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		writeError(w, http.StatusConflict, "registration failed")
		return
	}

	if err := h.issueTokens(w, r, u.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"user_id": u.ID,
		"name":    u.Name,
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password required")
		return
	}

	u, err := h.users.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	if err := h.issueTokens(w, r, u.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"user_id": u.ID,
		"name":    u.Name,
	})
}

func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		writeError(w, http.StatusUnauthorized, "no refresh token")
		return
	}

	rt, err := h.tokens.RefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || !rt.Usable(time.Now()) {
		writeError(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	newRaw, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	newID := uuid.New().String()
	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if err := h.tokens.RotateRefreshToken(r.Context(), rt.ID, newID, rt.UserID, newHash, expiry); err != nil {
		h.log.Error("refresh token rotation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	accessTok, err := auth.MakeToken(rt.UserID, h.secret)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	setAuthCookies(w, accessTok, newRaw)
	writeJSON(w, http.StatusOK, map[string]any{"user_id": rt.UserID})
}

// issueTokens mints the access token and stores a fresh refresh token, then
// sets both as httponly cookies. The access token is also usable as a bearer
// header; register/login responses rely on the cookies.
func (h *Handler) issueTokens(w http.ResponseWriter, r *http.Request, userID string) error {
	accessTok, err := auth.MakeToken(userID, h.secret)
	if err != nil {
		return err
	}
	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(auth.RefreshTokenTTL)
	if _, err := h.tokens.CreateRefreshToken(r.Context(), userID, tokenHash, expiry); err != nil {
		return err
	}
	setAuthCookies(w, accessTok, rawRefresh)
	return nil
}

func setAuthCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: accessTok, HttpOnly: true, Path: "/"})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: rawRefresh, HttpOnly: true, Path: "/auth/"})
}
