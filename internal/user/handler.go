package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/examhub/internal/auth"
	"github.com/saulo-duarte/examhub/internal/config"
)

type Handler struct {
	service UserService
}

func NewHandler(s UserService) *Handler {
	return &Handler{service: s}
}

func writeSession(w http.ResponseWriter, session *Session) {
	auth.SetTokenCookie(w, auth.AccessCookieName, session.AccessToken, config.AccessTokenTTL())
	auth.SetTokenCookie(w, auth.RefreshCookieName, session.RefreshToken, config.RefreshTokenTTL())
	config.JSON(w, http.StatusOK, session)
}

func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.WithError(err).Warn("Invalid login body")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.service.GoogleLogin(r.Context(), payload.Code)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidCode):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case errors.Is(err, ErrEmailNotVerified):
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "login failed", http.StatusUnauthorized)
		}
		return
	}

	writeSession(w, session)
}

func (h *Handler) RefreshToken(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(auth.RefreshCookieName)
	if err != nil || cookie.Value == "" {
		http.Error(w, "refresh token required", http.StatusUnauthorized)
		return
	}

	session, err := h.service.Refresh(r.Context(), cookie.Value)
	if err != nil {
		if errors.Is(err, ErrInvalidToken) || errors.Is(err, ErrUserNotFound) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	writeSession(w, session)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	claims, err := auth.GetUserClaimsFromContext(r.Context())
	if err != nil {
		log.Warn("Unauthenticated profile request")
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	u, err := h.service.GetByID(r.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			http.Error(w, "user not found", http.StatusNotFound)
			return
		}
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	config.JSON(w, http.StatusOK, u)
}

func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	config.JSON(w, http.StatusOK, users)
}
