package auth

import (
	"net/http"
	"time"

	"github.com/saulo-duarte/examhub/internal/config"
)

const (
	AccessCookieName  = "jwt"
	RefreshCookieName = "refresh_token"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func SetTokenCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Domain:   config.CookieDomain(),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	for _, name := range []string{AccessCookieName, RefreshCookieName} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			Domain:   config.CookieDomain(),
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}

	config.JSON(w, http.StatusOK, map[string]string{
		"message": "logout successful",
	})
}
