package middlewares

import (
	"net/http"

	"github.com/saulo-duarte/examhub/internal/config"
)

func CorsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := allowedOrigin(r.Header.Get("Origin")); origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-Id")
			w.Header().Set("Access-Control-Expose-Headers", "Location")
			w.Header().Add("Vary", "Origin")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// allowedOrigin echoes origin back when it is configured. A "*" entry
// allows any origin.
func allowedOrigin(origin string) string {
	if origin == "" {
		return ""
	}
	for _, o := range config.CorsOrigins() {
		if o == "*" || o == origin {
			return origin
		}
	}
	return ""
}
