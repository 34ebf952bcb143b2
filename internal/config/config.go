package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var Conf = newConf()

func newConf() *viper.Viper {
	v := viper.New()

	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("JWT_TTL", 24*time.Hour)
	v.SetDefault("REFRESH_TTL", 7*24*time.Hour)
	v.SetDefault("COOKIE_DOMAIN", "")
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("ADMIN_EMAILS", "")
	v.SetDefault("SEED_DATA", false)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")

	v.AutomaticEnv()
	return v
}

// Init loads .env (when present) and configures the global logger.
func Init() {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			Logger.WithError(err).Warn("Failed to load .env file")
		}
	}
	initLogger()
}

func Port() string { return Conf.GetString("PORT") }

func DatabaseDSN() string { return Conf.GetString("DATABASE_DSN") }

func JWTSecret() string { return Conf.GetString("JWT_SECRET") }

func AccessTokenTTL() time.Duration { return Conf.GetDuration("JWT_TTL") }

func RefreshTokenTTL() time.Duration { return Conf.GetDuration("REFRESH_TTL") }

func CookieDomain() string { return Conf.GetString("COOKIE_DOMAIN") }

func SeedEnabled() bool { return Conf.GetBool("SEED_DATA") }

func GeminiModel() string { return Conf.GetString("GEMINI_MODEL") }

func CorsOrigins() []string { return splitList(Conf.GetString("CORS_ORIGINS")) }

// AdminEmails lists the addresses promoted to ADMIN on login, lower-cased.
func AdminEmails() []string {
	emails := splitList(Conf.GetString("ADMIN_EMAILS"))
	for i := range emails {
		emails[i] = strings.ToLower(emails[i])
	}
	return emails
}

func IsAdminEmail(email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range AdminEmails() {
		if e == email {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
