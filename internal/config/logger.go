package config

import (
	"context"
	"os"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

var Logger = logrus.New()

type logContextKey string

const userIDLogKey logContextKey = "log_user_id"

func initLogger() {
	level, err := logrus.ParseLevel(Conf.GetString("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
	Logger.SetOutput(os.Stdout)

	if Conf.GetString("LOG_FORMAT") == "text" {
		Logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Logger.SetFormatter(&logrus.JSONFormatter{})
}

// WithContext returns a log entry carrying the request id and the
// authenticated user id found in ctx.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(Logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	if userID, ok := ctx.Value(userIDLogKey).(string); ok && userID != "" {
		entry = entry.WithField("user_id", userID)
	}
	return entry
}

func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDLogKey, userID)
}
