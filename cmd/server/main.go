package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/saulo-duarte/examhub/internal/config"
	"github.com/saulo-duarte/examhub/internal/container"
)

func main() {
	c := container.New()

	srv := &http.Server{
		Addr:              ":" + config.Port(),
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Logger.Infof("Listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Logger.WithError(err).Fatal("Server stopped")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		config.Logger.WithError(err).Error("Graceful shutdown failed")
	}
	config.Logger.Info("Server stopped")
}
