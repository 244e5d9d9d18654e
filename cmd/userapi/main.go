package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alfagnish/userapi/internal/config"
	"github.com/alfagnish/userapi/internal/events"
	"github.com/alfagnish/userapi/internal/server"
	"github.com/alfagnish/userapi/internal/store"
	"github.com/sirupsen/logrus"
)

func main() {
	// 1. Load configuration from environment variables.
	cfg := config.Load()

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	logrus.WithFields(logrus.Fields{
		"listen":    cfg.ListenAddr,
		"log_level": level.String(),
	}).Info("configuration loaded")

	// 2. Create the in-memory user store and the change-event hub.
	st := store.New()
	hub := events.NewHub()

	// 3. Set up the chi router with all handlers.
	handler := server.New(st, hub)

	// 4. Start the HTTP server.
	srv := &http.Server{
		Addr:         cfg.ListenAddr,
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 0, // no write timeout to support the event feed
		IdleTimeout:  120 * time.Second,
	}

	// Graceful shutdown on SIGINT / SIGTERM.
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		logrus.WithField("addr", cfg.ListenAddr).Info("user API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	<-done
	logrus.Info("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("graceful shutdown error")
	}

	logrus.Info("server stopped")
}
