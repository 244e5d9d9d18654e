package server

import (
	"net/http"
	"time"

	"github.com/alfagnish/userapi/internal/events"
	"github.com/alfagnish/userapi/internal/handlers"
	"github.com/alfagnish/userapi/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// New creates a fully-configured chi router with all route groups,
// middleware, and handlers wired together.
func New(st *store.Store, hub *events.Hub) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	// ── Handlers ────────────────────────────────────────────
	usersH := handlers.NewUsersHandler(st, hub)
	eventsH := handlers.NewEventsHandler(hub)

	// ── Routes ──────────────────────────────────────────────
	r.Get("/", handlers.Home)
	r.Route("/users", func(r chi.Router) {
		usersH.Routes(r)
		r.Get("/events", eventsH.HandleEvents)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteFailure(w, http.StatusNotFound, "Resource not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		handlers.WriteFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return r
}

// requestLogger logs each HTTP request with a generated request id,
// method, path, status code, and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := uuid.New().String()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		logrus.WithFields(logrus.Fields{
			"request_id": reqID,
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     status,
			"duration":   time.Since(start).Round(time.Millisecond).String(),
		}).Info("request completed")
	})
}

// recoverer converts a handler panic into a 500 envelope. The cause is
// logged and never disclosed to the client.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logrus.WithField("panic", rec).Error("handler panicked")
				handlers.WriteFailure(w, http.StatusInternalServerError, "Internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
