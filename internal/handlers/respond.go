package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/alfagnish/userapi/internal/store"
	"github.com/sirupsen/logrus"
)

// envelope is the uniform shape of every response body. Exactly one of
// Data and Errors is set.
type envelope struct {
	Timestamp  string      `json:"timestamp"`
	StatusCode int         `json:"status_code"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Errors     []string    `json:"errors,omitempty"`
}

// WriteSuccess writes a success envelope carrying the given data payload.
func WriteSuccess(w http.ResponseWriter, status int, message string, data interface{}) {
	writeEnvelope(w, envelope{
		Timestamp:  time.Now().Format(store.TimeFormat),
		StatusCode: status,
		Message:    message,
		Data:       data,
	})
}

// WriteFailure writes an error envelope. The errors array is always
// present: when no explicit list is given it holds the message itself, so
// clients can treat validation and non-validation failures uniformly.
func WriteFailure(w http.ResponseWriter, status int, message string, errs ...string) {
	if len(errs) == 0 {
		errs = []string{message}
	}
	writeEnvelope(w, envelope{
		Timestamp:  time.Now().Format(store.TimeFormat),
		StatusCode: status,
		Message:    message,
		Errors:     errs,
	})
}

func writeEnvelope(w http.ResponseWriter, env envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(env.StatusCode)
	if err := json.NewEncoder(w).Encode(env); err != nil {
		logrus.WithError(err).Error("failed to encode response body")
	}
}
