package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/proxx/internal/command"
	"github.com/vancomm/proxx/internal/holes"
	"github.com/vancomm/proxx/internal/session"
)

var (
	ErrForbidden       = errors.New("session token does not grant access to this game")
	ErrRecordsDisabled = errors.New("records are disabled")
)

func SendJSON(w http.ResponseWriter, v any) (int, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return 0, err
	}
	w.Header().Add("Content-Type", "application/json")
	return w.Write(payload)
}

func sendJSONOrLog(w http.ResponseWriter, log *logrus.Logger, v any) {
	_, err := SendJSON(w, v)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		log.WithFields(logrus.Fields{
			"response": v,
			"error":    err,
		}).Error("unable to send response")
	}
}

func wrapError(err error) map[string]any {
	var lineErr *command.LineError
	if errors.As(err, &lineErr) {
		return map[string]any{
			"line":  lineErr.Line + 1,
			"error": lineErr.Err.Error(),
		}
	}
	return map[string]any{
		"error": err.Error(),
	}
}

// errorStatus maps domain errors onto response codes.
func errorStatus(err error) int {
	var (
		configErr    *holes.ConfigError
		rangeErr     *holes.OutOfRangeError
		assertionErr holes.AssertionError
	)
	switch {
	case errors.As(err, &assertionErr):
		return http.StatusInternalServerError
	case errors.As(err, &configErr),
		errors.As(err, &rangeErr),
		errors.Is(err, command.ErrUnknownCommand),
		errors.Is(err, command.ErrArity),
		errors.Is(err, command.ErrBadArgument):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrRecordsDisabled):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func sendError(w http.ResponseWriter, log *logrus.Logger, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.WithError(err).Error("internal error")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	sendJSONOrLog(w, log, wrapError(err))
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
