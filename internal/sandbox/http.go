package sandbox

import (
	"encoding/json"
	"errors"
	"net/http"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type failureEnvelope struct {
	Status string   `json:"status"`
	Errors []string `json:"errors"`
}

func writeFailure(w http.ResponseWriter, messages ...string) {
	if len(messages) == 0 {
		messages = []string{"request failed"}
	}
	writeJSON(w, http.StatusOK, failureEnvelope{Status: "failure", Errors: messages})
}

func writeServiceError(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	switch svcErr.Kind {
	case ServiceErrorInvalid, ServiceErrorConflict:
		messages := svcErr.Messages
		if len(messages) == 0 {
			messages = []string{svcErr.Error()}
		}
		writeFailure(w, messages...)
	case ServiceErrorNotFound:
		writeJSON(w, http.StatusNotFound, map[string]string{"error": svcErr.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": svcErr.Error()})
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
}
