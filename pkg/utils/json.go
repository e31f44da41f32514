package utils

import (
	"encoding/json"
	"net/http"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil || status == http.StatusNoContent {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, map[string]string{"message": msg})
}

// WriteFieldErrors renders a validation failure as a 422 payload with a
// field-keyed error map, the shape the web client expects.
func WriteFieldErrors(w http.ResponseWriter, fe FieldErrors) {
	WriteJSON(w, http.StatusUnprocessableEntity, map[string]any{
		"message": "the given data was invalid",
		"errors":  fe,
	})
}
