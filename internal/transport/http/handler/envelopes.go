package handler

import (
	"encoding/json"
	"net/http"
)

// OTPEnvelope wraps send/verify responses.
type OTPEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Email   string `json:"email,omitempty"`
	Error   string `json:"error,omitempty"`
}

// StatusEnvelope wraps verification-status responses.
type StatusEnvelope struct {
	Email      string `json:"email"`
	IsVerified bool   `json:"is_verified"`
	Message    string `json:"message"`
}

// MessageEnvelope is the generic response wrapper.
type MessageEnvelope struct {
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, MessageEnvelope{Error: msg})
}
