package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/email-otp-api/internal/application/otp"
	"github.com/email-otp-api/internal/domain"
)

// StatusHandler answers verification-status queries.
type StatusHandler struct {
	svc otp.Service
}

func NewStatusHandler(svc otp.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

func (h *StatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	emailAddr := domain.NormalizeEmail(chi.URLParam(r, "email"))
	verified, err := h.svc.IsVerified(r.Context(), emailAddr)
	if err != nil {
		slog.Error("verification status lookup failed", "email", emailAddr, "err", err)
		writeError(w, http.StatusInternalServerError, genericFaultMsg)
		return
	}

	msg := "Not verified"
	if verified {
		msg = "Verified"
	}
	writeJSON(w, http.StatusOK, StatusEnvelope{
		Email:      emailAddr,
		IsVerified: verified,
		Message:    msg,
	})
}
