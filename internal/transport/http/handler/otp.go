package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/email-otp-api/internal/application/otp"
	"github.com/email-otp-api/internal/domain"
	"github.com/email-otp-api/internal/infrastructure/email"
	"github.com/email-otp-api/internal/pkg/validate"
)

const genericFaultMsg = "An unexpected error occurred. Please try again later."

// OTPHandler handles the OTP send and verify endpoints.
type OTPHandler struct {
	svc        otp.Service
	codeLength int
}

func NewOTPHandler(svc otp.Service, codeLength int) *OTPHandler {
	return &OTPHandler{svc: svc, codeLength: codeLength}
}

func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req domain.SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	emailAddr := domain.NormalizeEmail(req.Email)
	if err := h.svc.Send(r.Context(), emailAddr); err != nil {
		if errors.Is(err, email.ErrDelivery) {
			writeError(w, http.StatusInternalServerError, "Failed to send OTP email. Please check your email transport configuration.")
			return
		}
		slog.Error("send otp failed", "email", emailAddr, "err", err)
		writeError(w, http.StatusInternalServerError, genericFaultMsg)
		return
	}

	writeJSON(w, http.StatusOK, OTPEnvelope{
		Success: true,
		Message: "OTP sent successfully. Check your email.",
		Email:   emailAddr,
	})
}

func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req domain.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	submitted := strings.TrimSpace(req.OTP)
	if !isDigits(submitted) || len(submitted) != h.codeLength {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("OTP must be a %d-digit number.", h.codeLength))
		return
	}

	emailAddr := domain.NormalizeEmail(req.Email)
	out, err := h.svc.Verify(r.Context(), emailAddr, submitted)
	if err != nil {
		slog.Error("verify otp failed", "email", emailAddr, "err", err)
		writeError(w, http.StatusInternalServerError, genericFaultMsg)
		return
	}
	if !out.Accepted() {
		writeError(w, http.StatusBadRequest, out.Message())
		return
	}

	writeJSON(w, http.StatusOK, OTPEnvelope{
		Success: true,
		Message: out.Message(),
		Email:   emailAddr,
	})
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
