package handler

import "net/http"

const serviceName = "Email OTP Verification API"

// HealthHandler handles the liveness probe and the service-info root.
type HealthHandler struct{}

func NewHealthHandler() *HealthHandler { return &HealthHandler{} }

func (h *HealthHandler) Check(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service":     serviceName,
		"version":     "1.0.0",
		"description": "A production-grade microservice for email OTP verification",
		"endpoints": map[string]string{
			"health":              "/health (GET)",
			"send_otp":            "/send-otp (POST) - Protected",
			"verify_otp":          "/verify-otp (POST) - Protected",
			"verification_status": "/verification-status/{email} (GET) - Protected",
		},
	})
}
