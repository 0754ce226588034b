package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func getStatus(t *testing.T, svc *mockOTPService, email string) *httptest.ResponseRecorder {
	t.Helper()
	r := chi.NewRouter()
	r.Get("/verification-status/{email}", NewStatusHandler(svc).Get)
	req := httptest.NewRequest(http.MethodGet, "/verification-status/"+email, nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestStatus_Verified(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("IsVerified", mock.Anything, "a@x.com").Return(true, nil)

	rr := getStatus(t, svc, "a@x.com")

	assert.Equal(t, http.StatusOK, rr.Code)
	var env StatusEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.IsVerified)
	assert.Equal(t, "Verified", env.Message)
	assert.Equal(t, "a@x.com", env.Email)
}

func TestStatus_NotVerified(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("IsVerified", mock.Anything, "b@x.com").Return(false, nil)

	rr := getStatus(t, svc, "b@x.com")

	assert.Equal(t, http.StatusOK, rr.Code)
	var env StatusEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.False(t, env.IsVerified)
	assert.Equal(t, "Not verified", env.Message)
}

func TestHealth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	NewHealthHandler().Check(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "healthy")
}
