package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/email-otp-api/internal/domain"
	"github.com/email-otp-api/internal/infrastructure/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOTPService struct{ mock.Mock }

func (m *mockOTPService) Issue(ctx context.Context, emailAddr string) (*domain.OTPRecord, error) {
	args := m.Called(ctx, emailAddr)
	if rec, _ := args.Get(0).(*domain.OTPRecord); rec != nil {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockOTPService) Send(ctx context.Context, emailAddr string) error {
	return m.Called(ctx, emailAddr).Error(0)
}
func (m *mockOTPService) Verify(ctx context.Context, emailAddr, submitted string) (domain.VerificationOutcome, error) {
	args := m.Called(ctx, emailAddr, submitted)
	return args.Get(0).(domain.VerificationOutcome), args.Error(1)
}
func (m *mockOTPService) IsVerified(ctx context.Context, emailAddr string) (bool, error) {
	args := m.Called(ctx, emailAddr)
	return args.Bool(0), args.Error(1)
}

func postJSON(t *testing.T, h http.HandlerFunc, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

// --- Send ---

func TestSend_HappyPath(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Send", mock.Anything, "a@x.com").Return(nil)

	rr := postJSON(t, NewOTPHandler(svc, 6).Send, "/send-otp", `{"email":"A@X.com "}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	var env OTPEnvelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	assert.True(t, env.Success)
	assert.Equal(t, "a@x.com", env.Email)
	assert.Equal(t, "OTP sent successfully. Check your email.", env.Message)
}

func TestSend_MalformedEmail(t *testing.T) {
	svc := &mockOTPService{}
	rr := postJSON(t, NewOTPHandler(svc, 6).Send, "/send-otp", `{"email":"not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	svc.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSend_InvalidBody(t *testing.T) {
	rr := postJSON(t, NewOTPHandler(&mockOTPService{}, 6).Send, "/send-otp", `{`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSend_DeliveryFailure(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Send", mock.Anything, "a@x.com").Return(fmt.Errorf("%w: smtp unreachable", email.ErrDelivery))

	rr := postJSON(t, NewOTPHandler(svc, 6).Send, "/send-otp", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), "Failed to send OTP email")
}

func TestSend_StorageFaultIsGeneric(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Send", mock.Anything, "a@x.com").Return(errors.New("dynamo down"))

	rr := postJSON(t, NewOTPHandler(svc, 6).Send, "/send-otp", `{"email":"a@x.com"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "dynamo")
	assert.Contains(t, rr.Body.String(), "unexpected error")
}

// --- Verify ---

func TestVerify_OutcomeMapping(t *testing.T) {
	cases := []struct {
		name       string
		outcome    domain.VerificationOutcome
		wantStatus int
	}{
		{"accepted", domain.OutcomeAccepted, http.StatusOK},
		{"no active code", domain.OutcomeNoActiveCode, http.StatusBadRequest},
		{"expired", domain.OutcomeExpired, http.StatusBadRequest},
		{"mismatch", domain.OutcomeMismatch, http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &mockOTPService{}
			svc.On("Verify", mock.Anything, "a@x.com", "123456").Return(tc.outcome, nil)

			rr := postJSON(t, NewOTPHandler(svc, 6).Verify, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)

			assert.Equal(t, tc.wantStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tc.outcome.Message())
		})
	}
}

func TestVerify_RejectsMalformedOTP(t *testing.T) {
	for _, otp := range []string{"12345", "1234567", "12345a", "", "abcdef"} {
		svc := &mockOTPService{}
		body := fmt.Sprintf(`{"email":"a@x.com","otp":%q}`, otp)
		rr := postJSON(t, NewOTPHandler(svc, 6).Verify, "/verify-otp", body)

		assert.Equal(t, http.StatusBadRequest, rr.Code, "otp=%q", otp)
		svc.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything, mock.Anything)
	}
}

func TestVerify_LeadingZerosSurvive(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Verify", mock.Anything, "a@x.com", "000042").Return(domain.OutcomeAccepted, nil)

	rr := postJSON(t, NewOTPHandler(svc, 6).Verify, "/verify-otp", `{"email":"a@x.com","otp":"000042"}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertCalled(t, "Verify", mock.Anything, "a@x.com", "000042")
}

func TestVerify_Fault(t *testing.T) {
	svc := &mockOTPService{}
	svc.On("Verify", mock.Anything, "a@x.com", "123456").Return(domain.OutcomeNoActiveCode, errors.New("dynamo down"))

	rr := postJSON(t, NewOTPHandler(svc, 6).Verify, "/verify-otp", `{"email":"a@x.com","otp":"123456"}`)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "dynamo")
}
