package handler

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock CustomerService ---

type mockCustomerService struct {
	applyFn func(ctx context.Context, eventType string, user service.IdentityUser) error
	getFn   func(ctx context.Context, externalID string) (*models.Customer, error)
}

func (m *mockCustomerService) ApplyIdentityEvent(ctx context.Context, eventType string, user service.IdentityUser) error {
	return m.applyFn(ctx, eventType, user)
}
func (m *mockCustomerService) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	return m.getFn(ctx, externalID)
}

const webhookTestSecret = "whsec_dGVzdC1zaWduaW5nLWtleS0xMjM0NTY3ODkwYWJjZGVm"

// signPayload produces the provider's signature headers for a payload.
func signPayload(t *testing.T, secret, msgID, payload string) http.Header {
	t.Helper()
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, "whsec_"))
	require.NoError(t, err)

	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	mac := hmac.New(sha256.New, key)
	fmt.Fprintf(mac, "%s.%s.%s", msgID, timestamp, payload)
	signature := base64.StdEncoding.EncodeToString(mac.Sum(nil))

	h := http.Header{}
	h.Set("svix-id", msgID)
	h.Set("svix-timestamp", timestamp)
	h.Set("svix-signature", "v1,"+signature)
	return h
}

const userCreatedPayload = `{
	"type": "user.created",
	"data": {
		"id": "user_2abc",
		"first_name": "Thandi",
		"last_name": "Nkosi",
		"primary_email_address_id": "email_1",
		"email_addresses": [
			{"id": "email_0", "email_address": "secondary@example.com"},
			{"id": "email_1", "email_address": "guest@example.com"}
		],
		"primary_phone_number_id": "phone_1",
		"phone_numbers": [
			{"id": "phone_1", "phone_number": "+27821234567"}
		]
	}
}`

func webhookContext(t *testing.T, payload string, headers http.Header) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/identity", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestIdentityWebhook_UserCreated(t *testing.T) {
	var appliedType string
	var appliedUser service.IdentityUser
	svc := &mockCustomerService{
		applyFn: func(ctx context.Context, eventType string, user service.IdentityUser) error {
			appliedType = eventType
			appliedUser = user
			return nil
		},
	}

	h, err := NewWebhookHandler(svc, webhookTestSecret)
	require.NoError(t, err)

	headers := signPayload(t, webhookTestSecret, "msg_1", userCreatedPayload)
	c, rec := webhookContext(t, userCreatedPayload, headers)

	require.NoError(t, h.HandleIdentityEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.IdentityUserCreated, appliedType)
	assert.Equal(t, "user_2abc", appliedUser.ExternalID)
	assert.Equal(t, "guest@example.com", appliedUser.Email, "primary address wins over the first listed")
	assert.Equal(t, "+27821234567", appliedUser.Phone)
	assert.Equal(t, "Thandi", appliedUser.FirstName)
}

func TestIdentityWebhook_BadSignatureRejected(t *testing.T) {
	applied := false
	svc := &mockCustomerService{
		applyFn: func(ctx context.Context, eventType string, user service.IdentityUser) error {
			applied = true
			return nil
		},
	}

	h, err := NewWebhookHandler(svc, webhookTestSecret)
	require.NoError(t, err)

	headers := signPayload(t, webhookTestSecret, "msg_1", userCreatedPayload)
	// Tampered body no longer matches the signature.
	tampered := strings.Replace(userCreatedPayload, "user_2abc", "user_evil", 1)
	c, _ := webhookContext(t, tampered, headers)

	err = h.HandleIdentityEvent(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
	assert.False(t, applied, "unverified events must not touch the customer table")
}

func TestIdentityWebhook_MissingHeadersRejected(t *testing.T) {
	h, err := NewWebhookHandler(&mockCustomerService{}, webhookTestSecret)
	require.NoError(t, err)

	c, _ := webhookContext(t, userCreatedPayload, nil)

	err = h.HandleIdentityEvent(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Code)
}

func TestIdentityWebhook_UserDeleted(t *testing.T) {
	var appliedType string
	svc := &mockCustomerService{
		applyFn: func(ctx context.Context, eventType string, user service.IdentityUser) error {
			appliedType = eventType
			return nil
		},
	}

	h, err := NewWebhookHandler(svc, webhookTestSecret)
	require.NoError(t, err)

	payload := `{"type": "user.deleted", "data": {"id": "user_2abc"}}`
	headers := signPayload(t, webhookTestSecret, "msg_2", payload)
	c, rec := webhookContext(t, payload, headers)

	require.NoError(t, h.HandleIdentityEvent(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.IdentityUserDeleted, appliedType)
}

func TestIdentityWebhook_ServiceFailure(t *testing.T) {
	svc := &mockCustomerService{
		applyFn: func(ctx context.Context, eventType string, user service.IdentityUser) error {
			return fmt.Errorf("db down")
		},
	}

	h, err := NewWebhookHandler(svc, webhookTestSecret)
	require.NoError(t, err)

	headers := signPayload(t, webhookTestSecret, "msg_3", userCreatedPayload)
	c, _ := webhookContext(t, userCreatedPayload, headers)

	err = h.HandleIdentityEvent(c)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}
