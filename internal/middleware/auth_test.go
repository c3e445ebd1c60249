package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "charter-test-secret"

type stubCustomerService struct {
	customer *models.Customer
	err      error
}

func (s *stubCustomerService) ApplyIdentityEvent(ctx context.Context, eventType string, user service.IdentityUser) error {
	return nil
}
func (s *stubCustomerService) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	return s.customer, s.err
}

func signedToken(t *testing.T, subject, secret string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func authRequest(token string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuth_ResolvesActor(t *testing.T) {
	customer := &models.Customer{ID: uuid.New(), ExternalID: "user_2abc", Role: models.RoleCustomer}
	mw := Auth(testSecret, &stubCustomerService{customer: customer})

	c, _ := authRequest(signedToken(t, "user_2abc", testSecret))
	var resolved *models.Customer
	err := mw(func(c echo.Context) error {
		resolved = Actor(c)
		return nil
	})(c)

	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.Equal(t, customer.ID, resolved.ID)
}

func TestAuth_MissingToken(t *testing.T) {
	mw := Auth(testSecret, &stubCustomerService{})

	c, _ := authRequest("")
	err := mw(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_WrongSigningKey(t *testing.T) {
	mw := Auth(testSecret, &stubCustomerService{})

	c, _ := authRequest(signedToken(t, "user_2abc", "some-other-secret"))
	err := mw(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_ExpiredToken(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "user_2abc",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)

	mw := Auth(testSecret, &stubCustomerService{})
	c, _ := authRequest(signed)
	err = mw(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_UnsyncedCustomer(t *testing.T) {
	// Valid session, but the identity webhook has not delivered this user yet.
	mw := Auth(testSecret, &stubCustomerService{err: service.ErrCustomerNotFound})

	c, _ := authRequest(signedToken(t, "user_fresh", testSecret))
	err := mw(func(c echo.Context) error { return nil })(c)

	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Code)
}

func TestOptionalAuth_AnonymousPasses(t *testing.T) {
	mw := OptionalAuth(testSecret, &stubCustomerService{})

	c, _ := authRequest("")
	called := false
	err := mw(func(c echo.Context) error {
		called = true
		assert.Nil(t, Actor(c))
		return nil
	})(c)

	require.NoError(t, err)
	assert.True(t, called)
}

func TestOptionalAuth_ResolvesWhenTokenPresent(t *testing.T) {
	customer := &models.Customer{ID: uuid.New(), ExternalID: "user_2abc", Role: models.RoleAdmin}
	mw := OptionalAuth(testSecret, &stubCustomerService{customer: customer})

	c, _ := authRequest(signedToken(t, "user_2abc", testSecret))
	var resolved *models.Customer
	err := mw(func(c echo.Context) error {
		resolved = Actor(c)
		return nil
	})(c)

	require.NoError(t, err)
	require.NotNil(t, resolved)
	assert.True(t, resolved.IsAdmin())
}
