package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const actorKey = "actor"

// Auth verifies the identity provider's session token (HS256 bearer JWT,
// subject = external identity id), resolves the synced customer row and
// stores it in the request context. The resolved customer is then passed
// explicitly into every service call; nothing below the handler layer reads
// request context for identity.
func Auth(secret string, customers service.CustomerService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			externalID, err := subjectFromRequest(c, secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}

			customer, err := customers.GetByExternalID(c.Request().Context(), externalID)
			if err != nil {
				if errors.Is(err, service.ErrCustomerNotFound) {
					// Valid session but the identity webhook has not synced
					// this user yet.
					return echo.NewHTTPError(http.StatusNotFound, "customer not found")
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
			}

			c.Set(actorKey, customer)
			return next(c)
		}
	}
}

// OptionalAuth resolves the actor when a valid token is present and proceeds
// anonymously otherwise. Used on public reads where admins see more.
func OptionalAuth(secret string, customers service.CustomerService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			externalID, err := subjectFromRequest(c, secret)
			if err == nil {
				if customer, err := customers.GetByExternalID(c.Request().Context(), externalID); err == nil {
					c.Set(actorKey, customer)
				}
			}
			return next(c)
		}
	}
}

// Actor returns the authenticated customer, or nil for anonymous requests.
func Actor(c echo.Context) *models.Customer {
	if customer, ok := c.Get(actorKey).(*models.Customer); ok {
		return customer
	}
	return nil
}

// SetActor exists for handler tests.
func SetActor(c echo.Context, customer *models.Customer) {
	c.Set(actorKey, customer)
}

func subjectFromRequest(c echo.Context, secret string) (string, error) {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found || raw == "" {
		return "", errors.New("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return "", errors.New("invalid token")
	}
	if claims.Subject == "" {
		return "", errors.New("token has no subject")
	}
	return claims.Subject, nil
}
