package handler

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/capecharters/charter-api/internal/dto"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/labstack/echo/v4"
	svix "github.com/svix/svix-webhooks/go"
)

// WebhookHandler ingests identity-provider lifecycle events and keeps the
// local customer table in sync. The synced row is what the rest of the
// system trusts for role and ownership checks.
type WebhookHandler struct {
	svc      service.CustomerService
	verifier *svix.Webhook
}

func NewWebhookHandler(svc service.CustomerService, webhookSecret string) (*WebhookHandler, error) {
	verifier, err := svix.NewWebhook(webhookSecret)
	if err != nil {
		return nil, err
	}
	return &WebhookHandler{svc: svc, verifier: verifier}, nil
}

func (h *WebhookHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/identity", h.HandleIdentityEvent)
}

func (h *WebhookHandler) HandleIdentityEvent(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable payload")
	}

	if err := h.verifier.Verify(payload, c.Request().Header); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid signature")
	}

	var event dto.IdentityWebhookEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user := service.IdentityUser{
		ExternalID: event.Data.ID,
		Email:      event.Data.PrimaryEmail(),
		FirstName:  event.Data.FirstName,
		LastName:   event.Data.LastName,
		Phone:      event.Data.PrimaryPhone(),
		ImageURL:   event.Data.ImageURL,
	}

	if err := h.svc.ApplyIdentityEvent(c.Request().Context(), event.Type, user); err != nil {
		log.Printf("[IdentityWebhook] failed to apply %s: %v", event.Type, err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}

	log.Printf("[IdentityWebhook] processed %s for %s", event.Type, event.Data.ID)
	return c.JSON(http.StatusOK, map[string]string{"status": "processed"})
}
