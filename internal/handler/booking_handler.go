package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/capecharters/charter-api/internal/dto"
	"github.com/capecharters/charter-api/internal/middleware"
	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type BookingHandler struct {
	svc service.BookingService
}

func NewBookingHandler(svc service.BookingService) *BookingHandler {
	return &BookingHandler{svc: svc}
}

func (h *BookingHandler) RegisterRoutes(g *echo.Group) {
	g.POST("", h.CreateBooking)
	g.GET("", h.ListBookings)
	g.GET("/:id", h.GetBooking)
	g.PATCH("/:id", h.UpdateBooking)
	g.DELETE("/:id", h.DeleteBooking)
}

func (h *BookingHandler) CreateBooking(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	packageID, err := uuid.Parse(req.PackageID)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid package id")
	}

	booking, err := h.svc.Create(c.Request().Context(), actor, service.CreateBookingInput{
		PackageID:           packageID,
		Date:                req.Date,
		TimeSlot:            models.TimeSlot(req.TimeSlot),
		GuestCount:          req.GuestCount,
		ContactName:         req.ContactName,
		ContactEmail:        req.ContactEmail,
		ContactPhone:        req.ContactPhone,
		SpecialRequests:     req.SpecialRequests,
		DietaryRequirements: req.DietaryRequirements,
	})
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusCreated, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) ListBookings(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	opts := service.ListBookingsOptions{
		All: c.QueryParam("all") == "true",
	}
	if s := c.QueryParam("status"); s != "" {
		status := models.BookingStatus(s)
		if !models.ValidBookingStatus(status) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status filter")
		}
		opts.Status = &status
	}

	bookings, err := h.svc.List(c.Request().Context(), actor, opts)
	if err != nil {
		return bookingError(err)
	}

	resp := make([]dto.BookingResponse, len(bookings))
	for i, b := range bookings {
		resp[i] = dto.ToBookingResponse(&b)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *BookingHandler) GetBooking(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	booking, err := h.svc.Get(c.Request().Context(), actor, id)
	if err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

// UpdateBooking dispatches by role: admins get the full field set, owners get
// exactly one move, cancelling their own pending booking.
func (h *BookingHandler) UpdateBooking(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	var req dto.UpdateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	var booking *models.Booking
	if actor.IsAdmin() {
		update := service.AdminBookingUpdate{
			AdminNotes: req.AdminNotes,
			Date:       req.Date,
		}
		if req.Status != nil {
			status := models.BookingStatus(*req.Status)
			update.Status = &status
		}
		if req.TimeSlot != nil {
			slot := models.TimeSlot(*req.TimeSlot)
			update.TimeSlot = &slot
		}
		update.GuestCount = req.GuestCount
		booking, err = h.svc.AdminUpdate(c.Request().Context(), actor, id, update)
	} else {
		if !req.CancelOnly() {
			return echo.NewHTTPError(http.StatusForbidden, service.ErrCancelOnly.Error())
		}
		booking, err = h.svc.Cancel(c.Request().Context(), actor, id)
	}
	if err != nil {
		return bookingError(err)
	}

	return c.JSON(http.StatusOK, dto.ToBookingResponse(booking))
}

func (h *BookingHandler) DeleteBooking(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid booking id")
	}

	if err := h.svc.Delete(c.Request().Context(), actor, id); err != nil {
		return bookingError(err)
	}
	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}

func bookingError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrBookingNotFound),
		errors.Is(err, service.ErrPackageNotFound),
		errors.Is(err, service.ErrCustomerNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrCancelNotPending),
		errors.Is(err, service.ErrCancelOnly):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPackageInactive),
		errors.Is(err, service.ErrGuestCountOutOfRange),
		errors.Is(err, service.ErrInvalidTimeSlot),
		errors.Is(err, service.ErrInvalidStatus):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Printf("[BookingHandler] unexpected error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
