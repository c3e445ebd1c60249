package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/capecharters/charter-api/internal/dto"
	"github.com/capecharters/charter-api/internal/middleware"
	"github.com/capecharters/charter-api/internal/service"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type PackageHandler struct {
	svc service.PackageService
}

func NewPackageHandler(svc service.PackageService) *PackageHandler {
	return &PackageHandler{svc: svc}
}

func (h *PackageHandler) RegisterRoutes(g *echo.Group) {
	g.GET("", h.ListPackages)
	g.POST("", h.CreatePackage)
	g.GET("/:slug", h.GetPackageBySlug)
	g.PATCH("/:id", h.UpdatePackage)
}

func (h *PackageHandler) ListPackages(c echo.Context) error {
	actor := middleware.Actor(c)
	includeInactive := c.QueryParam("includeInactive") == "true"

	pkgs, err := h.svc.List(c.Request().Context(), actor, includeInactive)
	if err != nil {
		return packageError(err)
	}

	resp := make([]dto.PackageResponse, len(pkgs))
	for i, p := range pkgs {
		resp[i] = dto.ToPackageResponse(&p)
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *PackageHandler) GetPackageBySlug(c echo.Context) error {
	pkg, err := h.svc.GetBySlug(c.Request().Context(), c.Param("slug"))
	if err != nil {
		return packageError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}

func (h *PackageHandler) CreatePackage(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var req dto.CreatePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	in := service.CreatePackageInput{
		Slug:           req.Slug,
		Name:           req.Name,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Duration:       req.Duration,
		PricePerPerson: req.PricePerPerson,
		MinGuests:      req.MinGuests,
		MaxGuests:      req.MaxGuests,
		Category:       req.Category,
		Highlights:     req.Highlights,
		ImageURL:       req.ImageURL,
		IsActive:       true,
		IsFeatured:     req.IsFeatured,
	}
	if req.IsActive != nil {
		in.IsActive = *req.IsActive
	}
	if in.MinGuests == 0 {
		in.MinGuests = 1
	}
	if in.MaxGuests == 0 {
		in.MaxGuests = 12
	}

	pkg, err := h.svc.Create(c.Request().Context(), actor, in)
	if err != nil {
		return packageError(err)
	}
	return c.JSON(http.StatusCreated, dto.ToPackageResponse(pkg))
}

func (h *PackageHandler) UpdatePackage(c echo.Context) error {
	actor := middleware.Actor(c)
	if actor == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid package id")
	}

	var req dto.UpdatePackageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pkg, err := h.svc.Update(c.Request().Context(), actor, id, service.UpdatePackageInput{
		Name:           req.Name,
		Tagline:        req.Tagline,
		Description:    req.Description,
		Duration:       req.Duration,
		PricePerPerson: req.PricePerPerson,
		MinGuests:      req.MinGuests,
		MaxGuests:      req.MaxGuests,
		Category:       req.Category,
		Highlights:     req.Highlights,
		ImageURL:       req.ImageURL,
		IsActive:       req.IsActive,
		IsFeatured:     req.IsFeatured,
	})
	if err != nil {
		return packageError(err)
	}
	return c.JSON(http.StatusOK, dto.ToPackageResponse(pkg))
}

func packageError(err error) error {
	switch {
	case errors.Is(err, service.ErrNotAuthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPackageNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrSlugTaken),
		errors.Is(err, service.ErrInvalidSlug),
		errors.Is(err, service.ErrInvalidPrice),
		errors.Is(err, service.ErrInvalidGuests):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		log.Printf("[PackageHandler] unexpected error: %v", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
