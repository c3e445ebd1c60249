package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

type CreatePackageInput struct {
	Slug           string
	Name           string
	Tagline        string
	Description    string
	Duration       string
	PricePerPerson decimal.Decimal
	MinGuests      int
	MaxGuests      int
	Category       string
	Highlights     []string
	ImageURL       string
	IsActive       bool
	IsFeatured     bool
}

// UpdatePackageInput is a closed partial update; nil fields are untouched.
type UpdatePackageInput struct {
	Name           *string
	Tagline        *string
	Description    *string
	Duration       *string
	PricePerPerson *decimal.Decimal
	MinGuests      *int
	MaxGuests      *int
	Category       *string
	Highlights     *[]string
	ImageURL       *string
	IsActive       *bool
	IsFeatured     *bool
}

type PackageService interface {
	Create(ctx context.Context, actor *models.Customer, in CreatePackageInput) (*models.Package, error)
	Update(ctx context.Context, actor *models.Customer, id uuid.UUID, in UpdatePackageInput) (*models.Package, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Package, error)
	GetBySlug(ctx context.Context, slug string) (*models.Package, error)
	List(ctx context.Context, actor *models.Customer, includeInactive bool) ([]models.Package, error)
}

type packageService struct {
	repo repository.PackageRepository
}

func NewPackageService(repo repository.PackageRepository) PackageService {
	return &packageService{repo: repo}
}

func (s *packageService) Create(ctx context.Context, actor *models.Customer, in CreatePackageInput) (*models.Package, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	if !slugPattern.MatchString(in.Slug) {
		return nil, ErrInvalidSlug
	}
	if !in.PricePerPerson.IsPositive() {
		return nil, ErrInvalidPrice
	}
	if in.MinGuests < 1 || in.MaxGuests < in.MinGuests {
		return nil, ErrInvalidGuests
	}

	pkg := &models.Package{
		Slug:           in.Slug,
		Name:           in.Name,
		Tagline:        in.Tagline,
		Description:    in.Description,
		Duration:       in.Duration,
		PricePerPerson: in.PricePerPerson.Round(2),
		MinGuests:      in.MinGuests,
		MaxGuests:      in.MaxGuests,
		Category:       in.Category,
		Highlights:     in.Highlights,
		ImageURL:       in.ImageURL,
		IsActive:       in.IsActive,
		IsFeatured:     in.IsFeatured,
	}

	if err := s.repo.Create(ctx, pkg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrSlugTaken
		}
		return nil, fmt.Errorf("create package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) Update(ctx context.Context, actor *models.Customer, id uuid.UUID, in UpdatePackageInput) (*models.Package, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}
	if !actor.IsAdmin() {
		return nil, ErrForbidden
	}

	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}

	// Validate the resulting state before touching the record.
	if in.PricePerPerson != nil && !in.PricePerPerson.IsPositive() {
		return nil, ErrInvalidPrice
	}
	minGuests, maxGuests := pkg.MinGuests, pkg.MaxGuests
	if in.MinGuests != nil {
		minGuests = *in.MinGuests
	}
	if in.MaxGuests != nil {
		maxGuests = *in.MaxGuests
	}
	if minGuests < 1 || maxGuests < minGuests {
		return nil, ErrInvalidGuests
	}

	if in.Name != nil {
		pkg.Name = *in.Name
	}
	if in.Tagline != nil {
		pkg.Tagline = *in.Tagline
	}
	if in.Description != nil {
		pkg.Description = *in.Description
	}
	if in.Duration != nil {
		pkg.Duration = *in.Duration
	}
	if in.PricePerPerson != nil {
		pkg.PricePerPerson = in.PricePerPerson.Round(2)
	}
	pkg.MinGuests = minGuests
	pkg.MaxGuests = maxGuests
	if in.Category != nil {
		pkg.Category = *in.Category
	}
	if in.Highlights != nil {
		pkg.Highlights = *in.Highlights
	}
	if in.ImageURL != nil {
		pkg.ImageURL = *in.ImageURL
	}
	if in.IsActive != nil {
		pkg.IsActive = *in.IsActive
	}
	if in.IsFeatured != nil {
		pkg.IsFeatured = *in.IsFeatured
	}
	pkg.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, pkg); err != nil {
		return nil, fmt.Errorf("update package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) Get(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	pkg, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}
	return pkg, nil
}

func (s *packageService) GetBySlug(ctx context.Context, slug string) (*models.Package, error) {
	pkg, err := s.repo.FindBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPackageNotFound
		}
		return nil, fmt.Errorf("find package: %w", err)
	}
	return pkg, nil
}

// List returns active packages; admins may also see inactive ones. The flag
// is silently ignored for everyone else.
func (s *packageService) List(ctx context.Context, actor *models.Customer, includeInactive bool) ([]models.Package, error) {
	showInactive := includeInactive && actor != nil && actor.IsAdmin()
	return s.repo.FindAll(ctx, showInactive)
}
