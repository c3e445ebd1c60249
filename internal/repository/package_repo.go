package repository

import (
	"context"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *models.Package) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error)
	FindBySlug(ctx context.Context, slug string) (*models.Package, error)
	FindAll(ctx context.Context, includeInactive bool) ([]models.Package, error)
	Update(ctx context.Context, pkg *models.Package) error
}

type packageRepository struct {
	db *gorm.DB
}

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) FindBySlug(ctx context.Context, slug string) (*models.Package, error) {
	var pkg models.Package
	if err := r.db.WithContext(ctx).First(&pkg, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

// FindAll orders featured packages first, newest first within each group.
func (r *packageRepository) FindAll(ctx context.Context, includeInactive bool) ([]models.Package, error) {
	var pkgs []models.Package
	q := r.db.WithContext(ctx)
	if !includeInactive {
		q = q.Where("is_active = ?", true)
	}
	if err := q.Order("is_featured DESC, created_at DESC").Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) Update(ctx context.Context, pkg *models.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}
