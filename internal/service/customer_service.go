package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/capecharters/charter-api/internal/repository"
	"gorm.io/gorm"
)

// Identity lifecycle event types, as delivered by the provider's webhooks.
const (
	IdentityUserCreated = "user.created"
	IdentityUserUpdated = "user.updated"
	IdentityUserDeleted = "user.deleted"
)

// IdentityUser is the profile payload extracted from an identity event.
type IdentityUser struct {
	ExternalID string
	Email      string
	FirstName  string
	LastName   string
	Phone      string
	ImageURL   string
}

type CustomerService interface {
	ApplyIdentityEvent(ctx context.Context, eventType string, user IdentityUser) error
	GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error)
}

type customerService struct {
	repo repository.CustomerRepository
}

func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &customerService{repo: repo}
}

// ApplyIdentityEvent upserts or deletes the local customer row for a provider
// event. Role is never taken from the provider: new rows start as customer
// and promotion to admin happens out-of-band.
func (s *customerService) ApplyIdentityEvent(ctx context.Context, eventType string, user IdentityUser) error {
	if user.ExternalID == "" {
		return fmt.Errorf("identity event %s: missing user id", eventType)
	}

	switch eventType {
	case IdentityUserCreated, IdentityUserUpdated:
		return s.upsert(ctx, user)
	case IdentityUserDeleted:
		return s.repo.DeleteByExternalID(ctx, user.ExternalID)
	default:
		// Unknown event types are acknowledged and skipped.
		return nil
	}
}

func (s *customerService) upsert(ctx context.Context, user IdentityUser) error {
	existing, err := s.repo.FindByExternalID(ctx, user.ExternalID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("find customer: %w", err)
		}
		customer := &models.Customer{
			ExternalID: user.ExternalID,
			Email:      user.Email,
			FirstName:  user.FirstName,
			LastName:   user.LastName,
			Phone:      user.Phone,
			ImageURL:   user.ImageURL,
			Role:       models.RoleCustomer,
		}
		if err := s.repo.Create(ctx, customer); err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		return nil
	}

	existing.Email = user.Email
	existing.FirstName = user.FirstName
	existing.LastName = user.LastName
	existing.Phone = user.Phone
	existing.ImageURL = user.ImageURL
	if err := s.repo.Update(ctx, existing); err != nil {
		return fmt.Errorf("update customer: %w", err)
	}
	return nil
}

func (s *customerService) GetByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	customer, err := s.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("find customer: %w", err)
	}
	return customer, nil
}
