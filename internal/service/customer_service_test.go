package service

import (
	"context"
	"testing"

	"github.com/capecharters/charter-api/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// --- Mock CustomerRepository ---

type mockCustomerRepo struct {
	createFn    func(ctx context.Context, c *models.Customer) error
	findByIDFn  func(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	findByExtFn func(ctx context.Context, externalID string) (*models.Customer, error)
	updateFn    func(ctx context.Context, c *models.Customer) error
	deleteFn    func(ctx context.Context, externalID string) error
}

func (m *mockCustomerRepo) Create(ctx context.Context, c *models.Customer) error {
	return m.createFn(ctx, c)
}
func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	return m.findByIDFn(ctx, id)
}
func (m *mockCustomerRepo) FindByExternalID(ctx context.Context, externalID string) (*models.Customer, error) {
	return m.findByExtFn(ctx, externalID)
}
func (m *mockCustomerRepo) Update(ctx context.Context, c *models.Customer) error {
	return m.updateFn(ctx, c)
}
func (m *mockCustomerRepo) DeleteByExternalID(ctx context.Context, externalID string) error {
	return m.deleteFn(ctx, externalID)
}

func sampleIdentityUser() IdentityUser {
	return IdentityUser{
		ExternalID: "user_2abc",
		Email:      "guest@example.com",
		FirstName:  "Thandi",
		LastName:   "Nkosi",
		Phone:      "+27821234567",
	}
}

func TestApplyIdentityEvent_Created(t *testing.T) {
	var created *models.Customer
	repo := &mockCustomerRepo{
		findByExtFn: func(ctx context.Context, externalID string) (*models.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, c *models.Customer) error {
			created = c
			return nil
		},
	}

	svc := NewCustomerService(repo)
	err := svc.ApplyIdentityEvent(context.Background(), IdentityUserCreated, sampleIdentityUser())

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "user_2abc", created.ExternalID)
	assert.Equal(t, "guest@example.com", created.Email)
	assert.Equal(t, models.RoleCustomer, created.Role, "new customers never arrive as admins")
}

func TestApplyIdentityEvent_UpdatedExisting(t *testing.T) {
	existing := &models.Customer{
		ID:         uuid.New(),
		ExternalID: "user_2abc",
		Email:      "old@example.com",
		Role:       models.RoleAdmin,
	}
	var updated *models.Customer
	repo := &mockCustomerRepo{
		findByExtFn: func(ctx context.Context, externalID string) (*models.Customer, error) {
			return existing, nil
		},
		updateFn: func(ctx context.Context, c *models.Customer) error {
			updated = c
			return nil
		},
	}

	svc := NewCustomerService(repo)
	err := svc.ApplyIdentityEvent(context.Background(), IdentityUserUpdated, sampleIdentityUser())

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "guest@example.com", updated.Email)
	assert.Equal(t, models.RoleAdmin, updated.Role, "profile sync must not demote an admin")
}

func TestApplyIdentityEvent_UpdatedMissingCreates(t *testing.T) {
	created := false
	repo := &mockCustomerRepo{
		findByExtFn: func(ctx context.Context, externalID string) (*models.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(ctx context.Context, c *models.Customer) error {
			created = true
			return nil
		},
	}

	svc := NewCustomerService(repo)
	err := svc.ApplyIdentityEvent(context.Background(), IdentityUserUpdated, sampleIdentityUser())

	require.NoError(t, err)
	assert.True(t, created, "update for an unseen user upserts")
}

func TestApplyIdentityEvent_Deleted(t *testing.T) {
	var deletedID string
	repo := &mockCustomerRepo{
		deleteFn: func(ctx context.Context, externalID string) error {
			deletedID = externalID
			return nil
		},
	}

	svc := NewCustomerService(repo)
	err := svc.ApplyIdentityEvent(context.Background(), IdentityUserDeleted, IdentityUser{ExternalID: "user_2abc"})

	require.NoError(t, err)
	assert.Equal(t, "user_2abc", deletedID)
}

func TestApplyIdentityEvent_UnknownTypeIgnored(t *testing.T) {
	svc := NewCustomerService(&mockCustomerRepo{})

	err := svc.ApplyIdentityEvent(context.Background(), "session.created", IdentityUser{ExternalID: "user_2abc"})

	assert.NoError(t, err)
}

func TestApplyIdentityEvent_MissingID(t *testing.T) {
	svc := NewCustomerService(&mockCustomerRepo{})

	err := svc.ApplyIdentityEvent(context.Background(), IdentityUserCreated, IdentityUser{})

	assert.Error(t, err)
}

func TestGetByExternalID_NotFound(t *testing.T) {
	repo := &mockCustomerRepo{
		findByExtFn: func(ctx context.Context, externalID string) (*models.Customer, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}

	svc := NewCustomerService(repo)
	_, err := svc.GetByExternalID(context.Background(), "user_missing")

	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
