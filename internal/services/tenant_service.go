package services

import (
	"context"
	"errors"
	"fmt"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TenantServiceInterface interface {
	// Current resolves the authenticated tenant from the request context.
	Current(ctx context.Context) (*models.Tenant, error)
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error)
	Update(ctx context.Context, cognitoID string, name, email string, phoneNumber *string) (*models.Tenant, error)
	AddFavorite(ctx context.Context, cognitoID string, propertyID uuid.UUID) error
	RemoveFavorite(ctx context.Context, cognitoID string, propertyID uuid.UUID) error
	ListFavorites(ctx context.Context, cognitoID string) ([]*models.Property, error)
	// CurrentResidences returns the properties the tenant holds leases on.
	CurrentResidences(ctx context.Context, cognitoID string) ([]*models.Property, error)
}

type tenantService struct {
	tenantRepo   repositories.TenantRepository
	propertyRepo repositories.PropertyRepository
	leaseRepo    repositories.LeaseRepository
}

func NewTenantService(tenantRepo repositories.TenantRepository, propertyRepo repositories.PropertyRepository, leaseRepo repositories.LeaseRepository) TenantServiceInterface {
	return &tenantService{
		tenantRepo:   tenantRepo,
		propertyRepo: propertyRepo,
		leaseRepo:    leaseRepo,
	}
}

func (s *tenantService) Current(ctx context.Context) (*models.Tenant, error) {
	cognitoID, ok := common.GetCognitoIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no authenticated user: %w", common.ErrValidation)
	}
	return s.GetByCognitoID(ctx, cognitoID)
}

func (s *tenantService) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant %s: %w", cognitoID, common.ErrNotFound)
		}
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Create(ctx context.Context, tenant *models.Tenant) (*models.Tenant, error) {
	if err := common.ValidateRequiredString(tenant.CognitoID, "cognito_id", 255); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidateRequiredString(tenant.Email, "email", 255); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if tenant.ID == uuid.Nil {
		tenant.ID = uuid.New()
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) Update(ctx context.Context, cognitoID string, name, email string, phoneNumber *string) (*models.Tenant, error) {
	tenant, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		tenant.Name = name
	}
	if email != "" {
		tenant.Email = email
	}
	if phoneNumber != nil {
		tenant.PhoneNumber = phoneNumber
	}
	if err := s.tenantRepo.Update(ctx, tenant); err != nil {
		return nil, err
	}
	return tenant, nil
}

func (s *tenantService) AddFavorite(ctx context.Context, cognitoID string, propertyID uuid.UUID) error {
	tenant, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return err
	}
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("property %s does not exist: %w", propertyID, common.ErrValidation)
		}
		return err
	}
	return s.tenantRepo.AddFavorite(ctx, tenant.ID, propertyID)
}

func (s *tenantService) RemoveFavorite(ctx context.Context, cognitoID string, propertyID uuid.UUID) error {
	tenant, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return err
	}
	return s.tenantRepo.RemoveFavorite(ctx, tenant.ID, propertyID)
}

func (s *tenantService) ListFavorites(ctx context.Context, cognitoID string) ([]*models.Property, error) {
	tenant, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	ids, err := s.tenantRepo.ListFavoriteIDs(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}
	return s.propertyRepo.ListByIDs(ctx, ids)
}

func (s *tenantService) CurrentResidences(ctx context.Context, cognitoID string) ([]*models.Property, error) {
	tenant, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	leases, err := s.leaseRepo.ListByTenant(ctx, tenant.ID)
	if err != nil {
		return nil, err
	}

	seen := make(map[uuid.UUID]bool, len(leases))
	var ids []uuid.UUID
	for _, lease := range leases {
		if !seen[lease.PropertyID] {
			seen[lease.PropertyID] = true
			ids = append(ids, lease.PropertyID)
		}
	}
	return s.propertyRepo.ListByIDs(ctx, ids)
}
