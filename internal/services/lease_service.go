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

type LeaseServiceInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context, limit, offset int) ([]*models.Lease, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Lease, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error)
}

type leaseService struct {
	leaseRepo repositories.LeaseRepository
}

func NewLeaseService(leaseRepo repositories.LeaseRepository) LeaseServiceInterface {
	return &leaseService{leaseRepo: leaseRepo}
}

func (s *leaseService) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease, err := s.leaseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("lease %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return lease, nil
}

func (s *leaseService) List(ctx context.Context, limit, offset int) ([]*models.Lease, error) {
	if limit <= 0 {
		limit = 50
	}
	return s.leaseRepo.List(ctx, limit, offset)
}

func (s *leaseService) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Lease, error) {
	return s.leaseRepo.ListByProperty(ctx, propertyID)
}

func (s *leaseService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	return s.leaseRepo.ListByTenant(ctx, tenantID)
}
