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

type ManagerServiceInterface interface {
	// Current resolves the authenticated manager from the request context.
	Current(ctx context.Context) (*models.Manager, error)
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error)
	Create(ctx context.Context, manager *models.Manager) (*models.Manager, error)
	Update(ctx context.Context, cognitoID string, name, email string, phoneNumber *string) (*models.Manager, error)
}

type managerService struct {
	managerRepo repositories.ManagerRepository
}

func NewManagerService(managerRepo repositories.ManagerRepository) ManagerServiceInterface {
	return &managerService{managerRepo: managerRepo}
}

func (s *managerService) Current(ctx context.Context) (*models.Manager, error) {
	cognitoID, ok := common.GetCognitoIDFromContext(ctx)
	if !ok {
		return nil, fmt.Errorf("no authenticated user: %w", common.ErrValidation)
	}
	return s.GetByCognitoID(ctx, cognitoID)
}

func (s *managerService) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error) {
	manager, err := s.managerRepo.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("manager %s: %w", cognitoID, common.ErrNotFound)
		}
		return nil, err
	}
	return manager, nil
}

func (s *managerService) Create(ctx context.Context, manager *models.Manager) (*models.Manager, error) {
	if err := common.ValidateRequiredString(manager.CognitoID, "cognito_id", 255); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidateRequiredString(manager.Email, "email", 255); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if manager.ID == uuid.Nil {
		manager.ID = uuid.New()
	}
	if err := s.managerRepo.Create(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}

func (s *managerService) Update(ctx context.Context, cognitoID string, name, email string, phoneNumber *string) (*models.Manager, error) {
	manager, err := s.GetByCognitoID(ctx, cognitoID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		manager.Name = name
	}
	if email != "" {
		manager.Email = email
	}
	if phoneNumber != nil {
		manager.PhoneNumber = phoneNumber
	}
	if err := s.managerRepo.Update(ctx, manager); err != nil {
		return nil, err
	}
	return manager, nil
}
