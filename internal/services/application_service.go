package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationServiceInterface interface {
	Submit(ctx context.Context, propertyID, tenantID uuid.UUID, message *string) (*models.Application, error)
	Decide(ctx context.Context, applicationID uuid.UUID, decision string) (*models.Application, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Application, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Application, error)
}

type applicationService struct {
	db              repositories.DBTX
	applicationRepo repositories.ApplicationRepository
	propertyRepo    repositories.PropertyRepository
	tenantRepo      repositories.TenantRepository
	leaseRepo       repositories.LeaseRepository
	paymentRepo     repositories.PaymentRepository
}

func NewApplicationService(
	db repositories.DBTX,
	applicationRepo repositories.ApplicationRepository,
	propertyRepo repositories.PropertyRepository,
	tenantRepo repositories.TenantRepository,
	leaseRepo repositories.LeaseRepository,
	paymentRepo repositories.PaymentRepository,
) ApplicationServiceInterface {
	return &applicationService{
		db:              db,
		applicationRepo: applicationRepo,
		propertyRepo:    propertyRepo,
		tenantRepo:      tenantRepo,
		leaseRepo:       leaseRepo,
		paymentRepo:     paymentRepo,
	}
}

// Submit creates a Pending application after checking that both foreign keys
// resolve.
func (s *applicationService) Submit(ctx context.Context, propertyID, tenantID uuid.UUID, message *string) (*models.Application, error) {
	if _, err := s.propertyRepo.GetByID(ctx, propertyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("property %s does not exist: %w", propertyID, common.ErrValidation)
		}
		return nil, err
	}
	if _, err := s.tenantRepo.GetByID(ctx, tenantID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("tenant %s does not exist: %w", tenantID, common.ErrValidation)
		}
		return nil, err
	}

	application := &models.Application{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		TenantID:        tenantID,
		ApplicationDate: time.Now().UTC(),
		Status:          models.ApplicationStatusPending,
		Message:         message,
	}
	if err := s.applicationRepo.Create(ctx, application); err != nil {
		return nil, err
	}
	return application, nil
}

// Decide records the manager's decision. Approval inserts the lease, records
// the application-fee payment, and flips the status inside one transaction so
// an Approved application can never exist without its lease.
func (s *applicationService) Decide(ctx context.Context, applicationID uuid.UUID, decision string) (*models.Application, error) {
	if decision != models.ApplicationStatusApproved && decision != models.ApplicationStatusDenied {
		return nil, fmt.Errorf("decision must be Approved or Denied: %w", common.ErrValidation)
	}

	application, err := s.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("application %s: %w", applicationID, common.ErrNotFound)
		}
		return nil, err
	}
	if application.Decided() {
		return nil, fmt.Errorf("application %s is already %s: %w", applicationID, application.Status, common.ErrAlreadyDecided)
	}

	if decision == models.ApplicationStatusDenied {
		tx, err := s.db.Begin(ctx)
		if err != nil {
			return nil, err
		}
		defer tx.Rollback(ctx)

		if err := s.applicationRepo.UpdateDecisionTx(ctx, tx, applicationID, models.ApplicationStatusDenied, nil); err != nil {
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			return nil, err
		}
		application.Status = models.ApplicationStatusDenied
		return application, nil
	}

	property, err := s.propertyRepo.GetByID(ctx, application.PropertyID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	lease := &models.Lease{
		ID:         uuid.New(),
		PropertyID: application.PropertyID,
		TenantID:   application.TenantID,
		StartDate:  now,
		EndDate:    now.AddDate(1, 0, 0),
		Rent:       property.PricePerMonth,
		Deposit:    property.SecurityDeposit,
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := s.leaseRepo.CreateTx(ctx, tx, lease); err != nil {
		return nil, err
	}
	if property.ApplicationFee > 0 {
		fee := &models.Payment{
			ID:          uuid.New(),
			LeaseID:     lease.ID,
			AmountDue:   property.ApplicationFee,
			AmountPaid:  0,
			DueDate:     lease.StartDate,
			PaymentDate: now,
			Status:      models.ComputePaymentStatus(0, property.ApplicationFee),
		}
		if err := s.paymentRepo.CreateTx(ctx, tx, fee); err != nil {
			return nil, err
		}
	}
	if err := s.applicationRepo.UpdateDecisionTx(ctx, tx, applicationID, models.ApplicationStatusApproved, &lease.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	log.Printf("application %s approved, lease %s created for property %s", applicationID, lease.ID, property.ID)

	application.Status = models.ApplicationStatusApproved
	application.LeaseID = &lease.ID
	return application, nil
}

func (s *applicationService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Application, error) {
	return s.applicationRepo.ListByTenant(ctx, tenantID)
}

func (s *applicationService) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Application, error) {
	return s.applicationRepo.ListByManager(ctx, managerID)
}
