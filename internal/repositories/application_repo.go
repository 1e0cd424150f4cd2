package repositories

import (
	"context"
	"time"

	"rentiva/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type ApplicationRepository interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Application, error)
	ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Application, error)
	// UpdateDecisionTx records the manager's decision inside the caller's
	// transaction so the lease insert and the status flip commit together.
	UpdateDecisionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status string, leaseID *uuid.UUID) error
}

type applicationRepo struct {
	db DBTX
}

func NewApplicationRepo(db DBTX) ApplicationRepository {
	return &applicationRepo{db: db}
}

func (r *applicationRepo) Create(ctx context.Context, application *models.Application) error {
	query := `
		INSERT INTO applications (id, property_id, tenant_id, application_date, status, message, lease_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, application.ID, application.PropertyID, application.TenantID, application.ApplicationDate, application.Status, application.Message, application.LeaseID)
	return err
}

func (r *applicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	application := &models.Application{}
	query := `
		SELECT id, property_id, tenant_id, application_date, status, message, lease_id, created_at, updated_at
		FROM applications
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&application.ID, &application.PropertyID, &application.TenantID, &application.ApplicationDate, &application.Status, &application.Message, &application.LeaseID, &application.CreatedAt, &application.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return application, nil
}

func (r *applicationRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Application, error) {
	query := `
		SELECT id, property_id, tenant_id, application_date, status, message, lease_id, created_at, updated_at
		FROM applications
		WHERE tenant_id = $1
		ORDER BY application_date DESC
	`
	return r.scanList(ctx, query, tenantID)
}

// ListByManager returns applications against any property the manager owns.
func (r *applicationRepo) ListByManager(ctx context.Context, managerID uuid.UUID) ([]*models.Application, error) {
	query := `
		SELECT a.id, a.property_id, a.tenant_id, a.application_date, a.status, a.message, a.lease_id, a.created_at, a.updated_at
		FROM applications a
		JOIN properties p ON p.id = a.property_id
		WHERE p.manager_id = $1
		ORDER BY a.application_date DESC
	`
	return r.scanList(ctx, query, managerID)
}

func (r *applicationRepo) UpdateDecisionTx(ctx context.Context, tx pgx.Tx, id uuid.UUID, status string, leaseID *uuid.UUID) error {
	query := `
		UPDATE applications
		SET status = $1, lease_id = $2, updated_at = $3
		WHERE id = $4
	`
	_, err := tx.Exec(ctx, query, status, leaseID, time.Now().UTC(), id)
	return err
}

func (r *applicationRepo) scanList(ctx context.Context, query string, args ...any) ([]*models.Application, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []*models.Application
	for rows.Next() {
		application := &models.Application{}
		if err := rows.Scan(&application.ID, &application.PropertyID, &application.TenantID, &application.ApplicationDate, &application.Status, &application.Message, &application.LeaseID, &application.CreatedAt, &application.UpdatedAt); err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, rows.Err()
}
