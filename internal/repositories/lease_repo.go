package repositories

import (
	"context"
	"time"

	"rentiva/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LeaseRepository interface {
	// CreateTx inserts a lease inside the caller's transaction. Leases are
	// only ever created as part of an application approval.
	CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error)
	List(ctx context.Context, limit, offset int) ([]*models.Lease, error)
	ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Lease, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error)
	ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Lease, error)
}

type leaseRepo struct {
	db DBTX
}

func NewLeaseRepo(db DBTX) LeaseRepository {
	return &leaseRepo{db: db}
}

func (r *leaseRepo) CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error {
	query := `
		INSERT INTO leases (id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())
	`
	_, err := tx.Exec(ctx, query, lease.ID, lease.PropertyID, lease.TenantID, lease.StartDate, lease.EndDate, lease.Rent, lease.Deposit)
	return err
}

func (r *leaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	lease := &models.Lease{}
	query := `
		SELECT id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at
		FROM leases
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&lease.ID, &lease.PropertyID, &lease.TenantID, &lease.StartDate, &lease.EndDate, &lease.Rent, &lease.Deposit, &lease.CreatedAt)
	if err != nil {
		return nil, err
	}
	return lease, nil
}

func (r *leaseRepo) List(ctx context.Context, limit, offset int) ([]*models.Lease, error) {
	query := `
		SELECT id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at
		FROM leases
		ORDER BY start_date DESC
		LIMIT $1 OFFSET $2
	`
	return r.scanList(ctx, query, limit, offset)
}

func (r *leaseRepo) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Lease, error) {
	query := `
		SELECT id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at
		FROM leases
		WHERE property_id = $1
		ORDER BY start_date DESC
	`
	return r.scanList(ctx, query, propertyID)
}

func (r *leaseRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	query := `
		SELECT id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at
		FROM leases
		WHERE tenant_id = $1
		ORDER BY start_date DESC
	`
	return r.scanList(ctx, query, tenantID)
}

// ListExpiring returns leases whose end date falls inside [from, to).
func (r *leaseRepo) ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Lease, error) {
	query := `
		SELECT id, property_id, tenant_id, start_date, end_date, rent, deposit, created_at
		FROM leases
		WHERE end_date >= $1 AND end_date < $2
		ORDER BY end_date ASC
	`
	return r.scanList(ctx, query, from, to)
}

func (r *leaseRepo) scanList(ctx context.Context, query string, args ...any) ([]*models.Lease, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []*models.Lease
	for rows.Next() {
		lease := &models.Lease{}
		if err := rows.Scan(&lease.ID, &lease.PropertyID, &lease.TenantID, &lease.StartDate, &lease.EndDate, &lease.Rent, &lease.Deposit, &lease.CreatedAt); err != nil {
			return nil, err
		}
		leases = append(leases, lease)
	}
	return leases, rows.Err()
}
