package repositories

import (
	"context"

	"rentiva/internal/models"

	"github.com/google/uuid"
)

type TenantRepository interface {
	Create(ctx context.Context, tenant *models.Tenant) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error)
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error)
	Update(ctx context.Context, tenant *models.Tenant) error
	List(ctx context.Context, limit, offset int) ([]*models.Tenant, error)
	AddFavorite(ctx context.Context, tenantID, propertyID uuid.UUID) error
	RemoveFavorite(ctx context.Context, tenantID, propertyID uuid.UUID) error
	ListFavoriteIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error)
}

type tenantRepo struct {
	db DBTX
}

func NewTenantRepo(db DBTX) TenantRepository {
	return &tenantRepo{db: db}
}

func (r *tenantRepo) Create(ctx context.Context, tenant *models.Tenant) error {
	query := `
		INSERT INTO tenants (id, cognito_id, name, email, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, tenant.ID, tenant.CognitoID, tenant.Name, tenant.Email, tenant.PhoneNumber)
	return err
}

func (r *tenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, cognito_id, name, email, phone_number, created_at, updated_at
		FROM tenants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&tenant.ID, &tenant.CognitoID, &tenant.Name, &tenant.Email, &tenant.PhoneNumber, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Tenant, error) {
	tenant := &models.Tenant{}
	query := `
		SELECT id, cognito_id, name, email, phone_number, created_at, updated_at
		FROM tenants
		WHERE cognito_id = $1
	`
	err := r.db.QueryRow(ctx, query, cognitoID).Scan(&tenant.ID, &tenant.CognitoID, &tenant.Name, &tenant.Email, &tenant.PhoneNumber, &tenant.CreatedAt, &tenant.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tenant, nil
}

func (r *tenantRepo) Update(ctx context.Context, tenant *models.Tenant) error {
	query := `
		UPDATE tenants
		SET name = $1, email = $2, phone_number = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, tenant.Name, tenant.Email, tenant.PhoneNumber, tenant.ID)
	return err
}

func (r *tenantRepo) List(ctx context.Context, limit, offset int) ([]*models.Tenant, error) {
	query := `
		SELECT id, cognito_id, name, email, phone_number, created_at, updated_at
		FROM tenants
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenants []*models.Tenant
	for rows.Next() {
		tenant := &models.Tenant{}
		if err := rows.Scan(&tenant.ID, &tenant.CognitoID, &tenant.Name, &tenant.Email, &tenant.PhoneNumber, &tenant.CreatedAt, &tenant.UpdatedAt); err != nil {
			return nil, err
		}
		tenants = append(tenants, tenant)
	}
	return tenants, rows.Err()
}

func (r *tenantRepo) AddFavorite(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	query := `
		INSERT INTO tenant_favorites (tenant_id, property_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (tenant_id, property_id) DO NOTHING
	`
	_, err := r.db.Exec(ctx, query, tenantID, propertyID)
	return err
}

func (r *tenantRepo) RemoveFavorite(ctx context.Context, tenantID, propertyID uuid.UUID) error {
	query := `DELETE FROM tenant_favorites WHERE tenant_id = $1 AND property_id = $2`
	_, err := r.db.Exec(ctx, query, tenantID, propertyID)
	return err
}

func (r *tenantRepo) ListFavoriteIDs(ctx context.Context, tenantID uuid.UUID) ([]uuid.UUID, error) {
	query := `SELECT property_id FROM tenant_favorites WHERE tenant_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
