package repositories

import (
	"context"

	"rentiva/internal/models"

	"github.com/google/uuid"
)

type ManagerRepository interface {
	Create(ctx context.Context, manager *models.Manager) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error)
	GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error)
	Update(ctx context.Context, manager *models.Manager) error
}

type managerRepo struct {
	db DBTX
}

func NewManagerRepo(db DBTX) ManagerRepository {
	return &managerRepo{db: db}
}

func (r *managerRepo) Create(ctx context.Context, manager *models.Manager) error {
	query := `
		INSERT INTO managers (id, cognito_id, name, email, phone_number, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
	`
	_, err := r.db.Exec(ctx, query, manager.ID, manager.CognitoID, manager.Name, manager.Email, manager.PhoneNumber)
	return err
}

func (r *managerRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Manager, error) {
	manager := &models.Manager{}
	query := `
		SELECT id, cognito_id, name, email, phone_number, created_at, updated_at
		FROM managers
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&manager.ID, &manager.CognitoID, &manager.Name, &manager.Email, &manager.PhoneNumber, &manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (r *managerRepo) GetByCognitoID(ctx context.Context, cognitoID string) (*models.Manager, error) {
	manager := &models.Manager{}
	query := `
		SELECT id, cognito_id, name, email, phone_number, created_at, updated_at
		FROM managers
		WHERE cognito_id = $1
	`
	err := r.db.QueryRow(ctx, query, cognitoID).Scan(&manager.ID, &manager.CognitoID, &manager.Name, &manager.Email, &manager.PhoneNumber, &manager.CreatedAt, &manager.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return manager, nil
}

func (r *managerRepo) Update(ctx context.Context, manager *models.Manager) error {
	query := `
		UPDATE managers
		SET name = $1, email = $2, phone_number = $3, updated_at = NOW()
		WHERE id = $4
	`
	_, err := r.db.Exec(ctx, query, manager.Name, manager.Email, manager.PhoneNumber, manager.ID)
	return err
}
