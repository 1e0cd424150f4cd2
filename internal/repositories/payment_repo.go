package repositories

import (
	"context"
	"time"

	"rentiva/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentRepository interface {
	Create(ctx context.Context, payment *models.Payment) error
	CreateTx(ctx context.Context, tx pgx.Tx, payment *models.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	// MarkOverdue flips Pending payments past their due date to Overdue and
	// returns how many rows changed. Only the reconciliation job calls this.
	MarkOverdue(ctx context.Context, now time.Time) (int64, error)
}

type paymentRepo struct {
	db DBTX
}

func NewPaymentRepo(db DBTX) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentInsert = `
		INSERT INTO payments (id, lease_id, amount_due, amount_paid, due_date, payment_date, status, receipt_key, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
	`

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) error {
	_, err := r.db.Exec(ctx, paymentInsert, payment.ID, payment.LeaseID, payment.AmountDue, payment.AmountPaid, payment.DueDate, payment.PaymentDate, payment.Status, payment.ReceiptKey)
	return err
}

func (r *paymentRepo) CreateTx(ctx context.Context, tx pgx.Tx, payment *models.Payment) error {
	_, err := tx.Exec(ctx, paymentInsert, payment.ID, payment.LeaseID, payment.AmountDue, payment.AmountPaid, payment.DueDate, payment.PaymentDate, payment.Status, payment.ReceiptKey)
	return err
}

func (r *paymentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment := &models.Payment{}
	query := `
		SELECT id, lease_id, amount_due, amount_paid, due_date, payment_date, status, receipt_key, created_at, updated_at
		FROM payments
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).Scan(&payment.ID, &payment.LeaseID, &payment.AmountDue, &payment.AmountPaid, &payment.DueDate, &payment.PaymentDate, &payment.Status, &payment.ReceiptKey, &payment.CreatedAt, &payment.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT id, lease_id, amount_due, amount_paid, due_date, payment_date, status, receipt_key, created_at, updated_at
		FROM payments
		WHERE lease_id = $1
		ORDER BY due_date DESC
	`
	return r.scanList(ctx, query, leaseID)
}

// ListByTenant joins through leases: a payment belongs to a tenant via the
// lease it was recorded against.
func (r *paymentRepo) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	query := `
		SELECT p.id, p.lease_id, p.amount_due, p.amount_paid, p.due_date, p.payment_date, p.status, p.receipt_key, p.created_at, p.updated_at
		FROM payments p
		JOIN leases l ON l.id = p.lease_id
		WHERE l.tenant_id = $1
		ORDER BY p.due_date DESC
	`
	return r.scanList(ctx, query, tenantID)
}

func (r *paymentRepo) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE payments
		SET status = $1, updated_at = NOW()
		WHERE status = $2 AND due_date < $3
	`
	tag, err := r.db.Exec(ctx, query, models.PaymentStatusOverdue, models.PaymentStatusPending, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *paymentRepo) scanList(ctx context.Context, query string, args ...any) ([]*models.Payment, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		payment := &models.Payment{}
		if err := rows.Scan(&payment.ID, &payment.LeaseID, &payment.AmountDue, &payment.AmountPaid, &payment.DueDate, &payment.PaymentDate, &payment.Status, &payment.ReceiptKey, &payment.CreatedAt, &payment.UpdatedAt); err != nil {
			return nil, err
		}
		payments = append(payments, payment)
	}
	return payments, rows.Err()
}
