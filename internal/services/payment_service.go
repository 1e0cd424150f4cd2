package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/repositories"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jung-kurt/gofpdf"
)

// RecordPaymentInput carries the caller-supplied fields of a new payment.
// Status is derived, never accepted from the caller.
type RecordPaymentInput struct {
	LeaseID     uuid.UUID
	AmountDue   float64
	AmountPaid  float64
	DueDate     time.Time
	PaymentDate time.Time
}

type PaymentServiceInterface interface {
	Record(ctx context.Context, input RecordPaymentInput) (*models.Payment, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error)
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error)
	DownloadReceipt(ctx context.Context, paymentID uuid.UUID) (io.ReadCloser, int64, error)
	MarkOverduePayments(ctx context.Context, now time.Time) (int64, error)
}

type paymentService struct {
	paymentRepo   repositories.PaymentRepository
	leaseRepo     repositories.LeaseRepository
	storage       StorageService
	receiptBucket string
}

func NewPaymentService(paymentRepo repositories.PaymentRepository, leaseRepo repositories.LeaseRepository, storage StorageService, receiptBucket string) PaymentServiceInterface {
	return &paymentService{
		paymentRepo:   paymentRepo,
		leaseRepo:     leaseRepo,
		storage:       storage,
		receiptBucket: receiptBucket,
	}
}

// Record creates a payment against an existing lease. The status is a pure
// function of the amounts; the due date never produces Overdue here. A
// receipt PDF is rendered and uploaded best-effort: a storage failure logs
// and the payment is stored without a receipt key.
func (s *paymentService) Record(ctx context.Context, input RecordPaymentInput) (*models.Payment, error) {
	lease, err := s.leaseRepo.GetByID(ctx, input.LeaseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("invalid leaseId %s: %w", input.LeaseID, common.ErrValidation)
		}
		return nil, err
	}

	if err := common.ValidateNonNegativeFloat(input.AmountDue, "amount_due", 10000000.00); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}
	if err := common.ValidateNonNegativeFloat(input.AmountPaid, "amount_paid", 10000000.00); err != nil {
		return nil, fmt.Errorf("%v: %w", err, common.ErrValidation)
	}

	payment := &models.Payment{
		ID:          uuid.New(),
		LeaseID:     lease.ID,
		AmountDue:   input.AmountDue,
		AmountPaid:  input.AmountPaid,
		DueDate:     input.DueDate,
		PaymentDate: input.PaymentDate,
		Status:      models.ComputePaymentStatus(input.AmountPaid, input.AmountDue),
	}

	if key, err := s.uploadReceipt(ctx, payment, lease); err != nil {
		log.Printf("WARN: receipt upload failed for payment %s: %v", payment.ID, err)
	} else {
		payment.ReceiptKey = &key
	}

	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment %s: %w", id, common.ErrNotFound)
		}
		return nil, err
	}
	return payment, nil
}

func (s *paymentService) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByLease(ctx, leaseID)
}

func (s *paymentService) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	return s.paymentRepo.ListByTenant(ctx, tenantID)
}

// DownloadReceipt streams the stored receipt PDF. A payment without a receipt
// key, or a key whose object is gone, is a not-found.
func (s *paymentService) DownloadReceipt(ctx context.Context, paymentID uuid.UUID) (io.ReadCloser, int64, error) {
	payment, err := s.GetByID(ctx, paymentID)
	if err != nil {
		return nil, 0, err
	}
	if payment.ReceiptKey == nil {
		return nil, 0, fmt.Errorf("receipt for payment %s: %w", paymentID, common.ErrNotFound)
	}

	reader, size, err := s.storage.Download(ctx, s.receiptBucket, *payment.ReceiptKey)
	if err != nil {
		if IsObjectNotFound(err) {
			return nil, 0, fmt.Errorf("receipt for payment %s: %w", paymentID, common.ErrNotFound)
		}
		return nil, 0, err
	}
	return reader, size, nil
}

func (s *paymentService) MarkOverduePayments(ctx context.Context, now time.Time) (int64, error) {
	return s.paymentRepo.MarkOverdue(ctx, now)
}

func (s *paymentService) uploadReceipt(ctx context.Context, payment *models.Payment, lease *models.Lease) (string, error) {
	pdfBytes, err := renderReceiptPDF(payment, lease)
	if err != nil {
		return "", err
	}

	key := fmt.Sprintf("receipts/%s.pdf", payment.ID)
	if err := s.storage.Upload(ctx, s.receiptBucket, key, bytes.NewReader(pdfBytes), int64(len(pdfBytes)), "application/pdf"); err != nil {
		return "", err
	}
	return key, nil
}

func renderReceiptPDF(payment *models.Payment, lease *models.Lease) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Payment Receipt")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	line := func(label, value string) {
		pdf.CellFormat(50, 8, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, value, "", 1, "L", false, 0, "")
	}
	line("Receipt No:", payment.ID.String())
	line("Lease:", lease.ID.String())
	line("Payment Date:", payment.PaymentDate.Format("2006-01-02"))
	line("Due Date:", payment.DueDate.Format("2006-01-02"))
	line("Amount Due:", fmt.Sprintf("$%.2f", payment.AmountDue))
	line("Amount Paid:", fmt.Sprintf("$%.2f", payment.AmountPaid))
	line("Status:", payment.Status)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
