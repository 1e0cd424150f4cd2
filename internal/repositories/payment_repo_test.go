package repositories

import (
	"context"
	"testing"
	"time"

	"rentiva/internal/models"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type PaymentRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    PaymentRepository
	leaseID uuid.UUID
	context context.Context
}

func (suite *PaymentRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewPaymentRepo(mock)
	suite.leaseID = uuid.New()
	suite.context = context.Background()
}

func (suite *PaymentRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestPaymentRepoTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentRepoTestSuite))
}

func (suite *PaymentRepoTestSuite) TestCreate_Success() {
	payment := &models.Payment{
		ID:          uuid.New(),
		LeaseID:     suite.leaseID,
		AmountDue:   1000,
		AmountPaid:  1000,
		DueDate:     time.Now(),
		PaymentDate: time.Now(),
		Status:      models.PaymentStatusPaid,
	}

	suite.mock.ExpectExec("INSERT INTO payments").
		WithArgs(payment.ID, payment.LeaseID, payment.AmountDue, payment.AmountPaid, payment.DueDate, payment.PaymentDate, payment.Status, payment.ReceiptKey).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, payment)
	assert.NoError(suite.T(), err)
}

func (suite *PaymentRepoTestSuite) TestGetByID_Found() {
	paymentID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "lease_id", "amount_due", "amount_paid", "due_date", "payment_date", "status", "receipt_key", "created_at", "updated_at"}).
		AddRow(paymentID, suite.leaseID, 1000.0, 400.0, now, now, models.PaymentStatusPartiallyPaid, nil, now, now)

	suite.mock.ExpectQuery("SELECT id, lease_id, amount_due, amount_paid, due_date, payment_date, status, receipt_key, created_at, updated_at").
		WithArgs(paymentID).
		WillReturnRows(rows)

	payment, err := suite.repo.GetByID(suite.context, paymentID)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPartiallyPaid, payment.Status)
	assert.Equal(suite.T(), 400.0, payment.AmountPaid)
	assert.Nil(suite.T(), payment.ReceiptKey)
}

func (suite *PaymentRepoTestSuite) TestListByTenant_JoinsThroughLeases() {
	tenantID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "lease_id", "amount_due", "amount_paid", "due_date", "payment_date", "status", "receipt_key", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.leaseID, 1000.0, 1000.0, now, now, models.PaymentStatusPaid, nil, now, now).
		AddRow(uuid.New(), suite.leaseID, 1000.0, 0.0, now, now, models.PaymentStatusPending, nil, now, now)

	suite.mock.ExpectQuery("JOIN leases l ON l.id = p.lease_id").
		WithArgs(tenantID).
		WillReturnRows(rows)

	payments, err := suite.repo.ListByTenant(suite.context, tenantID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), payments, 2)
}

func (suite *PaymentRepoTestSuite) TestMarkOverdue_OnlyTouchesPendingRows() {
	now := time.Now()

	suite.mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentStatusOverdue, models.PaymentStatusPending, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 3))

	marked, err := suite.repo.MarkOverdue(suite.context, now)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(3), marked)
}

func (suite *PaymentRepoTestSuite) TestMarkOverdue_NothingToDo() {
	now := time.Now()

	suite.mock.ExpectExec("UPDATE payments").
		WithArgs(models.PaymentStatusOverdue, models.PaymentStatusPending, now).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	marked, err := suite.repo.MarkOverdue(suite.context, now)
	assert.NoError(suite.T(), err)
	assert.Zero(suite.T(), marked)
}
