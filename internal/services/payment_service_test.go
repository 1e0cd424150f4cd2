package services

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"rentiva/internal/common"
	"rentiva/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) CreateTx(ctx context.Context, tx pgx.Tx, payment *models.Payment) error {
	args := m.Called(ctx, tx, payment)
	return args.Error(0)
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByLease(ctx context.Context, leaseID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, leaseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Payment, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *MockPaymentRepository) MarkOverdue(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

type MockLeaseRepository struct {
	mock.Mock
}

func (m *MockLeaseRepository) CreateTx(ctx context.Context, tx pgx.Tx, lease *models.Lease) error {
	args := m.Called(ctx, tx, lease)
	return args.Error(0)
}

func (m *MockLeaseRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) List(ctx context.Context, limit, offset int) ([]*models.Lease, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) ListByProperty(ctx context.Context, propertyID uuid.UUID) ([]*models.Lease, error) {
	args := m.Called(ctx, propertyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*models.Lease, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

func (m *MockLeaseRepository) ListExpiring(ctx context.Context, from, to time.Time) ([]*models.Lease, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Lease), args.Error(1)
}

type MockStorageService struct {
	mock.Mock
}

func (m *MockStorageService) Upload(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, contentType string) error {
	args := m.Called(ctx, bucketName, objectName, reader, objectSize, contentType)
	return args.Error(0)
}

func (m *MockStorageService) Download(ctx context.Context, bucketName, objectName string) (io.ReadCloser, int64, error) {
	args := m.Called(ctx, bucketName, objectName)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(io.ReadCloser), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorageService) GetPresignedURL(bucketName, objectName string, expiry time.Duration) (string, error) {
	args := m.Called(bucketName, objectName, expiry)
	return args.String(0), args.Error(1)
}

func (m *MockStorageService) Remove(ctx context.Context, bucketName, objectName string) error {
	args := m.Called(ctx, bucketName, objectName)
	return args.Error(0)
}

func (m *MockStorageService) EnsureBucketExists(ctx context.Context, bucketName string) error {
	args := m.Called(ctx, bucketName)
	return args.Error(0)
}

type PaymentServiceTestSuite struct {
	suite.Suite
	mockPayments *MockPaymentRepository
	mockLeases   *MockLeaseRepository
	mockStorage  *MockStorageService
	service      PaymentServiceInterface
	leaseID      uuid.UUID
	tenantID     uuid.UUID
	ctx          context.Context
}

func (suite *PaymentServiceTestSuite) SetupTest() {
	suite.mockPayments = &MockPaymentRepository{}
	suite.mockLeases = &MockLeaseRepository{}
	suite.mockStorage = &MockStorageService{}
	suite.service = NewPaymentService(suite.mockPayments, suite.mockLeases, suite.mockStorage, "receipts-bucket")
	suite.leaseID = uuid.New()
	suite.tenantID = uuid.New()
	suite.ctx = context.Background()
}

func TestPaymentServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentServiceTestSuite))
}

func (suite *PaymentServiceTestSuite) lease() *models.Lease {
	now := time.Now()
	return &models.Lease{
		ID:         suite.leaseID,
		PropertyID: uuid.New(),
		TenantID:   suite.tenantID,
		StartDate:  now,
		EndDate:    now.AddDate(1, 0, 0),
		Rent:       1200,
		Deposit:    600,
	}
}

func (suite *PaymentServiceTestSuite) recordInput(due, paid float64) RecordPaymentInput {
	now := time.Now()
	return RecordPaymentInput{
		LeaseID:     suite.leaseID,
		AmountDue:   due,
		AmountPaid:  paid,
		DueDate:     now.AddDate(0, 1, 0),
		PaymentDate: now,
	}
}

func (suite *PaymentServiceTestSuite) TestRecord_FullPaymentIsPaid() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)
	suite.mockStorage.On("Upload", suite.ctx, "receipts-bucket", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("int64"), "application/pdf").Return(nil)
	suite.mockPayments.On("Create", suite.ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, err := suite.service.Record(suite.ctx, suite.recordInput(1200, 1200))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPaid, payment.Status)
	if assert.NotNil(suite.T(), payment.ReceiptKey) {
		assert.Contains(suite.T(), *payment.ReceiptKey, payment.ID.String())
	}
	suite.mockPayments.AssertExpectations(suite.T())
	suite.mockStorage.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestRecord_PartialPaymentIsPartiallyPaid() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)
	suite.mockStorage.On("Upload", suite.ctx, "receipts-bucket", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("int64"), "application/pdf").Return(nil)
	suite.mockPayments.On("Create", suite.ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, err := suite.service.Record(suite.ctx, suite.recordInput(1200, 400))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPartiallyPaid, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestRecord_NothingPaidIsPending() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)
	suite.mockStorage.On("Upload", suite.ctx, "receipts-bucket", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("int64"), "application/pdf").Return(nil)
	suite.mockPayments.On("Create", suite.ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, err := suite.service.Record(suite.ctx, suite.recordInput(1200, 0))

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPending, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestRecord_PastDueDateStaysPending() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)
	suite.mockStorage.On("Upload", suite.ctx, "receipts-bucket", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("int64"), "application/pdf").Return(nil)
	suite.mockPayments.On("Create", suite.ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	input := suite.recordInput(1200, 0)
	input.DueDate = time.Now().AddDate(0, -2, 0)

	payment, err := suite.service.Record(suite.ctx, input)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.PaymentStatusPending, payment.Status)
}

func (suite *PaymentServiceTestSuite) TestRecord_UnknownLeaseFails() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(nil, pgx.ErrNoRows)

	_, err := suite.service.Record(suite.ctx, suite.recordInput(1200, 1200))

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecord_NegativeAmountFails() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)

	_, err := suite.service.Record(suite.ctx, suite.recordInput(-50, 0))

	assert.ErrorIs(suite.T(), err, common.ErrValidation)
	suite.mockPayments.AssertNotCalled(suite.T(), "Create", mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestRecord_StorageOutageStillRecordsPayment() {
	suite.mockLeases.On("GetByID", suite.ctx, suite.leaseID).Return(suite.lease(), nil)
	suite.mockStorage.On("Upload", suite.ctx, "receipts-bucket", mock.AnythingOfType("string"), mock.Anything, mock.AnythingOfType("int64"), "application/pdf").Return(assert.AnError)
	suite.mockPayments.On("Create", suite.ctx, mock.AnythingOfType("*models.Payment")).Return(nil)

	payment, err := suite.service.Record(suite.ctx, suite.recordInput(1200, 1200))

	assert.NoError(suite.T(), err)
	assert.Nil(suite.T(), payment.ReceiptKey)
	suite.mockPayments.AssertExpectations(suite.T())
}

func (suite *PaymentServiceTestSuite) TestDownloadReceipt_NoKeyIsNotFound() {
	paymentID := uuid.New()
	suite.mockPayments.On("GetByID", suite.ctx, paymentID).Return(&models.Payment{ID: paymentID}, nil)

	_, _, err := suite.service.DownloadReceipt(suite.ctx, paymentID)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
	suite.mockStorage.AssertNotCalled(suite.T(), "Download", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentServiceTestSuite) TestDownloadReceipt_UnknownPaymentIsNotFound() {
	paymentID := uuid.New()
	suite.mockPayments.On("GetByID", suite.ctx, paymentID).Return(nil, pgx.ErrNoRows)

	_, _, err := suite.service.DownloadReceipt(suite.ctx, paymentID)

	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *PaymentServiceTestSuite) TestDownloadReceipt_StreamsStoredObject() {
	paymentID := uuid.New()
	key := "receipts/" + paymentID.String() + ".pdf"
	content := []byte("%PDF-1.4 receipt")
	suite.mockPayments.On("GetByID", suite.ctx, paymentID).Return(&models.Payment{ID: paymentID, ReceiptKey: &key}, nil)
	suite.mockStorage.On("Download", suite.ctx, "receipts-bucket", key).Return(io.NopCloser(bytes.NewReader(content)), int64(len(content)), nil)

	reader, size, err := suite.service.DownloadReceipt(suite.ctx, paymentID)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(len(content)), size)
	got, readErr := io.ReadAll(reader)
	assert.NoError(suite.T(), readErr)
	assert.Equal(suite.T(), content, got)
}

func (suite *PaymentServiceTestSuite) TestMarkOverduePayments_ReportsCount() {
	now := time.Now()
	suite.mockPayments.On("MarkOverdue", suite.ctx, now).Return(int64(4), nil)

	count, err := suite.service.MarkOverduePayments(suite.ctx, now)

	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), int64(4), count)
}
