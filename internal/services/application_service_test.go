package services

import (
	"context"
	"testing"
	"time"

	"rentiva/internal/common"
	"rentiva/internal/models"
	"rentiva/internal/repositories"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

// The decision flow is exercised against pgxmock so the transactional
// grouping of lease insert, fee payment, and status update is observable.
type ApplicationServiceTestSuite struct {
	suite.Suite
	mock          pgxmock.PgxPoolIface
	service       ApplicationServiceInterface
	applicationID uuid.UUID
	propertyID    uuid.UUID
	tenantID      uuid.UUID
	managerID     uuid.UUID
	context       context.Context
}

func (suite *ApplicationServiceTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.service = NewApplicationService(
		mock,
		repositories.NewApplicationRepo(mock),
		repositories.NewPropertyRepo(mock),
		repositories.NewTenantRepo(mock),
		repositories.NewLeaseRepo(mock),
		repositories.NewPaymentRepo(mock),
	)
	suite.applicationID = uuid.New()
	suite.propertyID = uuid.New()
	suite.tenantID = uuid.New()
	suite.managerID = uuid.New()
	suite.context = context.Background()
}

func (suite *ApplicationServiceTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestApplicationServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationServiceTestSuite))
}

func (suite *ApplicationServiceTestSuite) pendingApplicationRows() *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "property_id", "tenant_id", "application_date", "status", "message", "lease_id", "created_at", "updated_at"}).
		AddRow(suite.applicationID, suite.propertyID, suite.tenantID, now, models.ApplicationStatusPending, nil, nil, now, now)
}

func (suite *ApplicationServiceTestSuite) propertyRows(price, deposit, fee float64) *pgxmock.Rows {
	now := time.Now()
	return pgxmock.NewRows([]string{"id", "manager_id", "name", "description", "price_per_month", "security_deposit", "application_fee", "beds", "baths", "square_feet", "property_type", "amenities", "photo_keys", "address", "city", "state", "country", "postal_code", "latitude", "longitude", "closed", "posted_date", "created_at", "updated_at"}).
		AddRow(suite.propertyID, suite.managerID, "Sunset Lofts", nil, price, deposit, fee, 2, 1, 900, "Apartment", []string{"Pool"}, []string{}, "1 Main St", "Austin", "TX", "USA", "78701", 30.26, -97.74, false, now, now, now)
}

func (suite *ApplicationServiceTestSuite) TestDecide_ApprovedCreatesLeaseAtomically() {
	suite.mock.ExpectQuery("FROM applications").
		WithArgs(suite.applicationID).
		WillReturnRows(suite.pendingApplicationRows())
	suite.mock.ExpectQuery("FROM properties").
		WithArgs(suite.propertyID).
		WillReturnRows(suite.propertyRows(2000, 500, 100))

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO leases").
		WithArgs(pgxmock.AnyArg(), suite.propertyID, suite.tenantID, pgxmock.AnyArg(), pgxmock.AnyArg(), 2000.0, 500.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("INSERT INTO payments").
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), 100.0, 0.0, pgxmock.AnyArg(), pgxmock.AnyArg(), models.PaymentStatusPending, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationStatusApproved, pgxmock.AnyArg(), pgxmock.AnyArg(), suite.applicationID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	application, err := suite.service.Decide(suite.context, suite.applicationID, models.ApplicationStatusApproved)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApplicationStatusApproved, application.Status)
	assert.NotNil(suite.T(), application.LeaseID)
}

func (suite *ApplicationServiceTestSuite) TestDecide_ApprovedWithoutFeeSkipsFeePayment() {
	suite.mock.ExpectQuery("FROM applications").
		WithArgs(suite.applicationID).
		WillReturnRows(suite.pendingApplicationRows())
	suite.mock.ExpectQuery("FROM properties").
		WithArgs(suite.propertyID).
		WillReturnRows(suite.propertyRows(1500, 0, 0))

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("INSERT INTO leases").
		WithArgs(pgxmock.AnyArg(), suite.propertyID, suite.tenantID, pgxmock.AnyArg(), pgxmock.AnyArg(), 1500.0, 0.0).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationStatusApproved, pgxmock.AnyArg(), pgxmock.AnyArg(), suite.applicationID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	_, err := suite.service.Decide(suite.context, suite.applicationID, models.ApplicationStatusApproved)
	assert.NoError(suite.T(), err)
}

func (suite *ApplicationServiceTestSuite) TestDecide_DeniedNeverCreatesLease() {
	suite.mock.ExpectQuery("FROM applications").
		WithArgs(suite.applicationID).
		WillReturnRows(suite.pendingApplicationRows())

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationStatusDenied, pgxmock.AnyArg(), pgxmock.AnyArg(), suite.applicationID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()
	suite.mock.ExpectRollback()

	application, err := suite.service.Decide(suite.context, suite.applicationID, models.ApplicationStatusDenied)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApplicationStatusDenied, application.Status)
	assert.Nil(suite.T(), application.LeaseID)
}

func (suite *ApplicationServiceTestSuite) TestDecide_UnknownApplication() {
	suite.mock.ExpectQuery("FROM applications").
		WithArgs(suite.applicationID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.service.Decide(suite.context, suite.applicationID, models.ApplicationStatusApproved)
	assert.ErrorIs(suite.T(), err, common.ErrNotFound)
}

func (suite *ApplicationServiceTestSuite) TestDecide_AlreadyDecided() {
	now := time.Now()
	leaseID := uuid.New()
	rows := pgxmock.NewRows([]string{"id", "property_id", "tenant_id", "application_date", "status", "message", "lease_id", "created_at", "updated_at"}).
		AddRow(suite.applicationID, suite.propertyID, suite.tenantID, now, models.ApplicationStatusApproved, nil, &leaseID, now, now)

	suite.mock.ExpectQuery("FROM applications").
		WithArgs(suite.applicationID).
		WillReturnRows(rows)

	_, err := suite.service.Decide(suite.context, suite.applicationID, models.ApplicationStatusDenied)
	assert.ErrorIs(suite.T(), err, common.ErrAlreadyDecided)
}

func (suite *ApplicationServiceTestSuite) TestDecide_RejectsUnknownDecision() {
	_, err := suite.service.Decide(suite.context, suite.applicationID, "Cancelled")
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_UnknownPropertyFails() {
	suite.mock.ExpectQuery("FROM properties").
		WithArgs(suite.propertyID).
		WillReturnError(pgx.ErrNoRows)

	_, err := suite.service.Submit(suite.context, suite.propertyID, suite.tenantID, nil)
	assert.ErrorIs(suite.T(), err, common.ErrValidation)
}

func (suite *ApplicationServiceTestSuite) TestSubmit_CreatesPendingApplication() {
	now := time.Now()
	tenantRows := pgxmock.NewRows([]string{"id", "cognito_id", "name", "email", "phone_number", "created_at", "updated_at"}).
		AddRow(suite.tenantID, "cog-1", "Terry", "terry@example.com", nil, now, now)

	suite.mock.ExpectQuery("FROM properties").
		WithArgs(suite.propertyID).
		WillReturnRows(suite.propertyRows(1800, 300, 50))
	suite.mock.ExpectQuery("FROM tenants").
		WithArgs(suite.tenantID).
		WillReturnRows(tenantRows)
	suite.mock.ExpectExec("INSERT INTO applications").
		WithArgs(pgxmock.AnyArg(), suite.propertyID, suite.tenantID, pgxmock.AnyArg(), models.ApplicationStatusPending, pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	application, err := suite.service.Submit(suite.context, suite.propertyID, suite.tenantID, nil)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.ApplicationStatusPending, application.Status)
	assert.Equal(suite.T(), suite.propertyID, application.PropertyID)
}
