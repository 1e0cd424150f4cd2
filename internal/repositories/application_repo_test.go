package repositories

import (
	"context"
	"testing"
	"time"

	"rentiva/internal/models"

	"github.com/google/uuid"
	pgx "github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
)

type ApplicationRepoTestSuite struct {
	suite.Suite
	mock       pgxmock.PgxPoolIface
	repo       ApplicationRepository
	propertyID uuid.UUID
	tenantID   uuid.UUID
	context    context.Context
}

func (suite *ApplicationRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	assert.NoError(suite.T(), err)
	suite.mock = mock

	suite.repo = NewApplicationRepo(mock)
	suite.propertyID = uuid.New()
	suite.tenantID = uuid.New()
	suite.context = context.Background()
}

func (suite *ApplicationRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestApplicationRepoTestSuite(t *testing.T) {
	suite.Run(t, new(ApplicationRepoTestSuite))
}

func (suite *ApplicationRepoTestSuite) TestCreate_Success() {
	application := &models.Application{
		ID:              uuid.New(),
		PropertyID:      suite.propertyID,
		TenantID:        suite.tenantID,
		ApplicationDate: time.Now(),
		Status:          models.ApplicationStatusPending,
	}

	suite.mock.ExpectExec("INSERT INTO applications").
		WithArgs(application.ID, application.PropertyID, application.TenantID, application.ApplicationDate, application.Status, application.Message, application.LeaseID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := suite.repo.Create(suite.context, application)
	assert.NoError(suite.T(), err)
}

func (suite *ApplicationRepoTestSuite) TestGetByID_NotFound() {
	unknownID := uuid.New()

	suite.mock.ExpectQuery("SELECT id, property_id, tenant_id, application_date, status, message, lease_id, created_at, updated_at").
		WithArgs(unknownID).
		WillReturnError(pgx.ErrNoRows)

	application, err := suite.repo.GetByID(suite.context, unknownID)
	assert.ErrorIs(suite.T(), err, pgx.ErrNoRows)
	assert.Nil(suite.T(), application)
}

func (suite *ApplicationRepoTestSuite) TestListByManager_JoinsProperties() {
	managerID := uuid.New()
	now := time.Now()

	rows := pgxmock.NewRows([]string{"id", "property_id", "tenant_id", "application_date", "status", "message", "lease_id", "created_at", "updated_at"}).
		AddRow(uuid.New(), suite.propertyID, suite.tenantID, now, models.ApplicationStatusPending, nil, nil, now, now)

	suite.mock.ExpectQuery("JOIN properties p ON p.id = a.property_id").
		WithArgs(managerID).
		WillReturnRows(rows)

	applications, err := suite.repo.ListByManager(suite.context, managerID)
	assert.NoError(suite.T(), err)
	assert.Len(suite.T(), applications, 1)
	assert.Equal(suite.T(), models.ApplicationStatusPending, applications[0].Status)
}

func (suite *ApplicationRepoTestSuite) TestUpdateDecisionTx() {
	applicationID := uuid.New()
	leaseID := uuid.New()

	suite.mock.ExpectBegin()
	suite.mock.ExpectExec("UPDATE applications").
		WithArgs(models.ApplicationStatusApproved, &leaseID, pgxmock.AnyArg(), applicationID).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	suite.mock.ExpectCommit()

	tx, err := suite.mock.Begin(suite.context)
	assert.NoError(suite.T(), err)

	err = suite.repo.UpdateDecisionTx(suite.context, tx, applicationID, models.ApplicationStatusApproved, &leaseID)
	assert.NoError(suite.T(), err)
	assert.NoError(suite.T(), tx.Commit(suite.context))
}
