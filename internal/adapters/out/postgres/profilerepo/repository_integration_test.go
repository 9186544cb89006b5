package profilerepo_test

import (
	"context"
	"testing"
	"time"

	"courier/internal/adapters/out/postgres/profilerepo"
	"courier/internal/core/domain/model/actor"
	"courier/internal/core/domain/model/kernel"
	"courier/internal/core/domain/model/profile"
	"courier/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ProfileRepositoryIntegrationTestSuite provides integration tests for
// ProfileRepository using PostgreSQL containers.
type ProfileRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *profilerepo.GormProfileRepository
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&profilerepo.ProfileDTO{}))
}

func (suite *ProfileRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE profiles").Error)
	suite.repository = profilerepo.NewGormProfileRepository(suite.db)
}

func (suite *ProfileRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestAdd_Get_RoundTrips() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	original, err := profile.NewProfile(userID, "Ada Lovelace", "07123456789", actor.Customer, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, userID)
	suite.Require().NoError(err)
	suite.True(retrieved.UserID().IsEqual(userID))
	suite.Equal("Ada Lovelace", retrieved.FullName())
	suite.Equal(actor.Customer, retrieved.Role())
	suite.False(retrieved.Available())
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestUpdate_DriverVehicle_Persists() {
	ctx := context.Background()
	userID := kernel.NewUUID()

	driver, err := profile.NewProfile(userID, "Lewis Hamilton", "07987654321", actor.Driver, time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, driver))

	suite.Require().NoError(driver.SetVehicle("HAMIL701234LH9AB", "van", time.Now().UTC()))
	suite.Require().NoError(driver.SetAvailability(true, time.Now().UTC()))
	suite.Require().NoError(suite.repository.Update(ctx, driver))

	retrieved, err := suite.repository.Get(ctx, userID)
	suite.Require().NoError(err)
	suite.Equal("van", retrieved.VehicleType())
	suite.Equal("HAMIL701234LH9AB", retrieved.DriverLicense())
	suite.True(retrieved.Available())
}

func (suite *ProfileRepositoryIntegrationTestSuite) TestGet_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func TestProfileRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ProfileRepositoryIntegrationTestSuite))
}
