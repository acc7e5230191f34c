package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	postgres_adapter "tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/businessrepo"
	"tracking/internal/adapters/out/postgres/cancellationrepo"
	"tracking/internal/adapters/out/postgres/configrepo"
	"tracking/internal/adapters/out/postgres/courierrepo"
	"tracking/internal/adapters/out/postgres/discountrepo"
	"tracking/internal/adapters/out/postgres/guiderepo"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

// UnitOfWorkIntegrationTestSuite runs the GORM unit of work against a real
// PostgreSQL instance.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&guiderepo.GuideDTO{},
		&guiderepo.HistoryDTO{},
		&guiderepo.IncidentDTO{},
		&guiderepo.EvidenceDTO{},
		&guiderepo.SequenceDTO{},
		&courierrepo.CourierDTO{},
		&businessrepo.BusinessDTO{},
		&cancellationrepo.CancellationDTO{},
		&discountrepo.LevelDTO{},
		&discountrepo.MonthlyDiscountDTO{},
		&configrepo.ConfigDTO{},
	)
	suite.Require().NoError(err)

	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE guides, guide_history, incidents, evidences, guide_sequences, " +
			"couriers, businesses, cancellations, loyalty_levels, monthly_discounts, system_configs",
	).Error
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "factory should create separate instances")

	suite.NotNil(uow1.GuideRepository())
	suite.NotNil(uow1.CourierRepository())
	suite.NotNil(uow2.BusinessRepository())
	suite.NotNil(uow2.CancellationRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	// Repeated Begin must not open a nested transaction.
	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	err = uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionErrors() {
	ctx := context.Background()
	uow := suite.factory.Create()

	err := uow.Commit(ctx)
	suite.Require().Error(err, "commit without begin should fail")

	err = uow.Rollback(ctx)
	suite.Require().Error(err, "rollback without begin should fail")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_GuideRoundTrip() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testGuide := createTestGuide(suite.T(), 1)

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)

	retrieved, err := uow.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Equal(testGuide.ID(), retrieved.ID())
	suite.Equal(guide.Creada, retrieved.State())

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err = newUow.GuideRepository().GetByNumber(ctx, testGuide.Number())
	suite.Require().NoError(err)
	suite.Equal(testGuide.ID(), retrieved.ID())
	suite.True(testGuide.BasePrice().IsEqual(retrieved.BasePrice()))

	// Creation history row is persisted alongside the aggregate.
	history, err := newUow.GuideRepository().GetHistory(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Len(history, 1)
	suite.Equal(guide.Creada, history[0].State())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_AssignmentTransaction() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testGuide := createTestGuide(suite.T(), 2)
	testCourier := createTestCourier(suite.T())
	coordinatorID := kernel.NewUUID()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)

	err = uow.CourierRepository().Add(ctx, testCourier)
	suite.Require().NoError(err)

	err = testGuide.Assign(testCourier.ID(), coordinatorID, time.Now())
	suite.Require().NoError(err)
	err = uow.GuideRepository().Update(ctx, testGuide)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Equal(guide.Asignada, retrieved.State())
	suite.Require().NotNil(retrieved.CourierID())
	suite.Equal(testCourier.ID(), *retrieved.CourierID())
	suite.NotNil(retrieved.AssignmentDate())

	history, err := newUow.GuideRepository().GetHistory(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Len(history, 2)
	suite.Equal(guide.Asignada, history[1].State())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testGuide := createTestGuide(suite.T(), 3)
	testBusiness := createTestBusiness(suite.T())

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)

	err = uow.BusinessRepository().Add(ctx, testBusiness)
	suite.Require().NoError(err)

	// Visible inside the transaction.
	_, err = uow.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)

	err = uow.Rollback(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	_, err = newUow.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().Error(err, "guide should not exist after rollback")

	_, err = newUow.BusinessRepository().Get(ctx, testBusiness.ID())
	suite.Require().Error(err, "business should not exist after rollback")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_OptimisticLockConflict() {
	ctx := context.Background()

	testGuide := createTestGuide(suite.T(), 4)
	testCourier := createTestCourier(suite.T())
	coordinatorID := kernel.NewUUID()

	setupUow := suite.factory.Create()
	err := setupUow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)
	err = setupUow.CourierRepository().Add(ctx, testCourier)
	suite.Require().NoError(err)

	// Two handlers load the same version of the guide.
	uow1 := suite.factory.Create()
	first, err := uow1.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)

	uow2 := suite.factory.Create()
	second, err := uow2.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)

	err = first.Assign(testCourier.ID(), coordinatorID, time.Now())
	suite.Require().NoError(err)
	err = uow1.GuideRepository().Update(ctx, first)
	suite.Require().NoError(err)

	// The second writer carries a stale version and must be refused.
	err = second.Assign(testCourier.ID(), coordinatorID, time.Now())
	suite.Require().NoError(err)
	err = uow2.GuideRepository().Update(ctx, second)
	suite.Require().Error(err, "stale version should be rejected")
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_SequenceIsMonotonic() {
	ctx := context.Background()
	uow := suite.factory.Create()

	year := time.Now().Year()

	first, err := uow.GuideRepository().NextSequence(ctx, year)
	suite.Require().NoError(err)
	suite.Equal(int64(1), first)

	second, err := uow.GuideRepository().NextSequence(ctx, year)
	suite.Require().NoError(err)
	suite.Equal(int64(2), second)

	// A different year starts its own counter.
	other, err := uow.GuideRepository().NextSequence(ctx, year+1)
	suite.Require().NoError(err)
	suite.Equal(int64(1), other)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CancellationPersistence() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testGuide := createTestGuide(suite.T(), 5)
	err := uow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)

	penalty := mustMoney(suite.T(), "35.00")
	commission := mustMoney(suite.T(), "0.00")
	coordinatorID := kernel.NewUUID()

	record, err := guide.NewCancellation(
		testGuide.ID(),
		guide.CancellationByBusiness,
		&coordinatorID,
		"cliente ya no requiere el paquete",
		penalty, commission,
		time.Now(),
	)
	suite.Require().NoError(err)

	err = uow.CancellationRepository().Add(ctx, record)
	suite.Require().NoError(err)

	retrieved, err := uow.CancellationRepository().GetByGuide(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Equal(record.ID(), retrieved.ID())
	suite.Equal(guide.CancellationByBusiness, retrieved.Kind())
	suite.True(penalty.IsEqual(retrieved.PenaltyAmount()))
	suite.Require().NotNil(retrieved.CancelledBy())
	suite.Equal(coordinatorID, *retrieved.CancelledBy())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConfigFallback() {
	ctx := context.Background()
	uow := suite.factory.Create()

	fallback := decimal.RequireFromString("0.25")

	// Absent key yields the fallback.
	value, err := uow.SystemConfigRepository().GetDecimal(ctx, ports.ConfigCommissionRate, fallback)
	suite.Require().NoError(err)
	suite.True(value.Equal(fallback))

	err = suite.db.Exec(
		"INSERT INTO system_configs (key, value) VALUES (?, ?)",
		ports.ConfigCommissionRate, "0.30",
	).Error
	suite.Require().NoError(err)

	value, err = uow.SystemConfigRepository().GetDecimal(ctx, ports.ConfigCommissionRate, fallback)
	suite.Require().NoError(err)
	suite.True(value.Equal(decimal.RequireFromString("0.30")))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_DeliveryWorkflow() {
	ctx := context.Background()
	uow := suite.factory.Create()

	testGuide := createTestGuide(suite.T(), 6)
	testCourier := createTestCourier(suite.T())
	coordinatorID := kernel.NewUUID()

	err := uow.Begin(ctx)
	suite.Require().NoError(err)

	err = uow.GuideRepository().Add(ctx, testGuide)
	suite.Require().NoError(err)
	err = uow.CourierRepository().Add(ctx, testCourier)
	suite.Require().NoError(err)

	err = testGuide.Assign(testCourier.ID(), coordinatorID, time.Now())
	suite.Require().NoError(err)
	err = testGuide.AcceptAssignment(testCourier.ID(), time.Now())
	suite.Require().NoError(err)

	courierActor, err := actor.NewActor(testCourier.ID(), actor.RoleCourier)
	suite.Require().NoError(err)

	for _, target := range []guide.State{guide.Recogida, guide.EnRuta, guide.Entregada} {
		err = testGuide.UpdateState(target, courierActor, "", nil, time.Now())
		suite.Require().NoError(err)
	}

	err = uow.GuideRepository().Update(ctx, testGuide)
	suite.Require().NoError(err)

	err = uow.Commit(ctx)
	suite.Require().NoError(err)

	newUow := suite.factory.Create()
	retrieved, err := newUow.GuideRepository().Get(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Equal(guide.Entregada, retrieved.State())
	suite.NotNil(retrieved.PickupDate())
	suite.NotNil(retrieved.DeliveryDate())
	suite.True(retrieved.IsFinalized())

	history, err := newUow.GuideRepository().GetHistory(ctx, testGuide.ID())
	suite.Require().NoError(err)
	suite.Len(history, 6)
	suite.Equal(guide.Entregada, history[len(history)-1].State())

	// The delivered guide now counts toward the business's monthly volume.
	from := time.Now().AddDate(0, 0, -1)
	to := time.Now().AddDate(0, 0, 1)
	count, err := newUow.GuideRepository().CountDelivered(ctx, testGuide.BusinessID(), from, to)
	suite.Require().NoError(err)
	suite.Equal(1, count)

	total, err := newUow.GuideRepository().SumDeliveredBasePrice(ctx, testGuide.BusinessID(), from, to)
	suite.Require().NoError(err)
	suite.True(testGuide.BasePrice().IsEqual(total))
}

func createTestGuide(t *testing.T, sequence int64) *guide.Guide {
	t.Helper()

	number, err := kernel.NewGuideNumber(time.Now().Year(), sequence)
	suiteRequireNoError(t, err)

	recipient, err := guide.NewRecipient("Laura Mendez", "Av. Reforma 123", "CDMX", "CDMX")
	suiteRequireNoError(t, err)

	price := mustMoney(t, "150.00")

	g, err := guide.NewGuide(
		kernel.NewUUID(), number,
		kernel.NewUUID(), kernel.NewUUID(),
		recipient, price,
		"", guide.PriorityNormal,
		nil, time.Now(),
	)
	suiteRequireNoError(t, err)
	return g
}

func createTestCourier(t *testing.T) *courier.Courier {
	t.Helper()

	from := time.Now().AddDate(-1, 0, 0)
	c, err := courier.NewCourier(kernel.NewUUID(), "Pedro Lopez", "pedro@example.test", &from, nil, nil)
	suiteRequireNoError(t, err)
	return c
}

func createTestBusiness(t *testing.T) *business.Business {
	t.Helper()

	b, err := business.NewBusiness(kernel.NewUUID(), "Acme SA", "ops@acme.test")
	suiteRequireNoError(t, err)
	return b
}

func mustMoney(t *testing.T, amount string) kernel.Money {
	t.Helper()

	m, err := kernel.NewMoney(decimal.RequireFromString(amount))
	suiteRequireNoError(t, err)
	return m
}

func suiteRequireNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
