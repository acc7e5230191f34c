package queries_test

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

	"tracking/internal/adapters/out/postgres/courierrepo"
	"tracking/internal/adapters/out/postgres/guiderepo"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// QueriesIntegrationTestSuite runs the read-side handlers against a real
// PostgreSQL instance seeded through the write-side repositories, so the raw
// SQL stays honest about column names and rounding.
type QueriesIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
}

func (suite *QueriesIntegrationTestSuite) SetupSuite() {
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
		&guiderepo.SequenceDTO{},
		&courierrepo.CourierDTO{},
	)
	suite.Require().NoError(err)
	err = db.Exec("CREATE TABLE IF NOT EXISTS system_configs (key varchar(100) PRIMARY KEY, value varchar(255) NOT NULL)").Error
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec(
		"TRUNCATE TABLE guides, guide_history, guide_sequences, couriers, system_configs",
	).Error
	suite.Require().NoError(err)
}

func (suite *QueriesIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *QueriesIntegrationTestSuite) TestTrackGuide() {
	ctx := context.Background()

	delivered := suite.seedDeliveredGuide(300, "180.00", nil, time.Now())
	suite.seedPendingGuide(301, guide.PriorityNormal)

	handler := queries.NewTrackGuideQueryHandler(suite.db)

	query, err := queries.NewTrackGuideQuery(delivered.Number())
	suite.Require().NoError(err)

	response, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal(delivered.Number().String(), response.Number)
	suite.Equal("Entregada", response.Status)
	suite.Equal("Laura Mendez", response.RecipientName)
	suite.NotNil(response.DeliveredAt)
	suite.Len(response.History, 6)
	suite.Equal("Creada", response.History[0].Status)
	suite.Equal("Entregada", response.History[len(response.History)-1].Status)
}

func (suite *QueriesIntegrationTestSuite) TestTrackGuide_UnknownNumber() {
	ctx := context.Background()
	handler := queries.NewTrackGuideQueryHandler(suite.db)

	number, err := kernel.NewGuideNumber(2025, 99999999)
	suite.Require().NoError(err)

	query, err := queries.NewTrackGuideQuery(number)
	suite.Require().NoError(err)

	_, err = handler.Handle(ctx, query)
	suite.Require().Error(err)
}

func (suite *QueriesIntegrationTestSuite) TestGetPendingGuides() {
	ctx := context.Background()

	normal := suite.seedPendingGuide(310, guide.PriorityNormal)
	urgent := suite.seedPendingGuide(311, guide.PriorityUrgent)
	suite.seedDeliveredGuide(312, "90.00", nil, time.Now())

	handler := queries.NewGetPendingGuidesQueryHandler(suite.db)

	responses, err := handler.Handle(ctx, queries.NewGetPendingGuidesQuery())
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal(urgent.ID(), responses[0].ID, "urgent guide sorts first")
	suite.Equal(normal.ID(), responses[1].ID)
}

func (suite *QueriesIntegrationTestSuite) TestGetCourierActiveGuides() {
	ctx := context.Background()

	courierID := suite.seedCourier(nil)
	active := suite.seedAssignedGuide(320, courierID)
	suite.seedDeliveredGuide(321, "75.00", &courierID, time.Now())
	suite.seedPendingGuide(322, guide.PriorityNormal)

	handler := queries.NewGetCourierActiveGuidesQueryHandler(suite.db)

	query, err := queries.NewGetCourierActiveGuidesQuery(courierID)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 1)
	suite.Equal(active.ID(), responses[0].ID)
	suite.Equal("Asignada", responses[0].Status)
	suite.NotNil(responses[0].AssignmentDate)
}

func (suite *QueriesIntegrationTestSuite) TestGetCommissionHistory_ContractOverrideAndRounding() {
	ctx := context.Background()

	rate := decimal.RequireFromString("0.30")
	courierID := suite.seedCourier(&rate)

	when := time.Date(2025, time.June, 10, 12, 0, 0, 0, time.UTC)
	suite.seedDeliveredGuide(330, "100.00", &courierID, when)
	// 57.37 * 0.30 = 17.211, rounded half-up to 17.21.
	suite.seedDeliveredGuide(331, "57.37", &courierID, when.Add(time.Hour))

	handler := queries.NewGetCommissionHistoryQueryHandler(suite.db)

	query, err := queries.NewGetCommissionHistoryQuery(
		courierID,
		time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)

	responses, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal("30.00", responses[0].Commission.String())
	suite.Equal("17.21", responses[1].Commission.String())
	suite.Equal("0.3", responses[0].Rate)
}

func (suite *QueriesIntegrationTestSuite) TestGetTotalCommissions_MatchesHistory() {
	ctx := context.Background()

	// No contract override and no config row, so the default rate applies.
	courierID := suite.seedCourier(nil)

	when := time.Date(2025, time.June, 5, 9, 0, 0, 0, time.UTC)
	suite.seedDeliveredGuide(340, "100.00", &courierID, when)
	suite.seedDeliveredGuide(341, "57.37", &courierID, when.Add(2*time.Hour))

	from := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC)

	totalsQuery, err := queries.NewGetTotalCommissionsQuery(courierID, from, to)
	suite.Require().NoError(err)

	totals, err := queries.NewGetTotalCommissionsQueryHandler(suite.db).Handle(ctx, totalsQuery)
	suite.Require().NoError(err)

	suite.Equal(2, totals.Deliveries)
	suite.Equal("157.37", totals.TotalBasePrice.String())
	// 25.00 + 14.34, summed from per-delivery rounded commissions.
	suite.Equal("39.34", totals.TotalCommission.String())

	historyQuery, err := queries.NewGetCommissionHistoryQuery(courierID, from, to)
	suite.Require().NoError(err)

	history, err := queries.NewGetCommissionHistoryQueryHandler(suite.db).Handle(ctx, historyQuery)
	suite.Require().NoError(err)

	sum := decimal.Zero
	for _, item := range history {
		sum = sum.Add(item.Commission.Amount())
	}
	suite.True(totals.TotalCommission.Amount().Equal(sum), "totals must match the per-row history")
}

func (suite *QueriesIntegrationTestSuite) TestGetTotalCommissions_SystemConfigRate() {
	ctx := context.Background()

	courierID := suite.seedCourier(nil)
	err := suite.db.Exec(
		"INSERT INTO system_configs (key, value) VALUES ('courier_commission_rate', '0.20')",
	).Error
	suite.Require().NoError(err)

	when := time.Date(2025, time.July, 3, 16, 0, 0, 0, time.UTC)
	suite.seedDeliveredGuide(350, "200.00", &courierID, when)

	query, err := queries.NewGetTotalCommissionsQuery(
		courierID,
		time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)

	totals, err := queries.NewGetTotalCommissionsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Equal("40.00", totals.TotalCommission.String())
	suite.Equal("0.2", totals.Rate)
}

func (suite *QueriesIntegrationTestSuite) TestGetMonthlyCommissions() {
	ctx := context.Background()

	courierID := suite.seedCourier(nil)

	june := time.Date(2025, time.June, 12, 10, 0, 0, 0, time.UTC)
	august := time.Date(2025, time.August, 20, 15, 0, 0, 0, time.UTC)
	suite.seedDeliveredGuide(360, "100.00", &courierID, june)
	suite.seedDeliveredGuide(361, "100.00", &courierID, june.Add(24*time.Hour))
	suite.seedDeliveredGuide(362, "80.00", &courierID, august)

	query, err := queries.NewGetMonthlyCommissionsQuery(courierID, 2025)
	suite.Require().NoError(err)

	responses, err := queries.NewGetMonthlyCommissionsQueryHandler(suite.db).Handle(ctx, query)
	suite.Require().NoError(err)

	suite.Require().Len(responses, 2)
	suite.Equal(time.June, responses[0].Month)
	suite.Equal(2, responses[0].Deliveries)
	suite.Equal("50.00", responses[0].TotalCommission.String())
	suite.Equal(time.August, responses[1].Month)
	suite.Equal(1, responses[1].Deliveries)
	suite.Equal("20.00", responses[1].TotalCommission.String())
}

// seedCourier persists a courier with an open-ended contract, optionally
// carrying a commission rate override.
func (suite *QueriesIntegrationTestSuite) seedCourier(rate *decimal.Decimal) kernel.UUID {
	from := time.Now().AddDate(-1, 0, 0)
	c, err := courier.NewCourier(kernel.NewUUID(), "Pedro Lopez", "pedro@example.test", &from, nil, rate)
	suite.Require().NoError(err)

	repo := courierrepo.NewGormCourierRepository(suite.db, noopTracker{})
	err = repo.Add(context.Background(), c)
	suite.Require().NoError(err)
	return c.ID()
}

func (suite *QueriesIntegrationTestSuite) seedPendingGuide(sequence int64, priority guide.Priority) *guide.Guide {
	g := suite.buildGuide(sequence, "120.00", priority)

	repo := guiderepo.NewGormGuideRepository(suite.db, noopTracker{})
	err := repo.Add(context.Background(), g)
	suite.Require().NoError(err)
	return g
}

func (suite *QueriesIntegrationTestSuite) seedAssignedGuide(sequence int64, courierID kernel.UUID) *guide.Guide {
	g := suite.buildGuide(sequence, "120.00", guide.PriorityNormal)

	err := g.Assign(courierID, kernel.NewUUID(), time.Now())
	suite.Require().NoError(err)

	repo := guiderepo.NewGormGuideRepository(suite.db, noopTracker{})
	err = repo.Add(context.Background(), g)
	suite.Require().NoError(err)
	return g
}

// seedDeliveredGuide walks a guide through the full lifecycle, stamping the
// delivery at the given time.
func (suite *QueriesIntegrationTestSuite) seedDeliveredGuide(
	sequence int64,
	price string,
	courierID *kernel.UUID,
	deliveredAt time.Time,
) *guide.Guide {
	g := suite.buildGuide(sequence, price, guide.PriorityNormal)

	assignee := kernel.NewUUID()
	if courierID != nil {
		assignee = *courierID
	}

	start := deliveredAt.Add(-4 * time.Hour)
	err := g.Assign(assignee, kernel.NewUUID(), start)
	suite.Require().NoError(err)
	err = g.AcceptAssignment(assignee, start.Add(10*time.Minute))
	suite.Require().NoError(err)

	courierActor, err := actor.NewActor(assignee, actor.RoleCourier)
	suite.Require().NoError(err)

	err = g.UpdateState(guide.Recogida, courierActor, "", nil, start.Add(time.Hour))
	suite.Require().NoError(err)
	err = g.UpdateState(guide.EnRuta, courierActor, "", nil, start.Add(2*time.Hour))
	suite.Require().NoError(err)
	err = g.UpdateState(guide.Entregada, courierActor, "", nil, deliveredAt)
	suite.Require().NoError(err)

	repo := guiderepo.NewGormGuideRepository(suite.db, noopTracker{})
	err = repo.Add(context.Background(), g)
	suite.Require().NoError(err)
	return g
}

func (suite *QueriesIntegrationTestSuite) buildGuide(sequence int64, price string, priority guide.Priority) *guide.Guide {
	number, err := kernel.NewGuideNumber(2025, sequence)
	suite.Require().NoError(err)

	recipient, err := guide.NewRecipient("Laura Mendez", "Av. Reforma 123", "CDMX", "CDMX")
	suite.Require().NoError(err)

	money, err := kernel.NewMoney(decimal.RequireFromString(price))
	suite.Require().NoError(err)

	g, err := guide.NewGuide(
		kernel.NewUUID(), number,
		kernel.NewUUID(), kernel.NewUUID(),
		recipient, money,
		"", priority,
		nil, time.Now().Add(-24*time.Hour),
	)
	suite.Require().NoError(err)
	return g
}

type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

func TestQueriesIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(QueriesIntegrationTestSuite))
}
