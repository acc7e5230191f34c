package commands_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
)

var testTime = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func makeGuide(t *testing.T) *guide.Guide {
	t.Helper()

	number, err := kernel.NewGuideNumber(2025, 42)
	require.NoError(t, err)
	recipient, err := guide.NewRecipient("Ana Ruiz", "Av. Reforma 100", "CDMX", "CDMX")
	require.NoError(t, err)
	price, err := kernel.MoneyFromString("350.00")
	require.NoError(t, err)

	g, err := guide.NewGuide(
		kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(),
		recipient, price, "", guide.PriorityNormal, nil, testTime,
	)
	require.NoError(t, err)
	g.PullPendingHistory()
	return g
}

func makeAssignedGuide(t *testing.T) (*guide.Guide, kernel.UUID) {
	t.Helper()
	g := makeGuide(t)
	courierID := kernel.NewUUID()
	require.NoError(t, g.Assign(courierID, kernel.NewUUID(), testTime.Add(time.Hour)))
	g.PullPendingHistory()
	return g, courierID
}

func makePickedUpGuide(t *testing.T) (*guide.Guide, kernel.UUID) {
	t.Helper()
	g, courierID := makeAssignedGuide(t)
	act, err := actor.NewActor(courierID, actor.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, g.UpdateState(guide.Recogida, act, "", nil, testTime.Add(2*time.Hour)))
	g.PullPendingHistory()
	return g, courierID
}

func makeCourier(t *testing.T, id kernel.UUID, rate *decimal.Decimal) *courier.Courier {
	t.Helper()
	from := testTime.AddDate(-1, 0, 0)
	c, err := courier.NewCourier(id, "Pedro", "pedro@example.test", &from, nil, rate)
	require.NoError(t, err)
	return c
}

func makeContractCourier(t *testing.T, id kernel.UUID, from, to *time.Time) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, "Pedro", "pedro@example.test", from, to, nil)
	require.NoError(t, err)
	return c
}

func deliveredGuide(t *testing.T) *guide.Guide {
	t.Helper()
	g, courierID := makePickedUpGuide(t)
	act, err := actor.NewActor(courierID, actor.RoleCourier)
	require.NoError(t, err)
	require.NoError(t, g.UpdateState(guide.EnRuta, act, "", nil, testTime.Add(3*time.Hour)))
	require.NoError(t, g.UpdateState(guide.Entregada, act, "", nil, testTime.Add(4*time.Hour)))
	g.PullPendingHistory()
	return g
}

func makeBusiness(t *testing.T, id kernel.UUID) *business.Business {
	t.Helper()
	b, err := business.NewBusiness(id, "Acme", "ops@acme.test")
	require.NoError(t, err)
	return b
}

func makeLevels(t *testing.T) []*loyalty.Level {
	t.Helper()
	maxPtr := func(v int) *int { return &v }
	mk := func(name string, min int, max *int, pct string, free int) *loyalty.Level {
		l, err := loyalty.NewLevel(kernel.NewUUID(), name, min, max, decimal.RequireFromString(pct), free)
		require.NoError(t, err)
		return l
	}
	return []*loyalty.Level{
		mk("Bronce", 0, maxPtr(99), "0", 0),
		mk("Oro", 100, maxPtr(199), "5", 0),
		mk("Diamante", 200, nil, "15", 5),
	}
}
