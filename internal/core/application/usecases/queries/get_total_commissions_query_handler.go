package queries

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GetTotalCommissionsQueryHandler sums a courier's earnings over a window.
// Each delivery's commission is rounded to two decimals before summing, so
// the total always matches the per-row history.
type GetTotalCommissionsQueryHandler struct {
	db *gorm.DB
}

// NewGetTotalCommissionsQueryHandler creates a handler for aggregated
// commission queries.
func NewGetTotalCommissionsQueryHandler(db *gorm.DB) GetTotalCommissionsQueryHandler {
	return GetTotalCommissionsQueryHandler{db: db}
}

// Handle executes the aggregation query.
func (h GetTotalCommissionsQueryHandler) Handle(
	ctx context.Context,
	query GetTotalCommissionsQuery,
) (GetTotalCommissionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTotalCommissionsQueryResponse{}, err
	}

	rate, err := effectiveCommissionRate(ctx, h.db, query.CourierID())
	if err != nil {
		return GetTotalCommissionsQueryResponse{}, err
	}

	var (
		deliveries      int
		totalBase       decimal.Decimal
		totalCommission decimal.Decimal
	)

	row := h.db.WithContext(ctx).Raw(`
		SELECT
			COUNT(*),
			COALESCE(SUM(base_price), 0),
			COALESCE(SUM(ROUND(base_price * ?, 2)), 0)
		FROM guides
		WHERE courier_id = ? AND state = ? AND delivery_date BETWEEN ? AND ?
	`, rate, query.CourierID().Bytes(), int(guide.Entregada), query.From(), query.To()).Row()
	if err = row.Scan(&deliveries, &totalBase, &totalCommission); err != nil {
		return GetTotalCommissionsQueryResponse{}, err
	}

	basePrice, err := kernel.NewMoney(totalBase)
	if err != nil {
		return GetTotalCommissionsQueryResponse{}, err
	}
	commission, err := kernel.NewMoney(totalCommission)
	if err != nil {
		return GetTotalCommissionsQueryResponse{}, err
	}

	return GetTotalCommissionsQueryResponse{
		Deliveries:      deliveries,
		TotalBasePrice:  basePrice,
		TotalCommission: commission,
		Rate:            rate.String(),
	}, nil
}
