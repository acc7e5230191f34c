package queries

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GetMonthlyCommissionsQueryHandler groups a courier's earnings by calendar
// month for one year.
type GetMonthlyCommissionsQueryHandler struct {
	db *gorm.DB
}

// NewGetMonthlyCommissionsQueryHandler creates a handler for per-month
// earnings queries.
func NewGetMonthlyCommissionsQueryHandler(db *gorm.DB) GetMonthlyCommissionsQueryHandler {
	return GetMonthlyCommissionsQueryHandler{db: db}
}

// Handle executes the monthly grouping query. Months are returned in
// calendar order.
func (h GetMonthlyCommissionsQueryHandler) Handle(
	ctx context.Context,
	query GetMonthlyCommissionsQuery,
) ([]GetMonthlyCommissionsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rate, err := effectiveCommissionRate(ctx, h.db, query.CourierID())
	if err != nil {
		return nil, err
	}

	months := make([]GetMonthlyCommissionsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			EXTRACT(MONTH FROM delivery_date)::int,
			COUNT(*),
			COALESCE(SUM(ROUND(base_price * ?, 2)), 0)
		FROM guides
		WHERE courier_id = ?
			AND state = ?
			AND EXTRACT(YEAR FROM delivery_date)::int = ?
		GROUP BY 1
		ORDER BY 1
	`, rate, query.CourierID().Bytes(), int(guide.Entregada), query.Year()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			month      int
			deliveries int
			total      decimal.Decimal
		)
		if err = rows.Scan(&month, &deliveries, &total); err != nil {
			return nil, err
		}

		commission, moneyErr := kernel.NewMoney(total)
		if moneyErr != nil {
			return nil, moneyErr
		}
		months = append(months, GetMonthlyCommissionsQueryResponse{
			Month:           time.Month(month),
			Deliveries:      deliveries,
			TotalCommission: commission,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return months, nil
}
