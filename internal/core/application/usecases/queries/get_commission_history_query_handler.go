package queries

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

var defaultCommissionRate = decimal.RequireFromString("0.25")

// GetCommissionHistoryQueryHandler computes a courier's per-delivery
// earnings. The effective rate is resolved once per query: the courier's
// contract override when present, otherwise the configured system rate.
// Commissions are recomputed from stored base prices, rounded half up to two
// decimals.
type GetCommissionHistoryQueryHandler struct {
	db *gorm.DB
}

// NewGetCommissionHistoryQueryHandler creates a handler for commission
// history queries.
func NewGetCommissionHistoryQueryHandler(db *gorm.DB) GetCommissionHistoryQueryHandler {
	return GetCommissionHistoryQueryHandler{db: db}
}

// Handle executes the commission history query. Rows are returned oldest
// delivery first.
func (h GetCommissionHistoryQueryHandler) Handle(
	ctx context.Context,
	query GetCommissionHistoryQuery,
) ([]GetCommissionHistoryQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rate, err := effectiveCommissionRate(ctx, h.db, query.CourierID())
	if err != nil {
		return nil, err
	}

	history := make([]GetCommissionHistoryQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			number,
			base_price,
			delivery_date
		FROM guides
		WHERE courier_id = ? AND state = ? AND delivery_date BETWEEN ? AND ?
		ORDER BY delivery_date
	`, query.CourierID().Bytes(), int(guide.Entregada), query.From(), query.To()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id          uuid.UUID
			number      string
			basePrice   decimal.Decimal
			deliveredAt time.Time
		)
		if err = rows.Scan(&id, &number, &basePrice, &deliveredAt); err != nil {
			return nil, err
		}

		guideID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		price, priceErr := kernel.NewMoney(basePrice)
		if priceErr != nil {
			return nil, priceErr
		}

		history = append(history, GetCommissionHistoryQueryResponse{
			GuideID:     guideID,
			Number:      number,
			DeliveredAt: deliveredAt,
			BasePrice:   price,
			Rate:        rate.String(),
			Commission:  price.Mul(rate).Round(),
		})
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return history, nil
}

// effectiveCommissionRate resolves the rate applied to one courier's
// deliveries: contract override first, then system configuration, then the
// built-in default.
func effectiveCommissionRate(ctx context.Context, db *gorm.DB, courierID kernel.UUID) (decimal.Decimal, error) {
	var override sql.NullString

	row := db.WithContext(ctx).Raw(`
		SELECT commission_rate FROM couriers WHERE id = ?
	`, courierID.Bytes()).Row()
	if err := row.Scan(&override); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return decimal.Zero, errs.NewObjectNotFoundError("courierID", courierID)
		}
		return decimal.Zero, err
	}

	if override.Valid {
		return decimal.NewFromString(override.String)
	}

	var configured string
	row = db.WithContext(ctx).Raw(`
		SELECT value FROM system_configs WHERE key = ?
	`, "courier_commission_rate").Row()
	err := row.Scan(&configured)
	if errors.Is(err, sql.ErrNoRows) {
		return defaultCommissionRate, nil
	}
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.NewFromString(configured)
}
