package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// System configuration keys for tunable rates. Values are read at calculation
// time, never cached indefinitely.
const (
	ConfigCommissionRate    = "courier_commission_rate"
	ConfigPenaltyPrePickup  = "cancellation_penalty_pre_pickup"
	ConfigPenaltyPostPickup = "cancellation_penalty_post_pickup"
)

// SystemConfigRepository provides read access to the key/value store of
// tunable system rates.
type SystemConfigRepository interface {
	// GetDecimal reads a decimal value for a key, returning fallback when the
	// key is absent.
	GetDecimal(ctx context.Context, key string, fallback decimal.Decimal) (decimal.Decimal, error)
}
