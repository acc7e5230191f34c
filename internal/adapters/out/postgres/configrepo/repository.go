// Package configrepo provides read access to the system_configs key/value
// store of tunable rates.
package configrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tracking/internal/pkg/errs"
)

// ConfigDTO represents the database structure for system configuration rows.
type ConfigDTO struct {
	Key   string `gorm:"type:varchar(100);primaryKey"`
	Value string `gorm:"type:varchar(255);not null"`
}

// TableName specifies the database table name for configuration entries.
func (ConfigDTO) TableName() string {
	return "system_configs"
}

// GormSystemConfigRepository implements SystemConfigRepository using GORM.
type GormSystemConfigRepository struct {
	db *gorm.DB
}

// NewGormSystemConfigRepository creates a new GORM system config repository.
func NewGormSystemConfigRepository(db *gorm.DB) *GormSystemConfigRepository {
	return &GormSystemConfigRepository{db: db}
}

// GetDecimal reads a decimal value for a key. An absent key yields the
// fallback, a present but malformed value is an error.
func (r *GormSystemConfigRepository) GetDecimal(
	ctx context.Context,
	key string,
	fallback decimal.Decimal,
) (decimal.Decimal, error) {
	if key == "" {
		return decimal.Zero, errs.NewValueIsRequiredError("key")
	}

	var dto ConfigDTO
	if err := r.db.WithContext(ctx).First(&dto, "key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fallback, nil
		}
		return decimal.Zero, err
	}

	value, err := decimal.NewFromString(dto.Value)
	if err != nil {
		return decimal.Zero, errs.NewValueIsInvalidErrorWithCause(
			key,
			fmt.Errorf("system config value %q is not a decimal: %w", dto.Value, err),
		)
	}

	return value, nil
}
