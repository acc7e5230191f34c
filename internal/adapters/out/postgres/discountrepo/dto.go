// Package discountrepo provides data transfer objects and mapping functions
// for the loyalty level catalog and monthly discount persistence.
package discountrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
)

// LevelDTO represents the database structure for the loyalty level catalog.
// A nil MaxDeliveries marks an open-ended top level.
type LevelDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"type:varchar(50);not null"`
	MinDeliveries      int       `gorm:"not null"`
	MaxDeliveries      *int
	DiscountPercentage decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	FreeCancellations  int             `gorm:"not null"`
}

// TableName specifies the database table name for loyalty levels.
func (LevelDTO) TableName() string {
	return "loyalty_levels"
}

// MonthlyDiscountDTO represents the database structure for persisting a
// calculated monthly discount. One row per business and period.
type MonthlyDiscountDTO struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey"`
	BusinessID          uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_discount_period"`
	Year                int        `gorm:"not null;uniqueIndex:idx_discount_period"`
	Month               int        `gorm:"not null;uniqueIndex:idx_discount_period"`
	TotalDeliveries     int        `gorm:"not null"`
	TotalBeforeDiscount decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	DiscountPercentage  decimal.Decimal `gorm:"type:numeric(5,4);not null"`
	DiscountAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	TotalAfterDiscount  decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	AppliedLevelID      *uuid.UUID      `gorm:"type:uuid"`
	CalculatedAt        time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for monthly discounts.
func (MonthlyDiscountDTO) TableName() string {
	return "monthly_discounts"
}

func levelToDomain(dto LevelDTO) (*loyalty.Level, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return loyalty.NewLevel(
		id, dto.Name,
		dto.MinDeliveries, dto.MaxDeliveries,
		dto.DiscountPercentage,
		dto.FreeCancellations,
	)
}

func discountFromDomain(d *loyalty.MonthlyDiscount) MonthlyDiscountDTO {
	return MonthlyDiscountDTO{
		ID:                  d.ID().Bytes(),
		BusinessID:          d.BusinessID().Bytes(),
		Year:                d.Year(),
		Month:               int(d.Month()),
		TotalDeliveries:     d.TotalDeliveries(),
		TotalBeforeDiscount: d.TotalBeforeDiscount().Amount(),
		DiscountPercentage:  d.DiscountPercentage(),
		DiscountAmount:      d.DiscountAmount().Amount(),
		TotalAfterDiscount:  d.TotalAfterDiscount().Amount(),
		AppliedLevelID:      optionalUUID(d.AppliedLevelID()),
		CalculatedAt:        d.CalculatedAt(),
	}
}

func discountToDomain(dto MonthlyDiscountDTO) (*loyalty.MonthlyDiscount, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}
	appliedLevelID, err := domainUUID(dto.AppliedLevelID)
	if err != nil {
		return nil, err
	}
	totalBefore, err := kernel.NewMoney(dto.TotalBeforeDiscount)
	if err != nil {
		return nil, err
	}
	discountAmount, err := kernel.NewMoney(dto.DiscountAmount)
	if err != nil {
		return nil, err
	}
	totalAfter, err := kernel.NewMoney(dto.TotalAfterDiscount)
	if err != nil {
		return nil, err
	}

	return loyalty.NewMonthlyDiscount(
		id, businessID,
		dto.Year, time.Month(dto.Month),
		dto.TotalDeliveries,
		totalBefore,
		dto.DiscountPercentage,
		discountAmount,
		totalAfter,
		appliedLevelID,
		dto.CalculatedAt,
	)
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
