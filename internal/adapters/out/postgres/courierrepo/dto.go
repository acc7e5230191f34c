// Package courierrepo provides data transfer objects and mapping functions
// for courier persistence. This package implements the repository pattern for
// the courier aggregate, handling the conversion between domain entities and
// database representations.
package courierrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/courier"
	"tracking/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure for persisting couriers.
// The contract window bounds assignment eligibility; the commission rate is
// the optional contract override.
type CourierDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name           string    `gorm:"type:varchar(255);not null"`
	Email          string    `gorm:"type:varchar(255);not null"`
	ContractFrom   *time.Time
	ContractUntil  *time.Time
	CommissionRate *decimal.Decimal `gorm:"type:numeric(5,4)"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// fromDomain converts a courier domain aggregate to its database
// representation.
func fromDomain(c *courier.Courier) CourierDTO {
	return CourierDTO{
		ID:             c.ID().Bytes(),
		Name:           c.Name(),
		Email:          c.Email(),
		ContractFrom:   c.ContractFrom(),
		ContractUntil:  c.ContractUntil(),
		CommissionRate: c.CommissionRate(),
	}
}

// toDomain converts a database DTO to a courier domain aggregate.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return courier.NewCourier(
		id, dto.Name, dto.Email, dto.ContractFrom, dto.ContractUntil, dto.CommissionRate,
	)
}
