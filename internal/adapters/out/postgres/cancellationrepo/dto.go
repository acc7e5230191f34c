// Package cancellationrepo provides data transfer objects and mapping
// functions for cancellation persistence.
package cancellationrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// CancellationDTO represents the database structure for persisting
// cancellation records. At most one row exists per guide.
type CancellationDTO struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GuideID           uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex"`
	Kind              int        `gorm:"not null"`
	CancelledBy       *uuid.UUID `gorm:"type:uuid"`
	Reason            string     `gorm:"type:text;not null"`
	PenaltyAmount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CourierCommission decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	CancelledAt       time.Time       `gorm:"not null"`
}

// TableName specifies the database table name for cancellation entities.
func (CancellationDTO) TableName() string {
	return "cancellations"
}

// fromDomain converts a domain cancellation to its database representation.
func fromDomain(record *guide.Cancellation) CancellationDTO {
	return CancellationDTO{
		ID:                record.ID().Bytes(),
		GuideID:           record.GuideID().Bytes(),
		Kind:              int(record.Kind()),
		CancelledBy:       optionalUUID(record.CancelledBy()),
		Reason:            record.Reason(),
		PenaltyAmount:     record.PenaltyAmount().Amount(),
		CourierCommission: record.CourierCommission().Amount(),
		CancelledAt:       record.CancelledAt(),
	}
}

// toDomain converts a database representation to a domain cancellation.
func toDomain(dto CancellationDTO) (*guide.Cancellation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	guideID, err := kernel.UUIDFromBytes(dto.GuideID[:])
	if err != nil {
		return nil, err
	}
	cancelledBy, err := domainUUID(dto.CancelledBy)
	if err != nil {
		return nil, err
	}
	penalty, err := kernel.NewMoney(dto.PenaltyAmount)
	if err != nil {
		return nil, err
	}
	commission, err := kernel.NewMoney(dto.CourierCommission)
	if err != nil {
		return nil, err
	}

	return guide.RestoreCancellation(
		id, guideID,
		guide.CancellationKind(dto.Kind),
		cancelledBy,
		dto.Reason,
		penalty, commission,
		dto.CancelledAt,
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
