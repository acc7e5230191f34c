// Package businessrepo provides data transfer objects and mapping functions
// for business persistence.
package businessrepo

import (
	"github.com/google/uuid"

	"tracking/internal/core/domain/model/business"
	"tracking/internal/core/domain/model/kernel"
)

// BusinessDTO represents the database structure for persisting businesses.
// CurrentLevelID is the denormalized loyalty level cache, never the source
// of truth for benefits.
type BusinessDTO struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                  string    `gorm:"type:varchar(255);not null"`
	Email                 string    `gorm:"type:varchar(255);not null"`
	CurrentLevelID        *uuid.UUID `gorm:"type:uuid"`
	FreeCancellationsUsed int        `gorm:"not null;default:0"`
}

// TableName specifies the database table name for business entities.
func (BusinessDTO) TableName() string {
	return "businesses"
}

// fromDomain converts a domain business to its database representation.
func fromDomain(aggregate *business.Business) BusinessDTO {
	return BusinessDTO{
		ID:                    aggregate.ID().Bytes(),
		Name:                  aggregate.Name(),
		Email:                 aggregate.Email(),
		CurrentLevelID:        optionalUUID(aggregate.CurrentLevelHint()),
		FreeCancellationsUsed: aggregate.FreeCancellationsUsed(),
	}
}

// toDomain converts a database representation to a domain business.
func toDomain(dto BusinessDTO) (*business.Business, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	levelHint, err := domainUUID(dto.CurrentLevelID)
	if err != nil {
		return nil, err
	}

	return business.RestoreBusiness(id, dto.Name, dto.Email, levelHint, dto.FreeCancellationsUsed)
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
