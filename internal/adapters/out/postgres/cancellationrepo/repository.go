package cancellationrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// GormCancellationRepository implements CancellationRepository using GORM.
type GormCancellationRepository struct {
	db *gorm.DB
}

// NewGormCancellationRepository creates a new GORM cancellation repository.
func NewGormCancellationRepository(db *gorm.DB) *GormCancellationRepository {
	return &GormCancellationRepository{db: db}
}

// Add saves a cancellation record to the database.
func (r *GormCancellationRepository) Add(ctx context.Context, record *guide.Cancellation) error {
	if err := record.Validate(); err != nil {
		return err
	}

	dto := fromDomain(record)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetByGuide retrieves the cancellation record for a guide.
func (r *GormCancellationRepository) GetByGuide(ctx context.Context, guideID kernel.UUID) (*guide.Cancellation, error) {
	if err := guideID.Validate(); err != nil {
		return nil, err
	}

	var dto CancellationDTO
	if err := r.db.WithContext(ctx).First(&dto, "guide_id = ?", guideID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cancellation", guideID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
