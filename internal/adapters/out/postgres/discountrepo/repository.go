package discountrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/loyalty"
	"tracking/internal/pkg/errs"
)

// GormLoyaltyLevelRepository implements LoyaltyLevelRepository using GORM.
// The level catalog is read-only from the application's point of view.
type GormLoyaltyLevelRepository struct {
	db *gorm.DB
}

// NewGormLoyaltyLevelRepository creates a new GORM loyalty level repository.
func NewGormLoyaltyLevelRepository(db *gorm.DB) *GormLoyaltyLevelRepository {
	return &GormLoyaltyLevelRepository{db: db}
}

// GetAll retrieves the full level catalog ordered by delivery threshold.
func (r *GormLoyaltyLevelRepository) GetAll(ctx context.Context) ([]*loyalty.Level, error) {
	var dtos []LevelDTO
	if err := r.db.WithContext(ctx).Order("min_deliveries").Find(&dtos).Error; err != nil {
		return nil, err
	}

	levels := make([]*loyalty.Level, 0, len(dtos))
	for _, dto := range dtos {
		level, convErr := levelToDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		levels = append(levels, level)
	}

	return levels, nil
}

// Get retrieves one level by identifier.
func (r *GormLoyaltyLevelRepository) Get(ctx context.Context, id kernel.UUID) (*loyalty.Level, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto LevelDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("loyalty level", id.String())
		}
		return nil, err
	}

	return levelToDomain(dto)
}

// GormDiscountRepository implements DiscountRepository using GORM.
type GormDiscountRepository struct {
	db *gorm.DB
}

// NewGormDiscountRepository creates a new GORM discount repository.
func NewGormDiscountRepository(db *gorm.DB) *GormDiscountRepository {
	return &GormDiscountRepository{db: db}
}

// Upsert stores the discount for a period. Recalculating the same period
// replaces the previous row, so the calculation stays idempotent.
func (r *GormDiscountRepository) Upsert(ctx context.Context, d *loyalty.MonthlyDiscount) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := discountFromDomain(d)
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "business_id"}, {Name: "year"}, {Name: "month"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"total_deliveries",
				"total_before_discount",
				"discount_percentage",
				"discount_amount",
				"total_after_discount",
				"applied_level_id",
				"calculated_at",
			}),
		}).
		Create(&dto).Error
}

// Get retrieves the discount computed for a period.
func (r *GormDiscountRepository) Get(
	ctx context.Context,
	businessID kernel.UUID,
	year int,
	month time.Month,
) (*loyalty.MonthlyDiscount, error) {
	if err := businessID.Validate(); err != nil {
		return nil, err
	}

	var dto MonthlyDiscountDTO
	err := r.db.WithContext(ctx).
		First(&dto, "business_id = ? AND year = ? AND month = ?", businessID.Bytes(), year, int(month)).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("monthly discount", businessID.String())
		}
		return nil, err
	}

	return discountToDomain(dto)
}
