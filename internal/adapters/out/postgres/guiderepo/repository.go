package guiderepo

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// GormGuideRepository implements GuideRepository using GORM.
type GormGuideRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormGuideRepository creates a new GORM guide repository.
func NewGormGuideRepository(db *gorm.DB, tracker aggregateTracker) *GormGuideRepository {
	return &GormGuideRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new guide to the database together with its pending history.
func (r *GormGuideRepository) Add(ctx context.Context, aggregate *guide.Guide) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}
	if err := r.persistPendingHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing guide. The write is guarded by the stored
// version: when another transaction already bumped it, nothing is written
// and ErrConcurrentModification is returned.
func (r *GormGuideRepository) Update(ctx context.Context, aggregate *guide.Guide) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	staleVersion := dto.Version
	dto.Version = staleVersion + 1

	result := r.db.WithContext(ctx).
		Model(&GuideDTO{}).
		Where("id = ? AND version = ?", dto.ID, staleVersion).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewConcurrentModificationError("guide", aggregate.ID().String())
	}

	if err := r.persistPendingHistory(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a guide by ID.
func (r *GormGuideRepository) Get(ctx context.Context, id kernel.UUID) (*guide.Guide, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto GuideDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("guide", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves a guide by its public guide number.
func (r *GormGuideRepository) GetByNumber(ctx context.Context, number kernel.GuideNumber) (*guide.Guide, error) {
	if err := number.Validate(); err != nil {
		return nil, err
	}

	var dto GuideDTO
	if err := r.db.WithContext(ctx).First(&dto, "number = ?", number.String()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("guide", number.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetHistory returns the full state history of a guide, oldest first.
func (r *GormGuideRepository) GetHistory(ctx context.Context, guideID kernel.UUID) ([]guide.HistoryEntry, error) {
	if err := guideID.Validate(); err != nil {
		return nil, err
	}

	var dtos []HistoryDTO
	err := r.db.WithContext(ctx).
		Order("changed_at").
		Find(&dtos, "guide_id = ?", guideID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	history := make([]guide.HistoryEntry, 0, len(dtos))
	for _, dto := range dtos {
		entry, entryErr := historyToDomain(dto)
		if entryErr != nil {
			return nil, entryErr
		}
		history = append(history, entry)
	}

	return history, nil
}

// NextSequence reserves the next guide-number sequence value for a year.
// The upsert increments atomically, so concurrent creations never share a
// value.
func (r *GormGuideRepository) NextSequence(ctx context.Context, year int) (int64, error) {
	var next int64

	row := r.db.WithContext(ctx).Raw(`
		INSERT INTO guide_sequences (year, last_value)
		VALUES (?, 1)
		ON CONFLICT (year)
		DO UPDATE SET last_value = guide_sequences.last_value + 1
		RETURNING last_value
	`, year).Row()
	if err := row.Scan(&next); err != nil {
		return 0, err
	}

	return next, nil
}

// CountDelivered counts guides delivered by a business within a window.
func (r *GormGuideRepository) CountDelivered(
	ctx context.Context, businessID kernel.UUID, from, to time.Time,
) (int, error) {
	if err := businessID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	err := r.db.WithContext(ctx).
		Model(&GuideDTO{}).
		Where("business_id = ? AND state = ? AND delivery_date BETWEEN ? AND ?",
			businessID.Bytes(), int(guide.Entregada), from, to).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return int(count), nil
}

// SumDeliveredBasePrice sums the base price of guides delivered by a
// business within a window.
func (r *GormGuideRepository) SumDeliveredBasePrice(
	ctx context.Context, businessID kernel.UUID, from, to time.Time,
) (kernel.Money, error) {
	if err := businessID.Validate(); err != nil {
		return kernel.Money{}, err
	}

	var total decimal.Decimal
	row := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(SUM(base_price), 0)
		FROM guides
		WHERE business_id = ? AND state = ? AND delivery_date BETWEEN ? AND ?
	`, businessID.Bytes(), int(guide.Entregada), from, to).Row()
	if err := row.Scan(&total); err != nil {
		return kernel.Money{}, err
	}

	return kernel.NewMoney(total)
}

// AddIncident persists a reported incident.
func (r *GormGuideRepository) AddIncident(ctx context.Context, incident *guide.Incident) error {
	dto := incidentFromDomain(incident)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// GetIncident retrieves an incident by ID.
func (r *GormGuideRepository) GetIncident(ctx context.Context, id kernel.UUID) (*guide.Incident, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto IncidentDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("incident", id.String())
		}
		return nil, err
	}

	return incidentToDomain(dto)
}

// UpdateIncident persists incident resolution.
func (r *GormGuideRepository) UpdateIncident(ctx context.Context, incident *guide.Incident) error {
	dto := incidentFromDomain(incident)
	result := r.db.WithContext(ctx).
		Model(&IncidentDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("incident", incident.ID().String())
	}

	return nil
}

// AddEvidence persists a proof-of-delivery artifact.
func (r *GormGuideRepository) AddEvidence(ctx context.Context, evidence *guide.Evidence) error {
	dto := evidenceFromDomain(evidence)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// persistPendingHistory drains the aggregate's history buffer into
// guide_history rows.
func (r *GormGuideRepository) persistPendingHistory(ctx context.Context, aggregate *guide.Guide) error {
	for _, entry := range aggregate.PullPendingHistory() {
		dto := historyFromDomain(entry)
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}
	return nil
}
