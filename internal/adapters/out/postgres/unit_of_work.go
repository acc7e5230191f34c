// Package postgres provides the GORM-based Unit of Work coordinating
// transactional repository access for command handlers.
package postgres

import (
	"context"

	"gorm.io/gorm"

	"tracking/internal/adapters/out/postgres/businessrepo"
	"tracking/internal/adapters/out/postgres/cancellationrepo"
	"tracking/internal/adapters/out/postgres/configrepo"
	"tracking/internal/adapters/out/postgres/courierrepo"
	"tracking/internal/adapters/out/postgres/discountrepo"
	"tracking/internal/adapters/out/postgres/guiderepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/ports"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances bound to a shared GORM
// connection. Each business operation gets a fresh instance so transactions
// never leak between concurrent handlers.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work
// instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction across the repositories a
// command handler touches. Repository accessors return instances bound to the
// active transaction, or to the main connection when none was begun.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling Begin on an instance with an active
// transaction is a no-op, nested transactions are never created.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		return uow.tx.Error
	}

	return nil
}

// Commit finalizes the current transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the current transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// GuideRepository returns a GuideRepository bound to the current transaction.
func (uow *GormUnitOfWork) GuideRepository() ports.GuideRepository {
	return guiderepo.NewGormGuideRepository(uow.conn(), uow)
}

// CourierRepository returns a CourierRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// BusinessRepository returns a BusinessRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) BusinessRepository() ports.BusinessRepository {
	return businessrepo.NewGormBusinessRepository(uow.conn(), uow)
}

// CancellationRepository returns a CancellationRepository bound to the
// current transaction.
func (uow *GormUnitOfWork) CancellationRepository() ports.CancellationRepository {
	return cancellationrepo.NewGormCancellationRepository(uow.conn())
}

// LoyaltyLevelRepository returns the level catalog bound to the current
// transaction.
func (uow *GormUnitOfWork) LoyaltyLevelRepository() ports.LoyaltyLevelRepository {
	return discountrepo.NewGormLoyaltyLevelRepository(uow.conn())
}

// DiscountRepository returns a DiscountRepository bound to the current
// transaction.
func (uow *GormUnitOfWork) DiscountRepository() ports.DiscountRepository {
	return discountrepo.NewGormDiscountRepository(uow.conn())
}

// SystemConfigRepository returns a SystemConfigRepository bound to the
// current transaction.
func (uow *GormUnitOfWork) SystemConfigRepository() ports.SystemConfigRepository {
	return configrepo.NewGormSystemConfigRepository(uow.conn())
}

// TrackAggregate registers a domain aggregate as modified within this unit of
// work. Repositories call it when aggregates are added or updated, which lets
// post-commit processing see everything the transaction touched.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}
