package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// It provides transaction control and tracks aggregate changes.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// GuideRepository returns a GuideRepository bound to the current transaction.
	GuideRepository() GuideRepository

	// CourierRepository returns a CourierRepository bound to the current transaction.
	CourierRepository() CourierRepository

	// BusinessRepository returns a BusinessRepository bound to the current transaction.
	BusinessRepository() BusinessRepository

	// CancellationRepository returns a CancellationRepository bound to the current transaction.
	CancellationRepository() CancellationRepository

	// LoyaltyLevelRepository returns a LoyaltyLevelRepository bound to the current transaction.
	LoyaltyLevelRepository() LoyaltyLevelRepository

	// DiscountRepository returns a DiscountRepository bound to the current transaction.
	DiscountRepository() DiscountRepository

	// SystemConfigRepository returns a SystemConfigRepository bound to the current transaction.
	SystemConfigRepository() SystemConfigRepository
}
