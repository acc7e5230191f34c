// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"tracking/internal/core/ports"
)

// Notifier delivers best-effort state-change notifications. Implementations
// must never block the caller or surface delivery failures; handlers call
// Dispatch after the transaction commits.
type Notifier interface {
	Dispatch(recipientEmail, subject, body string)
}

// Unit of Work interfaces provide transaction management for command handlers.
// These abstractions ensure data consistency across aggregate boundaries.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// GuideRepoFactory provides access to the guide repository within a transaction.
	GuideRepoFactory interface {
		GuideRepository() ports.GuideRepository
	}

	// CourierRepoFactory provides access to the courier repository within a transaction.
	CourierRepoFactory interface {
		CourierRepository() ports.CourierRepository
	}

	// BusinessRepoFactory provides access to the business repository within a transaction.
	BusinessRepoFactory interface {
		BusinessRepository() ports.BusinessRepository
	}

	// CancellationRepoFactory provides access to the cancellation repository within a transaction.
	CancellationRepoFactory interface {
		CancellationRepository() ports.CancellationRepository
	}

	// LoyaltyRepoFactory provides access to the loyalty level catalog within a transaction.
	LoyaltyRepoFactory interface {
		LoyaltyLevelRepository() ports.LoyaltyLevelRepository
	}

	// DiscountRepoFactory provides access to the discount repository within a transaction.
	DiscountRepoFactory interface {
		DiscountRepository() ports.DiscountRepository
	}

	// ConfigRepoFactory provides access to system configuration within a transaction.
	ConfigRepoFactory interface {
		SystemConfigRepository() ports.SystemConfigRepository
	}

	// GuideUoW manages transactions for guide-only operations.
	GuideUoW interface {
		TxManager
		GuideRepoFactory
	}

	// GuideUoWFactory creates new guide unit of work instances.
	GuideUoWFactory interface {
		Create() GuideUoW
	}

	// GuideBusinessUoW manages operations touching a guide and its owning
	// business, such as creation and state transitions that notify the owner.
	GuideBusinessUoW interface {
		TxManager
		GuideRepoFactory
		BusinessRepoFactory
	}

	// GuideBusinessUoWFactory creates new GuideBusinessUoW instances.
	GuideBusinessUoWFactory interface {
		Create() GuideBusinessUoW
	}

	// AssignmentUoW manages transactions spanning guides and couriers.
	// Used by assignment and reassignment, which verify the courier contract.
	AssignmentUoW interface {
		TxManager
		GuideRepoFactory
		CourierRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// CancellationUoW manages the cancellation transaction, which touches the
	// guide, the business credits, the loyalty catalog, the courier rate and
	// the cancellation record.
	CancellationUoW interface {
		TxManager
		GuideRepoFactory
		CourierRepoFactory
		BusinessRepoFactory
		CancellationRepoFactory
		LoyaltyRepoFactory
		ConfigRepoFactory
	}

	// CancellationUoWFactory creates new cancellation unit of work instances.
	CancellationUoWFactory interface {
		Create() CancellationUoW
	}

	// RejectionUoW manages the public customer rejection transaction. The
	// business repository supplies the owner's notification address.
	RejectionUoW interface {
		TxManager
		GuideRepoFactory
		BusinessRepoFactory
		CancellationRepoFactory
	}

	// RejectionUoWFactory creates new rejection unit of work instances.
	RejectionUoWFactory interface {
		Create() RejectionUoW
	}

	// DiscountUoW manages the monthly discount recalculation transaction.
	DiscountUoW interface {
		TxManager
		GuideRepoFactory
		BusinessRepoFactory
		LoyaltyRepoFactory
		DiscountRepoFactory
	}

	// DiscountUoWFactory creates new discount unit of work instances.
	DiscountUoWFactory interface {
		Create() DiscountUoW
	}
)
