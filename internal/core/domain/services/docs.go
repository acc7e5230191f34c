// Package services provides domain services that implement business
// calculations spanning multiple aggregates.
//
// The package includes:
//   - CommissionCalculator: courier commission and cancellation penalty math
//   - LoyaltyEngine: loyalty level resolution and monthly discount computation
//
// Domain services coordinate between aggregates, implementing business logic
// that doesn't naturally belong to a single aggregate root.
package services
