// Package guide provides the domain model for tracking guides: the central
// aggregate of the system, representing a single shipment tracked from
// creation to delivery, cancellation or rejection.
//
// The package includes:
//   - Guide: the aggregate root managing identity, assignment and lifecycle
//   - State: the state machine enforcing the delivery workflow
//   - HistoryEntry: the append-only audit trail written on every transition
//   - Cancellation: the record created once per cancelled/rejected guide
//   - Incident: exceptional events during delivery, not themselves terminal
//   - Evidence: proof-of-delivery artifacts attached by the assigned courier
//
// Key business rules:
//   - a guide is never both delivered and cancelled
//   - lifecycle timestamps are set exactly once and never regressed
//   - state changes are capability-checked against the explicit acting user
//   - final states accept no further transitions
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package guide
