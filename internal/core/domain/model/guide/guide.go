package guide

import (
	"errors"
	"fmt"
	"time"

	"tracking/internal/core/domain/model/actor"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// ErrGuideIsNotConstructed is returned when a Guide instance was not created
// through NewGuide or RestoreGuide. This ensures all guides are properly
// validated.
var ErrGuideIsNotConstructed = errors.New("Guide must be created via NewGuide or RestoreGuide")

// Guide is the central aggregate: a single shipment tracked end-to-end.
//
// Guide enforces these invariants:
//   - deliveryDate and cancellationDate are never both set; a guide cannot be
//     both delivered and cancelled
//   - lifecycle timestamps (assignment, acceptance, pickup, delivery,
//     cancellation) are each set exactly once and never regressed
//   - the courier reference must be non-nil before the state advances past
//     Asignada
//   - every state change appends exactly one HistoryEntry; history is
//     append-only
//   - final states accept no further transitions
//
// All mutations validate the acting user's capability: couriers only move
// guides assigned to them, the public customer actor can only reject, and
// coordinators/admins may force transitions. Mutating methods take the current
// time explicitly so handlers control the clock.
//
// The aggregate accumulates the HistoryEntry rows produced by its mutations;
// repositories persist them together with the guide write through
// PullPendingHistory, keeping audit and state in one transaction.
type Guide struct {
	id             kernel.UUID
	number         kernel.GuideNumber
	businessID     kernel.UUID
	originBranchID kernel.UUID
	courierID      *kernel.UUID
	coordinatorID  *kernel.UUID
	recipient      Recipient
	basePrice      kernel.Money
	observations   string
	priority       Priority

	state State
	// preIncidentState holds the forward state the guide occupied before an
	// incident; meaningful only while state == Incidencia.
	preIncidentState State

	createdAt            time.Time
	assignmentDate       *time.Time
	assignmentAcceptedAt *time.Time
	pickupDate           *time.Time
	deliveryDate         *time.Time
	cancellationDate     *time.Time

	// version supports optimistic locking; the repository compares and
	// increments it on every update.
	version int64

	pendingHistory []HistoryEntry
	isConstructed  bool
}

// NewGuide creates a guide in the Creada state and records the first history
// entry. createdBy is the business user creating the guide (nil when created
// by an integration).
//
// Example:
//
//	number, _ := kernel.NewGuideNumber(2025, 42)
//	recipient, _ := guide.NewRecipient("Ana Ruiz", "Av. Reforma 100", "CDMX", "CDMX")
//	price, _ := kernel.MoneyFromString("350.00")
//	g, err := guide.NewGuide(kernel.NewUUID(), number, businessID, branchID,
//	    recipient, price, "fragile", guide.PriorityNormal, nil, time.Now())
func NewGuide(
	id kernel.UUID,
	number kernel.GuideNumber,
	businessID kernel.UUID,
	originBranchID kernel.UUID,
	recipient Recipient,
	basePrice kernel.Money,
	observations string,
	priority Priority,
	createdBy *kernel.UUID,
	now time.Time,
) (*Guide, error) {
	g := &Guide{
		state:         Creada,
		createdAt:     now,
		isConstructed: true,
	}

	if err := errors.Join(
		g.setID(id),
		g.setNumber(number),
		g.setBusinessID(businessID),
		g.setOriginBranchID(originBranchID),
		g.setRecipient(recipient),
		g.setPriority(priority),
	); err != nil {
		return nil, err
	}
	if now.IsZero() {
		return nil, errs.NewValueIsRequiredError("now")
	}

	g.basePrice = basePrice
	g.observations = observations

	if err := g.appendHistory(Creada, createdBy, observations, now); err != nil {
		return nil, err
	}

	return g, nil
}

// RestoreGuide reconstructs a guide from persistence without side effects.
// No history is appended; the repository supplies the stored version.
func RestoreGuide(
	id kernel.UUID,
	number kernel.GuideNumber,
	businessID kernel.UUID,
	originBranchID kernel.UUID,
	courierID *kernel.UUID,
	coordinatorID *kernel.UUID,
	recipient Recipient,
	basePrice kernel.Money,
	observations string,
	priority Priority,
	state State,
	preIncidentState State,
	createdAt time.Time,
	assignmentDate, assignmentAcceptedAt, pickupDate, deliveryDate, cancellationDate *time.Time,
	version int64,
) (*Guide, error) {
	g := &Guide{
		courierID:            courierID,
		coordinatorID:        coordinatorID,
		observations:         observations,
		state:                state,
		preIncidentState:     preIncidentState,
		createdAt:            createdAt,
		assignmentDate:       assignmentDate,
		assignmentAcceptedAt: assignmentAcceptedAt,
		pickupDate:           pickupDate,
		deliveryDate:         deliveryDate,
		cancellationDate:     cancellationDate,
		version:              version,
		isConstructed:        true,
	}

	if err := errors.Join(
		g.setID(id),
		g.setNumber(number),
		g.setBusinessID(businessID),
		g.setOriginBranchID(originBranchID),
		g.setRecipient(recipient),
		g.setPriority(priority),
		state.Validate(),
	); err != nil {
		return nil, err
	}

	if deliveryDate != nil && cancellationDate != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"guide",
			fmt.Errorf("guide %s is both delivered and cancelled", number),
		)
	}

	g.basePrice = basePrice
	return g, nil
}

// Validate ensures the Guide was constructed through NewGuide or RestoreGuide.
func (g *Guide) Validate() error {
	if g == nil || !g.isConstructed {
		return ErrGuideIsNotConstructed
	}
	return nil
}

// IsEqual compares two guides by identifier.
func (g *Guide) IsEqual(other *Guide) bool {
	return other != nil && g.id.IsEqual(other.id)
}

// ID returns the internal identifier.
func (g *Guide) ID() kernel.UUID { return g.id }

// Number returns the immutable external guide number.
func (g *Guide) Number() kernel.GuideNumber { return g.number }

// BusinessID returns the owning business.
func (g *Guide) BusinessID() kernel.UUID { return g.businessID }

// OriginBranchID returns the branch the package ships from.
func (g *Guide) OriginBranchID() kernel.UUID { return g.originBranchID }

// CourierID returns the assigned courier, nil until assigned.
func (g *Guide) CourierID() *kernel.UUID { return g.courierID }

// CoordinatorID returns the coordinating user, nil until assigned.
func (g *Guide) CoordinatorID() *kernel.UUID { return g.coordinatorID }

// Recipient returns the destination contact.
func (g *Guide) Recipient() Recipient { return g.recipient }

// BasePrice returns the price the delivery was contracted at.
func (g *Guide) BasePrice() kernel.Money { return g.basePrice }

// Observations returns the free-form note on the guide.
func (g *Guide) Observations() string { return g.observations }

// Priority returns the guide's priority.
func (g *Guide) Priority() Priority { return g.priority }

// State returns the current lifecycle state.
func (g *Guide) State() State { return g.state }

// PreIncidentState returns the forward state held before the current incident;
// meaningful only while State() == Incidencia.
func (g *Guide) PreIncidentState() State { return g.preIncidentState }

// Version returns the optimistic-lock version the guide was loaded at.
func (g *Guide) Version() int64 { return g.version }

// CreatedAt returns the creation timestamp.
func (g *Guide) CreatedAt() time.Time { return g.createdAt }

// AssignmentDate returns when the guide was first assigned, nil before that.
// Reassignment preserves the original assignment date.
func (g *Guide) AssignmentDate() *time.Time { return g.assignmentDate }

// AssignmentAcceptedAt returns when the courier accepted the assignment.
func (g *Guide) AssignmentAcceptedAt() *time.Time { return g.assignmentAcceptedAt }

// PickupDate returns when the courier picked the package up.
func (g *Guide) PickupDate() *time.Time { return g.pickupDate }

// DeliveryDate returns when the package was delivered.
func (g *Guide) DeliveryDate() *time.Time { return g.deliveryDate }

// CancellationDate returns when the guide was cancelled or rejected.
func (g *Guide) CancellationDate() *time.Time { return g.cancellationDate }

// IsFinalized reports whether a terminal timestamp is set.
func (g *Guide) IsFinalized() bool {
	return g.deliveryDate != nil || g.cancellationDate != nil
}

// IsCancellable reports whether the cancellation engine may still terminate
// this guide. Exposed as a pure predicate so callers can validate before
// computing penalties.
func (g *Guide) IsCancellable() bool {
	return !g.state.IsFinal() && !g.IsFinalized()
}

// PullPendingHistory returns the history entries produced by mutations since
// the guide was loaded and clears the buffer. The repository persists them in
// the same transaction as the guide write.
func (g *Guide) PullPendingHistory() []HistoryEntry {
	entries := g.pendingHistory
	g.pendingHistory = nil
	return entries
}

// Assign sets the courier and coordinator on an unassigned guide, stamps the
// assignment date and moves the guide to Asignada.
//
// Business rules:
//   - only guides in Creada are assignable; anything later requires Reassign
//   - finalized guides fail with AlreadyFinalized
//
// The coordinator is recorded as the acting user in the history entry.
func (g *Guide) Assign(courierID, coordinatorID kernel.UUID, now time.Time) error {
	if err := errors.Join(courierID.Validate(), coordinatorID.Validate()); err != nil {
		return err
	}
	if g.IsFinalized() {
		return errs.NewAlreadyFinalizedError("guide", g.number.String())
	}
	if g.state != Creada {
		return errs.NewBusinessConstraintViolationErrorWithCause(
			"guide is not assignable",
			fmt.Errorf("state is %s", g.state),
		)
	}

	g.courierID = &courierID
	g.coordinatorID = &coordinatorID
	g.assignmentDate = &now
	g.state = Asignada

	return g.appendHistory(Asignada, &coordinatorID, "", now)
}

// Reassign replaces the courier on an active guide, recording the reason in
// the history. The original assignment date is preserved; the new courier must
// accept again, so the acceptance timestamp resets.
//
// Reassignment is forbidden once the guide is Entregada, Cancelada or
// Rechazada.
func (g *Guide) Reassign(newCourierID kernel.UUID, reason string, coordinatorID kernel.UUID, now time.Time) error {
	if err := errors.Join(newCourierID.Validate(), coordinatorID.Validate()); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("reassignment reason")
	}
	if g.state.IsFinal() || g.IsFinalized() {
		return errs.NewAlreadyFinalizedError("guide", g.number.String())
	}
	if g.courierID == nil {
		return errs.NewBusinessConstraintViolationError("guide has no courier to reassign")
	}

	g.courierID = &newCourierID
	g.coordinatorID = &coordinatorID
	g.assignmentAcceptedAt = nil

	return g.appendHistory(g.state, &coordinatorID, fmt.Sprintf("Reasignada: %s", reason), now)
}

// AcceptAssignment records the assigned courier's acceptance. Set exactly
// once; a second acceptance fails.
func (g *Guide) AcceptAssignment(courierID kernel.UUID, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if g.state != Asignada {
		return errs.NewBusinessConstraintViolationErrorWithCause(
			"assignment cannot be accepted",
			fmt.Errorf("state is %s", g.state),
		)
	}
	if g.courierID == nil || !g.courierID.IsEqual(courierID) {
		return errs.NewUnauthorizedError("courier", "accept an assignment that is not theirs")
	}
	if g.assignmentAcceptedAt != nil {
		return errs.NewBusinessConstraintViolationError("assignment already accepted")
	}

	g.assignmentAcceptedAt = &now
	return g.appendHistory(Asignada, &courierID, "Asignación aceptada por el mensajero", now)
}

// DeclineAssignment returns a freshly assigned guide to the coordinator's
// pending pool: the courier and assignment stamps are cleared and the guide
// goes back to Creada. Only the assigned courier may decline, and only while
// the guide sits in Asignada.
func (g *Guide) DeclineAssignment(courierID kernel.UUID, reason string, now time.Time) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if reason == "" {
		return errs.NewValueIsRequiredError("decline reason")
	}
	if g.state != Asignada {
		return errs.NewBusinessConstraintViolationErrorWithCause(
			"assignment cannot be declined",
			fmt.Errorf("state is %s", g.state),
		)
	}
	if g.courierID == nil || !g.courierID.IsEqual(courierID) {
		return errs.NewUnauthorizedError("courier", "decline an assignment that is not theirs")
	}

	g.courierID = nil
	g.coordinatorID = nil
	g.assignmentDate = nil
	g.assignmentAcceptedAt = nil
	g.state = Creada

	return g.appendHistory(Creada, &courierID, fmt.Sprintf("Asignación rechazada por el mensajero: %s", reason), now)
}

// UpdateState performs one lifecycle transition: capability check, legality
// check, set-once timestamp, history append. This is the single entry point
// for forward progression and for the exception transitions to Cancelada,
// Rechazada and Incidencia.
//
// Error kinds:
//   - Unauthorized: the actor lacks the capability for this transition
//   - AlreadyFinalized: a terminal timestamp is already set (terminal retries)
//   - InvalidStateTransition: target not reachable from the current state
//
// The optional location is recorded in the history observations.
func (g *Guide) UpdateState(
	target State,
	act actor.Actor,
	observations string,
	location *kernel.GeoPoint,
	now time.Time,
) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if err := target.Validate(); err != nil {
		return err
	}

	if err := g.authorizeTransition(act, target); err != nil {
		return err
	}

	// Retrying a terminal transition on a finalized guide is reported as
	// AlreadyFinalized, not as an illegal transition.
	if g.IsFinalized() {
		if target.IsFinal() {
			return errs.NewAlreadyFinalizedError("guide", g.number.String())
		}
		return errs.NewInvalidStateTransitionError(g.state.String(), target.String())
	}

	if target == Asignada {
		return errs.NewInvalidStateTransitionErrorWithCause(
			g.state.String(), target.String(),
			fmt.Errorf("assignment must go through Assign"),
		)
	}

	if err := g.state.ValidateTransition(target); err != nil {
		return err
	}

	if g.courierID == nil && target.Order() > Asignada.Order() {
		return errs.NewBusinessConstraintViolationError("guide has no courier assigned")
	}

	if err := g.applyTimestamp(target, now); err != nil {
		return err
	}

	if target == Incidencia {
		g.preIncidentState = g.state
	} else {
		g.preIncidentState = Unknown
	}
	g.state = target

	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
		if observations == "" {
			observations = fmt.Sprintf("Ubicación: %s", location)
		} else {
			observations = fmt.Sprintf("%s (ubicación: %s)", observations, location)
		}
	}

	return g.appendHistory(target, act.ID(), observations, now)
}

// ResumeFromIncident returns a guide in Incidencia to the forward state it
// held before the incident. Escalating an incident to cancellation goes
// through UpdateState with Cancelada instead.
func (g *Guide) ResumeFromIncident(act actor.Actor, observations string, now time.Time) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if g.state != Incidencia {
		return errs.NewInvalidStateTransitionErrorWithCause(
			g.state.String(), g.preIncidentState.String(),
			fmt.Errorf("guide has no open incident"),
		)
	}
	if !act.CanForceTransitions() && !g.isAssignedCourier(act) {
		return errs.NewUnauthorizedError(act.Role().String(), "resume this guide")
	}

	target := g.preIncidentState
	if err := target.Validate(); err != nil {
		return errs.NewInvalidStateTransitionErrorWithCause(
			g.state.String(), target.String(),
			fmt.Errorf("pre-incident state is unknown"),
		)
	}

	g.state = target
	g.preIncidentState = Unknown

	return g.appendHistory(target, act.ID(), observations, now)
}

// authorizeTransition verifies the actor's capability for transitioning this
// guide, independent of transition legality.
func (g *Guide) authorizeTransition(act actor.Actor, target State) error {
	switch act.Role() {
	case actor.RoleAdmin, actor.RoleCoordinator:
		return nil

	case actor.RoleCourier:
		if !g.isAssignedCourier(act) {
			return errs.NewUnauthorizedError("courier", "move a guide not assigned to them")
		}
		// Couriers progress the delivery and report incidents; cancellation
		// and rejection belong to coordinators and customers.
		if target == Cancelada || target == Rechazada {
			return errs.NewUnauthorizedError("courier", fmt.Sprintf("transition a guide to %s", target))
		}
		return nil

	case actor.RoleCustomer:
		if target != Rechazada {
			return errs.NewUnauthorizedError("customer", fmt.Sprintf("transition a guide to %s", target))
		}
		if !g.state.IsRejectable() {
			return errs.NewInvalidStateTransitionErrorWithCause(
				g.state.String(), target.String(),
				fmt.Errorf("rejection is only available while the delivery is underway"),
			)
		}
		return nil

	default:
		return errs.NewUnauthorizedError(act.Role().String(), "transition guides")
	}
}

func (g *Guide) isAssignedCourier(act actor.Actor) bool {
	return act.Role() == actor.RoleCourier &&
		g.courierID != nil && act.ID() != nil && g.courierID.IsEqual(*act.ID())
}

// applyTimestamp sets the lifecycle timestamp belonging to the target state.
// Each timestamp is set exactly once.
func (g *Guide) applyTimestamp(target State, now time.Time) error {
	switch target {
	case Recogida:
		if g.pickupDate != nil {
			return errs.NewAlreadyFinalizedErrorWithCause(
				"guide", g.number.String(), fmt.Errorf("pickup date already set"))
		}
		g.pickupDate = &now

	case Entregada:
		if g.deliveryDate != nil || g.cancellationDate != nil {
			return errs.NewAlreadyFinalizedError("guide", g.number.String())
		}
		g.deliveryDate = &now

	case Cancelada, Rechazada:
		if g.cancellationDate != nil || g.deliveryDate != nil {
			return errs.NewAlreadyFinalizedError("guide", g.number.String())
		}
		g.cancellationDate = &now

	default:
	}
	return nil
}

func (g *Guide) appendHistory(state State, userID *kernel.UUID, observations string, now time.Time) error {
	entry, err := NewHistoryEntry(g.id, state, userID, observations, now)
	if err != nil {
		return err
	}
	g.pendingHistory = append(g.pendingHistory, entry)
	return nil
}

func (g *Guide) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.id = id
	return nil
}

func (g *Guide) setNumber(number kernel.GuideNumber) error {
	if err := number.Validate(); err != nil {
		return err
	}
	g.number = number
	return nil
}

func (g *Guide) setBusinessID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.businessID = id
	return nil
}

func (g *Guide) setOriginBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	g.originBranchID = id
	return nil
}

func (g *Guide) setRecipient(recipient Recipient) error {
	if err := recipient.Validate(); err != nil {
		return err
	}
	g.recipient = recipient
	return nil
}

func (g *Guide) setPriority(priority Priority) error {
	if err := priority.Validate(); err != nil {
		return err
	}
	g.priority = priority
	return nil
}
