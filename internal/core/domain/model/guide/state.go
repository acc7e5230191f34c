package guide

import (
	"fmt"

	"tracking/internal/pkg/errs"
)

// State represents the lifecycle state of a tracking guide.
// It implements a state machine with an ordered forward progression plus a
// small set of exception transitions, ensuring guides follow the delivery
// workflow.
//
// Forward progression (stateOrder):
//
//	Creada ──> Asignada ──> Recogida ──> EnRuta ──> EntregaProxima ──> Entregada (final)
//	                                        │
//	                                        └──────────────────────────┘
//	                               (EntregaProxima is optional)
//
// Exception transitions, reachable from any non-final state:
//
//	──> Cancelada (final)    business/coordinator cancellation
//	──> Rechazada (final)    customer rejection
//	──> Incidencia           incident reported; resolves back into the forward
//	                         flow or escalates to Cancelada
//
// Final states have no outgoing transitions.
type State int

const (
	// Unknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	Unknown State = iota

	// Creada is the initial state when a business creates a guide.
	// Guides in this state are waiting to be assigned to a courier.
	Creada

	// Asignada indicates a coordinator has assigned the guide to a courier.
	Asignada

	// Recogida indicates the courier picked the package up at the origin branch.
	Recogida

	// EnRuta indicates the package is in transit to the recipient.
	EnRuta

	// EntregaProxima indicates the courier is close to the delivery address.
	// This step is optional; EnRuta may transition directly to Entregada.
	EntregaProxima

	// Entregada indicates successful delivery. Final.
	Entregada

	// Cancelada indicates a business- or coordinator-initiated cancellation. Final.
	Cancelada

	// Rechazada indicates the recipient rejected the delivery. Final.
	Rechazada

	// Incidencia indicates an unresolved incident interrupted the delivery.
	// Not final: the guide resumes its previous state or escalates to Cancelada.
	Incidencia
)

// getStateStrings returns the display names for all states, including Unknown.
func getStateStrings() map[State]string {
	return map[State]string{
		Unknown:        "Unknown",
		Creada:         "Creada",
		Asignada:       "Asignada",
		Recogida:       "Recogida",
		EnRuta:         "En Ruta",
		EntregaProxima: "Entrega Proxima",
		Entregada:      "Entregada",
		Cancelada:      "Cancelada",
		Rechazada:      "Rechazada",
		Incidencia:     "Incidencia",
	}
}

// getValidStateStrings returns only the valid states, to support validation.
func getValidStateStrings() map[State]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[State]string{
		Creada:         "Creada",
		Asignada:       "Asignada",
		Recogida:       "Recogida",
		EnRuta:         "En Ruta",
		EntregaProxima: "Entrega Proxima",
		Entregada:      "Entregada",
		Cancelada:      "Cancelada",
		Rechazada:      "Rechazada",
		Incidencia:     "Incidencia",
	}
}

// ParseState resolves a display name back to a State. Used when the target
// state arrives as text on the transition endpoint.
func ParseState(name string) (State, error) {
	for state, str := range getValidStateStrings() {
		if str == name {
			return state, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a known state", name),
	)
}

// Validate checks that the State value is one of the catalog states.
func (s State) Validate() error {
	if _, ok := getValidStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("state", fmt.Errorf("%d is not a valid state", s))
	}
	return nil
}

// String returns the human-readable name of the state.
// Returns "Unknown" for invalid values. Implements fmt.Stringer.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Order returns the position of the state in the forward progression.
// Exception states (Cancelada, Rechazada, Incidencia) and Unknown return 0.
func (s State) Order() int {
	switch s {
	case Creada:
		return 1
	case Asignada:
		return 2
	case Recogida:
		return 3
	case EnRuta:
		return 4
	case EntregaProxima:
		return 5
	case Entregada:
		return 6
	default:
		return 0
	}
}

// IsFinal reports whether the state is terminal.
// Final states have no outgoing transitions.
func (s State) IsFinal() bool {
	return s == Entregada || s == Cancelada || s == Rechazada
}

// IsRejectable reports whether a customer rejection may be triggered from this
// state. Rejection is only reachable while the delivery is underway.
func (s State) IsRejectable() bool {
	switch s {
	case Asignada, Recogida, EnRuta, EntregaProxima:
		return true
	default:
		return false
	}
}

// CanTransitionTo reports whether target is a legal transition from s.
//
// Legal transitions:
//   - the next state in the forward order (EntregaProxima may be skipped:
//     EnRuta -> Entregada is allowed)
//   - Cancelada, Rechazada or Incidencia from any non-final state
//   - Incidencia does not advance forward directly; resuming is handled by the
//     aggregate, which knows the state held before the incident
func (s State) CanTransitionTo(target State) bool {
	if s.IsFinal() || s == Unknown {
		return false
	}
	if target == s {
		return false
	}

	switch target {
	case Cancelada, Rechazada:
		return true
	case Incidencia:
		return s != Incidencia
	default:
	}

	if s == Incidencia {
		// Forward resumption requires the pre-incident state; only the
		// aggregate can validate it.
		return false
	}

	if target.Order() == s.Order()+1 {
		return true
	}

	// EntregaProxima is optional.
	return s == EnRuta && target == Entregada
}

// ValidateTransition returns an InvalidStateTransitionError when target is not
// reachable from s.
func (s State) ValidateTransition(target State) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if s.IsFinal() {
		return errs.NewInvalidStateTransitionErrorWithCause(
			s.String(), target.String(),
			fmt.Errorf("%s is a final state", s.String()),
		)
	}
	if !s.CanTransitionTo(target) {
		return errs.NewInvalidStateTransitionError(s.String(), target.String())
	}
	return nil
}
