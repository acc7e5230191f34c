// Package actor identifies who is performing an operation on a guide.
// The acting identity is always passed explicitly into core operations;
// there is no ambient security context.
package actor

import (
	"fmt"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// Role scopes the capabilities of an acting user.
type Role int

const (
	// RoleUnknown represents an invalid or undefined role.
	RoleUnknown Role = iota

	// RoleAdmin may perform any operation on any guide.
	RoleAdmin

	// RoleCoordinator assigns, reassigns and cancels guides under their branch.
	RoleCoordinator

	// RoleCourier progresses guides currently assigned to them and reports
	// incidents and evidence.
	RoleCourier

	// RoleBusiness creates guides and requests cancellations through a
	// coordinator.
	RoleBusiness

	// RoleCustomer is the unauthenticated public actor: tracking lookup and
	// rejection only.
	RoleCustomer
)

func getRoleStrings() map[Role]string {
	return map[Role]string{
		RoleUnknown:     "unknown",
		RoleAdmin:       "admin",
		RoleCoordinator: "coordinator",
		RoleCourier:     "courier",
		RoleBusiness:    "business",
		RoleCustomer:    "customer",
	}
}

// ParseRole resolves a role name from transport input.
func ParseRole(name string) (Role, error) {
	for role, str := range getRoleStrings() {
		if role != RoleUnknown && str == name {
			return role, nil
		}
	}
	return RoleUnknown, errs.NewValueIsInvalidErrorWithCause(
		"role",
		fmt.Errorf("%q is not a known role", name),
	)
}

// String returns the role name. Implements fmt.Stringer.
func (r Role) String() string {
	if str, ok := getRoleStrings()[r]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the role is one of the defined roles.
func (r Role) Validate() error {
	if _, ok := getRoleStrings()[r]; !ok || r == RoleUnknown {
		return errs.NewValueIsInvalidErrorWithCause("role", fmt.Errorf("%d is not a valid role", r))
	}
	return nil
}

// Actor is the acting identity of a core operation. ID is nil for the public
// customer actor; every authenticated role carries a user ID.
type Actor struct {
	id   *kernel.UUID
	role Role
}

// NewActor creates an authenticated actor.
func NewActor(id kernel.UUID, role Role) (Actor, error) {
	if err := id.Validate(); err != nil {
		return Actor{}, err
	}
	if err := role.Validate(); err != nil {
		return Actor{}, err
	}
	if role == RoleCustomer {
		return Actor{}, errs.NewValueIsInvalidErrorWithCause(
			"role",
			fmt.Errorf("customer actor carries no identity, use NewCustomerActor"),
		)
	}
	return Actor{id: &id, role: role}, nil
}

// NewCustomerActor creates the anonymous public actor.
func NewCustomerActor() Actor {
	return Actor{role: RoleCustomer}
}

// ID returns the acting user's ID, nil for the public actor.
func (a Actor) ID() *kernel.UUID {
	return a.id
}

// Role returns the actor's role.
func (a Actor) Role() Role {
	return a.role
}

// Is reports whether the actor holds the given role.
func (a Actor) Is(role Role) bool {
	return a.role == role
}

// CanForceTransitions reports whether the actor may transition guides they are
// not personally assigned to. Coordinators and admins qualify.
func (a Actor) CanForceTransitions() bool {
	return a.role == RoleAdmin || a.role == RoleCoordinator
}

// Validate checks that the actor was built through a constructor.
func (a Actor) Validate() error {
	if a.role == RoleUnknown {
		return errs.NewValueIsRequiredError("Actor must be created via NewActor or NewCustomerActor")
	}
	if a.role != RoleCustomer && a.id == nil {
		return errs.NewValueIsRequiredError("actor id")
	}
	return nil
}
