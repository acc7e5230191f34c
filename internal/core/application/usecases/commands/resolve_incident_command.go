package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrResolveIncidentCommandIsNotConstructed = errors.New(
	"ResolveIncidentCommand must be created via NewResolveIncidentCommand constructor",
)

// ResolveIncidentCommand represents a coordinator (or the assigned courier)
// closing an open incident, returning the guide to the forward flow.
type ResolveIncidentCommand struct { //nolint:recvcheck //using for validation
	incidentID kernel.UUID
	resolverID kernel.UUID
	resolution string

	guard guard.ConstructorGuard
}

// NewResolveIncidentCommand creates an incident resolution command.
func NewResolveIncidentCommand(incidentID, resolverID kernel.UUID, resolution string) (ResolveIncidentCommand, error) {
	cmd := ResolveIncidentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(incidentID.Validate(), resolverID.Validate()); err != nil {
		return ResolveIncidentCommand{}, err
	}
	if resolution == "" {
		return ResolveIncidentCommand{}, errs.NewValueIsRequiredError("resolution")
	}

	cmd.incidentID = incidentID
	cmd.resolverID = resolverID
	cmd.resolution = resolution
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveIncidentCommand) Validate() error {
	return c.guard.Validate(ErrResolveIncidentCommandIsNotConstructed)
}

// IncidentID returns the incident to resolve.
func (c ResolveIncidentCommand) IncidentID() kernel.UUID { return c.incidentID }

// ResolverID returns the resolving user.
func (c ResolveIncidentCommand) ResolverID() kernel.UUID { return c.resolverID }

// Resolution returns the resolution note.
func (c ResolveIncidentCommand) Resolution() string { return c.resolution }
