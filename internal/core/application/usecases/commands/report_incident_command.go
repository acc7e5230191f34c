package commands

import (
	"errors"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
	"tracking/internal/pkg/guard"
)

var ErrReportIncidentCommandIsNotConstructed = errors.New(
	"ReportIncidentCommand must be created via NewReportIncidentCommand constructor",
)

// ReportIncidentCommand represents a courier reporting an incident during an
// active delivery. The guide moves to Incidencia until resolved or escalated.
type ReportIncidentCommand struct { //nolint:recvcheck //using for validation
	guideID      kernel.UUID
	courierID    kernel.UUID
	incidentType string
	description  string
	location     *kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewReportIncidentCommand creates an incident report command. location is
// optional.
func NewReportIncidentCommand(
	guideID, courierID kernel.UUID,
	incidentType, description string,
	location *kernel.GeoPoint,
) (ReportIncidentCommand, error) {
	cmd := ReportIncidentCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(guideID.Validate(), courierID.Validate()); err != nil {
		return ReportIncidentCommand{}, err
	}
	if incidentType == "" {
		return ReportIncidentCommand{}, errs.NewValueIsRequiredError("incidentType")
	}
	if description == "" {
		return ReportIncidentCommand{}, errs.NewValueIsRequiredError("description")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return ReportIncidentCommand{}, err
		}
	}

	cmd.guideID = guideID
	cmd.courierID = courierID
	cmd.incidentType = incidentType
	cmd.description = description
	cmd.location = location
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReportIncidentCommand) Validate() error {
	return c.guard.Validate(ErrReportIncidentCommandIsNotConstructed)
}

// GuideID returns the affected guide.
func (c ReportIncidentCommand) GuideID() kernel.UUID { return c.guideID }

// CourierID returns the reporting courier.
func (c ReportIncidentCommand) CourierID() kernel.UUID { return c.courierID }

// IncidentType returns the incident category.
func (c ReportIncidentCommand) IncidentType() string { return c.incidentType }

// Description returns the incident description.
func (c ReportIncidentCommand) Description() string { return c.description }

// Location returns the optional geolocation of the incident.
func (c ReportIncidentCommand) Location() *kernel.GeoPoint { return c.location }
