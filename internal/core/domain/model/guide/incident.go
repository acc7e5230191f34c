package guide

import (
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// Incident is an exceptional event reported by the courier during an active
// delivery: wrong address, vehicle breakdown, recipient absent. An incident
// does not terminate the guide; it either resolves back into the forward flow
// or a coordinator escalates it to a cancellation.
type Incident struct {
	id           kernel.UUID
	guideID      kernel.UUID
	incidentType string
	description  string
	location     *kernel.GeoPoint
	reportedBy   kernel.UUID
	reportedAt   time.Time

	resolved   bool
	resolvedBy *kernel.UUID
	resolution string
	resolvedAt *time.Time
}

// NewIncident creates an open incident report.
func NewIncident(
	guideID kernel.UUID,
	incidentType, description string,
	location *kernel.GeoPoint,
	reportedBy kernel.UUID,
	reportedAt time.Time,
) (*Incident, error) {
	if err := guideID.Validate(); err != nil {
		return nil, err
	}
	if err := reportedBy.Validate(); err != nil {
		return nil, err
	}
	if incidentType == "" {
		return nil, errs.NewValueIsRequiredError("incident type")
	}
	if description == "" {
		return nil, errs.NewValueIsRequiredError("incident description")
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
	}

	return &Incident{
		id:           kernel.NewUUID(),
		guideID:      guideID,
		incidentType: incidentType,
		description:  description,
		location:     location,
		reportedBy:   reportedBy,
		reportedAt:   reportedAt,
	}, nil
}

// RestoreIncident reconstructs an incident from persistence.
func RestoreIncident(
	id, guideID kernel.UUID,
	incidentType, description string,
	location *kernel.GeoPoint,
	reportedBy kernel.UUID,
	reportedAt time.Time,
	resolved bool,
	resolvedBy *kernel.UUID,
	resolution string,
	resolvedAt *time.Time,
) (*Incident, error) {
	inc, err := NewIncident(guideID, incidentType, description, location, reportedBy, reportedAt)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	inc.id = id
	inc.resolved = resolved
	inc.resolvedBy = resolvedBy
	inc.resolution = resolution
	inc.resolvedAt = resolvedAt
	return inc, nil
}

// Resolve closes the incident. Resolving twice fails.
func (i *Incident) Resolve(resolvedBy kernel.UUID, resolution string, now time.Time) error {
	if err := resolvedBy.Validate(); err != nil {
		return err
	}
	if resolution == "" {
		return errs.NewValueIsRequiredError("resolution")
	}
	if i.resolved {
		return errs.NewBusinessConstraintViolationError("incident already resolved")
	}

	i.resolved = true
	i.resolvedBy = &resolvedBy
	i.resolution = resolution
	i.resolvedAt = &now
	return nil
}

// ID returns the incident identifier.
func (i *Incident) ID() kernel.UUID { return i.id }

// GuideID returns the affected guide.
func (i *Incident) GuideID() kernel.UUID { return i.guideID }

// Type returns the incident category.
func (i *Incident) Type() string { return i.incidentType }

// Description returns the courier's description.
func (i *Incident) Description() string { return i.description }

// Location returns where the incident was reported, nil if not provided.
func (i *Incident) Location() *kernel.GeoPoint { return i.location }

// ReportedBy returns the reporting courier.
func (i *Incident) ReportedBy() kernel.UUID { return i.reportedBy }

// ReportedAt returns when the incident was reported.
func (i *Incident) ReportedAt() time.Time { return i.reportedAt }

// IsResolved reports whether the incident is closed.
func (i *Incident) IsResolved() bool { return i.resolved }

// ResolvedBy returns who closed the incident, nil while open.
func (i *Incident) ResolvedBy() *kernel.UUID { return i.resolvedBy }

// Resolution returns the closing note.
func (i *Incident) Resolution() string { return i.resolution }

// ResolvedAt returns when the incident closed, nil while open.
func (i *Incident) ResolvedAt() *time.Time { return i.resolvedAt }
