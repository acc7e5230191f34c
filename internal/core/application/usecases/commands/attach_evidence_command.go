package commands

import (
	"errors"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/guard"
)

var ErrAttachEvidenceCommandIsNotConstructed = errors.New(
	"AttachEvidenceCommand must be created via NewAttachEvidenceCommand constructor",
)

// AttachEvidenceCommand represents the assigned courier attaching a
// proof-of-delivery artifact to a guide.
type AttachEvidenceCommand struct { //nolint:recvcheck //using for validation
	guideID   kernel.UUID
	courierID kernel.UUID
	kind      guide.EvidenceType
	fileRef   string
	notes     string

	guard guard.ConstructorGuard
}

// NewAttachEvidenceCommand creates an evidence attachment command.
func NewAttachEvidenceCommand(
	guideID, courierID kernel.UUID,
	kind guide.EvidenceType,
	fileRef, notes string,
) (AttachEvidenceCommand, error) {
	cmd := AttachEvidenceCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		guideID.Validate(),
		courierID.Validate(),
		kind.Validate(),
	); err != nil {
		return AttachEvidenceCommand{}, err
	}

	cmd.guideID = guideID
	cmd.courierID = courierID
	cmd.kind = kind
	cmd.fileRef = fileRef
	cmd.notes = notes
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AttachEvidenceCommand) Validate() error {
	return c.guard.Validate(ErrAttachEvidenceCommandIsNotConstructed)
}

// GuideID returns the guide the evidence belongs to.
func (c AttachEvidenceCommand) GuideID() kernel.UUID { return c.guideID }

// CourierID returns the uploading courier.
func (c AttachEvidenceCommand) CourierID() kernel.UUID { return c.courierID }

// Kind returns the evidence type.
func (c AttachEvidenceCommand) Kind() guide.EvidenceType { return c.kind }

// FileRef returns the stored artifact reference.
func (c AttachEvidenceCommand) FileRef() string { return c.fileRef }

// Notes returns the free-form note on the evidence.
func (c AttachEvidenceCommand) Notes() string { return c.notes }
