package guide

import (
	"fmt"
	"time"

	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/pkg/errs"
)

// EvidenceType classifies a proof-of-delivery artifact.
type EvidenceType int

const (
	// EvidencePhoto is a photograph taken at the delivery point.
	EvidencePhoto EvidenceType = iota + 1

	// EvidenceSignature is the recipient's captured signature.
	EvidenceSignature

	// EvidenceNote is a free-form text note.
	EvidenceNote
)

func getEvidenceTypeStrings() map[EvidenceType]string {
	return map[EvidenceType]string{
		EvidencePhoto:     "photo",
		EvidenceSignature: "signature",
		EvidenceNote:      "note",
	}
}

// ParseEvidenceType resolves an evidence type from transport input.
func ParseEvidenceType(name string) (EvidenceType, error) {
	for t, str := range getEvidenceTypeStrings() {
		if str == name {
			return t, nil
		}
	}
	return 0, errs.NewValueIsInvalidErrorWithCause(
		"evidenceType",
		fmt.Errorf("%q is not a known evidence type", name),
	)
}

// String returns the evidence type name.
func (t EvidenceType) String() string {
	if str, ok := getEvidenceTypeStrings()[t]; ok {
		return str
	}
	return "unknown"
}

// Validate checks the type is one of the defined values.
func (t EvidenceType) Validate() error {
	if _, ok := getEvidenceTypeStrings()[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"evidenceType",
			fmt.Errorf("%d is not a valid evidence type", t),
		)
	}
	return nil
}

// Evidence is a proof-of-delivery artifact attached to a guide by its assigned
// courier. Evidence rows are append-only per guide.
type Evidence struct {
	id         kernel.UUID
	guideID    kernel.UUID
	kind       EvidenceType
	fileRef    string
	notes      string
	uploadedBy kernel.UUID
	createdAt  time.Time
}

// NewEvidence creates an evidence row. fileRef is required except for notes.
func NewEvidence(
	guideID kernel.UUID,
	kind EvidenceType,
	fileRef, notes string,
	uploadedBy kernel.UUID,
	createdAt time.Time,
) (*Evidence, error) {
	if err := guideID.Validate(); err != nil {
		return nil, err
	}
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if err := uploadedBy.Validate(); err != nil {
		return nil, err
	}
	if kind != EvidenceNote && fileRef == "" {
		return nil, errs.NewValueIsRequiredError("evidence file reference")
	}
	if kind == EvidenceNote && notes == "" {
		return nil, errs.NewValueIsRequiredError("evidence notes")
	}

	return &Evidence{
		id:         kernel.NewUUID(),
		guideID:    guideID,
		kind:       kind,
		fileRef:    fileRef,
		notes:      notes,
		uploadedBy: uploadedBy,
		createdAt:  createdAt,
	}, nil
}

// RestoreEvidence reconstructs an evidence row from persistence.
func RestoreEvidence(
	id, guideID kernel.UUID,
	kind EvidenceType,
	fileRef, notes string,
	uploadedBy kernel.UUID,
	createdAt time.Time,
) (*Evidence, error) {
	e, err := NewEvidence(guideID, kind, fileRef, notes, uploadedBy, createdAt)
	if err != nil {
		return nil, err
	}
	if err = id.Validate(); err != nil {
		return nil, err
	}
	e.id = id
	return e, nil
}

// ID returns the evidence identifier.
func (e *Evidence) ID() kernel.UUID { return e.id }

// GuideID returns the guide the evidence belongs to.
func (e *Evidence) GuideID() kernel.UUID { return e.guideID }

// Kind returns the evidence type.
func (e *Evidence) Kind() EvidenceType { return e.kind }

// FileRef returns the stored artifact reference, empty for notes.
func (e *Evidence) FileRef() string { return e.fileRef }

// Notes returns the free-form note.
func (e *Evidence) Notes() string { return e.notes }

// UploadedBy returns the courier who attached the evidence.
func (e *Evidence) UploadedBy() kernel.UUID { return e.uploadedBy }

// CreatedAt returns when the evidence was attached.
func (e *Evidence) CreatedAt() time.Time { return e.createdAt }
