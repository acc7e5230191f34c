// Package guiderepo provides data transfer objects and mapping functions for
// guide persistence. This package implements the repository pattern for the
// guide aggregate and its satellite rows: state history, incidents and
// delivery evidence.
package guiderepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tracking/internal/core/domain/model/guide"
	"tracking/internal/core/domain/model/kernel"
)

// GuideDTO represents the database structure for persisting guide aggregates.
// The row carries the optimistic-lock version; every update is guarded by it.
type GuideDTO struct {
	ID                   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	Number               string          `gorm:"type:varchar(12);uniqueIndex"`
	BusinessID           uuid.UUID       `gorm:"type:uuid;index"`
	OriginBranchID       uuid.UUID       `gorm:"type:uuid"`
	CourierID            *uuid.UUID      `gorm:"type:uuid;index"`
	CoordinatorID        *uuid.UUID      `gorm:"type:uuid"`
	Recipient            RecipientDTO    `gorm:"embedded;embeddedPrefix:recipient_"`
	BasePrice            decimal.Decimal `gorm:"type:numeric(12,2)"`
	Observations         string
	Priority             int
	State                int `gorm:"index"`
	PreIncidentState     int
	CreatedAt            time.Time
	AssignmentDate       *time.Time
	AssignmentAcceptedAt *time.Time
	PickupDate           *time.Time
	DeliveryDate         *time.Time `gorm:"index"`
	CancellationDate     *time.Time
	Version              int64
}

// TableName specifies the database table name for guide entities.
func (GuideDTO) TableName() string {
	return "guides"
}

// RecipientDTO represents the embedded recipient columns within the guide
// table.
type RecipientDTO struct {
	Name    string
	Address string
	City    string
	State   string
}

// HistoryDTO represents one immutable state-history row.
type HistoryDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	GuideID      uuid.UUID  `gorm:"type:uuid;index"`
	State        int
	UserID       *uuid.UUID `gorm:"type:uuid"`
	Observations string
	ChangedAt    time.Time
}

// TableName specifies the database table name for history rows.
func (HistoryDTO) TableName() string {
	return "guide_history"
}

// IncidentDTO represents a reported delivery incident.
type IncidentDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuideID      uuid.UUID `gorm:"type:uuid;index"`
	IncidentType string
	Description  string
	Latitude     *float64
	Longitude    *float64
	ReportedBy   uuid.UUID `gorm:"type:uuid"`
	ReportedAt   time.Time
	Resolved     bool
	ResolvedBy   *uuid.UUID `gorm:"type:uuid"`
	Resolution   string
	ResolvedAt   *time.Time
}

// TableName specifies the database table name for incidents.
func (IncidentDTO) TableName() string {
	return "incidents"
}

// EvidenceDTO represents a proof-of-delivery artifact reference.
type EvidenceDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	GuideID    uuid.UUID `gorm:"type:uuid;index"`
	Kind       int
	FileRef    string
	Notes      string
	UploadedBy uuid.UUID `gorm:"type:uuid"`
	CreatedAt  time.Time
}

// TableName specifies the database table name for evidence rows.
func (EvidenceDTO) TableName() string {
	return "evidences"
}

// SequenceDTO backs the per-year guide-number sequence.
type SequenceDTO struct {
	Year      int `gorm:"primaryKey"`
	LastValue int64
}

// TableName specifies the database table name for sequences.
func (SequenceDTO) TableName() string {
	return "guide_sequences"
}

func fromDomain(aggregate *guide.Guide) GuideDTO {
	return GuideDTO{
		ID:             aggregate.ID().Bytes(),
		Number:         aggregate.Number().String(),
		BusinessID:     aggregate.BusinessID().Bytes(),
		OriginBranchID: aggregate.OriginBranchID().Bytes(),
		CourierID:      optionalUUID(aggregate.CourierID()),
		CoordinatorID:  optionalUUID(aggregate.CoordinatorID()),
		Recipient: RecipientDTO{
			Name:    aggregate.Recipient().Name(),
			Address: aggregate.Recipient().Address(),
			City:    aggregate.Recipient().City(),
			State:   aggregate.Recipient().State(),
		},
		BasePrice:            aggregate.BasePrice().Amount(),
		Observations:         aggregate.Observations(),
		Priority:             int(aggregate.Priority()),
		State:                int(aggregate.State()),
		PreIncidentState:     int(aggregate.PreIncidentState()),
		CreatedAt:            aggregate.CreatedAt(),
		AssignmentDate:       aggregate.AssignmentDate(),
		AssignmentAcceptedAt: aggregate.AssignmentAcceptedAt(),
		PickupDate:           aggregate.PickupDate(),
		DeliveryDate:         aggregate.DeliveryDate(),
		CancellationDate:     aggregate.CancellationDate(),
		Version:              aggregate.Version(),
	}
}

func toDomain(dto GuideDTO) (*guide.Guide, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	number, err := kernel.GuideNumberFromString(dto.Number)
	if err != nil {
		return nil, err
	}
	businessID, err := kernel.UUIDFromBytes(dto.BusinessID[:])
	if err != nil {
		return nil, err
	}
	originBranchID, err := kernel.UUIDFromBytes(dto.OriginBranchID[:])
	if err != nil {
		return nil, err
	}
	courierID, err := domainUUID(dto.CourierID)
	if err != nil {
		return nil, err
	}
	coordinatorID, err := domainUUID(dto.CoordinatorID)
	if err != nil {
		return nil, err
	}
	recipient, err := guide.NewRecipient(
		dto.Recipient.Name, dto.Recipient.Address, dto.Recipient.City, dto.Recipient.State,
	)
	if err != nil {
		return nil, err
	}
	basePrice, err := kernel.NewMoney(dto.BasePrice)
	if err != nil {
		return nil, err
	}

	return guide.RestoreGuide(
		id, number, businessID, originBranchID, courierID, coordinatorID,
		recipient, basePrice, dto.Observations, guide.Priority(dto.Priority),
		guide.State(dto.State), guide.State(dto.PreIncidentState),
		dto.CreatedAt,
		dto.AssignmentDate, dto.AssignmentAcceptedAt, dto.PickupDate,
		dto.DeliveryDate, dto.CancellationDate,
		dto.Version,
	)
}

func historyFromDomain(entry guide.HistoryEntry) HistoryDTO {
	return HistoryDTO{
		ID:           entry.ID().Bytes(),
		GuideID:      entry.GuideID().Bytes(),
		State:        int(entry.State()),
		UserID:       optionalUUID(entry.UserID()),
		Observations: entry.Observations(),
		ChangedAt:    entry.ChangedAt(),
	}
}

func historyToDomain(dto HistoryDTO) (guide.HistoryEntry, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return guide.HistoryEntry{}, err
	}
	guideID, err := kernel.UUIDFromBytes(dto.GuideID[:])
	if err != nil {
		return guide.HistoryEntry{}, err
	}
	userID, err := domainUUID(dto.UserID)
	if err != nil {
		return guide.HistoryEntry{}, err
	}

	return guide.RestoreHistoryEntry(
		id, guideID, guide.State(dto.State), userID, dto.Observations, dto.ChangedAt,
	)
}

func incidentFromDomain(incident *guide.Incident) IncidentDTO {
	dto := IncidentDTO{
		ID:           incident.ID().Bytes(),
		GuideID:      incident.GuideID().Bytes(),
		IncidentType: incident.Type(),
		Description:  incident.Description(),
		ReportedBy:   incident.ReportedBy().Bytes(),
		ReportedAt:   incident.ReportedAt(),
		Resolved:     incident.IsResolved(),
		ResolvedBy:   optionalUUID(incident.ResolvedBy()),
		Resolution:   incident.Resolution(),
		ResolvedAt:   incident.ResolvedAt(),
	}
	if location := incident.Location(); location != nil {
		latitude := location.Latitude()
		longitude := location.Longitude()
		dto.Latitude = &latitude
		dto.Longitude = &longitude
	}
	return dto
}

func incidentToDomain(dto IncidentDTO) (*guide.Incident, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	guideID, err := kernel.UUIDFromBytes(dto.GuideID[:])
	if err != nil {
		return nil, err
	}
	reportedBy, err := kernel.UUIDFromBytes(dto.ReportedBy[:])
	if err != nil {
		return nil, err
	}
	resolvedBy, err := domainUUID(dto.ResolvedBy)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, pointErr := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &point
	}

	return guide.RestoreIncident(
		id, guideID, dto.IncidentType, dto.Description, location,
		reportedBy, dto.ReportedAt,
		dto.Resolved, resolvedBy, dto.Resolution, dto.ResolvedAt,
	)
}

func evidenceFromDomain(evidence *guide.Evidence) EvidenceDTO {
	return EvidenceDTO{
		ID:         evidence.ID().Bytes(),
		GuideID:    evidence.GuideID().Bytes(),
		Kind:       int(evidence.Kind()),
		FileRef:    evidence.FileRef(),
		Notes:      evidence.Notes(),
		UploadedBy: evidence.UploadedBy().Bytes(),
		CreatedAt:  evidence.CreatedAt(),
	}
}

func optionalUUID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func domainUUID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	parsed, err := kernel.UUIDFromBytes((*id)[:])
	if err != nil {
		return nil, err
	}
	return &parsed, nil
}
