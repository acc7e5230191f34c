package postgres

import (
	"gorm.io/gorm"

	"tracking/internal/adapters/out/postgres/businessrepo"
	"tracking/internal/adapters/out/postgres/cancellationrepo"
	"tracking/internal/adapters/out/postgres/configrepo"
	"tracking/internal/adapters/out/postgres/courierrepo"
	"tracking/internal/adapters/out/postgres/discountrepo"
	"tracking/internal/adapters/out/postgres/guiderepo"
)

// Migrate creates or updates the database schema for every persisted model.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&guiderepo.GuideDTO{},
		&guiderepo.HistoryDTO{},
		&guiderepo.IncidentDTO{},
		&guiderepo.EvidenceDTO{},
		&guiderepo.SequenceDTO{},
		&courierrepo.CourierDTO{},
		&businessrepo.BusinessDTO{},
		&cancellationrepo.CancellationDTO{},
		&discountrepo.LevelDTO{},
		&discountrepo.MonthlyDiscountDTO{},
		&configrepo.ConfigDTO{},
	)
}
