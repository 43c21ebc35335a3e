package repository

import (
	"time"

	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type PrescriptionRepository interface {
	Create(db *gorm.DB, prescription *entity.Prescription) error
	FindByID(db *gorm.DB, id uint) (*entity.Prescription, error)
	FindByDoctor(db *gorm.DB, doctorID uint, status *entity.PrescriptionStatus) ([]entity.Prescription, error)
	FindByMedication(db *gorm.DB, doctorID uint, medication string) ([]entity.Prescription, error)
	UpdateStatus(db *gorm.DB, id uint, status entity.PrescriptionStatus) error
	// MarkExpired transitions every ACTIVE prescription whose expiry
	// date is before now to EXPIRED and returns the updated rows.
	// Calling it again without new expiries returns an empty slice.
	MarkExpired(db *gorm.DB, now time.Time) ([]entity.Prescription, error)
}
