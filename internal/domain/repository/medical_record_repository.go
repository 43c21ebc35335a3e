package repository

import (
	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type MedicalRecordRepository interface {
	Create(db *gorm.DB, record *entity.MedicalRecord) error
	FindByUser(db *gorm.DB, userID uint) ([]entity.MedicalRecord, error)
	FindByDoctor(db *gorm.DB, doctorID uint) ([]entity.MedicalRecord, error)
	// Search matches the keyword against description, diagnosis and
	// treatment plan.
	Search(db *gorm.DB, keyword string) ([]entity.MedicalRecord, error)
}
