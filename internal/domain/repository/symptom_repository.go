package repository

import (
	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type SymptomRepository interface {
	Create(db *gorm.DB, symptom *entity.Symptom) error
	FindByUserAppointmentAndName(db *gorm.DB, userID, appointmentID uint, name string) (*entity.Symptom, error)
	FindByAppointment(db *gorm.DB, appointmentID uint) ([]entity.Symptom, error)
	FindBySeverity(db *gorm.DB, severity entity.SeverityLevel) ([]entity.Symptom, error)
	Update(db *gorm.DB, symptom *entity.Symptom) error
}
