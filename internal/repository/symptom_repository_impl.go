package repository

import (
	"errors"

	"telemed-scheduler/internal/domain/entity"
	domainRepo "telemed-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type symptomRepository struct{}

func NewSymptomRepository() domainRepo.SymptomRepository {
	return &symptomRepository{}
}

func (r *symptomRepository) Create(db *gorm.DB, symptom *entity.Symptom) error {
	return db.Create(symptom).Error
}

func (r *symptomRepository) FindByUserAppointmentAndName(db *gorm.DB, userID, appointmentID uint, name string) (*entity.Symptom, error) {
	var symptom entity.Symptom
	err := db.Where("user_id = ? AND appointment_id = ? AND symptom_name = ?", userID, appointmentID, name).
		First(&symptom).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &symptom, nil
}

func (r *symptomRepository) FindByAppointment(db *gorm.DB, appointmentID uint) ([]entity.Symptom, error) {
	var symptoms []entity.Symptom
	err := db.Where("appointment_id = ?", appointmentID).Order("created_at ASC").Find(&symptoms).Error
	if err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (r *symptomRepository) FindBySeverity(db *gorm.DB, severity entity.SeverityLevel) ([]entity.Symptom, error) {
	var symptoms []entity.Symptom
	err := db.Where("severity_level = ?", severity).Find(&symptoms).Error
	if err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (r *symptomRepository) Update(db *gorm.DB, symptom *entity.Symptom) error {
	return db.Save(symptom).Error
}
