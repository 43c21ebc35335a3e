package repository

import (
	"telemed-scheduler/internal/domain/entity"
	domainRepo "telemed-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type medicalRecordRepository struct{}

func NewMedicalRecordRepository() domainRepo.MedicalRecordRepository {
	return &medicalRecordRepository{}
}

func (r *medicalRecordRepository) Create(db *gorm.DB, record *entity.MedicalRecord) error {
	return db.Create(record).Error
}

func (r *medicalRecordRepository) FindByUser(db *gorm.DB, userID uint) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Where("user_id = ?", userID).Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) FindByDoctor(db *gorm.DB, doctorID uint) ([]entity.MedicalRecord, error) {
	var records []entity.MedicalRecord
	err := db.Where("doctor_id = ?", doctorID).Order("record_date DESC").Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (r *medicalRecordRepository) Search(db *gorm.DB, keyword string) ([]entity.MedicalRecord, error) {
	pattern := "%" + keyword + "%"
	var records []entity.MedicalRecord
	err := db.Where("description ILIKE ? OR diagnosis ILIKE ? OR treatment_plan ILIKE ?",
		pattern, pattern, pattern).
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
