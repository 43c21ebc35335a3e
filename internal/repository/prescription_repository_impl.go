package repository

import (
	"errors"
	"time"

	"telemed-scheduler/internal/domain/entity"
	domainRepo "telemed-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type prescriptionRepository struct{}

func NewPrescriptionRepository() domainRepo.PrescriptionRepository {
	return &prescriptionRepository{}
}

func (r *prescriptionRepository) Create(db *gorm.DB, prescription *entity.Prescription) error {
	return db.Create(prescription).Error
}

func (r *prescriptionRepository) FindByID(db *gorm.DB, id uint) (*entity.Prescription, error) {
	var prescription entity.Prescription
	err := db.Where("id = ?", id).First(&prescription).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &prescription, nil
}

func (r *prescriptionRepository) FindByDoctor(db *gorm.DB, doctorID uint, status *entity.PrescriptionStatus) ([]entity.Prescription, error) {
	query := db.Where("doctor_id = ?", doctorID).Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var prescriptions []entity.Prescription
	err := query.Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) FindByMedication(db *gorm.DB, doctorID uint, medication string) ([]entity.Prescription, error) {
	var prescriptions []entity.Prescription
	err := db.Where("doctor_id = ? AND medication_name = ?", doctorID, medication).
		Find(&prescriptions).Error
	if err != nil {
		return nil, err
	}
	return prescriptions, nil
}

func (r *prescriptionRepository) UpdateStatus(db *gorm.DB, id uint, status entity.PrescriptionStatus) error {
	return db.Model(&entity.Prescription{}).Where("id = ?", id).Update("status", status).Error
}

// MarkExpired sweeps ACTIVE prescriptions past their expiry date in a
// single transaction: select the candidates, flip them to EXPIRED,
// return the flipped set. A second run with no new expiries finds no
// candidates and returns an empty slice.
func (r *prescriptionRepository) MarkExpired(db *gorm.DB, now time.Time) ([]entity.Prescription, error) {
	var expired []entity.Prescription

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("status = ? AND expiry_date < ?", entity.PrescriptionStatusActive, now).
			Find(&expired).Error; err != nil {
			return err
		}
		if len(expired) == 0 {
			return nil
		}

		ids := make([]uint, len(expired))
		for i := range expired {
			ids[i] = expired[i].ID
		}

		if err := tx.Model(&entity.Prescription{}).
			Where("id IN ? AND status = ?", ids, entity.PrescriptionStatusActive).
			Update("status", entity.PrescriptionStatusExpired).Error; err != nil {
			return err
		}

		for i := range expired {
			expired[i].Status = entity.PrescriptionStatusExpired
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return expired, nil
}
