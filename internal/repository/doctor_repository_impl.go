package repository

import (
	"errors"

	"telemed-scheduler/internal/domain/entity"
	domainRepo "telemed-scheduler/internal/domain/repository"

	"gorm.io/gorm"
)

type doctorRepository struct{}

func NewDoctorRepository() domainRepo.DoctorRepository {
	return &doctorRepository{}
}

func (r *doctorRepository) Create(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Create(doctor).Error
}

func (r *doctorRepository) FindByID(db *gorm.DB, id uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("id = ?", id).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindByUserID(db *gorm.DB, userID uint) (*entity.Doctor, error) {
	var doctor entity.Doctor
	err := db.Preload("User").Where("user_id = ?", userID).First(&doctor).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &doctor, nil
}

func (r *doctorRepository) FindApproved(db *gorm.DB, limit, offset int) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	query := db.Preload("User").
		Where("status = ?", entity.DoctorStatusApproved).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) FindBySpecialization(db *gorm.DB, specialization string) ([]entity.Doctor, error) {
	var doctors []entity.Doctor
	err := db.Preload("User").
		Where("specialization = ? AND status = ?", specialization, entity.DoctorStatusApproved).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

// Search lists its searchable fields explicitly instead of reflecting
// over columns: specialization, license number, and the linked user's
// first and last name.
func (r *doctorRepository) Search(db *gorm.DB, keyword string, limit, offset int) ([]entity.Doctor, error) {
	pattern := "%" + keyword + "%"
	var doctors []entity.Doctor
	query := db.Preload("User").
		Joins("JOIN users ON users.id = doctors.user_id").
		Where("doctors.status = ?", entity.DoctorStatusApproved).
		Where("doctors.specialization ILIKE ? OR doctors.license_number ILIKE ? OR users.first_name ILIKE ? OR users.last_name ILIKE ?",
			pattern, pattern, pattern, pattern)
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	err := query.Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *doctorRepository) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return db.Save(doctor).Error
}
