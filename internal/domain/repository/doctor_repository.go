package repository

import (
	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type DoctorRepository interface {
	Create(db *gorm.DB, doctor *entity.Doctor) error
	FindByID(db *gorm.DB, id uint) (*entity.Doctor, error)
	FindByUserID(db *gorm.DB, userID uint) (*entity.Doctor, error)
	FindApproved(db *gorm.DB, limit, offset int) ([]entity.Doctor, error)
	FindBySpecialization(db *gorm.DB, specialization string) ([]entity.Doctor, error)
	// Search matches the keyword against specialization, license
	// number and the linked user's first/last name.
	Search(db *gorm.DB, keyword string, limit, offset int) ([]entity.Doctor, error)
	Update(db *gorm.DB, doctor *entity.Doctor) error
}
