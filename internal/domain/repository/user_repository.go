package repository

import (
	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(db *gorm.DB, user *entity.User) error
	FindByID(db *gorm.DB, id uint) (*entity.User, error)
	FindByEmail(db *gorm.DB, email string) (*entity.User, error)
	FindByUsername(db *gorm.DB, username string) (*entity.User, error)
	FindAll(db *gorm.DB, limit, offset int) ([]entity.User, error)
	Update(db *gorm.DB, user *entity.User) error
	UpdateRole(db *gorm.DB, id uint, role entity.UserRole) error
	Delete(db *gorm.DB, id uint) error
}
