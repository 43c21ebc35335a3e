package repository

import (
	"time"

	"telemed-scheduler/internal/domain/entity"

	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uint) (*entity.Appointment, error)
	// FindDoctorConflict returns the first non-cancelled appointment
	// occupying the given UTC slot for the doctor, or nil.
	FindDoctorConflict(db *gorm.DB, doctorID uint, date time.Time, timeOfDay string) (*entity.Appointment, error)
	// FindUserConflict is the per-user counterpart of FindDoctorConflict.
	FindUserConflict(db *gorm.DB, userID uint, date time.Time, timeOfDay string) (*entity.Appointment, error)
	FindByFilter(db *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	// UpdateStatus atomically moves an appointment from SCHEDULED to
	// the target status. Returns affected rows: 0 means the row was
	// missing or no longer SCHEDULED.
	UpdateStatus(db *gorm.DB, id uint, target entity.AppointmentStatus) (int64, error)
}
