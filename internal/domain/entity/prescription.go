package entity

import "time"

// PrescriptionStatus represents the state of a prescription
type PrescriptionStatus string

const (
	PrescriptionStatusActive       PrescriptionStatus = "ACTIVE"
	PrescriptionStatusDiscontinued PrescriptionStatus = "DISCONTINUED"
	PrescriptionStatusExpired      PrescriptionStatus = "EXPIRED"
)

// IsValid checks if the status is a recognized member
func (s PrescriptionStatus) IsValid() bool {
	switch s {
	case PrescriptionStatusActive, PrescriptionStatusDiscontinued, PrescriptionStatusExpired:
		return true
	}
	return false
}

// Prescription represents medication prescribed during an appointment.
// Expiry is compared against UTC; the periodic sweep transitions
// ACTIVE rows past their expiry date to EXPIRED.
type Prescription struct {
	ID             uint               `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID       uint               `gorm:"not null;index" json:"doctor_id"`
	AppointmentID  uint               `gorm:"not null;index" json:"appointment_id"`
	MedicationName string             `gorm:"type:varchar(80);not null;index" json:"medication_name"`
	Dosage         string             `gorm:"type:varchar(80);not null" json:"dosage"`
	Instructions   string             `gorm:"type:varchar(255);not null" json:"instructions"`
	Status         PrescriptionStatus `gorm:"type:varchar(20);not null;default:'ACTIVE';index" json:"status"`
	ExpiryDate     time.Time          `gorm:"not null" json:"expiry_date"`
	CreatedAt      time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time          `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor      Doctor      `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Prescription) TableName() string {
	return "prescriptions"
}

// IsActive checks if the prescription has not been discontinued or expired
func (p *Prescription) IsActive() bool {
	return p.Status == PrescriptionStatusActive
}

// IsExpiredAt checks the expiry date against the given reference instant
func (p *Prescription) IsExpiredAt(now time.Time) bool {
	return p.ExpiryDate.Before(now)
}
