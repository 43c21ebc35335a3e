package entity

import "time"

// DoctorStatus represents the approval state of a doctor profile
type DoctorStatus string

const (
	DoctorStatusPending  DoctorStatus = "PENDING"
	DoctorStatusApproved DoctorStatus = "APPROVED"
	DoctorStatusRejected DoctorStatus = "REJECTED"
)

// Doctor represents a user elevated to provider status. Only APPROVED
// doctors are eligible booking targets.
type Doctor struct {
	ID             uint         `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID         uint         `gorm:"not null;uniqueIndex" json:"user_id"`
	PhoneNumber    string       `gorm:"type:varchar(40);not null" json:"phone_number"`
	Specialization string       `gorm:"type:varchar(80);not null;index" json:"specialization"`
	LicenseNumber  string       `gorm:"type:varchar(80);uniqueIndex;not null" json:"license_number"`
	Status         DoctorStatus `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User           User            `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Appointments   []Appointment   `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"appointments,omitempty"`
	Prescriptions  []Prescription  `gorm:"foreignKey:DoctorID" json:"prescriptions,omitempty"`
	MedicalRecords []MedicalRecord `gorm:"foreignKey:DoctorID;constraint:OnDelete:CASCADE" json:"medical_records,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// IsApproved checks if the doctor can be booked
func (d *Doctor) IsApproved() bool {
	return d.Status == DoctorStatusApproved
}

// IsPending checks if the doctor is awaiting review
func (d *Doctor) IsPending() bool {
	return d.Status == DoctorStatusPending
}
