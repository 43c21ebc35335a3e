package entity

import "time"

// MedicalRecord represents a clinical note a doctor writes about a
// patient, independent of any single appointment.
type MedicalRecord struct {
	ID            uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint      `gorm:"not null;index" json:"user_id"`
	DoctorID      uint      `gorm:"not null;index" json:"doctor_id"`
	RecordDate    time.Time `gorm:"not null;index" json:"record_date"`
	Description   string    `gorm:"type:varchar(255);not null" json:"description"`
	Diagnosis     string    `gorm:"type:varchar(255);index" json:"diagnosis,omitempty"`
	TreatmentPlan string    `gorm:"type:varchar(255)" json:"treatment_plan,omitempty"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User   User   `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
