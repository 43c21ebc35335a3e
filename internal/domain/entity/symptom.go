package entity

import "time"

// SeverityLevel represents how severe a reported symptom is
type SeverityLevel string

const (
	SeverityMild     SeverityLevel = "mild"
	SeverityModerate SeverityLevel = "moderate"
	SeveritySevere   SeverityLevel = "severe"
)

// IsValid checks if the severity is a recognized member
func (s SeverityLevel) IsValid() bool {
	switch s {
	case SeverityMild, SeverityModerate, SeveritySevere:
		return true
	}
	return false
}

// Symptom represents a symptom reported by a patient for an
// appointment. A (user, appointment, name) tuple is logically unique;
// re-reporting updates the existing row.
type Symptom struct {
	ID            uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID        uint          `gorm:"not null;index" json:"user_id"`
	AppointmentID uint          `gorm:"not null;index" json:"appointment_id"`
	SymptomName   string        `gorm:"type:varchar(80);not null" json:"symptom_name"`
	SeverityLevel SeverityLevel `gorm:"type:varchar(20);not null" json:"severity_level"`
	Description   string        `gorm:"type:varchar(255)" json:"description,omitempty"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User        User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Appointment Appointment `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
}

func (Symptom) TableName() string {
	return "symptoms"
}
