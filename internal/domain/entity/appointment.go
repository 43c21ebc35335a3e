package entity

import (
	"time"
)

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "SCHEDULED"
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
)

// IsValid checks if the status is a recognized member
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled:
		return true
	}
	return false
}

// TimeLayout is the wire and storage format for appointment times.
const TimeLayout = "15:04"

// DateLayout is the wire and storage format for appointment dates.
const DateLayout = "2006-01-02"

// Appointment represents one scheduled consultation slot. Date and
// time are always stored in UTC regardless of the timezone supplied
// at creation; conversion happens at presentation boundaries only.
//
// The partial unique index on (doctor_id, appointment_date,
// appointment_time) over non-cancelled rows is the authoritative
// guard against double-booking a doctor; the application pre-check is
// a fast path. The per-user invariant is application-enforced only.
type Appointment struct {
	ID              uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID        uint              `gorm:"not null;index;uniqueIndex:uidx_doctor_slot,where:status <> 'CANCELLED'" json:"doctor_id"`
	UserID          uint              `gorm:"not null;index" json:"user_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null;index;uniqueIndex:uidx_doctor_slot,where:status <> 'CANCELLED'" json:"appointment_date"`
	AppointmentTime string            `gorm:"type:time;not null;uniqueIndex:uidx_doctor_slot,where:status <> 'CANCELLED'" json:"appointment_time"`
	Note            string            `gorm:"type:varchar(255);not null" json:"note"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'SCHEDULED';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor        Doctor         `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	User          User           `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Symptoms      []Symptom      `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"symptoms,omitempty"`
	Prescriptions []Prescription `gorm:"foreignKey:AppointmentID;constraint:OnDelete:CASCADE" json:"prescriptions,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still open for transitions
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentStatusScheduled
}

// IsCancelled checks if the appointment has been cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// CanTransitionTo reports whether the appointment may move to the
// given status. Only SCHEDULED appointments may be completed or
// cancelled; every other transition is rejected.
func (a *Appointment) CanTransitionTo(target AppointmentStatus) bool {
	if !a.IsScheduled() {
		return false
	}
	return target == AppointmentStatusCompleted || target == AppointmentStatusCancelled
}

// UTCInstant combines the stored date and time into a single UTC
// instant. Postgres returns time columns with seconds, so both
// HH:MM:SS and HH:MM are accepted.
func (a *Appointment) UTCInstant() (time.Time, error) {
	clockPart, err := time.Parse("15:04:05", a.AppointmentTime)
	if err != nil {
		clockPart, err = time.Parse(TimeLayout, a.AppointmentTime)
		if err != nil {
			return time.Time{}, err
		}
	}
	d := a.AppointmentDate
	return time.Date(d.Year(), d.Month(), d.Day(), clockPart.Hour(), clockPart.Minute(), clockPart.Second(), 0, time.UTC), nil
}
