package entity

import "time"

// AppointmentFilter is a domain-level filter for querying
// appointments. Used by the repository layer to avoid coupling with
// delivery DTOs. The date range is inclusive on both ends.
type AppointmentFilter struct {
	StartDate time.Time
	EndDate   time.Time
	DoctorID  *uint
	UserID    *uint
	Limit     int
	Offset    int
}
