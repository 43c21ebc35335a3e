package dto

import "time"

// Request DTOs

type CreateAppointmentRequest struct {
	DoctorID        uint   `json:"doctor_id" validate:"required,min=1"`
	AppointmentDate string `json:"appointment_date" validate:"required,datetime=2006-01-02"`
	AppointmentTime string `json:"appointment_time" validate:"required,datetime=15:04"`
	Note            string `json:"note" validate:"required,max=255"`
	Timezone        string `json:"timezone" validate:"required"`
}

type ListAppointmentsRequest struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date" validate:"required,datetime=2006-01-02"`
	DoctorID  *uint  `json:"doctor_id" validate:"omitempty,min=1"`
	UserID    *uint  `json:"user_id" validate:"omitempty,min=1"`
	Limit     int    `json:"limit" validate:"omitempty,min=1,max=100"`
	Offset    int    `json:"offset" validate:"omitempty,min=0"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uint      `json:"id"`
	DoctorID        uint      `json:"doctor_id"`
	UserID          uint      `json:"user_id"`
	AppointmentDate string    `json:"appointment_date"`
	AppointmentTime string    `json:"appointment_time"`
	Timezone        string    `json:"timezone"`
	Note            string    `json:"note"`
	Status          string    `json:"status"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
