package dto

import "time"

// Request DTOs

type CreatePrescriptionRequest struct {
	AppointmentID  uint   `json:"appointment_id" validate:"required,min=1"`
	MedicationName string `json:"medication_name" validate:"required,max=80"`
	Dosage         string `json:"dosage" validate:"required,max=80"`
	Instructions   string `json:"instructions" validate:"required,max=255"`
	DurationDays   int    `json:"duration_days" validate:"omitempty,min=1,max=365"`
}

type UpdatePrescriptionStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Response DTOs

type PrescriptionResponse struct {
	ID             uint      `json:"id"`
	DoctorID       uint      `json:"doctor_id"`
	AppointmentID  uint      `json:"appointment_id"`
	MedicationName string    `json:"medication_name"`
	Dosage         string    `json:"dosage"`
	Instructions   string    `json:"instructions"`
	Status         string    `json:"status"`
	ExpiryDate     time.Time `json:"expiry_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PrescriptionListResponse struct {
	Prescriptions []PrescriptionResponse `json:"prescriptions"`
	Total         int                    `json:"total"`
}
