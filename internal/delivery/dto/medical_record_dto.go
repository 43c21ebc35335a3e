package dto

import "time"

// Request DTOs

type CreateMedicalRecordRequest struct {
	UserID        uint   `json:"user_id" validate:"required,min=1"`
	Description   string `json:"description" validate:"required,max=255"`
	Diagnosis     string `json:"diagnosis" validate:"omitempty,max=255"`
	TreatmentPlan string `json:"treatment_plan" validate:"omitempty,max=255"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	DoctorID      uint      `json:"doctor_id"`
	RecordDate    time.Time `json:"record_date"`
	Description   string    `json:"description"`
	Diagnosis     string    `json:"diagnosis,omitempty"`
	TreatmentPlan string    `json:"treatment_plan,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
