package dto

import "time"

// Request DTOs

type CreateSymptomRequest struct {
	AppointmentID uint   `json:"appointment_id" validate:"required,min=1"`
	SymptomName   string `json:"symptom_name" validate:"required,max=80"`
	SeverityLevel string `json:"severity_level" validate:"required,oneof=mild moderate severe"`
	Description   string `json:"description" validate:"omitempty,max=255"`
}

// Response DTOs

type SymptomResponse struct {
	ID            uint      `json:"id"`
	UserID        uint      `json:"user_id"`
	AppointmentID uint      `json:"appointment_id"`
	SymptomName   string    `json:"symptom_name"`
	SeverityLevel string    `json:"severity_level"`
	Description   string    `json:"description,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type SymptomListResponse struct {
	Symptoms []SymptomResponse `json:"symptoms"`
	Total    int               `json:"total"`
}
