package dto

import "time"

// Request DTOs

type DoctorApplyRequest struct {
	PhoneNumber    string `json:"phone_number" validate:"required,max=40"`
	Specialization string `json:"specialization" validate:"required,max=80"`
	LicenseNumber  string `json:"license_number" validate:"required,max=80"`
}

// Response DTOs

type DoctorResponse struct {
	ID             uint      `json:"id"`
	UserID         uint      `json:"user_id"`
	FullName       string    `json:"full_name"`
	Email          string    `json:"email"`
	PhoneNumber    string    `json:"phone_number"`
	Specialization string    `json:"specialization"`
	LicenseNumber  string    `json:"license_number"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
