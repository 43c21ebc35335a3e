package converter

import (
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:             doctor.ID,
		UserID:         doctor.UserID,
		PhoneNumber:    doctor.PhoneNumber,
		Specialization: doctor.Specialization,
		LicenseNumber:  doctor.LicenseNumber,
		Status:         string(doctor.Status),
		CreatedAt:      doctor.CreatedAt,
		UpdatedAt:      doctor.UpdatedAt,
	}

	if doctor.User.ID != 0 {
		response.FullName = doctor.User.FullName()
		response.Email = doctor.User.Email
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		resp := DoctorToResponse(&doctors[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
