package converter

import (
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
)

// PrescriptionToResponse converts a Prescription entity to its DTO
func PrescriptionToResponse(prescription *entity.Prescription) *dto.PrescriptionResponse {
	if prescription == nil {
		return nil
	}

	return &dto.PrescriptionResponse{
		ID:             prescription.ID,
		DoctorID:       prescription.DoctorID,
		AppointmentID:  prescription.AppointmentID,
		MedicationName: prescription.MedicationName,
		Dosage:         prescription.Dosage,
		Instructions:   prescription.Instructions,
		Status:         string(prescription.Status),
		ExpiryDate:     prescription.ExpiryDate,
		CreatedAt:      prescription.CreatedAt,
		UpdatedAt:      prescription.UpdatedAt,
	}
}

// PrescriptionsToResponses converts a slice of Prescription entities
func PrescriptionsToResponses(prescriptions []entity.Prescription) []dto.PrescriptionResponse {
	responses := make([]dto.PrescriptionResponse, len(prescriptions))
	for i := range prescriptions {
		resp := PrescriptionToResponse(&prescriptions[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
