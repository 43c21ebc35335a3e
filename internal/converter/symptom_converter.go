package converter

import (
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
)

func SymptomToResponse(symptom *entity.Symptom) *dto.SymptomResponse {
	if symptom == nil {
		return nil
	}

	return &dto.SymptomResponse{
		ID:            symptom.ID,
		UserID:        symptom.UserID,
		AppointmentID: symptom.AppointmentID,
		SymptomName:   symptom.SymptomName,
		SeverityLevel: string(symptom.SeverityLevel),
		Description:   symptom.Description,
		CreatedAt:     symptom.CreatedAt,
		UpdatedAt:     symptom.UpdatedAt,
	}
}

func SymptomsToResponses(symptoms []entity.Symptom) []dto.SymptomResponse {
	responses := make([]dto.SymptomResponse, len(symptoms))
	for i := range symptoms {
		resp := SymptomToResponse(&symptoms[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
