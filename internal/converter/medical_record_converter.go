package converter

import (
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
)

func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	return &dto.MedicalRecordResponse{
		ID:            record.ID,
		UserID:        record.UserID,
		DoctorID:      record.DoctorID,
		RecordDate:    record.RecordDate,
		Description:   record.Description,
		Diagnosis:     record.Diagnosis,
		TreatmentPlan: record.TreatmentPlan,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}

func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i := range records {
		resp := MedicalRecordToResponse(&records[i])
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
