package converter

import (
	"time"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO,
// presenting the stored UTC date/time in the given location. Pass
// time.UTC to render the stored values unchanged.
func AppointmentToResponse(appointment *entity.Appointment, loc *time.Location) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:              appointment.ID,
		DoctorID:        appointment.DoctorID,
		UserID:          appointment.UserID,
		AppointmentDate: appointment.AppointmentDate.Format(entity.DateLayout),
		AppointmentTime: appointment.AppointmentTime,
		Timezone:        loc.String(),
		Note:            appointment.Note,
		Status:          string(appointment.Status),
		CreatedAt:       appointment.CreatedAt,
		UpdatedAt:       appointment.UpdatedAt,
	}

	if instant, err := appointment.UTCInstant(); err == nil {
		local := instant.In(loc)
		response.AppointmentDate = local.Format(entity.DateLayout)
		response.AppointmentTime = local.Format(entity.TimeLayout)
	}

	// Denormalized doctor display fields for immediate client rendering
	if appointment.Doctor.ID != 0 {
		response.DoctorName = appointment.Doctor.User.FullName()
		response.Specialization = appointment.Doctor.Specialization
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment, loc *time.Location) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		resp := AppointmentToResponse(&appointments[i], loc)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
