package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/delivery/http/middleware"
	"telemed-scheduler/internal/usecase"
	"telemed-scheduler/pkg/response"
	"telemed-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Schedule(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmptyNote:
			response.BadRequest(w, "Appointment note cannot be empty")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrInvalidTimezone:
			response.BadRequest(w, "Unknown timezone name")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		case usecase.ErrInvalidTimeFormat:
			response.BadRequest(w, "Invalid time format, use HH:MM")
		case usecase.ErrDoctorUnavailable:
			response.Conflict(w, "Doctor already has an appointment at this time")
		case usecase.ErrUserAlreadyBooked:
			response.Conflict(w, "You already have an appointment at this time")
		case usecase.ErrAppointmentInPast:
			response.BadRequest(w, "Appointment must be scheduled for a future time")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	viewerTimezone := r.URL.Query().Get("timezone")

	appointment, err := h.appointmentUsecase.Get(r.Context(), uint(appointmentID), viewerTimezone)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrInvalidTimezone:
			response.BadRequest(w, "Unknown timezone name")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := dto.ListAppointmentsRequest{
		StartDate: query.Get("start_date"),
		EndDate:   query.Get("end_date"),
	}

	if v := query.Get("doctor_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
			return
		}
		doctorID := uint(id)
		req.DoctorID = &doctorID
	}
	if v := query.Get("user_id"); v != "" {
		id, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid user ID", nil)
			return
		}
		userID := uint(id)
		req.UserID = &userID
	}
	if v := query.Get("limit"); v != "" {
		req.Limit, _ = strconv.Atoi(v)
	}
	if v := query.Get("offset"); v != "" {
		req.Offset, _ = strconv.Atoi(v)
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date format, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, &response.Meta{
		Limit:  req.Limit,
		Offset: req.Offset,
		Total:  appointments.Total,
	})
}

func (h *AppointmentHandler) UpdateAppointmentStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.TransitionStatus(r.Context(), uint(appointmentID), req.Status)
	if err != nil {
		switch err {
		case usecase.ErrInvalidStatus:
			response.BadRequest(w, "Invalid appointment status")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrIllegalTransition:
			response.Conflict(w, "Appointment is not in a transitionable state")
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}
