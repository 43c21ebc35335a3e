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

type SymptomHandler struct {
	symptomUsecase usecase.SymptomUsecase
	validator      *validator.CustomValidator
}

func NewSymptomHandler(symptomUsecase usecase.SymptomUsecase, validator *validator.CustomValidator) *SymptomHandler {
	return &SymptomHandler{
		symptomUsecase: symptomUsecase,
		validator:      validator,
	}
}

func (h *SymptomHandler) ReportSymptom(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreateSymptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	symptom, err := h.symptomUsecase.Report(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSeverity:
			response.BadRequest(w, "Invalid severity level")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentPatient:
			response.Forbidden(w, "Appointment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to report symptom")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Symptom reported successfully", symptom)
}

func (h *SymptomHandler) ListByAppointment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	symptoms, err := h.symptomUsecase.ListByAppointment(r.Context(), userID, uint(appointmentID))
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to list symptoms")
		}
		return
	}

	response.Success(w, http.StatusOK, "Symptoms retrieved successfully", symptoms)
}

func (h *SymptomHandler) ListBySeverity(w http.ResponseWriter, r *http.Request) {
	severity := r.URL.Query().Get("severity")
	if severity == "" {
		response.Error(w, http.StatusBadRequest, "Severity is required", nil)
		return
	}

	symptoms, err := h.symptomUsecase.ListBySeverity(r.Context(), severity)
	if err != nil {
		switch err {
		case usecase.ErrInvalidSeverity:
			response.BadRequest(w, "Invalid severity level")
		default:
			response.InternalServerError(w, "Failed to list symptoms")
		}
		return
	}

	response.Success(w, http.StatusOK, "Symptoms retrieved successfully", symptoms)
}
