package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/delivery/http/middleware"
	"telemed-scheduler/internal/usecase"
	"telemed-scheduler/pkg/clock"
	"telemed-scheduler/pkg/response"
	"telemed-scheduler/pkg/validator"

	"github.com/gorilla/mux"
)

type PrescriptionHandler struct {
	prescriptionUsecase usecase.PrescriptionUsecase
	validator           *validator.CustomValidator
	clock               clock.Clock
}

func NewPrescriptionHandler(prescriptionUsecase usecase.PrescriptionUsecase, validator *validator.CustomValidator, clk clock.Clock) *PrescriptionHandler {
	return &PrescriptionHandler{
		prescriptionUsecase: prescriptionUsecase,
		validator:           validator,
		clock:               clk,
	}
}

func (h *PrescriptionHandler) CreatePrescription(w http.ResponseWriter, r *http.Request) {
	doctorUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.CreatePrescriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.Create(r.Context(), doctorUserID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.Forbidden(w, "Doctor profile not found or not approved")
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrNotAppointmentDoctor:
			response.Forbidden(w, "Appointment does not belong to you")
		default:
			response.InternalServerError(w, "Failed to create prescription")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Prescription created successfully", prescription)
}

func (h *PrescriptionHandler) ListPrescriptions(w http.ResponseWriter, r *http.Request) {
	doctorUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	query := r.URL.Query()

	if medication := query.Get("medication"); medication != "" {
		prescriptions, err := h.prescriptionUsecase.SearchByMedication(r.Context(), doctorUserID, medication)
		if err != nil {
			switch err {
			case usecase.ErrDoctorNotFound:
				response.Forbidden(w, "Doctor profile not found or not approved")
			default:
				response.InternalServerError(w, "Failed to search prescriptions")
			}
			return
		}
		response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
		return
	}

	prescriptions, err := h.prescriptionUsecase.ListByDoctor(r.Context(), doctorUserID, query.Get("status"))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.Forbidden(w, "Doctor profile not found or not approved")
		case usecase.ErrInvalidPrescriptionStatus:
			response.BadRequest(w, "Invalid prescription status")
		default:
			response.InternalServerError(w, "Failed to list prescriptions")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescriptions retrieved successfully", prescriptions)
}

func (h *PrescriptionHandler) UpdatePrescriptionStatus(w http.ResponseWriter, r *http.Request) {
	doctorUserID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	prescriptionID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid prescription ID", nil)
		return
	}

	var req dto.UpdatePrescriptionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	prescription, err := h.prescriptionUsecase.UpdateStatus(r.Context(), doctorUserID, uint(prescriptionID), req.Status)
	if err != nil {
		switch err {
		case usecase.ErrInvalidPrescriptionStatus:
			response.BadRequest(w, "Invalid prescription status")
		case usecase.ErrDoctorNotFound:
			response.Forbidden(w, "Doctor profile not found or not approved")
		case usecase.ErrPrescriptionNotFound:
			response.NotFound(w, "Prescription not found")
		case usecase.ErrPrescriptionNotYourOwn:
			response.Forbidden(w, "Prescription does not belong to you")
		case usecase.ErrPrescriptionAlreadyExpired:
			response.Conflict(w, "Prescription has already expired")
		default:
			response.InternalServerError(w, "Failed to update prescription status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Prescription status updated successfully", prescription)
}

// SweepExpired runs the expiry sweep on demand. The background worker
// runs the same sweep on an interval; this endpoint exists for
// operators who do not want to wait for the next tick.
func (h *PrescriptionHandler) SweepExpired(w http.ResponseWriter, r *http.Request) {
	expired, err := h.prescriptionUsecase.CheckExpired(r.Context(), h.clock.Now())
	if err != nil {
		response.InternalServerError(w, "Failed to sweep expired prescriptions")
		return
	}

	response.Success(w, http.StatusOK, "Expiry sweep completed", expired)
}
