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

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) Apply(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	var req dto.DoctorApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.Apply(r.Context(), userID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAlreadyDoctor:
			response.Conflict(w, "You already have a doctor profile")
		case usecase.ErrLicenseAlreadyExists:
			response.Conflict(w, "License number already registered")
		default:
			response.InternalServerError(w, "Failed to submit doctor application")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor application submitted successfully", doctor)
}

func (h *DoctorHandler) Approve(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, true)
}

func (h *DoctorHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.review(w, r, false)
}

func (h *DoctorHandler) review(w http.ResponseWriter, r *http.Request, approve bool) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "User information not found")
		return
	}

	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	var doctor *dto.DoctorResponse
	if approve {
		doctor, err = h.doctorUsecase.Approve(r.Context(), adminID, uint(doctorID))
	} else {
		doctor, err = h.doctorUsecase.Reject(r.Context(), adminID, uint(doctorID))
	}

	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorNotPending:
			response.Conflict(w, "Doctor application is not pending review")
		default:
			response.InternalServerError(w, "Failed to review doctor application")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor application reviewed successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.doctorUsecase.Get(r.Context(), uint(doctorID))
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

func (h *DoctorHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	if specialization := query.Get("specialization"); specialization != "" {
		doctors, err := h.doctorUsecase.ListBySpecialization(r.Context(), specialization)
		if err != nil {
			response.InternalServerError(w, "Failed to list doctors")
			return
		}
		response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
		return
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	doctors, err := h.doctorUsecase.List(r.Context(), limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Doctors retrieved successfully", doctors, &response.Meta{
		Limit:  limit,
		Offset: offset,
		Total:  doctors.Total,
	})
}

func (h *DoctorHandler) SearchDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	keyword := query.Get("q")
	if keyword == "" {
		response.Error(w, http.StatusBadRequest, "Search keyword is required", nil)
		return
	}

	limit, _ := strconv.Atoi(query.Get("limit"))
	offset, _ := strconv.Atoi(query.Get("offset"))

	doctors, err := h.doctorUsecase.Search(r.Context(), keyword, limit, offset)
	if err != nil {
		response.InternalServerError(w, "Failed to search doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}
