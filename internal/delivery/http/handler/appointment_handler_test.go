package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/delivery/http/middleware"
	"telemed-scheduler/internal/usecase"
	"telemed-scheduler/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAppointmentUsecase struct {
	scheduleFn         func(userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	getFn              func(appointmentID uint, viewerTimezone string) (*dto.AppointmentResponse, error)
	transitionStatusFn func(appointmentID uint, newStatus string) (*dto.AppointmentResponse, error)
}

func (m *mockAppointmentUsecase) Schedule(_ context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.scheduleFn(userID, req)
}

func (m *mockAppointmentUsecase) Get(_ context.Context, appointmentID uint, viewerTimezone string) (*dto.AppointmentResponse, error) {
	return m.getFn(appointmentID, viewerTimezone)
}

func (m *mockAppointmentUsecase) List(_ context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (m *mockAppointmentUsecase) TransitionStatus(_ context.Context, appointmentID uint, newStatus string) (*dto.AppointmentResponse, error) {
	return m.transitionStatusFn(appointmentID, newStatus)
}

func authedRequest(r *http.Request, userID uint) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, userID)
	return r.WithContext(ctx)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	uc := &mockAppointmentUsecase{
		scheduleFn: func(userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			assert.Equal(t, uint(5), userID)
			return &dto.AppointmentResponse{ID: 42, Status: "SCHEDULED"}, nil
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	payload := dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Follow-up",
		Timezone:        "America/New_York",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, authedRequest(req, 5))

	assert.Equal(t, http.StatusCreated, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, true, envelope["success"])
}

func TestCreateAppointmentValidationFailure(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())

	// Missing note and malformed time
	payload := map[string]interface{}{
		"doctor_id":        7,
		"appointment_date": "2026-06-15",
		"appointment_time": "2pm",
		"timezone":         "UTC",
	}
	body, _ := json.Marshal(payload)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, authedRequest(req, 5))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateAppointmentMapsConflicts(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"doctor slot taken", usecase.ErrDoctorUnavailable, http.StatusConflict},
		{"user double booked", usecase.ErrUserAlreadyBooked, http.StatusConflict},
		{"doctor missing", usecase.ErrDoctorNotFound, http.StatusNotFound},
		{"past slot", usecase.ErrAppointmentInPast, http.StatusBadRequest},
		{"bad timezone", usecase.ErrInvalidTimezone, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			uc := &mockAppointmentUsecase{
				scheduleFn: func(userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
					return nil, tc.err
				},
			}
			h := NewAppointmentHandler(uc, validator.NewValidator())

			payload := dto.CreateAppointmentRequest{
				DoctorID:        7,
				AppointmentDate: "2026-06-15",
				AppointmentTime: "14:00",
				Note:            "Follow-up",
				Timezone:        "UTC",
			}
			body, _ := json.Marshal(payload)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader(body))
			rec := httptest.NewRecorder()
			h.CreateAppointment(rec, authedRequest(req, 5))

			assert.Equal(t, tc.wantCode, rec.Code)
		})
	}
}

func TestCreateAppointmentRequiresAuthContext(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewReader([]byte(`{}`)))
	rec := httptest.NewRecorder()
	h.CreateAppointment(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetAppointmentPassesViewerTimezone(t *testing.T) {
	uc := &mockAppointmentUsecase{
		getFn: func(appointmentID uint, viewerTimezone string) (*dto.AppointmentResponse, error) {
			assert.Equal(t, uint(42), appointmentID)
			assert.Equal(t, "Asia/Jakarta", viewerTimezone)
			return &dto.AppointmentResponse{ID: 42}, nil
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments/42?timezone=Asia/Jakarta", nil)
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()
	h.GetAppointment(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateAppointmentStatusMapsStateErrors(t *testing.T) {
	uc := &mockAppointmentUsecase{
		transitionStatusFn: func(appointmentID uint, newStatus string) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrIllegalTransition
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	body, _ := json.Marshal(dto.UpdateAppointmentStatusRequest{Status: "CANCELLED"})
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/42/status", bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": "42"})
	rec := httptest.NewRecorder()
	h.UpdateAppointmentStatus(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}
