package http

import (
	"net/http"

	"telemed-scheduler/internal/delivery/http/handler"
	"telemed-scheduler/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router               *mux.Router
	authHandler          *handler.AuthHandler
	userHandler          *handler.UserHandler
	doctorHandler        *handler.DoctorHandler
	appointmentHandler   *handler.AppointmentHandler
	prescriptionHandler  *handler.PrescriptionHandler
	symptomHandler       *handler.SymptomHandler
	medicalRecordHandler *handler.MedicalRecordHandler
	authMiddleware       *middleware.AuthMiddleware
	corsMiddleware       *middleware.CORSMiddleware
	metricsMiddleware    *middleware.MetricsMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	prescriptionHandler *handler.PrescriptionHandler,
	symptomHandler *handler.SymptomHandler,
	medicalRecordHandler *handler.MedicalRecordHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	metricsMiddleware *middleware.MetricsMiddleware,
) *Router {
	return &Router{
		router:               mux.NewRouter(),
		authHandler:          authHandler,
		userHandler:          userHandler,
		doctorHandler:        doctorHandler,
		appointmentHandler:   appointmentHandler,
		prescriptionHandler:  prescriptionHandler,
		symptomHandler:       symptomHandler,
		medicalRecordHandler: medicalRecordHandler,
		authMiddleware:       authMiddleware,
		corsMiddleware:       corsMiddleware,
		metricsMiddleware:    metricsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check and metrics
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)
	r.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh-token", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Profile routes (protected)
	users := api.PathPrefix("/users").Subrouter()
	users.Use(r.authMiddleware.Authenticate)
	users.HandleFunc("/me", r.userHandler.GetProfile).Methods(http.MethodGet)
	users.HandleFunc("/me", r.userHandler.UpdateProfile).Methods(http.MethodPut)
	users.HandleFunc("/me/medical-records", r.medicalRecordHandler.ListMyRecords).Methods(http.MethodGet)

	// Doctor routes (protected)
	doctors := api.PathPrefix("/doctors").Subrouter()
	doctors.Use(r.authMiddleware.Authenticate)
	doctors.HandleFunc("", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/search", r.doctorHandler.SearchDoctors).Methods(http.MethodGet)
	doctors.HandleFunc("/apply", r.doctorHandler.Apply).Methods(http.MethodPost)
	doctors.HandleFunc("/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)

	// Appointment routes (protected)
	appointments := api.PathPrefix("/appointments").Subrouter()
	appointments.Use(r.authMiddleware.Authenticate)
	appointments.HandleFunc("", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	appointments.HandleFunc("", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	appointments.HandleFunc("/{id}/status", r.appointmentHandler.UpdateAppointmentStatus).Methods(http.MethodPatch)
	appointments.HandleFunc("/{id}/symptoms", r.symptomHandler.ListByAppointment).Methods(http.MethodGet)

	// Symptom routes (protected)
	symptoms := api.PathPrefix("/symptoms").Subrouter()
	symptoms.Use(r.authMiddleware.Authenticate)
	symptoms.HandleFunc("", r.symptomHandler.ReportSymptom).Methods(http.MethodPost)

	// Doctor-only routes
	doctorOnly := api.PathPrefix("").Subrouter()
	doctorOnly.Use(r.authMiddleware.Authenticate)
	doctorOnly.Use(middleware.RequireDoctor)
	doctorOnly.HandleFunc("/prescriptions", r.prescriptionHandler.CreatePrescription).Methods(http.MethodPost)
	doctorOnly.HandleFunc("/prescriptions", r.prescriptionHandler.ListPrescriptions).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/prescriptions/{id}/status", r.prescriptionHandler.UpdatePrescriptionStatus).Methods(http.MethodPatch)
	doctorOnly.HandleFunc("/medical-records", r.medicalRecordHandler.CreateRecord).Methods(http.MethodPost)
	doctorOnly.HandleFunc("/medical-records/mine", r.medicalRecordHandler.ListMine).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/medical-records/search", r.medicalRecordHandler.SearchRecords).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/patients/{id}/medical-records", r.medicalRecordHandler.ListByPatient).Methods(http.MethodGet)
	doctorOnly.HandleFunc("/symptoms/by-severity", r.symptomHandler.ListBySeverity).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/users", r.userHandler.ListUsers).Methods(http.MethodGet)
	admin.HandleFunc("/users/{id}", r.userHandler.DeleteUser).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id}/approve", r.doctorHandler.Approve).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/reject", r.doctorHandler.Reject).Methods(http.MethodPost)
	admin.HandleFunc("/prescriptions/sweep-expired", r.prescriptionHandler.SweepExpired).Methods(http.MethodPost)

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.metricsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
