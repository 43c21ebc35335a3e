package usecase

import (
	"context"
	"errors"
	"strings"

	"telemed-scheduler/internal/converter"
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidSeverity       = errors.New("invalid severity level")
	ErrNotAppointmentPatient = errors.New("appointment does not belong to this user")
)

type SymptomUsecase interface {
	Report(ctx context.Context, userID uint, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error)
	ListByAppointment(ctx context.Context, userID uint, appointmentID uint) (*dto.SymptomListResponse, error)
	ListBySeverity(ctx context.Context, severity string) (*dto.SymptomListResponse, error)
}

type symptomUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	symptomRepo     repository.SymptomRepository
	appointmentRepo repository.AppointmentRepository
}

func NewSymptomUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	symptomRepo repository.SymptomRepository,
	appointmentRepo repository.AppointmentRepository,
) SymptomUsecase {
	return &symptomUsecase{
		db:              db,
		log:             log,
		symptomRepo:     symptomRepo,
		appointmentRepo: appointmentRepo,
	}
}

// Report records a symptom against one of the caller's appointments.
// Reporting the same symptom name again updates the existing row
// instead of duplicating it.
func (u *symptomUsecase) Report(ctx context.Context, userID uint, req *dto.CreateSymptomRequest) (*dto.SymptomResponse, error) {
	severity := entity.SeverityLevel(strings.ToLower(req.SeverityLevel))
	if !severity.IsValid() {
		return nil, ErrInvalidSeverity
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.UserID != userID {
		return nil, ErrNotAppointmentPatient
	}

	existing, err := u.symptomRepo.FindByUserAppointmentAndName(db, userID, req.AppointmentID, req.SymptomName)
	if err != nil {
		u.log.Warnf("Failed to find symptom: %+v", err)
		return nil, err
	}

	if existing != nil {
		existing.SeverityLevel = severity
		existing.Description = req.Description
		if err := u.symptomRepo.Update(db, existing); err != nil {
			u.log.Warnf("Failed to update symptom %d: %+v", existing.ID, err)
			return nil, err
		}
		return converter.SymptomToResponse(existing), nil
	}

	symptom := &entity.Symptom{
		UserID:        userID,
		AppointmentID: req.AppointmentID,
		SymptomName:   req.SymptomName,
		SeverityLevel: severity,
		Description:   req.Description,
	}

	if err := u.symptomRepo.Create(db, symptom); err != nil {
		u.log.Warnf("Failed to create symptom: %+v", err)
		return nil, err
	}

	return converter.SymptomToResponse(symptom), nil
}

// ListByAppointment returns the symptoms reported for one appointment.
// The caller must be the patient or the appointment's doctor; the
// handler enforces role, this check enforces ownership for patients.
func (u *symptomUsecase) ListByAppointment(ctx context.Context, userID uint, appointmentID uint) (*dto.SymptomListResponse, error) {
	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	symptoms, err := u.symptomRepo.FindByAppointment(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to list symptoms for appointment %d: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.SymptomListResponse{
		Symptoms: converter.SymptomsToResponses(symptoms),
		Total:    len(symptoms),
	}, nil
}

func (u *symptomUsecase) ListBySeverity(ctx context.Context, severity string) (*dto.SymptomListResponse, error) {
	level := entity.SeverityLevel(strings.ToLower(severity))
	if !level.IsValid() {
		return nil, ErrInvalidSeverity
	}

	symptoms, err := u.symptomRepo.FindBySeverity(u.db.WithContext(ctx), level)
	if err != nil {
		u.log.Warnf("Failed to list symptoms by severity: %+v", err)
		return nil, err
	}

	return &dto.SymptomListResponse{
		Symptoms: converter.SymptomsToResponses(symptoms),
		Total:    len(symptoms),
	}, nil
}
