package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"telemed-scheduler/internal/converter"
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Prescriptions default to a 30 day validity when the request does not
// set a duration.
const defaultPrescriptionDays = 30

var (
	ErrPrescriptionNotFound       = errors.New("prescription not found")
	ErrNotAppointmentDoctor       = errors.New("appointment does not belong to this doctor")
	ErrInvalidPrescriptionStatus  = errors.New("invalid prescription status")
	ErrPrescriptionNotYourOwn     = errors.New("prescription does not belong to this doctor")
	ErrPrescriptionAlreadyExpired = errors.New("prescription has already expired")
)

type PrescriptionUsecase interface {
	Create(ctx context.Context, doctorUserID uint, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error)
	ListByDoctor(ctx context.Context, doctorUserID uint, status string) (*dto.PrescriptionListResponse, error)
	SearchByMedication(ctx context.Context, doctorUserID uint, medication string) (*dto.PrescriptionListResponse, error)
	UpdateStatus(ctx context.Context, doctorUserID uint, prescriptionID uint, newStatus string) (*dto.PrescriptionResponse, error)
	CheckExpired(ctx context.Context, now time.Time) (*dto.PrescriptionListResponse, error)
	SweepExpired(ctx context.Context, now time.Time) (int, error)
}

type prescriptionUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	prescriptionRepo repository.PrescriptionRepository
	appointmentRepo  repository.AppointmentRepository
	doctorRepo       repository.DoctorRepository
}

func NewPrescriptionUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	prescriptionRepo repository.PrescriptionRepository,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
) PrescriptionUsecase {
	return &prescriptionUsecase{
		db:               db,
		log:              log,
		prescriptionRepo: prescriptionRepo,
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
	}
}

// Create issues a prescription against one of the doctor's own
// appointments. Expiry is computed server side from the duration.
func (u *prescriptionUsecase) Create(ctx context.Context, doctorUserID uint, req *dto.CreatePrescriptionRequest) (*dto.PrescriptionResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.resolveDoctor(db, doctorUserID)
	if err != nil {
		return nil, err
	}

	appointment, err := u.appointmentRepo.FindByID(db, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", req.AppointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if appointment.DoctorID != doctor.ID {
		return nil, ErrNotAppointmentDoctor
	}

	days := req.DurationDays
	if days <= 0 {
		days = defaultPrescriptionDays
	}

	prescription := &entity.Prescription{
		DoctorID:       doctor.ID,
		AppointmentID:  appointment.ID,
		MedicationName: req.MedicationName,
		Dosage:         req.Dosage,
		Instructions:   req.Instructions,
		Status:         entity.PrescriptionStatusActive,
		ExpiryDate:     time.Now().UTC().AddDate(0, 0, days),
	}

	if err := u.prescriptionRepo.Create(db, prescription); err != nil {
		if isForeignKeyError(err, "appointment") {
			return nil, ErrAppointmentNotFound
		}
		u.log.Warnf("Failed to create prescription: %+v", err)
		return nil, err
	}

	u.log.Infof("Prescription created: id=%d, doctor=%d, appointment=%d", prescription.ID, doctor.ID, appointment.ID)
	return converter.PrescriptionToResponse(prescription), nil
}

func (u *prescriptionUsecase) ListByDoctor(ctx context.Context, doctorUserID uint, status string) (*dto.PrescriptionListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.resolveDoctor(db, doctorUserID)
	if err != nil {
		return nil, err
	}

	var statusFilter *entity.PrescriptionStatus
	if status != "" {
		s := entity.PrescriptionStatus(strings.ToUpper(status))
		if !s.IsValid() {
			return nil, ErrInvalidPrescriptionStatus
		}
		statusFilter = &s
	}

	prescriptions, err := u.prescriptionRepo.FindByDoctor(db, doctor.ID, statusFilter)
	if err != nil {
		u.log.Warnf("Failed to list prescriptions for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

func (u *prescriptionUsecase) SearchByMedication(ctx context.Context, doctorUserID uint, medication string) (*dto.PrescriptionListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.resolveDoctor(db, doctorUserID)
	if err != nil {
		return nil, err
	}

	prescriptions, err := u.prescriptionRepo.FindByMedication(db, doctor.ID, medication)
	if err != nil {
		u.log.Warnf("Failed to search prescriptions for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(prescriptions),
		Total:         len(prescriptions),
	}, nil
}

// UpdateStatus lets the prescribing doctor discontinue or reactivate a
// prescription. Expired rows stay expired; only the sweep sets EXPIRED.
func (u *prescriptionUsecase) UpdateStatus(ctx context.Context, doctorUserID uint, prescriptionID uint, newStatus string) (*dto.PrescriptionResponse, error) {
	target := entity.PrescriptionStatus(strings.ToUpper(strings.TrimSpace(newStatus)))
	if !target.IsValid() || target == entity.PrescriptionStatusExpired {
		return nil, ErrInvalidPrescriptionStatus
	}

	db := u.db.WithContext(ctx)

	doctor, err := u.resolveDoctor(db, doctorUserID)
	if err != nil {
		return nil, err
	}

	prescription, err := u.prescriptionRepo.FindByID(db, prescriptionID)
	if err != nil {
		u.log.Warnf("Failed to find prescription %d: %+v", prescriptionID, err)
		return nil, err
	}
	if prescription == nil {
		return nil, ErrPrescriptionNotFound
	}
	if prescription.DoctorID != doctor.ID {
		return nil, ErrPrescriptionNotYourOwn
	}
	if prescription.Status == entity.PrescriptionStatusExpired {
		return nil, ErrPrescriptionAlreadyExpired
	}

	if err := u.prescriptionRepo.UpdateStatus(db, prescriptionID, target); err != nil {
		u.log.Warnf("Failed to update prescription %d status: %+v", prescriptionID, err)
		return nil, err
	}

	prescription.Status = target
	return converter.PrescriptionToResponse(prescription), nil
}

// CheckExpired transitions ACTIVE prescriptions past their expiry date
// to EXPIRED and returns the newly expired set. Idempotent; a second
// check against the same reference instant returns an empty set.
func (u *prescriptionUsecase) CheckExpired(ctx context.Context, now time.Time) (*dto.PrescriptionListResponse, error) {
	expired, err := u.prescriptionRepo.MarkExpired(u.db.WithContext(ctx), now)
	if err != nil {
		u.log.Warnf("Failed to sweep expired prescriptions: %+v", err)
		return nil, err
	}

	for i := range expired {
		u.log.Infof("Prescription expired: id=%d, medication=%s", expired[i].ID, expired[i].MedicationName)
	}

	return &dto.PrescriptionListResponse{
		Prescriptions: converter.PrescriptionsToResponses(expired),
		Total:         len(expired),
	}, nil
}

// SweepExpired is the count form of CheckExpired used by the
// background worker.
func (u *prescriptionUsecase) SweepExpired(ctx context.Context, now time.Time) (int, error) {
	expired, err := u.CheckExpired(ctx, now)
	if err != nil {
		return 0, err
	}
	return expired.Total, nil
}

func (u *prescriptionUsecase) resolveDoctor(db *gorm.DB, doctorUserID uint) (*entity.Doctor, error) {
	doctor, err := u.doctorRepo.FindByUserID(db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %d: %+v", doctorUserID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}
	return doctor, nil
}
