package usecase

import (
	"context"
	"time"

	"telemed-scheduler/internal/converter"
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type MedicalRecordUsecase interface {
	Create(ctx context.Context, doctorUserID uint, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	ListByUser(ctx context.Context, userID uint) (*dto.MedicalRecordListResponse, error)
	ListByDoctor(ctx context.Context, doctorUserID uint) (*dto.MedicalRecordListResponse, error)
	Search(ctx context.Context, keyword string) (*dto.MedicalRecordListResponse, error)
}

type medicalRecordUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	recordRepo repository.MedicalRecordRepository
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	recordRepo repository.MedicalRecordRepository,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:         db,
		log:        log,
		recordRepo: recordRepo,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
	}
}

// Create writes a medical record for a patient on behalf of the
// calling doctor. The record date is stamped server side in UTC.
func (u *medicalRecordUsecase) Create(ctx context.Context, doctorUserID uint, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %d: %+v", doctorUserID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	patient, err := u.userRepo.FindByID(db, req.UserID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", req.UserID, err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	record := &entity.MedicalRecord{
		UserID:        req.UserID,
		DoctorID:      doctor.ID,
		RecordDate:    time.Now().UTC(),
		Description:   req.Description,
		Diagnosis:     req.Diagnosis,
		TreatmentPlan: req.TreatmentPlan,
	}

	if err := u.recordRepo.Create(db, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	u.log.Infof("Medical record created: id=%d, doctor=%d, user=%d", record.ID, doctor.ID, req.UserID)
	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) ListByUser(ctx context.Context, userID uint) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.FindByUser(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for user %d: %+v", userID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) ListByDoctor(ctx context.Context, doctorUserID uint) (*dto.MedicalRecordListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByUserID(db, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %d: %+v", doctorUserID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	records, err := u.recordRepo.FindByDoctor(db, doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list medical records for doctor %d: %+v", doctor.ID, err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

func (u *medicalRecordUsecase) Search(ctx context.Context, keyword string) (*dto.MedicalRecordListResponse, error) {
	records, err := u.recordRepo.Search(u.db.WithContext(ctx), keyword)
	if err != nil {
		u.log.Warnf("Failed to search medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}
