package usecase

import (
	"context"
	"errors"

	"telemed-scheduler/internal/converter"
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"
	"telemed-scheduler/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound       = errors.New("doctor not found")
	ErrAlreadyDoctor        = errors.New("user already has a doctor profile")
	ErrLicenseAlreadyExists = errors.New("license number already registered")
	ErrDoctorNotPending     = errors.New("doctor application is not pending review")
)

type DoctorUsecase interface {
	Apply(ctx context.Context, userID uint, req *dto.DoctorApplyRequest) (*dto.DoctorResponse, error)
	Approve(ctx context.Context, adminID uint, doctorID uint) (*dto.DoctorResponse, error)
	Reject(ctx context.Context, adminID uint, doctorID uint) (*dto.DoctorResponse, error)
	Get(ctx context.Context, doctorID uint) (*dto.DoctorResponse, error)
	List(ctx context.Context, limit, offset int) (*dto.DoctorListResponse, error)
	ListBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	Search(ctx context.Context, keyword string, limit, offset int) (*dto.DoctorListResponse, error)
}

type doctorUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	doctorRepo repository.DoctorRepository
	userRepo   repository.UserRepository
	audit      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	audit service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:         db,
		log:        log,
		doctorRepo: doctorRepo,
		userRepo:   userRepo,
		audit:      audit,
	}
}

// Apply files a doctor application for the calling user. The profile
// starts PENDING and the account role flips to DOCTOR_PENDING in the
// same transaction.
func (u *doctorUsecase) Apply(ctx context.Context, userID uint, req *dto.DoctorApplyRequest) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.doctorRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find doctor by user %d: %+v", userID, err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyDoctor
	}

	doctor := &entity.Doctor{
		UserID:         userID,
		PhoneNumber:    req.PhoneNumber,
		Specialization: req.Specialization,
		LicenseNumber:  req.LicenseNumber,
		Status:         entity.DoctorStatusPending,
	}

	if err := u.doctorRepo.Create(tx, doctor); err != nil {
		if isDuplicateKeyError(err, "license_number") {
			return nil, ErrLicenseAlreadyExists
		}
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrAlreadyDoctor
		}
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, err
	}

	if err := u.userRepo.UpdateRole(tx, userID, entity.RoleDoctorPending); err != nil {
		u.log.Warnf("Failed to update role for user %d: %+v", userID, err)
		return nil, err
	}

	if err := u.audit.Record(tx, &userID, entity.AuditActionDoctorApply, "doctor", doctor.ID, req.LicenseNumber); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor application filed: doctor=%d, user=%d", doctor.ID, userID)
	return converter.DoctorToResponse(doctor), nil
}

// Approve moves a PENDING application to APPROVED and grants the
// DOCTOR role.
func (u *doctorUsecase) Approve(ctx context.Context, adminID uint, doctorID uint) (*dto.DoctorResponse, error) {
	return u.review(ctx, adminID, doctorID, entity.DoctorStatusApproved)
}

// Reject moves a PENDING application to REJECTED and restores the
// USER role.
func (u *doctorUsecase) Reject(ctx context.Context, adminID uint, doctorID uint) (*dto.DoctorResponse, error) {
	return u.review(ctx, adminID, doctorID, entity.DoctorStatusRejected)
}

func (u *doctorUsecase) review(ctx context.Context, adminID uint, doctorID uint, verdict entity.DoctorStatus) (*dto.DoctorResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	doctor, err := u.doctorRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	if !doctor.IsPending() {
		return nil, ErrDoctorNotPending
	}

	doctor.Status = verdict
	if err := u.doctorRepo.Update(tx, doctor); err != nil {
		u.log.Warnf("Failed to update doctor %d: %+v", doctorID, err)
		return nil, err
	}

	role := entity.RoleUser
	action := entity.AuditActionDoctorReject
	if verdict == entity.DoctorStatusApproved {
		role = entity.RoleDoctor
		action = entity.AuditActionDoctorApprove
	}

	if err := u.userRepo.UpdateRole(tx, doctor.UserID, role); err != nil {
		u.log.Warnf("Failed to update role for user %d: %+v", doctor.UserID, err)
		return nil, err
	}

	if err := u.audit.Record(tx, &adminID, action, "doctor", doctor.ID, doctor.UserID); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	u.log.Infof("Doctor %d reviewed: %s by admin %d", doctorID, verdict, adminID)
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) Get(ctx context.Context, doctorID uint) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", doctorID, err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

// List returns APPROVED doctors only; pending and rejected profiles
// are visible to admins through the review endpoints.
func (u *doctorUsecase) List(ctx context.Context, limit, offset int) (*dto.DoctorListResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	doctors, err := u.doctorRepo.FindApproved(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) ListBySpecialization(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindBySpecialization(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to list doctors by specialization: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) Search(ctx context.Context, keyword string, limit, offset int) (*dto.DoctorListResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	doctors, err := u.doctorRepo.Search(u.db.WithContext(ctx), keyword, limit, offset)
	if err != nil {
		u.log.Warnf("Failed to search doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}
