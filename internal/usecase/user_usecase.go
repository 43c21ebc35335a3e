package usecase

import (
	"context"

	"telemed-scheduler/internal/converter"
	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/domain/repository"
	"telemed-scheduler/internal/service"
	"telemed-scheduler/pkg/timezone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type UserUsecase interface {
	GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
	ListUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error)
	DeleteUser(ctx context.Context, adminID uint, userID uint) error
}

type userUsecase struct {
	db       *gorm.DB
	log      *logrus.Logger
	userRepo repository.UserRepository
	audit    service.AuditService
	zones    timezone.Resolver
}

func NewUserUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	audit service.AuditService,
	zones timezone.Resolver,
) UserUsecase {
	return &userUsecase{
		db:       db,
		log:      log,
		userRepo: userRepo,
		audit:    audit,
		zones:    zones,
	}
}

func (u *userUsecase) GetProfile(ctx context.Context, userID uint) (*dto.UserResponse, error) {
	user, err := u.userRepo.FindByID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return converter.UserToResponse(user), nil
}

// UpdateProfile applies the non-empty fields of the request. The
// timezone preference is validated against the IANA database before
// it is stored.
func (u *userUsecase) UpdateProfile(ctx context.Context, userID uint, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	db := u.db.WithContext(ctx)

	user, err := u.userRepo.FindByID(db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if req.FirstName != "" {
		user.FirstName = req.FirstName
	}
	if req.LastName != "" {
		user.LastName = req.LastName
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.State != "" {
		user.State = req.State
	}
	if req.Country != "" {
		user.Country = req.Country
	}
	if req.Timezone != "" {
		if _, err := u.zones.Resolve(req.Timezone); err != nil {
			return nil, ErrInvalidTimezone
		}
		user.Timezone = req.Timezone
	}

	if err := u.userRepo.Update(db, user); err != nil {
		u.log.Warnf("Failed to update user %d: %+v", userID, err)
		return nil, err
	}

	return converter.UserToResponse(user), nil
}

func (u *userUsecase) ListUsers(ctx context.Context, limit, offset int) (*dto.UserListResponse, error) {
	if limit <= 0 {
		limit = 20
	}

	users, err := u.userRepo.FindAll(u.db.WithContext(ctx), limit, offset)
	if err != nil {
		u.log.Warnf("Failed to list users: %+v", err)
		return nil, err
	}

	return &dto.UserListResponse{
		Users: converter.UsersToResponses(users),
		Total: len(users),
	}, nil
}

// DeleteUser removes an account. Appointments, symptoms and medical
// records cascade at the database level.
func (u *userUsecase) DeleteUser(ctx context.Context, adminID uint, userID uint) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user %d: %+v", userID, err)
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	if err := u.audit.Record(tx, &adminID, entity.AuditActionUserDelete, "user", userID, user.Email); err != nil {
		return err
	}

	if err := u.userRepo.Delete(tx, userID); err != nil {
		u.log.Warnf("Failed to delete user %d: %+v", userID, err)
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	u.log.Infof("User %d deleted by admin %d", userID, adminID)
	return nil
}
