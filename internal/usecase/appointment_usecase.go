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
	"telemed-scheduler/internal/service"
	"telemed-scheduler/pkg/clock"
	"telemed-scheduler/pkg/timezone"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorUnavailable   = errors.New("doctor already has an appointment at this time")
	ErrUserAlreadyBooked   = errors.New("you already have an appointment at this time")
	ErrAppointmentInPast   = errors.New("appointment must be scheduled for a future time")
	ErrEmptyNote           = errors.New("appointment note cannot be empty")
	ErrInvalidTimezone     = errors.New("unknown timezone name")
	ErrInvalidDateFormat   = errors.New("invalid date format, use YYYY-MM-DD")
	ErrInvalidTimeFormat   = errors.New("invalid time format, use HH:MM")
	ErrInvalidStatus       = errors.New("invalid appointment status")
	ErrIllegalTransition   = errors.New("appointment is not in a transitionable state")
)

type AppointmentUsecase interface {
	Schedule(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Get(ctx context.Context, appointmentID uint, viewerTimezone string) (*dto.AppointmentResponse, error)
	List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	TransitionStatus(ctx context.Context, appointmentID uint, newStatus string) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	reminders       service.ReminderScheduler
	clock           clock.Clock
	zones           timezone.Resolver
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	reminders service.ReminderScheduler,
	clk clock.Clock,
	zones timezone.Resolver,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		reminders:       reminders,
		clock:           clk,
		zones:           zones,
	}
}

// Schedule books a consultation slot.
//
// Flow:
// 1. Trim and validate the note
// 2. Resolve the doctor; must exist and be APPROVED
// 3. Convert the local date/time to UTC via the caller's IANA zone
// 4. Pre-check doctor and user slot conflicts against UTC-stored rows
// 5. Reject instants at or before now
// 6. Insert (single statement; the partial unique index backstops the
//    pre-check under concurrency)
// 7. Queue a reminder for one hour before the slot, fire-and-forget
func (u *appointmentUsecase) Schedule(ctx context.Context, userID uint, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	note := strings.TrimSpace(req.Note)
	if note == "" {
		return nil, ErrEmptyNote
	}

	db := u.db.WithContext(ctx)

	// Step 2: Resolve doctor; only APPROVED doctors are bookable
	doctor, err := u.doctorRepo.FindByID(db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsApproved() {
		return nil, ErrDoctorNotFound
	}

	// Step 3: Convert the caller's local slot to UTC before any
	// comparison; stored rows are always UTC.
	loc, err := u.zones.Resolve(req.Timezone)
	if err != nil {
		return nil, ErrInvalidTimezone
	}

	localDate, err := time.Parse(entity.DateLayout, req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	localClock, err := time.Parse(entity.TimeLayout, req.AppointmentTime)
	if err != nil {
		return nil, ErrInvalidTimeFormat
	}

	utcInstant := time.Date(
		localDate.Year(), localDate.Month(), localDate.Day(),
		localClock.Hour(), localClock.Minute(), 0, 0,
		loc,
	).UTC()
	utcDate := time.Date(utcInstant.Year(), utcInstant.Month(), utcInstant.Day(), 0, 0, 0, 0, time.UTC)
	utcTime := utcInstant.Format(entity.TimeLayout)

	// Step 4: slot conflicts; the doctor check takes precedence
	conflict, err := u.appointmentRepo.FindDoctorConflict(db, req.DoctorID, utcDate, utcTime)
	if err != nil {
		u.log.Warnf("Failed doctor conflict check for doctor %d: %+v", req.DoctorID, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrDoctorUnavailable
	}

	conflict, err = u.appointmentRepo.FindUserConflict(db, userID, utcDate, utcTime)
	if err != nil {
		u.log.Warnf("Failed user conflict check for user %d: %+v", userID, err)
		return nil, err
	}
	if conflict != nil {
		return nil, ErrUserAlreadyBooked
	}

	// Step 5: an appointment at the exact current second is rejected
	if !utcInstant.After(u.clock.Now()) {
		return nil, ErrAppointmentInPast
	}

	// Step 6: insert is the last mutating step, so failures leave no
	// partial row.
	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		UserID:          userID,
		AppointmentDate: utcDate,
		AppointmentTime: utcTime,
		Note:            note,
		Status:          entity.AppointmentStatusScheduled,
	}

	if err := u.appointmentRepo.Create(db, appointment); err != nil {
		// A concurrent booking can slip past the pre-check; the
		// partial unique index reports it here.
		if isDuplicateKeyError(err, "uidx_doctor_slot") {
			return nil, ErrDoctorUnavailable
		}
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	// Step 7: reminder scheduling must not fail the booking
	reminderCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	reminder := service.AppointmentReminder{
		AppointmentID: appointment.ID,
		DoctorID:      appointment.DoctorID,
		UserID:        appointment.UserID,
		ETA:           utcInstant.Add(-time.Hour),
	}
	if err := u.reminders.ScheduleReminder(reminderCtx, reminder); err != nil {
		u.log.Warnf("Failed to queue reminder for appointment %d (non-fatal): %+v", appointment.ID, err)
	}

	u.log.Infof("Appointment created: id=%d, doctor=%d, user=%d, slot=%s %s UTC",
		appointment.ID, appointment.DoctorID, appointment.UserID,
		utcDate.Format(entity.DateLayout), utcTime)

	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment, time.UTC), nil
}

// Get loads an appointment and presents its UTC slot in the viewer's
// timezone. An empty viewer timezone falls back to UTC.
func (u *appointmentUsecase) Get(ctx context.Context, appointmentID uint, viewerTimezone string) (*dto.AppointmentResponse, error) {
	loc := time.UTC
	if viewerTimezone != "" {
		var err error
		loc, err = u.zones.Resolve(viewerTimezone)
		if err != nil {
			return nil, ErrInvalidTimezone
		}
	}

	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment, loc), nil
}

func (u *appointmentUsecase) List(ctx context.Context, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	startDate, err := time.Parse(entity.DateLayout, req.StartDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	endDate, err := time.Parse(entity.DateLayout, req.EndDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 20
	}

	filter := entity.AppointmentFilter{
		StartDate: startDate,
		EndDate:   endDate,
		DoctorID:  req.DoctorID,
		UserID:    req.UserID,
		Limit:     limit,
		Offset:    req.Offset,
	}

	appointments, err := u.appointmentRepo.FindByFilter(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments, time.UTC),
		Total:        len(appointments),
	}, nil
}

// TransitionStatus moves a SCHEDULED appointment to COMPLETED or
// CANCELLED. Cancellation is a status change, never a row removal.
func (u *appointmentUsecase) TransitionStatus(ctx context.Context, appointmentID uint, newStatus string) (*dto.AppointmentResponse, error) {
	target := entity.AppointmentStatus(strings.ToUpper(strings.TrimSpace(newStatus)))
	if !target.IsValid() || target == entity.AppointmentStatusScheduled {
		return nil, ErrInvalidStatus
	}

	db := u.db.WithContext(ctx)

	appointment, err := u.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	if !appointment.CanTransitionTo(target) {
		return nil, ErrIllegalTransition
	}

	// Conditional update; a concurrent transition makes RowsAffected 0.
	affected, err := u.appointmentRepo.UpdateStatus(db, appointmentID, target)
	if err != nil {
		u.log.Warnf("Failed to update appointment %d status: %+v", appointmentID, err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrIllegalTransition
	}

	appointment.Status = target
	appointment.UpdatedAt = time.Now().UTC()

	u.log.Infof("Appointment %d transitioned to %s", appointmentID, target)
	return converter.AppointmentToResponse(appointment, time.UTC), nil
}
