package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"
	"telemed-scheduler/internal/service"
	"telemed-scheduler/pkg/timezone"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// mockAppointmentRepo implements repository.AppointmentRepository with
// function fields so each test wires only what it needs.
type mockAppointmentRepo struct {
	createFn             func(appointment *entity.Appointment) error
	findByIDFn           func(id uint) (*entity.Appointment, error)
	findDoctorConflictFn func(doctorID uint, date time.Time, timeOfDay string) (*entity.Appointment, error)
	findUserConflictFn   func(userID uint, date time.Time, timeOfDay string) (*entity.Appointment, error)
	findByFilterFn       func(filter entity.AppointmentFilter) ([]entity.Appointment, error)
	updateStatusFn       func(id uint, target entity.AppointmentStatus) (int64, error)
}

func (m *mockAppointmentRepo) Create(_ *gorm.DB, appointment *entity.Appointment) error {
	if m.createFn != nil {
		return m.createFn(appointment)
	}
	appointment.ID = 1
	return nil
}

func (m *mockAppointmentRepo) FindByID(_ *gorm.DB, id uint) (*entity.Appointment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindDoctorConflict(_ *gorm.DB, doctorID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	if m.findDoctorConflictFn != nil {
		return m.findDoctorConflictFn(doctorID, date, timeOfDay)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindUserConflict(_ *gorm.DB, userID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
	if m.findUserConflictFn != nil {
		return m.findUserConflictFn(userID, date, timeOfDay)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindByFilter(_ *gorm.DB, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	if m.findByFilterFn != nil {
		return m.findByFilterFn(filter)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ *gorm.DB, id uint, target entity.AppointmentStatus) (int64, error) {
	if m.updateStatusFn != nil {
		return m.updateStatusFn(id, target)
	}
	return 1, nil
}

type mockDoctorRepo struct {
	findByIDFn     func(id uint) (*entity.Doctor, error)
	findByUserIDFn func(userID uint) (*entity.Doctor, error)
}

func (m *mockDoctorRepo) Create(_ *gorm.DB, doctor *entity.Doctor) error { return nil }

func (m *mockDoctorRepo) FindByID(_ *gorm.DB, id uint) (*entity.Doctor, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(id)
	}
	return approvedDoctor(), nil
}

func (m *mockDoctorRepo) FindByUserID(_ *gorm.DB, userID uint) (*entity.Doctor, error) {
	if m.findByUserIDFn != nil {
		return m.findByUserIDFn(userID)
	}
	return nil, nil
}

func (m *mockDoctorRepo) FindApproved(_ *gorm.DB, limit, offset int) ([]entity.Doctor, error) {
	return nil, nil
}

func (m *mockDoctorRepo) FindBySpecialization(_ *gorm.DB, specialization string) ([]entity.Doctor, error) {
	return nil, nil
}

func (m *mockDoctorRepo) Search(_ *gorm.DB, keyword string, limit, offset int) ([]entity.Doctor, error) {
	return nil, nil
}

func (m *mockDoctorRepo) Update(_ *gorm.DB, doctor *entity.Doctor) error { return nil }

// recorderReminder captures scheduled reminders instead of publishing.
type recorderReminder struct {
	reminders []service.AppointmentReminder
	err       error
}

func (r *recorderReminder) ScheduleReminder(_ context.Context, reminder service.AppointmentReminder) error {
	if r.err != nil {
		return r.err
	}
	r.reminders = append(r.reminders, reminder)
	return nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

// stubZones resolves a fixed set of zone names without touching the
// host tzdata.
type stubZones struct {
	zones map[string]*time.Location
}

func (s stubZones) Resolve(name string) (*time.Location, error) {
	if loc, ok := s.zones[name]; ok {
		return loc, nil
	}
	return nil, timezone.ErrUnknownZone
}

func approvedDoctor() *entity.Doctor {
	return &entity.Doctor{
		ID:             7,
		UserID:         70,
		Specialization: "Cardiology",
		Status:         entity.DoctorStatusApproved,
		User: entity.User{
			ID:        70,
			FirstName: "Grace",
			LastName:  "Osei",
		},
	}
}

func newTestZones() stubZones {
	return stubZones{zones: map[string]*time.Location{
		"UTC":              time.UTC,
		"America/New_York": time.FixedZone("America/New_York", -4*60*60),
		"Asia/Jakarta":     time.FixedZone("Asia/Jakarta", 7*60*60),
	}}
}

func newTestAppointmentUsecase(t *testing.T, appointmentRepo *mockAppointmentRepo, doctorRepo *mockDoctorRepo, reminders *recorderReminder, now time.Time) AppointmentUsecase {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewAppointmentUsecase(db, log, appointmentRepo, doctorRepo, reminders, fixedClock{now: now}, newTestZones())
}

func TestScheduleConvertsLocalTimeToUTC(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var created *entity.Appointment
	appointmentRepo := &mockAppointmentRepo{
		createFn: func(a *entity.Appointment) error {
			a.ID = 42
			created = a
			return nil
		},
	}
	reminders := &recorderReminder{}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, reminders, now)

	resp, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Follow-up consultation",
		Timezone:        "America/New_York",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	// New York summer time is UTC-4, so 14:00 local is 18:00 UTC
	assert.Equal(t, "18:00", created.AppointmentTime)
	assert.Equal(t, "2026-06-15", created.AppointmentDate.Format(entity.DateLayout))
	assert.Equal(t, entity.AppointmentStatusScheduled, created.Status)

	assert.Equal(t, uint(42), resp.ID)
	assert.Equal(t, "Grace Osei", resp.DoctorName)
	assert.Equal(t, "Cardiology", resp.Specialization)

	require.Len(t, reminders.reminders, 1)
	assert.Equal(t, time.Date(2026, 6, 15, 17, 0, 0, 0, time.UTC), reminders.reminders[0].ETA)
}

func TestScheduleCrossesDateLineWhenConverting(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var created *entity.Appointment
	appointmentRepo := &mockAppointmentRepo{
		createFn: func(a *entity.Appointment) error {
			a.ID = 1
			created = a
			return nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	// 02:00 in Jakarta (UTC+7) is 19:00 the previous day in UTC
	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "02:00",
		Note:            "Early consult",
		Timezone:        "Asia/Jakarta",
	})
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "2026-06-14", created.AppointmentDate.Format(entity.DateLayout))
	assert.Equal(t, "19:00", created.AppointmentTime)
}

func TestScheduleRejectsEmptyNote(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "   ",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrEmptyNote)
}

func TestScheduleRejectsUnknownTimezone(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "Mars/Olympus_Mons",
	})
	assert.ErrorIs(t, err, ErrInvalidTimezone)
}

func TestScheduleRejectsUnapprovedDoctor(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	doctorRepo := &mockDoctorRepo{
		findByIDFn: func(id uint) (*entity.Doctor, error) {
			d := approvedDoctor()
			d.Status = entity.DoctorStatusPending
			return d, nil
		},
	}
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, doctorRepo, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestScheduleRejectsMissingDoctor(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	doctorRepo := &mockDoctorRepo{
		findByIDFn: func(id uint) (*entity.Doctor, error) { return nil, nil },
	}
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, doctorRepo, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        99,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestScheduleDetectsDoctorConflict(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findDoctorConflictFn: func(doctorID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
			return &entity.Appointment{ID: 3, DoctorID: doctorID}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestScheduleDetectsUserConflictAcrossDoctors(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findUserConflictFn: func(userID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
			// Same user, same slot, different doctor
			return &entity.Appointment{ID: 9, UserID: userID, DoctorID: 99}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrUserAlreadyBooked)
}

func TestScheduleDoctorConflictTakesPrecedence(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findDoctorConflictFn: func(doctorID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
			return &entity.Appointment{ID: 3}, nil
		},
		findUserConflictFn: func(userID uint, date time.Time, timeOfDay string) (*entity.Appointment, error) {
			return &entity.Appointment{ID: 9}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestScheduleRejectsPastAndPresentInstants(t *testing.T) {
	now := time.Date(2026, 6, 15, 14, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	// Exactly now is rejected, strictly future is required
	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrAppointmentInPast)

	_, err = uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-14",
		AppointmentTime: "10:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	assert.ErrorIs(t, err, ErrAppointmentInPast)
}

func TestSchedulePastCheckUsesConvertedInstant(t *testing.T) {
	// 13:00 New York is 17:00 UTC, which is still ahead of 16:30 UTC
	// even though 13:00 < 16:30 when read naively.
	now := time.Date(2026, 6, 15, 16, 30, 0, 0, time.UTC)

	appointmentRepo := &mockAppointmentRepo{}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "13:00",
		Note:            "Checkup",
		Timezone:        "America/New_York",
	})
	assert.NoError(t, err)
}

func TestScheduleSucceedsWhenReminderFails(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	reminders := &recorderReminder{err: context.DeadlineExceeded}
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, reminders, now)

	resp, err := uc.Schedule(context.Background(), 5, &dto.CreateAppointmentRequest{
		DoctorID:        7,
		AppointmentDate: "2026-06-15",
		AppointmentTime: "14:00",
		Note:            "Checkup",
		Timezone:        "UTC",
	})
	require.NoError(t, err)
	assert.Equal(t, "SCHEDULED", resp.Status)
}

func TestGetRendersSlotInViewerTimezone(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(id uint) (*entity.Appointment, error) {
			return &entity.Appointment{
				ID:              id,
				DoctorID:        7,
				UserID:          5,
				AppointmentDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
				AppointmentTime: "18:00",
				Note:            "Follow-up",
				Status:          entity.AppointmentStatusScheduled,
			}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	resp, err := uc.Get(context.Background(), 42, "America/New_York")
	require.NoError(t, err)
	assert.Equal(t, "14:00", resp.AppointmentTime)
	assert.Equal(t, "2026-06-15", resp.AppointmentDate)

	// No viewer zone means UTC passthrough
	resp, err = uc.Get(context.Background(), 42, "")
	require.NoError(t, err)
	assert.Equal(t, "18:00", resp.AppointmentTime)
}

func TestGetReturnsNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.Get(context.Background(), 404, "")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestTransitionStatusCompletesScheduledAppointment(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(id uint) (*entity.Appointment, error) {
			return &entity.Appointment{
				ID:              id,
				AppointmentDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
				AppointmentTime: "18:00",
				Status:          entity.AppointmentStatusScheduled,
			}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	resp, err := uc.TransitionStatus(context.Background(), 1, "completed")
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", resp.Status)
}

func TestTransitionStatusRejectsInvalidMembers(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	for _, status := range []string{"DONE", "", "SCHEDULED"} {
		_, err := uc.TransitionStatus(context.Background(), 1, status)
		assert.ErrorIs(t, err, ErrInvalidStatus, "status %q", status)
	}
}

func TestTransitionStatusRejectsTerminalStates(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	for _, from := range []entity.AppointmentStatus{entity.AppointmentStatusCompleted, entity.AppointmentStatusCancelled} {
		appointmentRepo := &mockAppointmentRepo{
			findByIDFn: func(id uint) (*entity.Appointment, error) {
				return &entity.Appointment{
					ID:              id,
					AppointmentDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
					AppointmentTime: "18:00",
					Status:          from,
				}, nil
			},
		}
		uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

		_, err := uc.TransitionStatus(context.Background(), 1, "CANCELLED")
		assert.ErrorIs(t, err, ErrIllegalTransition, "from %s", from)
	}
}

func TestTransitionStatusLosesRaceGracefully(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(id uint) (*entity.Appointment, error) {
			return &entity.Appointment{
				ID:              id,
				AppointmentDate: time.Date(2026, 6, 15, 0, 0, 0, 0, time.UTC),
				AppointmentTime: "18:00",
				Status:          entity.AppointmentStatusScheduled,
			}, nil
		},
		// A concurrent transition already moved the row
		updateStatusFn: func(id uint, target entity.AppointmentStatus) (int64, error) {
			return 0, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.TransitionStatus(context.Background(), 1, "CANCELLED")
	assert.ErrorIs(t, err, ErrIllegalTransition)
}

func TestTransitionStatusNotFound(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.TransitionStatus(context.Background(), 404, "COMPLETED")
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestListValidatesDates(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	uc := newTestAppointmentUsecase(t, &mockAppointmentRepo{}, &mockDoctorRepo{}, &recorderReminder{}, now)

	_, err := uc.List(context.Background(), &dto.ListAppointmentsRequest{
		StartDate: "15-06-2026",
		EndDate:   "2026-06-20",
	})
	assert.ErrorIs(t, err, ErrInvalidDateFormat)
}

func TestListPassesFilterThrough(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	var captured entity.AppointmentFilter
	appointmentRepo := &mockAppointmentRepo{
		findByFilterFn: func(filter entity.AppointmentFilter) ([]entity.Appointment, error) {
			captured = filter
			return []entity.Appointment{
				{
					ID:              1,
					AppointmentDate: time.Date(2026, 6, 16, 0, 0, 0, 0, time.UTC),
					AppointmentTime: "09:00",
					Status:          entity.AppointmentStatusScheduled,
				},
			}, nil
		},
	}
	uc := newTestAppointmentUsecase(t, appointmentRepo, &mockDoctorRepo{}, &recorderReminder{}, now)

	doctorID := uint(7)
	resp, err := uc.List(context.Background(), &dto.ListAppointmentsRequest{
		StartDate: "2026-06-15",
		EndDate:   "2026-06-20",
		DoctorID:  &doctorID,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Total)
	require.NotNil(t, captured.DoctorID)
	assert.Equal(t, uint(7), *captured.DoctorID)
	assert.Equal(t, 20, captured.Limit)
}
