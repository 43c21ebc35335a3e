package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"telemed-scheduler/internal/delivery/dto"
	"telemed-scheduler/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

// mockPrescriptionRepo keeps prescriptions in memory so the sweep
// tests can assert idempotence against real state.
type mockPrescriptionRepo struct {
	prescriptions map[uint]*entity.Prescription
	nextID        uint
}

func newMockPrescriptionRepo() *mockPrescriptionRepo {
	return &mockPrescriptionRepo{
		prescriptions: map[uint]*entity.Prescription{},
		nextID:        1,
	}
}

func (m *mockPrescriptionRepo) Create(_ *gorm.DB, prescription *entity.Prescription) error {
	prescription.ID = m.nextID
	m.nextID++
	copied := *prescription
	m.prescriptions[prescription.ID] = &copied
	return nil
}

func (m *mockPrescriptionRepo) FindByID(_ *gorm.DB, id uint) (*entity.Prescription, error) {
	if p, ok := m.prescriptions[id]; ok {
		copied := *p
		return &copied, nil
	}
	return nil, nil
}

func (m *mockPrescriptionRepo) FindByDoctor(_ *gorm.DB, doctorID uint, status *entity.PrescriptionStatus) ([]entity.Prescription, error) {
	var out []entity.Prescription
	for _, p := range m.prescriptions {
		if p.DoctorID != doctorID {
			continue
		}
		if status != nil && p.Status != *status {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (m *mockPrescriptionRepo) FindByMedication(_ *gorm.DB, doctorID uint, medication string) ([]entity.Prescription, error) {
	var out []entity.Prescription
	for _, p := range m.prescriptions {
		if p.DoctorID == doctorID && p.MedicationName == medication {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *mockPrescriptionRepo) UpdateStatus(_ *gorm.DB, id uint, status entity.PrescriptionStatus) error {
	if p, ok := m.prescriptions[id]; ok {
		p.Status = status
	}
	return nil
}

func (m *mockPrescriptionRepo) MarkExpired(_ *gorm.DB, now time.Time) ([]entity.Prescription, error) {
	var flipped []entity.Prescription
	for _, p := range m.prescriptions {
		if p.Status == entity.PrescriptionStatusActive && p.ExpiryDate.Before(now) {
			p.Status = entity.PrescriptionStatusExpired
			flipped = append(flipped, *p)
		}
	}
	return flipped, nil
}

func newTestPrescriptionUsecase(t *testing.T, prescriptionRepo *mockPrescriptionRepo, appointmentRepo *mockAppointmentRepo, doctorRepo *mockDoctorRepo) PrescriptionUsecase {
	t.Helper()

	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	return NewPrescriptionUsecase(db, log, prescriptionRepo, appointmentRepo, doctorRepo)
}

func ownDoctorRepo() *mockDoctorRepo {
	return &mockDoctorRepo{
		findByUserIDFn: func(userID uint) (*entity.Doctor, error) {
			d := approvedDoctor()
			d.UserID = userID
			return d, nil
		},
	}
}

func TestCreatePrescriptionDefaultsDuration(t *testing.T) {
	prescriptionRepo := newMockPrescriptionRepo()
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(id uint) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, DoctorID: 7, UserID: 5}, nil
		},
	}
	uc := newTestPrescriptionUsecase(t, prescriptionRepo, appointmentRepo, ownDoctorRepo())

	resp, err := uc.Create(context.Background(), 70, &dto.CreatePrescriptionRequest{
		AppointmentID:  1,
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Instructions:   "Three times daily after meals",
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)

	// Default duration is 30 days from now
	expected := time.Now().UTC().AddDate(0, 0, 30)
	assert.WithinDuration(t, expected, resp.ExpiryDate, time.Minute)
}

func TestCreatePrescriptionRejectsForeignAppointment(t *testing.T) {
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(id uint) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, DoctorID: 99, UserID: 5}, nil
		},
	}
	uc := newTestPrescriptionUsecase(t, newMockPrescriptionRepo(), appointmentRepo, ownDoctorRepo())

	_, err := uc.Create(context.Background(), 70, &dto.CreatePrescriptionRequest{
		AppointmentID:  1,
		MedicationName: "Amoxicillin",
		Dosage:         "500mg",
		Instructions:   "Three times daily",
	})
	assert.ErrorIs(t, err, ErrNotAppointmentDoctor)
}

func TestSweepExpiredTransitionsOnlyDueActives(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	prescriptionRepo := newMockPrescriptionRepo()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	seed := []entity.Prescription{
		{DoctorID: 7, AppointmentID: 1, MedicationName: "Past active", Status: entity.PrescriptionStatusActive, ExpiryDate: now.AddDate(0, 0, -1)},
		{DoctorID: 7, AppointmentID: 1, MedicationName: "Future active", Status: entity.PrescriptionStatusActive, ExpiryDate: now.AddDate(0, 0, 10)},
		{DoctorID: 7, AppointmentID: 1, MedicationName: "Past discontinued", Status: entity.PrescriptionStatusDiscontinued, ExpiryDate: now.AddDate(0, 0, -5)},
		{DoctorID: 7, AppointmentID: 1, MedicationName: "Already expired", Status: entity.PrescriptionStatusExpired, ExpiryDate: now.AddDate(0, 0, -30)},
	}
	for i := range seed {
		require.NoError(t, prescriptionRepo.Create(db, &seed[i]))
	}

	uc := newTestPrescriptionUsecase(t, prescriptionRepo, &mockAppointmentRepo{}, ownDoctorRepo())

	count, err := uc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// Only the overdue ACTIVE row flipped
	p, err := prescriptionRepo.FindByID(db, seed[0].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionStatusExpired, p.Status)

	p, err = prescriptionRepo.FindByID(db, seed[1].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionStatusActive, p.Status)

	p, err = prescriptionRepo.FindByID(db, seed[2].ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PrescriptionStatusDiscontinued, p.Status)
}

func TestSweepExpiredIsIdempotent(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	prescriptionRepo := newMockPrescriptionRepo()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	overdue := entity.Prescription{DoctorID: 7, AppointmentID: 1, MedicationName: "Ibuprofen", Status: entity.PrescriptionStatusActive, ExpiryDate: now.AddDate(0, 0, -2)}
	require.NoError(t, prescriptionRepo.Create(db, &overdue))

	uc := newTestPrescriptionUsecase(t, prescriptionRepo, &mockAppointmentRepo{}, ownDoctorRepo())

	count, err := uc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = uc.SweepExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}

func TestCheckExpiredReturnsNewlyExpiredRows(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	prescriptionRepo := newMockPrescriptionRepo()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	overdue := entity.Prescription{DoctorID: 7, AppointmentID: 1, MedicationName: "Lisinopril", Status: entity.PrescriptionStatusActive, ExpiryDate: now.AddDate(0, 0, -3)}
	current := entity.Prescription{DoctorID: 7, AppointmentID: 2, MedicationName: "Metformin", Status: entity.PrescriptionStatusActive, ExpiryDate: now.AddDate(0, 0, 7)}
	require.NoError(t, prescriptionRepo.Create(db, &overdue))
	require.NoError(t, prescriptionRepo.Create(db, &current))

	uc := newTestPrescriptionUsecase(t, prescriptionRepo, &mockAppointmentRepo{}, ownDoctorRepo())

	result, err := uc.CheckExpired(context.Background(), now)
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	require.Len(t, result.Prescriptions, 1)
	assert.Equal(t, "Lisinopril", result.Prescriptions[0].MedicationName)
	assert.Equal(t, string(entity.PrescriptionStatusExpired), result.Prescriptions[0].Status)
}

func TestUpdateStatusCannotSetExpired(t *testing.T) {
	uc := newTestPrescriptionUsecase(t, newMockPrescriptionRepo(), &mockAppointmentRepo{}, ownDoctorRepo())

	_, err := uc.UpdateStatus(context.Background(), 70, 1, "EXPIRED")
	assert.ErrorIs(t, err, ErrInvalidPrescriptionStatus)
}

func TestUpdateStatusGuardsOwnership(t *testing.T) {
	prescriptionRepo := newMockPrescriptionRepo()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	foreign := entity.Prescription{DoctorID: 99, AppointmentID: 1, MedicationName: "Metformin", Status: entity.PrescriptionStatusActive, ExpiryDate: time.Now().AddDate(0, 0, 10)}
	require.NoError(t, prescriptionRepo.Create(db, &foreign))

	uc := newTestPrescriptionUsecase(t, prescriptionRepo, &mockAppointmentRepo{}, ownDoctorRepo())

	_, err = uc.UpdateStatus(context.Background(), 70, foreign.ID, "DISCONTINUED")
	assert.ErrorIs(t, err, ErrPrescriptionNotYourOwn)
}
