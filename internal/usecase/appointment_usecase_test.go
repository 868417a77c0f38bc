package usecase

import (
	"context"
	"testing"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"

	"github.com/google/uuid"
)

type mockAppointmentRepo struct {
	createFn   func(ctx context.Context, appointment *entity.Appointment) error
	findAllFn  func(ctx context.Context) ([]entity.Appointment, error)
	findByIDFn func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	updateFn   func(ctx context.Context, appointment *entity.Appointment) error
	deleteFn   func(ctx context.Context, id uuid.UUID) error
}

var _ repository.AppointmentRepository = (*mockAppointmentRepo)(nil)

func (m *mockAppointmentRepo) Create(ctx context.Context, appointment *entity.Appointment) error {
	if m.createFn != nil {
		return m.createFn(ctx, appointment)
	}
	return nil
}

func (m *mockAppointmentRepo) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, appointment)
	}
	return nil
}

func (m *mockAppointmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, id)
	}
	return nil
}

func newTestAppointmentUsecase(appointmentRepo *mockAppointmentRepo, userRepo *mockUserRepo, audit *mockAuditService) AppointmentUsecase {
	if appointmentRepo == nil {
		appointmentRepo = &mockAppointmentRepo{}
	}
	if userRepo == nil {
		userRepo = &mockUserRepo{}
	}
	if audit == nil {
		audit = &mockAuditService{}
	}
	return NewAppointmentUsecase(testLogger(), appointmentRepo, userRepo, audit)
}

func patientContext() (context.Context, *entity.User) {
	patient := &entity.User{ID: uuid.New(), Role: entity.RolePatient, Email: "jane@example.com"}
	return context.WithValue(context.Background(), middleware.UserKey, patient), patient
}

func validAppointmentRequest() *dto.CreateAppointmentRequest {
	return &dto.CreateAppointmentRequest{
		FirstName:       "Jane",
		LastName:        "Doe",
		Email:           "jane@example.com",
		Phone:           "03001234567",
		NIC:             "1234567890123",
		DOB:             "1990-05-20",
		Gender:          "Female",
		AppointmentDate: "2026-10-01",
		Department:      "Cardiology",
		DoctorFirstName: "Greg",
		DoctorLastName:  "House",
		Address:         "221B Baker Street",
	}
}

func cardiologist() entity.User {
	return entity.User{
		ID:         uuid.New(),
		FirstName:  "Greg",
		LastName:   "House",
		Role:       entity.RoleDoctor,
		Department: "Cardiology",
	}
}

func TestCreateAppointment(t *testing.T) {
	doctor := cardiologist()
	userRepo := &mockUserRepo{
		findDoctorsByNameFn: func(ctx context.Context, firstName, lastName string) ([]entity.User, error) {
			return []entity.User{doctor}, nil
		},
	}
	var created *entity.Appointment
	appointmentRepo := &mockAppointmentRepo{
		createFn: func(ctx context.Context, appointment *entity.Appointment) error {
			appointment.ID = uuid.New()
			created = appointment
			return nil
		},
	}
	audit := &mockAuditService{}
	uc := newTestAppointmentUsecase(appointmentRepo, userRepo, audit)

	ctx, patient := patientContext()
	resp, err := uc.Create(ctx, validAppointmentRequest())
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if created.Status != entity.AppointmentStatusPending {
		t.Errorf("new appointments start Pending, got %s", created.Status)
	}
	if created.DoctorID != doctor.ID {
		t.Errorf("expected doctor id %s, got %s", doctor.ID, created.DoctorID)
	}
	if created.PatientID != patient.ID {
		t.Errorf("expected patient id %s, got %s", patient.ID, created.PatientID)
	}
	if resp.Status != "Pending" {
		t.Errorf("expected Pending response status, got %s", resp.Status)
	}
	if resp.Doctor.FirstName != "Greg" || resp.Doctor.LastName != "House" {
		t.Errorf("unexpected doctor snapshot %+v", resp.Doctor)
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionAppointmentCreate {
		t.Errorf("expected appointment.create audit entry, got %v", audit.actions)
	}
}

func TestCreateAppointmentRequiresPatientContext(t *testing.T) {
	uc := newTestAppointmentUsecase(nil, nil, nil)

	if _, err := uc.Create(context.Background(), validAppointmentRequest()); err != ErrUserNotInContext {
		t.Fatalf("expected ErrUserNotInContext, got %v", err)
	}
}

// Zero matches and multiple matches both refuse the booking rather than
// guessing which doctor was meant.
func TestCreateAppointmentDoctorResolution(t *testing.T) {
	cases := []struct {
		name    string
		doctors []entity.User
	}{
		{"no match", nil},
		{"ambiguous match", []entity.User{cardiologist(), cardiologist()}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			userRepo := &mockUserRepo{
				findDoctorsByNameFn: func(ctx context.Context, firstName, lastName string) ([]entity.User, error) {
					return tc.doctors, nil
				},
			}
			uc := newTestAppointmentUsecase(nil, userRepo, nil)

			ctx, _ := patientContext()
			if _, err := uc.Create(ctx, validAppointmentRequest()); err != ErrDoctorNotFound {
				t.Errorf("expected ErrDoctorNotFound, got %v", err)
			}
		})
	}
}

func TestCreateAppointmentDepartmentMismatch(t *testing.T) {
	doctor := cardiologist()
	doctor.Department = "Oncology"
	userRepo := &mockUserRepo{
		findDoctorsByNameFn: func(ctx context.Context, firstName, lastName string) ([]entity.User, error) {
			return []entity.User{doctor}, nil
		},
	}
	uc := newTestAppointmentUsecase(nil, userRepo, nil)

	ctx, _ := patientContext()
	if _, err := uc.Create(ctx, validAppointmentRequest()); err != ErrDepartmentMismatch {
		t.Fatalf("expected ErrDepartmentMismatch, got %v", err)
	}
}

func TestCreateAppointmentUnknownDepartment(t *testing.T) {
	lookupCalled := false
	userRepo := &mockUserRepo{
		findDoctorsByNameFn: func(ctx context.Context, firstName, lastName string) ([]entity.User, error) {
			lookupCalled = true
			return nil, nil
		},
	}
	uc := newTestAppointmentUsecase(nil, userRepo, nil)

	ctx, _ := patientContext()
	req := validAppointmentRequest()
	req.Department = "Astrology"
	if _, err := uc.Create(ctx, req); err != ErrInvalidDepartment {
		t.Fatalf("expected ErrInvalidDepartment, got %v", err)
	}
	if lookupCalled {
		t.Error("unknown department should fail before the doctor lookup")
	}
}

func TestCreateAppointmentBadDates(t *testing.T) {
	uc := newTestAppointmentUsecase(nil, nil, nil)
	ctx, _ := patientContext()

	req := validAppointmentRequest()
	req.DOB = "not-a-date"
	if _, err := uc.Create(ctx, req); err != ErrInvalidDateFormat {
		t.Errorf("expected ErrInvalidDateFormat for dob, got %v", err)
	}

	req = validAppointmentRequest()
	req.AppointmentDate = "01/10/2026"
	if _, err := uc.Create(ctx, req); err != ErrInvalidDateFormat {
		t.Errorf("expected ErrInvalidDateFormat for appointment date, got %v", err)
	}
}

func TestUpdateAppointmentStatus(t *testing.T) {
	appointmentID := uuid.New()
	appointment := &entity.Appointment{ID: appointmentID, Status: entity.AppointmentStatusPending}
	var updated *entity.Appointment
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			if id == appointmentID {
				return appointment, nil
			}
			return nil, nil
		},
		updateFn: func(ctx context.Context, a *entity.Appointment) error {
			updated = a
			return nil
		},
	}
	uc := newTestAppointmentUsecase(appointmentRepo, nil, nil)

	resp, err := uc.UpdateStatus(context.Background(), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "Accepted"})
	if err != nil {
		t.Fatalf("UpdateStatus failed: %v", err)
	}
	if updated == nil || updated.Status != entity.AppointmentStatusAccepted {
		t.Errorf("expected persisted Accepted status, got %+v", updated)
	}
	if resp.Status != "Accepted" {
		t.Errorf("unexpected response status %s", resp.Status)
	}
}

func TestUpdateAppointmentStatusSameStatusSkipsWrite(t *testing.T) {
	appointmentID := uuid.New()
	updateCalled := false
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: appointmentID, Status: entity.AppointmentStatusAccepted}, nil
		},
		updateFn: func(ctx context.Context, a *entity.Appointment) error {
			updateCalled = true
			return nil
		},
	}
	uc := newTestAppointmentUsecase(appointmentRepo, nil, nil)

	resp, err := uc.UpdateStatus(context.Background(), appointmentID, &dto.UpdateAppointmentStatusRequest{Status: "Accepted"})
	if err != nil {
		t.Fatalf("same-status update should succeed, got %v", err)
	}
	if updateCalled {
		t.Error("same-status update must not write")
	}
	if resp.Status != "Accepted" {
		t.Errorf("unexpected response status %s", resp.Status)
	}
}

func TestUpdateAppointmentStatusTerminal(t *testing.T) {
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			return &entity.Appointment{ID: id, Status: entity.AppointmentStatusRejected}, nil
		},
	}
	uc := newTestAppointmentUsecase(appointmentRepo, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), &dto.UpdateAppointmentStatusRequest{Status: "Accepted"})
	if err != ErrInvalidStatusTransition {
		t.Fatalf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestUpdateAppointmentStatusNotFound(t *testing.T) {
	uc := newTestAppointmentUsecase(&mockAppointmentRepo{}, nil, nil)

	_, err := uc.UpdateStatus(context.Background(), uuid.New(), &dto.UpdateAppointmentStatusRequest{Status: "Accepted"})
	if err != ErrAppointmentNotFound {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestDeleteAppointment(t *testing.T) {
	appointmentID := uuid.New()
	deleted := false
	appointmentRepo := &mockAppointmentRepo{
		findByIDFn: func(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
			if id == appointmentID {
				return &entity.Appointment{ID: appointmentID}, nil
			}
			return nil, nil
		},
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			deleted = true
			return nil
		},
	}
	audit := &mockAuditService{}
	uc := newTestAppointmentUsecase(appointmentRepo, nil, audit)

	if err := uc.Delete(context.Background(), appointmentID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("expected repository delete call")
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionAppointmentDelete {
		t.Errorf("expected appointment.delete audit entry, got %v", audit.actions)
	}
}

func TestDeleteAppointmentNotFound(t *testing.T) {
	uc := newTestAppointmentUsecase(&mockAppointmentRepo{}, nil, nil)

	if err := uc.Delete(context.Background(), uuid.New()); err != ErrAppointmentNotFound {
		t.Fatalf("expected ErrAppointmentNotFound, got %v", err)
	}
}

func TestGetAllAppointments(t *testing.T) {
	appointmentRepo := &mockAppointmentRepo{
		findAllFn: func(ctx context.Context) ([]entity.Appointment, error) {
			return []entity.Appointment{
				{ID: uuid.New(), Status: entity.AppointmentStatusPending},
				{ID: uuid.New(), Status: entity.AppointmentStatusAccepted},
			}, nil
		},
	}
	uc := newTestAppointmentUsecase(appointmentRepo, nil, nil)

	resp, err := uc.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("expected 2 appointments, got %d", resp.Total)
	}
}
