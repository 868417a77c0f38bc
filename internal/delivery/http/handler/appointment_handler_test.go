package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type mockAppointmentUsecase struct {
	createFn       func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	deleteFn       func(ctx context.Context, id uuid.UUID) error
}

var _ usecase.AppointmentUsecase = (*mockAppointmentUsecase)(nil)

func (m *mockAppointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	return m.createFn(ctx, req)
}

func (m *mockAppointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	return &dto.AppointmentListResponse{}, nil
}

func (m *mockAppointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	return m.updateStatusFn(ctx, id, req)
}

func (m *mockAppointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func appointmentBody() []byte {
	body, _ := json.Marshal(map[string]any{
		"firstName":        "Jane",
		"lastName":         "Doe",
		"email":            "jane@example.com",
		"phone":            "03001234567",
		"nic":              "1234567890123",
		"dob":              "1990-05-20",
		"gender":           "Female",
		"appointment_date": "2026-10-01",
		"department":       "Cardiology",
		"doctor_firstName": "Greg",
		"doctor_lastName":  "House",
		"hasVisited":       false,
		"address":          "221B Baker Street",
	})
	return body
}

func TestCreateAppointmentHandler(t *testing.T) {
	uc := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return &dto.AppointmentResponse{ID: uuid.New(), Status: "Pending"}, nil
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointment/post", bytes.NewReader(appointmentBody()))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Appointment Sent!" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

// An unresolvable doctor is a client-side input problem, not a missing
// resource: the booking form sent a name that matches no single doctor.
func TestCreateAppointmentHandlerDoctorNotFound(t *testing.T) {
	uc := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrDoctorNotFound
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointment/post", bytes.NewReader(appointmentBody()))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestCreateAppointmentHandlerDepartmentMismatch(t *testing.T) {
	uc := &mockAppointmentUsecase{
		createFn: func(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrDepartmentMismatch
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointment/post", bytes.NewReader(appointmentBody()))
	rec := httptest.NewRecorder()
	h.Create(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestUpdateAppointmentStatusHandler(t *testing.T) {
	appointmentID := uuid.New()
	uc := &mockAppointmentUsecase{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
			if id != appointmentID {
				t.Errorf("expected id %s, got %s", appointmentID, id)
			}
			return &dto.AppointmentResponse{ID: id, Status: req.Status}, nil
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	body, _ := json.Marshal(map[string]any{"status": "Accepted"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointment/"+appointmentID.String(), bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": appointmentID.String()})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Appointment Status Updated!" {
		t.Errorf("unexpected message %q", env.Message)
	}
}

func TestUpdateAppointmentStatusHandlerUnknownStatus(t *testing.T) {
	h := NewAppointmentHandler(&mockAppointmentUsecase{}, validator.NewValidator())

	body, _ := json.Marshal(map[string]any{"status": "Cancelled"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointment/"+uuid.NewString(), bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown status, got %d", rec.Code)
	}
}

func TestUpdateAppointmentStatusHandlerInvalidTransition(t *testing.T) {
	uc := &mockAppointmentUsecase{
		updateStatusFn: func(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
			return nil, usecase.ErrInvalidStatusTransition
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	body, _ := json.Marshal(map[string]any{"status": "Accepted"})
	req := httptest.NewRequest(http.MethodPut, "/api/v1/appointment/"+uuid.NewString(), bytes.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.UpdateStatus(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestDeleteAppointmentHandlerNotFound(t *testing.T) {
	uc := &mockAppointmentUsecase{
		deleteFn: func(ctx context.Context, id uuid.UUID) error {
			return usecase.ErrAppointmentNotFound
		},
	}
	h := NewAppointmentHandler(uc, validator.NewValidator())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/appointment/"+uuid.NewString(), nil)
	req = mux.SetURLVars(req, map[string]string{"id": uuid.NewString()})
	rec := httptest.NewRecorder()
	h.Delete(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	env := decodeEnvelope(t, rec)
	if env.Message != "Appointment Not Found!" {
		t.Errorf("unexpected message %q", env.Message)
	}
}
