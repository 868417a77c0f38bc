package usecase

import (
	"context"
	"errors"
	"time"

	"hospital-management-backend/internal/converter"
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"
	"hospital-management-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound     = errors.New("appointment not found")
	ErrDepartmentMismatch      = errors.New("doctor does not belong to the selected department")
	ErrInvalidStatusTransition = errors.New("appointment status transition not allowed")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAll(ctx context.Context) (*dto.AppointmentListResponse, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	userRepo        repository.UserRepository
	auditService    service.AuditService
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		userRepo:        userRepo,
		auditService:    auditService,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	patient, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}
	appointmentDate, err := time.Parse(dateLayout, req.AppointmentDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrInvalidDepartment
	}

	// The booking form still submits the doctor's name. Resolve it to an
	// id here; zero or multiple matches is a hard failure, never a silent
	// pick.
	doctors, err := u.userRepo.FindDoctorsByName(ctx, req.DoctorFirstName, req.DoctorLastName)
	if err != nil {
		u.log.Warnf("Failed to look up doctor %s %s: %+v", req.DoctorFirstName, req.DoctorLastName, err)
		return nil, err
	}
	if len(doctors) != 1 {
		return nil, ErrDoctorNotFound
	}
	doctor := doctors[0]

	if doctor.Department != req.Department {
		return nil, ErrDepartmentMismatch
	}

	appointment := &entity.Appointment{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		NIC:             req.NIC,
		DateOfBirth:     dob,
		Gender:          req.Gender,
		AppointmentDate: appointmentDate,
		Department:      req.Department,
		DoctorID:        doctor.ID,
		DoctorFirstName: doctor.FirstName,
		DoctorLastName:  doctor.LastName,
		HasVisited:      req.HasVisited,
		Address:         req.Address,
		PatientID:       patient.ID,
		Status:          entity.AppointmentStatusPending,
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &patient.ID, entity.AuditActionAppointmentCreate, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      doctor.ID.String(),
		"department":     appointment.Department,
	})

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAll(ctx context.Context) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	newStatus := entity.AppointmentStatus(req.Status)
	if !appointment.Status.CanTransitionTo(newStatus) {
		return nil, ErrInvalidStatusTransition
	}

	// Same-status updates are accepted without touching the record.
	if appointment.Status != newStatus {
		appointment.Status = newStatus
		if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
			u.log.Warnf("Failed to update appointment %s: %+v", id, err)
			return nil, err
		}

		var callerID *uuid.UUID
		if caller, ok := middleware.GetUserFromContext(ctx); ok {
			callerID = &caller.ID
		}
		u.auditService.Record(ctx, callerID, entity.AuditActionAppointmentStatus, entity.JSON{
			"appointment_id": appointment.ID.String(),
			"status":         string(newStatus),
		})
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", id, err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	if err := u.appointmentRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete appointment %s: %+v", id, err)
		return err
	}

	var callerID *uuid.UUID
	if caller, ok := middleware.GetUserFromContext(ctx); ok {
		callerID = &caller.ID
	}
	u.auditService.Record(ctx, callerID, entity.AuditActionAppointmentDelete, entity.JSON{
		"appointment_id": id.String(),
	})

	return nil
}
