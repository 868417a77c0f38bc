package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create books an appointment for the authenticated patient.
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.Error(w, http.StatusBadRequest, "Doctor not found", nil)
		case usecase.ErrDepartmentMismatch:
			response.Error(w, http.StatusBadRequest, "Doctor does not belong to the requested department", nil)
		case usecase.ErrInvalidDateFormat, usecase.ErrInvalidDepartment:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrUserNotInContext:
			response.Unauthorized(w, "User is not authenticated")
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment Sent!", appointment)
}

func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment Not Found!")
		case usecase.ErrInvalidStatusTransition:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment Status Updated!", appointment)
}

func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment ID", nil)
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), appointmentID); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment Not Found!")
		default:
			response.InternalServerError(w, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment Deleted!", nil)
}
