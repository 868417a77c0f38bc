package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateAppointmentRequest struct {
	FirstName       string `json:"firstName" validate:"required"`
	LastName        string `json:"lastName" validate:"required"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,min=10,max=20"`
	NIC             string `json:"nic" validate:"required,len=13"`
	DOB             string `json:"dob" validate:"required"`
	Gender          string `json:"gender" validate:"required,oneof=Male Female"`
	AppointmentDate string `json:"appointment_date" validate:"required"`
	Department      string `json:"department" validate:"required"`
	DoctorFirstName string `json:"doctor_firstName" validate:"required"`
	DoctorLastName  string `json:"doctor_lastName" validate:"required"`
	HasVisited      bool   `json:"hasVisited"`
	Address         string `json:"address" validate:"required"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Accepted Rejected"`
}

// Response DTOs

type AppointmentDoctorResponse struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type AppointmentResponse struct {
	ID              uuid.UUID                 `json:"id"`
	FirstName       string                    `json:"firstName"`
	LastName        string                    `json:"lastName"`
	Email           string                    `json:"email"`
	Phone           string                    `json:"phone"`
	NIC             string                    `json:"nic"`
	DOB             string                    `json:"dob"`
	Gender          string                    `json:"gender"`
	AppointmentDate string                    `json:"appointment_date"`
	Department      string                    `json:"department"`
	DoctorID        uuid.UUID                 `json:"doctorId"`
	Doctor          AppointmentDoctorResponse `json:"doctor"`
	HasVisited      bool                      `json:"hasVisited"`
	Address         string                    `json:"address"`
	PatientID       uuid.UUID                 `json:"patientId"`
	Status          string                    `json:"status"`
	CreatedAt       time.Time                 `json:"created_at"`
	UpdatedAt       time.Time                 `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
