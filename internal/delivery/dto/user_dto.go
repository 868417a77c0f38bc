package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs. Field names follow the wire format the web clients already
// send; dates travel as YYYY-MM-DD strings.

type RegisterPatientRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
	NIC       string `json:"nic" validate:"required,len=13"`
	DOB       string `json:"dob" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
	Password  string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
	Role            string `json:"role" validate:"required,oneof=Patient Doctor Admin"`
}

type AddAdminRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
	NIC       string `json:"nic" validate:"required,len=13"`
	DOB       string `json:"dob" validate:"required"`
	Gender    string `json:"gender" validate:"required,oneof=Male Female"`
	Password  string `json:"password" validate:"required,min=8"`
}

// CreateDoctorRequest arrives as multipart form fields; the handler maps the
// form into this struct before validation.
type CreateDoctorRequest struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=20"`
	NIC        string `json:"nic" validate:"required,len=13"`
	DOB        string `json:"dob" validate:"required"`
	Gender     string `json:"gender" validate:"required,oneof=Male Female"`
	Password   string `json:"password" validate:"required,min=8"`
	Department string `json:"doctorDepartment" validate:"required"`
}

type UpdateDoctorRequest struct {
	FirstName  string `json:"firstName" validate:"required"`
	LastName   string `json:"lastName" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=10,max=20"`
	NIC        string `json:"nic" validate:"required,len=13"`
	DOB        string `json:"dob" validate:"required"`
	Gender     string `json:"gender" validate:"required,oneof=Male Female"`
	Department string `json:"doctorDepartment" validate:"required"`
}

// Response DTOs

type AvatarResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"url"`
}

type UserResponse struct {
	ID         uuid.UUID       `json:"id"`
	FirstName  string          `json:"firstName"`
	LastName   string          `json:"lastName"`
	Email      string          `json:"email"`
	Phone      string          `json:"phone"`
	NIC        string          `json:"nic"`
	DOB        string          `json:"dob"`
	Gender     string          `json:"gender"`
	Role       string          `json:"role"`
	Department string          `json:"doctorDepartment,omitempty"`
	DocAvatar  *AvatarResponse `json:"docAvatar,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []UserResponse `json:"doctors"`
	Total   int            `json:"total"`
}
