package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the lifecycle state of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusPending  AppointmentStatus = "Pending"
	AppointmentStatusAccepted AppointmentStatus = "Accepted"
	AppointmentStatusRejected AppointmentStatus = "Rejected"
)

// IsValid reports whether s is a known status value.
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusPending, AppointmentStatusAccepted, AppointmentStatusRejected:
		return true
	}
	return false
}

// CanTransitionTo reports whether the move from s to next is allowed.
// Pending may become Accepted or Rejected; both of those are terminal.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	if s == next {
		return true
	}
	if s != AppointmentStatusPending {
		return false
	}
	return next == AppointmentStatusAccepted || next == AppointmentStatusRejected
}

// Appointment stores a snapshot of the patient's identity at booking time
// plus a hard reference to the assigned doctor. The doctor's name is
// denormalized for display; department consistency is checked at creation.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName       string            `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName        string            `gorm:"type:varchar(100);not null" json:"last_name"`
	Email           string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string            `gorm:"type:varchar(20);not null" json:"phone"`
	NIC             string            `gorm:"column:nic;type:varchar(13);not null" json:"nic"`
	DateOfBirth     time.Time         `gorm:"type:date;not null" json:"date_of_birth"`
	Gender          string            `gorm:"type:varchar(10);not null" json:"gender"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	Department      string            `gorm:"type:varchar(100);not null" json:"department"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	DoctorFirstName string            `gorm:"type:varchar(100);not null" json:"doctor_first_name"`
	DoctorLastName  string            `gorm:"type:varchar(100);not null" json:"doctor_last_name"`
	HasVisited      bool              `gorm:"not null;default:false" json:"has_visited"`
	Address         string            `gorm:"type:text;not null" json:"address"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  *User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient *User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}
