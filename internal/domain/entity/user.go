package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role discriminates the single users table.
type Role string

const (
	RolePatient Role = "Patient"
	RoleDoctor  Role = "Doctor"
	RoleAdmin   Role = "Admin"
)

// Gender constants
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// User represents a patient, doctor or admin account.
// Doctor-only columns (department, avatar) stay empty for other roles.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	FirstName      string    `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName       string    `gorm:"type:varchar(100);not null" json:"last_name"`
	Email          string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	Phone          string    `gorm:"type:varchar(20);not null" json:"phone"`
	NIC            string    `gorm:"column:nic;type:varchar(13);not null" json:"nic"`
	DateOfBirth    time.Time `gorm:"type:date;not null" json:"date_of_birth"`
	Gender         string    `gorm:"type:varchar(10);not null" json:"gender"`
	Password       string    `gorm:"type:text;not null" json:"-"`
	Role           Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	Department     string    `gorm:"type:varchar(100)" json:"department,omitempty"`
	AvatarPublicID string    `gorm:"type:varchar(255)" json:"avatar_public_id,omitempty"`
	AvatarURL      string    `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}

// IsDoctor reports whether the account carries the doctor role.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
