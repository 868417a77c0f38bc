package repository

import (
	"context"

	"hospital-management-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	// FindByID returns (nil, nil) when no appointment matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	Delete(ctx context.Context, id uuid.UUID) error
}
