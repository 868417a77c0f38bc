package repository

import (
	"context"

	"hospital-management-backend/internal/domain/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail returns (nil, nil) when no account matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// FindByID returns (nil, nil) when no account matches.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error)
	// FindDoctorsByName returns every doctor-role user matching the exact
	// first and last name. Callers decide how to treat ambiguous matches.
	FindDoctorsByName(ctx context.Context, firstName, lastName string) ([]entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
