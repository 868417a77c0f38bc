package repository

import (
	"context"
	"errors"

	"hospital-management-backend/internal/domain/entity"
	domainRepo "hospital-management-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) domainRepo.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByRole(ctx context.Context, role entity.Role) ([]entity.User, error) {
	var users []entity.User
	err := r.db.WithContext(ctx).Where("role = ?", role).Order("created_at").Find(&users).Error
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) FindDoctorsByName(ctx context.Context, firstName, lastName string) ([]entity.User, error) {
	var doctors []entity.User
	err := r.db.WithContext(ctx).
		Where("role = ? AND first_name = ? AND last_name = ?", entity.RoleDoctor, firstName, lastName).
		Find(&doctors).Error
	if err != nil {
		return nil, err
	}
	return doctors, nil
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}
