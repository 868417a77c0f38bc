package repository

import (
	"context"

	"hospital-management-backend/internal/domain/entity"
)

type MessageRepository interface {
	Create(ctx context.Context, message *entity.Message) error
	FindAll(ctx context.Context) ([]entity.Message, error)
}
