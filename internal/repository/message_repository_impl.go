package repository

import (
	"context"

	"hospital-management-backend/internal/domain/entity"
	domainRepo "hospital-management-backend/internal/domain/repository"

	"gorm.io/gorm"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) domainRepo.MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *messageRepository) FindAll(ctx context.Context) ([]entity.Message, error) {
	var messages []entity.Message
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}
