package usecase

import (
	"context"

	"hospital-management-backend/internal/converter"
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

type MessageUsecase interface {
	Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error)
	GetAll(ctx context.Context) (*dto.MessageListResponse, error)
}

type messageUsecase struct {
	log         *logrus.Logger
	messageRepo repository.MessageRepository
}

func NewMessageUsecase(log *logrus.Logger, messageRepo repository.MessageRepository) MessageUsecase {
	return &messageUsecase{
		log:         log,
		messageRepo: messageRepo,
	}
}

func (u *messageUsecase) Send(ctx context.Context, req *dto.SendMessageRequest) (*dto.MessageResponse, error) {
	message := &entity.Message{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Phone:     req.Phone,
		Message:   req.Message,
	}

	if err := u.messageRepo.Create(ctx, message); err != nil {
		u.log.Warnf("Failed to create message: %+v", err)
		return nil, err
	}

	return converter.MessageToResponse(message), nil
}

func (u *messageUsecase) GetAll(ctx context.Context) (*dto.MessageListResponse, error) {
	messages, err := u.messageRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to find messages: %+v", err)
		return nil, err
	}

	return &dto.MessageListResponse{
		Messages: converter.MessagesToResponses(messages),
		Total:    len(messages),
	}, nil
}
