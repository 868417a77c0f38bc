package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type SendMessageRequest struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Phone     string `json:"phone" validate:"required,min=10,max=20"`
	Message   string `json:"message" validate:"required,min=10"`
}

// Response DTOs

type MessageResponse struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
	Total    int               `json:"total"`
}
