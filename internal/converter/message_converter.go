package converter

import (
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
)

func MessageToResponse(m *entity.Message) *dto.MessageResponse {
	if m == nil {
		return nil
	}

	return &dto.MessageResponse{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Phone:     m.Phone,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func MessagesToResponses(messages []entity.Message) []dto.MessageResponse {
	responses := make([]dto.MessageResponse, len(messages))
	for i := range messages {
		responses[i] = *MessageToResponse(&messages[i])
	}
	return responses
}
