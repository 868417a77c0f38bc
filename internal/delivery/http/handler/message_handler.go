package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"
)

type MessageHandler struct {
	messageUsecase usecase.MessageUsecase
	validator      *validator.CustomValidator
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, validator *validator.CustomValidator) *MessageHandler {
	return &MessageHandler{
		messageUsecase: messageUsecase,
		validator:      validator,
	}
}

// Send accepts a contact-form message from an unauthenticated visitor.
func (h *MessageHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req dto.SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	message, err := h.messageUsecase.Send(r.Context(), &req)
	if err != nil {
		response.InternalServerError(w, "Failed to send message")
		return
	}

	response.Success(w, http.StatusOK, "Message Sent!", message)
}

func (h *MessageHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	messages, err := h.messageUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get messages")
		return
	}

	response.Success(w, http.StatusOK, "Messages retrieved successfully", messages)
}
