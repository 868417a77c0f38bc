package converter

import (
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
)

const dateLayout = "2006-01-02"

// UserToResponse converts a User entity to a sanitized UserResponse DTO.
// The password never leaves the entity.
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	resp := &dto.UserResponse{
		ID:         user.ID,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Email:      user.Email,
		Phone:      user.Phone,
		NIC:        user.NIC,
		DOB:        user.DateOfBirth.Format(dateLayout),
		Gender:     user.Gender,
		Role:       string(user.Role),
		Department: user.Department,
		CreatedAt:  user.CreatedAt,
		UpdatedAt:  user.UpdatedAt,
	}

	if user.AvatarURL != "" {
		resp.DocAvatar = &dto.AvatarResponse{
			PublicID: user.AvatarPublicID,
			URL:      user.AvatarURL,
		}
	}

	return resp
}

// UsersToResponses converts a slice of User entities to sanitized DTOs.
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
