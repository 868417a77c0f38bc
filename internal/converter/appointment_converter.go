package converter

import (
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to its DTO.
func AppointmentToResponse(a *entity.Appointment) *dto.AppointmentResponse {
	if a == nil {
		return nil
	}

	return &dto.AppointmentResponse{
		ID:              a.ID,
		FirstName:       a.FirstName,
		LastName:        a.LastName,
		Email:           a.Email,
		Phone:           a.Phone,
		NIC:             a.NIC,
		DOB:             a.DateOfBirth.Format(dateLayout),
		Gender:          a.Gender,
		AppointmentDate: a.AppointmentDate.Format(dateLayout),
		Department:      a.Department,
		DoctorID:        a.DoctorID,
		Doctor: dto.AppointmentDoctorResponse{
			FirstName: a.DoctorFirstName,
			LastName:  a.DoctorLastName,
		},
		HasVisited: a.HasVisited,
		Address:    a.Address,
		PatientID:  a.PatientID,
		Status:     string(a.Status),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

// AppointmentsToResponses converts a slice of Appointment entities to DTOs.
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = *AppointmentToResponse(&appointments[i])
	}
	return responses
}
