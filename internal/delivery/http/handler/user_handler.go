package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/internal/usecase"
	"hospital-management-backend/pkg/jwt"
	"hospital-management-backend/pkg/response"
	"hospital-management-backend/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// multipart forms are small: a handful of text fields plus one avatar image
const maxAvatarFormSize = 10 << 20

type UserHandler struct {
	userUsecase usecase.UserUsecase
	validator   *validator.CustomValidator
	jwtService  *jwt.JWTService
}

func NewUserHandler(userUsecase usecase.UserUsecase, validator *validator.CustomValidator, jwtService *jwt.JWTService) *UserHandler {
	return &UserHandler{
		userUsecase: userUsecase,
		validator:   validator,
		jwtService:  jwtService,
	}
}

// RegisterPatient handles patient self-registration and logs the new
// patient in by setting the session cookie.
func (h *UserHandler) RegisterPatient(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterPatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.userUsecase.RegisterPatient(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusBadRequest, "User already Registered!", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	h.jwtService.SetCookie(w, user.Role, token)
	response.Success(w, http.StatusOK, "User Registered!", user)
}

// Login authenticates against email, password and requested role. The same
// error answers every failure mode.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, token, err := h.userUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Error(w, http.StatusBadRequest, "Invalid Email Or Password!", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	h.jwtService.SetCookie(w, user.Role, token)
	response.Success(w, http.StatusCreated, "Login Successfully!", user)
}

func (h *UserHandler) AddNewAdmin(w http.ResponseWriter, r *http.Request) {
	var req dto.AddAdminRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	admin, err := h.userUsecase.AddAdmin(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Error(w, http.StatusBadRequest, "Admin With This Email Already Exists!", nil)
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		case usecase.ErrAdminOnly:
			response.Forbidden(w, "Admin privilege required")
		default:
			response.InternalServerError(w, "Failed to add admin")
		}
		return
	}

	response.Success(w, http.StatusOK, "New Admin Registered", admin)
}

func (h *UserHandler) AddNewDoctor(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxAvatarFormSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.CreateDoctorRequest{
		FirstName:  r.FormValue("firstName"),
		LastName:   r.FormValue("lastName"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		NIC:        r.FormValue("nic"),
		DOB:        r.FormValue("dob"),
		Gender:     r.FormValue("gender"),
		Password:   r.FormValue("password"),
		Department: r.FormValue("doctorDepartment"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.userUsecase.AddDoctor(r.Context(), &req, avatarSourceFromForm(r))
	if err != nil {
		h.writeDoctorError(w, err, "Doctor With This Email Already Exists!", "Failed to add doctor")
		return
	}

	response.Success(w, http.StatusOK, "New Doctor Registered", doctor)
}

func (h *UserHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	if err := r.ParseMultipartForm(maxAvatarFormSize); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid multipart form", nil)
		return
	}

	req := dto.UpdateDoctorRequest{
		FirstName:  r.FormValue("firstName"),
		LastName:   r.FormValue("lastName"),
		Email:      r.FormValue("email"),
		Phone:      r.FormValue("phone"),
		NIC:        r.FormValue("nic"),
		DOB:        r.FormValue("dob"),
		Gender:     r.FormValue("gender"),
		Department: r.FormValue("doctorDepartment"),
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.userUsecase.UpdateDoctor(r.Context(), doctorID, &req, avatarSourceFromForm(r))
	if err != nil {
		h.writeDoctorError(w, err, "Email already exists!", "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *UserHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.userUsecase.GetAllDoctors(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *UserHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	doctor, err := h.userUsecase.GetDoctor(r.Context(), doctorID)
	if err != nil {
		if err == usecase.ErrDoctorNotFound {
			response.NotFound(w, "Doctor not found!")
			return
		}
		response.InternalServerError(w, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetSelf returns the identity the auth middleware resolved.
func (h *UserHandler) GetSelf(w http.ResponseWriter, r *http.Request) {
	user, err := h.userUsecase.GetSelf(r.Context())
	if err != nil {
		response.Unauthorized(w, "User is not authenticated")
		return
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", user)
}

func (h *UserHandler) LogoutAdmin(w http.ResponseWriter, r *http.Request) {
	h.userUsecase.Logout(r.Context())
	h.jwtService.ClearCookie(w, "Admin")
	response.Success(w, http.StatusOK, "Admin Logged Out Successfully.", nil)
}

func (h *UserHandler) LogoutPatient(w http.ResponseWriter, r *http.Request) {
	h.userUsecase.Logout(r.Context())
	h.jwtService.ClearCookie(w, "Patient")
	response.Success(w, http.StatusOK, "Patient Logged Out Successfully.", nil)
}

// avatarSourceFromForm reads either the referenced asset path or the
// uploaded file out of a parsed multipart form.
func avatarSourceFromForm(r *http.Request) service.AvatarSource {
	if r.FormValue("useExistingPhoto") == "true" && r.FormValue("selectedPhoto") != "" {
		return service.AvatarSource{ExistingPath: r.FormValue("selectedPhoto")}
	}

	file, _, err := r.FormFile("docAvatar")
	if err != nil {
		return service.AvatarSource{}
	}
	return service.AvatarSource{File: file}
}

func (h *UserHandler) writeDoctorError(w http.ResponseWriter, err error, duplicateMsg, fallbackMsg string) {
	switch err {
	case usecase.ErrEmailAlreadyExists:
		response.Error(w, http.StatusBadRequest, duplicateMsg, nil)
	case usecase.ErrDoctorNotFound:
		response.NotFound(w, "Doctor not found!")
	case usecase.ErrInvalidDepartment, usecase.ErrInvalidDateFormat:
		response.Error(w, http.StatusBadRequest, err.Error(), nil)
	case usecase.ErrAdminOnly:
		response.Forbidden(w, "Admin privilege required")
	case service.ErrAvatarRequired:
		response.Error(w, http.StatusBadRequest, "Doctor Avatar Required!", nil)
	case service.ErrUnsupportedImageFormat:
		response.Error(w, http.StatusBadRequest, "File Format Not Supported!", nil)
	case service.ErrAvatarUploadFailed:
		response.InternalServerError(w, "Failed To Upload Doctor Avatar")
	default:
		response.InternalServerError(w, fallbackMsg)
	}
}
