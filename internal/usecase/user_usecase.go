package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"hospital-management-backend/internal/converter"
	"hospital-management-backend/internal/delivery/dto"
	"hospital-management-backend/internal/delivery/http/middleware"
	"hospital-management-backend/internal/domain/entity"
	"hospital-management-backend/internal/domain/repository"
	"hospital-management-backend/internal/service"
	"hospital-management-backend/pkg/jwt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists = errors.New("user already registered")
	// ErrInvalidCredentials covers unknown email, wrong password and role
	// mismatch alike, so responses never reveal which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidDateFormat  = errors.New("invalid date format, use YYYY-MM-DD")
	ErrDoctorNotFound     = errors.New("doctor not found")
	ErrInvalidDepartment  = errors.New("unknown department")
	ErrAdminOnly          = errors.New("admin privilege required")
	ErrUserNotInContext   = errors.New("user not found in context")
)

const dateLayout = "2006-01-02"

type UserUsecase interface {
	// RegisterPatient creates a patient account and returns the sanitized
	// user together with a signed session token.
	RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, string, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error)
	AddAdmin(ctx context.Context, req *dto.AddAdminRequest) (*dto.UserResponse, error)
	AddDoctor(ctx context.Context, req *dto.CreateDoctorRequest, avatar service.AvatarSource) (*dto.UserResponse, error)
	UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest, avatar service.AvatarSource) (*dto.UserResponse, error)
	GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error)
	GetSelf(ctx context.Context) (*dto.UserResponse, error)
	Logout(ctx context.Context)
}

type userUsecase struct {
	log           *logrus.Logger
	userRepo      repository.UserRepository
	jwtService    *jwt.JWTService
	avatarService service.AvatarService
	doctorCache   service.DoctorCache
	auditService  service.AuditService
}

func NewUserUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	jwtService *jwt.JWTService,
	avatarService service.AvatarService,
	doctorCache service.DoctorCache,
	auditService service.AuditService,
) UserUsecase {
	return &userUsecase{
		log:           log,
		userRepo:      userRepo,
		jwtService:    jwtService,
		avatarService: avatarService,
		doctorCache:   doctorCache,
		auditService:  auditService,
	}
}

func (u *userUsecase) RegisterPatient(ctx context.Context, req *dto.RegisterPatientRequest) (*dto.UserResponse, string, error) {
	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, "", ErrInvalidDateFormat
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, "", err
	}

	user := &entity.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		NIC:         req.NIC,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Password:    string(hashedPassword),
		Role:        entity.RolePatient,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, "", ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, "", err
	}

	token, err := u.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, "", err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionPatientRegister, entity.JSON{
		"email": user.Email,
	})

	return converter.UserToResponse(user), token, nil
}

func (u *userUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.UserResponse, string, error) {
	user, err := u.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	// Role mismatch gets the same error as bad credentials so a login
	// attempt cannot probe which role an email is registered under.
	if user.Role != entity.Role(req.Role) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := u.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		u.log.Warnf("Failed to generate session token: %+v", err)
		return nil, "", err
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserLogin, entity.JSON{
		"role": string(user.Role),
	})

	return converter.UserToResponse(user), token, nil
}

func (u *userUsecase) AddAdmin(ctx context.Context, req *dto.AddAdminRequest) (*dto.UserResponse, error) {
	caller, err := u.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	admin := &entity.User{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		Phone:       req.Phone,
		NIC:         req.NIC,
		DateOfBirth: dob,
		Gender:      req.Gender,
		Password:    string(hashedPassword),
		Role:        entity.RoleAdmin,
	}

	if err := u.userRepo.Create(ctx, admin); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create admin: %+v", err)
		return nil, err
	}

	u.auditService.Record(ctx, &caller.ID, entity.AuditActionAdminCreate, entity.JSON{
		"admin_id": admin.ID.String(),
		"email":    admin.Email,
	})

	return converter.UserToResponse(admin), nil
}

func (u *userUsecase) AddDoctor(ctx context.Context, req *dto.CreateDoctorRequest, avatar service.AvatarSource) (*dto.UserResponse, error) {
	caller, err := u.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrInvalidDepartment
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	if avatar.IsEmpty() {
		return nil, service.ErrAvatarRequired
	}

	stored, err := u.avatarService.Ingest(ctx, avatar)
	if err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	doctor := &entity.User{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Phone:          req.Phone,
		NIC:            req.NIC,
		DateOfBirth:    dob,
		Gender:         req.Gender,
		Password:       string(hashedPassword),
		Role:           entity.RoleDoctor,
		Department:     req.Department,
		AvatarPublicID: stored.PublicID,
		AvatarURL:      stored.URL,
	}

	if err := u.userRepo.Create(ctx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.doctorCache.Invalidate(ctx)

	u.auditService.Record(ctx, &caller.ID, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_id":  doctor.ID.String(),
		"email":      doctor.Email,
		"department": doctor.Department,
	})

	return converter.UserToResponse(doctor), nil
}

func (u *userUsecase) UpdateDoctor(ctx context.Context, id uuid.UUID, req *dto.UpdateDoctorRequest, avatar service.AvatarSource) (*dto.UserResponse, error) {
	caller, err := u.requireAdmin(ctx)
	if err != nil {
		return nil, err
	}

	if !entity.IsValidDepartment(req.Department) {
		return nil, ErrInvalidDepartment
	}

	doctor, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	dob, err := time.Parse(dateLayout, req.DOB)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor.FirstName = req.FirstName
	doctor.LastName = req.LastName
	doctor.Email = req.Email
	doctor.Phone = req.Phone
	doctor.NIC = req.NIC
	doctor.DateOfBirth = dob
	doctor.Gender = req.Gender
	doctor.Department = req.Department

	// Avatar replacement is optional; the existing one stays when neither
	// an upload nor a reference was given.
	if !avatar.IsEmpty() {
		stored, err := u.avatarService.Ingest(ctx, avatar)
		if err != nil {
			return nil, err
		}
		doctor.AvatarPublicID = stored.PublicID
		doctor.AvatarURL = stored.URL
	}

	if err := u.userRepo.Update(ctx, doctor); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update doctor %s: %+v", id, err)
		return nil, err
	}

	u.doctorCache.Invalidate(ctx)

	u.auditService.Record(ctx, &caller.ID, entity.AuditActionDoctorUpdate, entity.JSON{
		"doctor_id": doctor.ID.String(),
	})

	return converter.UserToResponse(doctor), nil
}

func (u *userUsecase) GetAllDoctors(ctx context.Context) (*dto.DoctorListResponse, error) {
	if cached, ok := u.doctorCache.Get(ctx); ok {
		var resp dto.DoctorListResponse
		if err := json.Unmarshal(cached, &resp); err == nil {
			return &resp, nil
		}
		u.log.Warn("Discarding malformed doctor cache entry")
	}

	doctors, err := u.userRepo.FindByRole(ctx, entity.RoleDoctor)
	if err != nil {
		u.log.Warnf("Failed to find doctors: %+v", err)
		return nil, err
	}

	resp := &dto.DoctorListResponse{
		Doctors: converter.UsersToResponses(doctors),
		Total:   len(doctors),
	}

	if data, err := json.Marshal(resp); err == nil {
		u.doctorCache.Set(ctx, data)
	}

	return resp, nil
}

func (u *userUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.UserResponse, error) {
	doctor, err := u.userRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", id, err)
		return nil, err
	}
	if doctor == nil || !doctor.IsDoctor() {
		return nil, ErrDoctorNotFound
	}

	return converter.UserToResponse(doctor), nil
}

func (u *userUsecase) GetSelf(ctx context.Context) (*dto.UserResponse, error) {
	user, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}
	return converter.UserToResponse(user), nil
}

func (u *userUsecase) Logout(ctx context.Context) {
	if user, ok := middleware.GetUserFromContext(ctx); ok {
		u.auditService.Record(ctx, &user.ID, entity.AuditActionUserLogout, entity.JSON{
			"role": string(user.Role),
		})
	}
}

// requireAdmin re-checks the caller's role inside the service layer instead
// of trusting routing alone.
func (u *userUsecase) requireAdmin(ctx context.Context) (*entity.User, error) {
	caller, ok := middleware.GetUserFromContext(ctx)
	if !ok {
		return nil, ErrUserNotInContext
	}
	if caller.Role != entity.RoleAdmin {
		return nil, ErrAdminOnly
	}
	return caller, nil
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
