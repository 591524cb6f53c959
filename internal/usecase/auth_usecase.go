package usecase

import (
	"context"
	"errors"
	"strings"

	"clinic-backoffice/internal/converter"
	"clinic-backoffice/internal/delivery/dto"
	"clinic-backoffice/internal/delivery/http/middleware"
	"clinic-backoffice/internal/domain/entity"
	"clinic-backoffice/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrLoginAlreadyExists = errors.New("login or email already exists")
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrUserNotFound       = errors.New("user not found")
)

// SessionIssuer is the part of the session store auth needs.
type SessionIssuer interface {
	Create(ctx context.Context, patientID uuid.UUID, email string) (string, error)
	Revoke(ctx context.Context, patientID uuid.UUID, tokenID string) error
	RevokeAll(ctx context.Context, patientID uuid.UUID) error
}

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.PatientResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error)
	// Logout ends the current session, or every session of the account when all is set.
	Logout(ctx context.Context, all bool) error
	GetCurrentUser(ctx context.Context) (*dto.PatientResponse, error)
	LoadRole(ctx context.Context, patientID uuid.UUID) (entity.Role, bool, error)
}

type authUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	patientRepo repository.PatientRepository
	sessions    SessionIssuer
	sessionTTL  int64
}

func NewAuthUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	sessions SessionIssuer,
	sessionTTLSeconds int64,
) AuthUsecase {
	return &authUsecase{
		db:          db,
		log:         log,
		patientRepo: patientRepo,
		sessions:    sessions,
		sessionTTL:  sessionTTLSeconds,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.PatientResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	login := strings.TrimSpace(req.Login)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := u.patientRepo.ExistsByLoginOrEmail(tx, login, email)
	if err != nil {
		u.log.Warnf("Failed to check existing account: %+v", err)
		return nil, err
	}
	if exists {
		return nil, ErrLoginAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	patient := &entity.Patient{
		Login:    login,
		Email:    email,
		Password: string(hashedPassword),
		Name:     strings.TrimSpace(req.Name),
		Phone:    req.Phone,
		Role:     entity.RolePatient,
	}

	if err := u.patientRepo.Create(tx, patient); err != nil {
		if isDuplicateKeyError(err, "login") || isDuplicateKeyError(err, "email") {
			return nil, ErrLoginAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.SessionResponse, error) {
	patient, err := u.patientRepo.FindByLoginOrEmail(u.db.WithContext(ctx), strings.TrimSpace(req.LoginOrEmail))
	if err != nil {
		u.log.Warnf("Failed to find patient by login: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(patient.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := u.sessions.Create(ctx, patient.ID, patient.Email)
	if err != nil {
		u.log.Warnf("Failed to create session: %+v", err)
		return nil, err
	}

	return &dto.SessionResponse{
		Token:     token,
		ExpiresIn: u.sessionTTL,
		Patient:   converter.PatientToResponse(patient),
	}, nil
}

func (u *authUsecase) Logout(ctx context.Context, all bool) error {
	patientID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return ErrUnauthenticated
	}

	if all {
		if err := u.sessions.RevokeAll(ctx, patientID); err != nil {
			u.log.Warnf("Failed to revoke sessions: %+v", err)
			return err
		}
		return nil
	}

	tokenID, _ := middleware.GetTokenIDFromContext(ctx)

	if err := u.sessions.Revoke(ctx, patientID, tokenID); err != nil {
		u.log.Warnf("Failed to revoke session: %+v", err)
		return err
	}
	return nil
}

func (u *authUsecase) GetCurrentUser(ctx context.Context) (*dto.PatientResponse, error) {
	patientID, ok := middleware.GetPatientIDFromContext(ctx)
	if !ok {
		return nil, ErrUnauthenticated
	}

	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to find patient by ID: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrUserNotFound
	}

	return converter.PatientToResponse(patient), nil
}

// LoadRole reads the role from the account row on every request so role changes apply without re-login.
func (u *authUsecase) LoadRole(ctx context.Context, patientID uuid.UUID) (entity.Role, bool, error) {
	patient, err := u.patientRepo.FindByID(u.db.WithContext(ctx), patientID)
	if err != nil {
		return "", false, err
	}
	if patient == nil {
		return "", false, nil
	}
	return patient.Role, true, nil
}
