// FILE: internal/service/auth_service.go
package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"time"

	"reflect360-be/internal/config"
	"reflect360-be/internal/dto"
	"reflect360-be/internal/entity"
	"reflect360-be/internal/pkg/mailer"
	"reflect360-be/internal/repository/specification"
	"reflect360-be/internal/repository/unitofwork"

	"reflect360-be/pkg/events"
	pktNats "reflect360-be/pkg/nats"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error)
	ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error
	Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error)
}

type authService struct {
	uowFactory     unitofwork.RepositoryFactory
	emailService   mailer.IEmailService
	eventPublisher *pktNats.Publisher
	authConfig     config.AuthConfig
	offline        bool
}

func NewAuthService(
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	eventPublisher *pktNats.Publisher,
	authConfig config.AuthConfig,
	offline bool,
) IAuthService {
	return &authService{
		uowFactory:     uowFactory,
		emailService:   emailService,
		eventPublisher: eventPublisher,
		authConfig:     authConfig,
		offline:        offline,
	}
}

// codeMatches compares in constant time; the code is a shared secret.
func (s *authService) codeMatches(code string) bool {
	if s.authConfig.RegistrationCode == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(code), []byte(s.authConfig.RegistrationCode)) == 1
}

func (s *authService) generateToken(userId uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userId.String(),
		"exp":     time.Now().Add(72 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.authConfig.JwtSecret))
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.LoginResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	// The code gate comes first: a wrong code must not create a user record.
	if !s.codeMatches(req.Code) {
		return nil, ErrInvalidCode
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		Id:           uuid.New(),
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := uow.UserRepository().Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user.Id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		go func() {
			event := events.BaseEvent{
				Type:       events.TypeUserRegistered,
				Data:       map[string]interface{}{"user_id": user.Id.String(), "email": user.Email},
				OccurredAt: time.Now(),
			}
			if err := s.eventPublisher.Publish(context.Background(), event); err != nil {
				fmt.Printf("[EVENTS] Failed to publish USER_REGISTERED: %v\n", err)
			}
		}()
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return nil, err
	}
	// Unknown email and wrong password fold into the same user-facing error.
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.generateToken(user.Id)
	if err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		go func() {
			event := events.BaseEvent{
				Type:       events.TypeUserLogin,
				Data:       map[string]interface{}{"user_id": user.Id.String()},
				OccurredAt: time.Now(),
			}
			if err := s.eventPublisher.Publish(context.Background(), event); err != nil {
				fmt.Printf("[EVENTS] Failed to publish USER_LOGIN: %v\n", err)
			}
		}()
	}

	return &dto.LoginResponse{Token: token, User: toUserResponse(user)}, nil
}

func (s *authService) ResetPassword(ctx context.Context, req *dto.ResetPasswordRequest) error {
	if s.offline {
		return ErrCloudDisabled
	}

	// Same shared-secret gate as registration.
	if !s.codeMatches(req.Code) {
		return ErrInvalidCode
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	user, err := uow.UserRepository().FindOne(ctx, specification.ByEmail{Email: req.Email})
	if err != nil {
		return err
	}
	if user == nil {
		return ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := uow.UserRepository().UpdatePassword(ctx, user.Id, string(hash)); err != nil {
		return err
	}

	go func() {
		if err := s.emailService.SendPasswordChanged(user.Email); err != nil {
			fmt.Printf("Error sending password change notice: %v\n", err)
		}
	}()

	return nil
}

func (s *authService) Me(ctx context.Context, userId uuid.UUID) (*dto.UserResponse, error) {
	if s.offline {
		return nil, ErrCloudDisabled
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotFound
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func toUserResponse(user *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        user.Id,
		Email:     user.Email,
		FullName:  user.FullName,
		CreatedAt: user.CreatedAt,
	}
}
