package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
	"github.com/sweetshop/sweetshop/infrastructure/service/logger"
)

type AuthUseCase struct {
	userRepository  outbound.UserRepository
	tokenService    outbound.TokenService
	passwordService outbound.PasswordService
	logger          logger.Logger
}

func NewAuthUseCase(
	userRepo outbound.UserRepository,
	tokenService outbound.TokenService,
	passwordService outbound.PasswordService,
	logger logger.Logger,
) inbound.AuthUseCase {
	return &AuthUseCase{
		userRepository:  userRepo,
		tokenService:    tokenService,
		passwordService: passwordService,
		logger:          logger,
	}
}

func (uc *AuthUseCase) Register(ctx context.Context, req inbound.RegisterRequest) (*inbound.TokenResponse, error) {
	if req.Email == "" {
		return nil, fmt.Errorf("email is required")
	}
	if req.Password == "" {
		return nil, fmt.Errorf("password is required")
	}

	role := req.Role
	if role == "" {
		role = entity.RoleCustomer
	}
	if !entity.IsValidRole(role) {
		return nil, inbound.ErrInvalidRole
	}

	exists, err := uc.userRepository.ExistsByEmail(ctx, req.Email)
	if err != nil {
		uc.logger.Error(ctx, "Failed to check email existence", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		logger.LogAuthEvent(ctx, uc.logger, "register_duplicate_email", "", false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, inbound.ErrDuplicateAccount
	}

	hash, err := uc.passwordService.HashPassword(req.Password)
	if err != nil {
		uc.logger.Error(ctx, "Failed to hash password", err, nil)
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(uuid.New().String(), req.Email, hash, role)
	if err := uc.userRepository.Create(ctx, user); err != nil {
		if errors.Is(err, outbound.ErrUserAlreadyExists) {
			// Lost the race between the existence check and the insert.
			return nil, inbound.ErrDuplicateAccount
		}
		uc.logger.Error(ctx, "Failed to create user", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "register_successful", user.ID, true, map[string]interface{}{
		"email": user.Email,
		"role":  user.Role,
	})

	return &inbound.TokenResponse{Token: token}, nil
}

func (uc *AuthUseCase) Login(ctx context.Context, req inbound.LoginRequest) (*inbound.TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, inbound.ErrInvalidCredentials
	}

	user, err := uc.userRepository.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, outbound.ErrUserNotFound) {
			logger.LogAuthEvent(ctx, uc.logger, "login_failed_user_not_found", "", false, map[string]interface{}{
				"email": req.Email,
			})
			return nil, inbound.ErrInvalidCredentials
		}
		uc.logger.Error(ctx, "Failed to find user", err, map[string]interface{}{
			"email": req.Email,
		})
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	valid, err := uc.passwordService.VerifyPassword(req.Password, user.Password)
	if err != nil {
		uc.logger.Error(ctx, "Password verification error", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("password verification failed: %w", err)
	}
	if !valid {
		logger.LogAuthEvent(ctx, uc.logger, "login_failed_invalid_password", user.ID, false, map[string]interface{}{
			"email": req.Email,
		})
		return nil, inbound.ErrInvalidCredentials
	}

	token, err := uc.tokenService.GenerateAccessToken(outbound.TokenClaims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	})
	if err != nil {
		uc.logger.Error(ctx, "Failed to generate access token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, fmt.Errorf("failed to generate access token: %w", err)
	}

	logger.LogAuthEvent(ctx, uc.logger, "login_successful", user.ID, true, map[string]interface{}{
		"email": user.Email,
	})

	return &inbound.TokenResponse{Token: token}, nil
}
