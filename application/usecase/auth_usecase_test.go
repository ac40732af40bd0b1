package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/sweetshop/sweetshop/application/port/inbound"
	"github.com/sweetshop/sweetshop/application/port/outbound"
	"github.com/sweetshop/sweetshop/domain/entity"
	"github.com/sweetshop/sweetshop/infrastructure/service/logger"
)

// Mock implementations

type mockUserRepository struct {
	users map[string]*entity.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{
		users: make(map[string]*entity.User),
	}
}

func (m *mockUserRepository) FindByID(ctx context.Context, id string) (*entity.User, error) {
	if user, exists := m.users[id]; exists {
		return user, nil
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, outbound.ErrUserNotFound
}

func (m *mockUserRepository) Create(ctx context.Context, user *entity.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return outbound.ErrUserAlreadyExists
		}
	}
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, user := range m.users {
		if user.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type mockTokenService struct {
	counter    int
	lastClaims outbound.TokenClaims
}

func (m *mockTokenService) GenerateAccessToken(claims outbound.TokenClaims) (string, error) {
	m.counter++
	m.lastClaims = claims
	return fmt.Sprintf("access-token-%d", m.counter), nil
}

func (m *mockTokenService) ValidateAccessToken(token string) (*outbound.TokenClaims, error) {
	claims := m.lastClaims
	return &claims, nil
}

type mockPasswordService struct{}

func (m *mockPasswordService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockPasswordService) VerifyPassword(password, hash string) (bool, error) {
	return hash == "hashed:"+password, nil
}

func newTestLogger() logger.Logger {
	return logger.NewStructuredLogger(logger.LoggerConfig{
		Level:       "error",
		Format:      "text",
		ServiceName: "test",
	})
}

func newAuthUseCaseForTest() (inbound.AuthUseCase, *mockUserRepository, *mockTokenService) {
	userRepo := newMockUserRepository()
	tokenService := &mockTokenService{}
	uc := NewAuthUseCase(userRepo, tokenService, &mockPasswordService{}, newTestLogger())
	return uc, userRepo, tokenService
}

func TestAuthUseCase_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("DefaultsToCustomerRole", func(t *testing.T) {
		uc, repo, tokenService := newAuthUseCaseForTest()

		res, err := uc.Register(ctx, inbound.RegisterRequest{
			Email:    "buyer@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if res.Token == "" {
			t.Error("Token should not be empty")
		}

		user, err := repo.FindByEmail(ctx, "buyer@example.com")
		if err != nil {
			t.Fatalf("User was not persisted: %v", err)
		}
		if user.Role != entity.RoleCustomer {
			t.Errorf("Expected role CUSTOMER, got %s", user.Role)
		}
		if user.Password != "hashed:secret123" {
			t.Error("Password should be stored hashed")
		}
		if tokenService.lastClaims.Role != entity.RoleCustomer {
			t.Errorf("Token claims should carry role CUSTOMER, got %s", tokenService.lastClaims.Role)
		}
	})

	t.Run("AdminRole", func(t *testing.T) {
		uc, repo, _ := newAuthUseCaseForTest()

		_, err := uc.Register(ctx, inbound.RegisterRequest{
			Email:    "boss@example.com",
			Password: "secret123",
			Role:     entity.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		user, _ := repo.FindByEmail(ctx, "boss@example.com")
		if user.Role != entity.RoleAdmin {
			t.Errorf("Expected role ADMIN, got %s", user.Role)
		}
	})

	t.Run("InvalidRole", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		_, err := uc.Register(ctx, inbound.RegisterRequest{
			Email:    "buyer@example.com",
			Password: "secret123",
			Role:     "SUPERUSER",
		})
		if !errors.Is(err, inbound.ErrInvalidRole) {
			t.Errorf("Expected ErrInvalidRole, got %v", err)
		}
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		req := inbound.RegisterRequest{Email: "buyer@example.com", Password: "secret123"}
		if _, err := uc.Register(ctx, req); err != nil {
			t.Fatalf("First register failed: %v", err)
		}

		_, err := uc.Register(ctx, req)
		if !errors.Is(err, inbound.ErrDuplicateAccount) {
			t.Errorf("Expected ErrDuplicateAccount, got %v", err)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		if _, err := uc.Register(ctx, inbound.RegisterRequest{Password: "secret123"}); err == nil {
			t.Error("Register without email should fail")
		}
		if _, err := uc.Register(ctx, inbound.RegisterRequest{Email: "buyer@example.com"}); err == nil {
			t.Error("Register without password should fail")
		}
	})
}

func TestAuthUseCase_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("RegisterThenLogin", func(t *testing.T) {
		uc, _, tokenService := newAuthUseCaseForTest()

		_, err := uc.Register(ctx, inbound.RegisterRequest{
			Email:    "buyer@example.com",
			Password: "secret123",
			Role:     entity.RoleAdmin,
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		res, err := uc.Login(ctx, inbound.LoginRequest{
			Email:    "buyer@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if res.Token == "" {
			t.Error("Token should not be empty")
		}
		// The role granted at registration survives the login round trip.
		if tokenService.lastClaims.Role != entity.RoleAdmin {
			t.Errorf("Expected claims role ADMIN, got %s", tokenService.lastClaims.Role)
		}
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		_, err := uc.Login(ctx, inbound.LoginRequest{
			Email:    "nobody@example.com",
			Password: "secret123",
		})
		if !errors.Is(err, inbound.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("WrongPassword", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		_, err := uc.Register(ctx, inbound.RegisterRequest{
			Email:    "buyer@example.com",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}

		_, err = uc.Login(ctx, inbound.LoginRequest{
			Email:    "buyer@example.com",
			Password: "wrong-password",
		})
		if !errors.Is(err, inbound.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("MissingFields", func(t *testing.T) {
		uc, _, _ := newAuthUseCaseForTest()

		_, err := uc.Login(ctx, inbound.LoginRequest{Email: "buyer@example.com"})
		if !errors.Is(err, inbound.ErrInvalidCredentials) {
			t.Errorf("Expected ErrInvalidCredentials, got %v", err)
		}
	})
}
