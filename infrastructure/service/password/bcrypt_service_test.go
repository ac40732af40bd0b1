package password

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcryptPasswordService(t *testing.T) {
	// MinCost keeps the suite fast; production uses the configured cost.
	service := NewBcryptPasswordService(bcrypt.MinCost)

	t.Run("HashPassword", func(t *testing.T) {
		hash, err := service.HashPassword("sugar-rush-123")
		if err != nil {
			t.Errorf("Failed to hash password: %v", err)
		}
		if hash == "" {
			t.Error("Hash should not be empty")
		}
		if hash == "sugar-rush-123" {
			t.Error("Hash should not equal the plaintext password")
		}
	})

	t.Run("HashEmptyPassword", func(t *testing.T) {
		if _, err := service.HashPassword(""); err == nil {
			t.Error("Should fail to hash empty password")
		}
	})

	t.Run("VerifyPassword", func(t *testing.T) {
		hash, err := service.HashPassword("sugar-rush-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		isValid, err := service.VerifyPassword("sugar-rush-123", hash)
		if err != nil {
			t.Errorf("Failed to verify password: %v", err)
		}
		if !isValid {
			t.Error("Password should be valid")
		}
	})

	t.Run("VerifyWrongPassword", func(t *testing.T) {
		hash, err := service.HashPassword("sugar-rush-123")
		if err != nil {
			t.Fatalf("Failed to hash password: %v", err)
		}

		isValid, err := service.VerifyPassword("salt-lick-456", hash)
		if err != nil {
			t.Errorf("Should not return error for wrong password: %v", err)
		}
		if isValid {
			t.Error("Wrong password should not be valid")
		}
	})

	t.Run("VerifyEmptyPassword", func(t *testing.T) {
		hash, _ := service.HashPassword("sugar-rush-123")
		if _, err := service.VerifyPassword("", hash); err == nil {
			t.Error("Should fail to verify with empty password")
		}
	})

	t.Run("VerifyEmptyHash", func(t *testing.T) {
		if _, err := service.VerifyPassword("password", ""); err == nil {
			t.Error("Should fail to verify with empty hash")
		}
	})

	t.Run("ZeroCostFallsBackToDefault", func(t *testing.T) {
		defaultService := NewBcryptPasswordService(0)
		if defaultService.cost != bcrypt.DefaultCost {
			t.Errorf("Expected default cost %d, got %d", bcrypt.DefaultCost, defaultService.cost)
		}
	})
}
