package entity

import (
	"testing"
)

func TestNewSweet(t *testing.T) {
	sweet := NewSweet("sweet-1", "Gummy Bears", "gummy", 2.50, 100)

	if sweet.ID != "sweet-1" {
		t.Errorf("Expected ID sweet-1, got %s", sweet.ID)
	}
	if sweet.Name != "Gummy Bears" {
		t.Errorf("Expected name Gummy Bears, got %s", sweet.Name)
	}
	if sweet.Category != "gummy" {
		t.Errorf("Expected category gummy, got %s", sweet.Category)
	}
	if sweet.Price != 2.50 {
		t.Errorf("Expected price 2.50, got %v", sweet.Price)
	}
	if sweet.Quantity != 100 {
		t.Errorf("Expected quantity 100, got %d", sweet.Quantity)
	}
	if sweet.CreatedAt.IsZero() || sweet.UpdatedAt.IsZero() {
		t.Error("Timestamps should be set")
	}
}

func TestNewUser(t *testing.T) {
	user := NewUser("user-1", "buyer@example.com", "hashed-secret", RoleCustomer)

	if user.ID != "user-1" {
		t.Errorf("Expected ID user-1, got %s", user.ID)
	}
	if user.Email != "buyer@example.com" {
		t.Errorf("Expected email buyer@example.com, got %s", user.Email)
	}
	if user.Role != RoleCustomer {
		t.Errorf("Expected role CUSTOMER, got %s", user.Role)
	}
}

func TestIsValidRole(t *testing.T) {
	valid := []string{RoleAdmin, RoleCustomer}
	for _, role := range valid {
		if !IsValidRole(role) {
			t.Errorf("Role %s should be valid", role)
		}
	}

	invalid := []string{"", "admin", "customer", "SUPERUSER"}
	for _, role := range invalid {
		if IsValidRole(role) {
			t.Errorf("Role %s should be invalid", role)
		}
	}
}
