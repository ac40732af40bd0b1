package validator

import (
	"testing"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"buyer@example.com",
		"first.last@example.co.uk",
		"user+tag@example.io",
	}
	for _, email := range valid {
		if !ValidateEmail(email) {
			t.Errorf("Email %q should be valid", email)
		}
	}

	invalid := []string{
		"",
		"not-an-email",
		"missing@domain",
		"@example.com",
		"spaces in@example.com",
	}
	for _, email := range invalid {
		if ValidateEmail(email) {
			t.Errorf("Email %q should be invalid", email)
		}
	}
}

func TestValidateRequired(t *testing.T) {
	if !ValidateRequired("value") {
		t.Error("Non-blank value should pass")
	}
	if ValidateRequired("") {
		t.Error("Empty value should fail")
	}
	if ValidateRequired("   ") {
		t.Error("Whitespace-only value should fail")
	}
}
