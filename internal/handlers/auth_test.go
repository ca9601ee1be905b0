package handlers

import "testing"

func TestValidateRegistration(t *testing.T) {
	if err := validateRegistration("ab", "secret123"); err == nil {
		t.Fatal("expected error for short username")
	}
	if err := validateRegistration("admin", "12345"); err == nil {
		t.Fatal("expected error for short password")
	}
	if err := validateRegistration("admin", "secret123"); err != nil {
		t.Fatalf("expected valid registration, got %v", err)
	}
}
