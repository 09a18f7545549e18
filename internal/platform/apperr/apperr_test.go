package apperr

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsNotFound_Wrapped(t *testing.T) {
	err := fmt.Errorf("get visit 7: %w", ErrNotFound)
	if !IsNotFound(err) {
		t.Error("expected wrapped ErrNotFound to be detected")
	}
	if IsNotFound(errors.New("other")) {
		t.Error("unrelated error reported as not found")
	}
}

func TestIsForeignKey_Wrapped(t *testing.T) {
	err := fmt.Errorf("insert visit: %w", ErrForeignKey)
	if !IsForeignKey(err) {
		t.Error("expected wrapped ErrForeignKey to be detected")
	}
}

func TestValidationError_Message(t *testing.T) {
	ve := Invalid("name", "Name is required")
	if ve.Error() != "validation failed: name: Name is required" {
		t.Errorf("unexpected message: %s", ve.Error())
	}
	ve.Add("email", "Invalid email format")
	if ve.Error() != "validation failed: 2 invalid fields" {
		t.Errorf("unexpected message: %s", ve.Error())
	}
}

func TestAsValidation(t *testing.T) {
	ve := Invalid("status", "invalid status")
	wrapped := fmt.Errorf("create visit: %w", ve)
	got, ok := AsValidation(wrapped)
	if !ok {
		t.Fatal("expected ValidationError to unwrap")
	}
	if len(got.Fields) != 1 || got.Fields[0].Field != "status" {
		t.Errorf("unexpected fields: %+v", got.Fields)
	}
	if _, ok := AsValidation(errors.New("plain")); ok {
		t.Error("plain error unwrapped as ValidationError")
	}
}
