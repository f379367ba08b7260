package validate_test

import (
	"testing"

	"github.com/Kantor012/Product-Catalog/pkg/validate"
)

type registerInput struct {
	Name     string  `json:"name"     validate:"required,min=2,max=50"`
	Email    string  `json:"email"    validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Rating   float64 `json:"rating"   validate:"nullable,gte=1,lte=5"`
	Role     string  `json:"role"     validate:"nullable,in=admin|user"`
}

func TestValidInput(t *testing.T) {
	errs := validate.Struct(registerInput{
		Name:     "John Doe",
		Email:    "john@example.com",
		Password: "secret123",
		Rating:   4,
		Role:     "user",
	})
	if validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestRequiredFails(t *testing.T) {
	errs := validate.Struct(registerInput{})
	if !validate.HasErrors(errs) {
		t.Fatal("expected required errors")
	}
	if _, ok := errs["name"]; !ok {
		t.Error("expected name to be required")
	}
	if _, ok := errs["email"]; !ok {
		t.Error("expected email to be required")
	}
	if _, ok := errs["rating"]; ok {
		t.Error("nullable rating must not error when empty")
	}
}

func TestEmailRule(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	if errs := validate.Struct(in{Email: "not-an-email"}); len(errs) == 0 {
		t.Error("expected email validation error")
	}
	if errs := validate.Struct(in{Email: "valid@example.com"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestNumericBounds(t *testing.T) {
	type in struct {
		Rating float64 `json:"rating" validate:"required,gte=1,lte=5"`
	}
	if errs := validate.Struct(in{Rating: 6}); len(errs) == 0 {
		t.Error("expected lte error for rating 6")
	}
	if errs := validate.Struct(in{Rating: 0.5}); len(errs) == 0 {
		t.Error("expected gte error for rating 0.5")
	}
	if errs := validate.Struct(in{Rating: 3}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestStringLengthRules(t *testing.T) {
	type in struct {
		Name string `json:"name" validate:"required,min=2,max=5"`
	}
	if errs := validate.Struct(in{Name: "a"}); len(errs) == 0 {
		t.Error("expected min error for single char")
	}
	if errs := validate.Struct(in{Name: "abcdef"}); len(errs) == 0 {
		t.Error("expected max error for six chars")
	}
}

func TestInRule(t *testing.T) {
	type in struct {
		Sort string `json:"sort" validate:"required,in=price_asc|price_desc"`
	}
	if errs := validate.Struct(in{Sort: "name_asc"}); len(errs) == 0 {
		t.Error("expected in error for unknown value")
	}
	if errs := validate.Struct(in{Sort: "price_desc"}); validate.HasErrors(errs) {
		t.Errorf("expected no errors, got: %v", errs)
	}
}

func TestFirstFailingRuleWins(t *testing.T) {
	type in struct {
		Email string `json:"email" validate:"required,email"`
	}
	errs := validate.Struct(in{})
	if errs["email"] != "The email field is required." {
		t.Errorf("expected the required message, got: %q", errs["email"])
	}
}
