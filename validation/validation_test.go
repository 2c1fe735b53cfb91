package validation

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestValidatorRequired(t *testing.T) {
	v := New()
	v.Required("name", "John")
	if v.HasErrors() {
		t.Error("expected no errors for valid input")
	}

	v = New()
	v.Required("name", "   ")
	if !v.HasErrors() {
		t.Error("expected error for blank input")
	}
}

func TestValidatorRequiredUUID(t *testing.T) {
	v := New()
	v.RequiredUUID("id", uuid.NewString())
	if v.HasErrors() {
		t.Errorf("expected no errors, got %v", v.Errors())
	}

	v = New()
	v.RequiredUUID("id", "not-a-uuid")
	if !v.HasErrors() {
		t.Error("expected error for malformed UUID")
	}

	v = New()
	v.RequiredUUID("id", uuid.Nil.String())
	if !v.HasErrors() {
		t.Error("expected error for nil UUID")
	}
}

func TestValidatorMinMax(t *testing.T) {
	v := New()
	v.Min("permits", 0, 1)
	v.Max("cutoff", 100, 64)
	if len(v.Errors()) != 2 {
		t.Errorf("expected 2 errors, got %d", len(v.Errors()))
	}

	err := v.Error()
	if err == nil {
		t.Fatal("expected combined error")
	}
	if !strings.Contains(err.Error(), "permits") || !strings.Contains(err.Error(), "cutoff") {
		t.Errorf("combined error missing fields: %v", err)
	}
}

func TestValidatorNoErrors(t *testing.T) {
	v := New()
	if err := v.Error(); err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
}

func TestValidateStruct(t *testing.T) {
	type cfg struct {
		BaseURL     string `mapstructure:"base_url" validate:"omitempty,url"`
		Concurrency int    `mapstructure:"max_concurrency" validate:"min=1"`
	}

	if err := Validate(cfg{BaseURL: "https://example.com", Concurrency: 4}); err != nil {
		t.Errorf("valid struct rejected: %v", err)
	}

	err := Validate(cfg{BaseURL: "not a url", Concurrency: 0})
	if err == nil {
		t.Fatal("invalid struct accepted")
	}
	if !strings.Contains(err.Error(), "base_url") {
		t.Errorf("error should name base_url field: %v", err)
	}
	if !strings.Contains(err.Error(), "max_concurrency") {
		t.Errorf("error should name max_concurrency field: %v", err)
	}
}
