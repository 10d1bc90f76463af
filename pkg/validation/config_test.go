package validation

import (
	"errors"
	"testing"
)

func TestConfigValidator_Required(t *testing.T) {
	cv := NewConfigValidator("TestConfig")
	cv.Required("Name", "")

	if !cv.HasErrors() {
		t.Error("Expected error for empty required field")
	}

	cv2 := NewConfigValidator("TestConfig")
	cv2.Required("Name", "value")

	if cv2.HasErrors() {
		t.Error("Expected no error for non-empty required field")
	}
}

func TestConfigValidator_OneOf(t *testing.T) {
	allowed := []string{"fs", "s3"}
	if NewConfigValidator("Store").OneOf("Driver", "s3", allowed).HasErrors() {
		t.Error("s3 should be accepted")
	}
	if !NewConfigValidator("Store").OneOf("Driver", "gcs", allowed).HasErrors() {
		t.Error("gcs should be rejected")
	}
}

func TestConfigValidator_CustomAndWhen(t *testing.T) {
	sentinel := errors.New("bad")
	cv := NewConfigValidator("Config").
		Custom("Field", func() error { return sentinel }).
		When(false, func(cv *ConfigValidator) { cv.Required("Skipped", "") }).
		When(true, func(cv *ConfigValidator) { cv.Required("Checked", "") })

	if len(cv.Errors()) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(cv.Errors()), cv.Errors())
	}
	if !errors.Is(cv.Validate(), sentinel) {
		t.Errorf("Validate() should wrap the custom error, got %v", cv.Validate())
	}
}

func TestConfigValidator_ValidateNil(t *testing.T) {
	if err := NewConfigValidator("Config").Required("Name", "x").Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestDefaultOr(t *testing.T) {
	if got := DefaultOr("", "json"); got != "json" {
		t.Errorf("DefaultOr() = %q, want json", got)
	}
	if got := DefaultOr("yaml", "json"); got != "yaml" {
		t.Errorf("DefaultOr() = %q, want yaml", got)
	}
}
