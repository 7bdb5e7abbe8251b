package validation

import (
	"errors"
	"strings"
	"testing"
)

// TestConfigValidatorCollectsErrors verifies every failure is kept
func TestConfigValidatorCollectsErrors(t *testing.T) {
	missing := errors.New("no such file")
	err := NewConfigValidator("Config").
		OneOf("LogLevel", "loud", []string{"debug", "info"}).
		OneOf("Format", "xml", []string{"text", "json"}).
		Custom("CatalogPath", func() error { return missing }).
		Validate()

	if err == nil {
		t.Fatal("expected errors")
	}
	if !errors.Is(err, missing) {
		t.Errorf("custom error not wrapped: %v", err)
	}
	for _, want := range []string{`Config.LogLevel: value "loud"`, "Config.Format", "Config.CatalogPath: no such file"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("combined error %q missing %q", err, want)
		}
	}
}

// TestConfigValidatorValid returns nil when nothing failed
func TestConfigValidatorValid(t *testing.T) {
	err := NewConfigValidator("Config").
		OneOf("Format", "json", []string{"text", "json"}).
		Custom("CatalogPath", func() error { return nil }).
		Validate()
	if err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

// TestConfigValidatorWhen applies nested checks only when the condition holds
func TestConfigValidatorWhen(t *testing.T) {
	bad := func(v *ConfigValidator) { v.OneOf("Format", "xml", []string{"text"}) }
	if err := NewConfigValidator("Config").When(false, bad).Validate(); err != nil {
		t.Fatalf("When(false) should not run validations: %v", err)
	}
	if err := NewConfigValidator("Config").When(true, bad).Validate(); err == nil {
		t.Fatal("When(true) should run validations")
	}
}

// TestDefaultOr covers zero and non-zero values
func TestDefaultOr(t *testing.T) {
	if got := DefaultOr("", "text"); got != "text" {
		t.Errorf("DefaultOr(\"\") = %q", got)
	}
	if got := DefaultOr("json", "text"); got != "json" {
		t.Errorf("DefaultOr(json) = %q", got)
	}
}
