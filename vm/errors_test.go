package vm

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSimError(t *testing.T) {
	err := NewSimError(ErrCodeInvalidPage, "RequestPage", "invalid page reference", nil)

	if err.Code != ErrCodeInvalidPage {
		t.Errorf("Expected error code %d, got %d", ErrCodeInvalidPage, err.Code)
	}

	expected := "RequestPage: invalid page reference"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}

	noOp := NewSimError(ErrCodeNoVictim, "", "no victim", nil)
	if noOp.Error() != "no victim" {
		t.Errorf("Expected bare message, got '%s'", noOp.Error())
	}
}

func TestSimErrorWithUnderlying(t *testing.T) {
	underlying := fmt.Errorf("swap file closed")
	err := ErrBackingStore("evict", underlying)

	if errors.Unwrap(err) != underlying {
		t.Error("Unwrap did not return underlying error")
	}

	expected := "evict: backing store operation failed: swap file closed"
	if err.Error() != expected {
		t.Errorf("Expected error message '%s', got '%s'", expected, err.Error())
	}
}

func TestErrorHelpers(t *testing.T) {
	tests := []struct {
		name     string
		err      *SimError
		code     ErrorCode
		contains string
	}{
		{"InvalidPage", ErrInvalidPage("test", 12, 8), ErrCodeInvalidPage, "invalid page reference 12 (page table holds 8 pages)"},
		{"InvalidMode", ErrInvalidMode("test", AccessMode('x')), ErrCodeInvalidMode, "invalid access mode 'x'"},
		{"InvalidStatus", ErrInvalidStatus("test", 3, Status(7)), ErrCodeInvalidStatus, "page 3 has invalid status 7"},
		{"NoVictim", ErrNoVictim("test"), ErrCodeNoVictim, "eviction queue is empty"},
		{"Inconsistent", ErrInconsistent("test", "victim page 2 is not resident"), ErrCodeInconsistent, "victim page 2"},
		{"InvalidConfig", ErrInvalidConfig("test", "page count must be greater than 0"), ErrCodeInvalidConfig, "page count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Expected error code %d, got %d", tt.code, tt.err.Code)
			}
			if !strings.Contains(tt.err.Error(), tt.contains) {
				t.Errorf("Error message '%s' does not contain '%s'", tt.err.Error(), tt.contains)
			}
		})
	}
}

func TestIsErrorCode(t *testing.T) {
	err := ErrInvalidPage("test", 1, 1)

	if !IsErrorCode(err, ErrCodeInvalidPage) {
		t.Error("IsErrorCode should return true for matching code")
	}
	if IsErrorCode(err, ErrCodeNoVictim) {
		t.Error("IsErrorCode should return false for non-matching code")
	}

	wrapped := fmt.Errorf("replay trace line 4: %w", err)
	if !IsErrorCode(wrapped, ErrCodeInvalidPage) {
		t.Error("IsErrorCode should see through fmt wrapping")
	}

	if IsErrorCode(fmt.Errorf("generic error"), ErrCodeInvalidPage) {
		t.Error("IsErrorCode should return false for non-SimError")
	}
}

func TestGetErrorCode(t *testing.T) {
	if code := GetErrorCode(ErrNoVictim("test")); code != ErrCodeNoVictim {
		t.Errorf("Expected error code %d, got %d", ErrCodeNoVictim, code)
	}
	if code := GetErrorCode(fmt.Errorf("generic error")); code != ErrCodeUnknown {
		t.Errorf("Expected error code %d for generic error, got %d", ErrCodeUnknown, code)
	}
}

func TestErrorIs(t *testing.T) {
	err1 := ErrInvalidPage("test", 5, 4)
	err2 := ErrInvalidPage("other", 9, 4)

	if !errors.Is(err1, err2) {
		t.Error("errors.Is should return true for same error code")
	}
	if errors.Is(err1, ErrNoVictim("test")) {
		t.Error("errors.Is should return false for different error codes")
	}
}

func TestErrorCodeString(t *testing.T) {
	if ErrCodeNoVictim.String() != "no victim" {
		t.Errorf("Unexpected code name %q", ErrCodeNoVictim.String())
	}
	if ErrorCode(99).String() != "unknown" {
		t.Errorf("Unexpected code name %q", ErrorCode(99).String())
	}
}
