package vm

import (
	"errors"
	"fmt"
)

// ErrorCode classifies simulation failures
type ErrorCode int

const (
	ErrCodeUnknown ErrorCode = iota

	// Caller misuse
	ErrCodeInvalidPage
	ErrCodeInvalidMode
	ErrCodeInvalidConfig

	// Internal consistency faults
	ErrCodeInvalidStatus
	ErrCodeNoVictim
	ErrCodeInconsistent

	// Collaborator failures
	ErrCodeBackingStore
)

func (c ErrorCode) String() string {
	switch c {
	case ErrCodeInvalidPage:
		return "invalid page"
	case ErrCodeInvalidMode:
		return "invalid mode"
	case ErrCodeInvalidConfig:
		return "invalid config"
	case ErrCodeInvalidStatus:
		return "invalid status"
	case ErrCodeNoVictim:
		return "no victim"
	case ErrCodeInconsistent:
		return "inconsistent state"
	case ErrCodeBackingStore:
		return "backing store"
	default:
		return "unknown"
	}
}

// SimError is a page table error with the failing operation attached.
// Every SimError is fatal to the simulation run; the driver decides how to abort.
type SimError struct {
	Code    ErrorCode
	Message string
	Op      string // Operation that failed
	Err     error  // Underlying error (if any)
}

// Error implements the error interface
func (e *SimError) Error() string {
	if e.Op != "" {
		if e.Err != nil {
			return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *SimError) Unwrap() error {
	return e.Err
}

// Is matches another SimError with the same code
func (e *SimError) Is(target error) bool {
	if t, ok := target.(*SimError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewSimError creates a new simulation error
func NewSimError(code ErrorCode, op, message string, err error) *SimError {
	return &SimError{
		Code:    code,
		Message: message,
		Op:      op,
		Err:     err,
	}
}

func ErrInvalidPage(op string, page, pageCount int) *SimError {
	return NewSimError(
		ErrCodeInvalidPage,
		op,
		fmt.Sprintf("invalid page reference %d (page table holds %d pages)", page, pageCount),
		nil,
	)
}

func ErrInvalidMode(op string, mode AccessMode) *SimError {
	return NewSimError(
		ErrCodeInvalidMode,
		op,
		fmt.Sprintf("invalid access mode %q", byte(mode)),
		nil,
	)
}

func ErrInvalidConfig(op, message string) *SimError {
	return NewSimError(ErrCodeInvalidConfig, op, message, nil)
}

func ErrInvalidStatus(op string, page int, status Status) *SimError {
	return NewSimError(
		ErrCodeInvalidStatus,
		op,
		fmt.Sprintf("page %d has invalid status %d", page, uint8(status)),
		nil,
	)
}

func ErrNoVictim(op string) *SimError {
	return NewSimError(
		ErrCodeNoVictim,
		op,
		"no victim available: eviction queue is empty",
		nil,
	)
}

func ErrInconsistent(op, message string) *SimError {
	return NewSimError(ErrCodeInconsistent, op, message, nil)
}

func ErrBackingStore(op string, err error) *SimError {
	return NewSimError(
		ErrCodeBackingStore,
		op,
		"backing store operation failed",
		err,
	)
}

// IsErrorCode checks if err is, or wraps, a SimError with the given code
func IsErrorCode(err error, code ErrorCode) bool {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

// GetErrorCode returns the code of a wrapped SimError, or ErrCodeUnknown
func GetErrorCode(err error) ErrorCode {
	var se *SimError
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeUnknown
}
