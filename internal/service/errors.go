package service

import (
	"errors"
	"fmt"

	"github.com/dalfonso89/multitool-api/internal/extraction"
	"github.com/dalfonso89/multitool-api/internal/llm"
)

// Custom error types for better error handling with type switches
type ErrorType int

const (
	ErrorTypeModelFailure ErrorType = iota
	ErrorTypeNoJSONFound
	ErrorTypeMalformedJSON
	ErrorTypeUnknown
)

func (errorType ErrorType) String() string {
	switch errorType {
	case ErrorTypeModelFailure:
		return "ModelError"
	case ErrorTypeNoJSONFound:
		return "NoJsonFound"
	case ErrorTypeMalformedJSON:
		return "MalformedJson"
	default:
		return "Unknown"
	}
}

// ServiceError represents a service-specific error with type information
type ServiceError struct {
	Type    ErrorType
	Message string
	Cause   error
}

func (e *ServiceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// classifyError maps an adapter or pipeline error to its ErrorType
func classifyError(err error) ErrorType {
	var serviceError *ServiceError
	var modelError *llm.ModelError

	switch {
	case err == nil:
		return ErrorTypeUnknown
	case errors.As(err, &serviceError):
		return serviceError.Type
	case errors.As(err, &modelError):
		return ErrorTypeModelFailure
	case errors.Is(err, extraction.ErrNoJSONFound):
		return ErrorTypeNoJSONFound
	case errors.Is(err, extraction.ErrMalformedJSON):
		return ErrorTypeMalformedJSON
	default:
		return ErrorTypeUnknown
	}
}

// ClassifyError reports the ErrorType of err
func ClassifyError(err error) ErrorType {
	return classifyError(err)
}
