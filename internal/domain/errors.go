package domain

import (
	"fmt"
)

type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Err        error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithError(err error) *AppError {
	return &AppError{
		Code:       e.Code,
		Message:    e.Message,
		StatusCode: e.StatusCode,
		Err:        err,
	}
}

// Pre-defined errors
var (
	ErrInternal = &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "An unexpected error occurred",
		StatusCode: 500,
	}

	ErrBadRequest = &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Invalid request body",
		StatusCode: 400,
	}

	ErrVideoPathRequired = &AppError{
		Code:       "VIDEO_PATH_REQUIRED",
		Message:    "Video path not provided",
		StatusCode: 400,
	}

	// ErrVideoNotFound is only returned when strict video path checking is enabled.
	ErrVideoNotFound = &AppError{
		Code:       "VIDEO_NOT_FOUND",
		Message:    "Video not found",
		StatusCode: 404,
	}
)
