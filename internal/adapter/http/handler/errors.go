package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Prakhar9001/Fake-news-detection-system/internal/usecase"
)

// Error codes returned in the response envelope
const (
	CodeInvalidInput   = "INVALID_INPUT"
	CodeInvalidRequest = "INVALID_REQUEST"
	CodeNotFound       = "NOT_FOUND"
	CodeInternalError  = "INTERNAL_ERROR"
	CodeUnavailable    = "SERVICE_UNAVAILABLE"
)

// ErrorResponse represents a structured error response
type ErrorResponse struct {
	StatusCode int
	Code       string
	Message    string
}

// MapUsecaseError maps usecase errors to HTTP error responses.
// Messages are meant to be shown to the end user as is.
func MapUsecaseError(err error) ErrorResponse {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidInput,
			Message:    "please enter some text to analyze",
		}
	case errors.Is(err, usecase.ErrTextTooLong):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidInput,
			Message:    "text is too long to analyze",
		}
	case errors.Is(err, usecase.ErrBatchTooLarge):
		return ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Code:       CodeInvalidRequest,
			Message:    "too many texts in one batch",
		}
	case errors.Is(err, usecase.ErrCheckNotFound):
		return ErrorResponse{
			StatusCode: http.StatusNotFound,
			Code:       CodeNotFound,
			Message:    "check not found",
		}
	default:
		return ErrorResponse{
			StatusCode: http.StatusInternalServerError,
			Code:       CodeInternalError,
			Message:    "classification failed",
		}
	}
}

// HandleUsecaseError sends the mapped error response for err.
func HandleUsecaseError(c *gin.Context, err error) {
	errResp := MapUsecaseError(err)
	if errResp.StatusCode >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	respondError(c, errResp.StatusCode, errResp.Code, errResp.Message)
}

// HandleInvalidUUID handles an invalid UUID parameter error.
func HandleInvalidUUID(c *gin.Context, paramName string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, "invalid "+paramName)
}

// HandleInvalidRequest handles a malformed request body.
func HandleInvalidRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, CodeInvalidRequest, message)
}
