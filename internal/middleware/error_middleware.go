package middleware

import (
	"errors"
	"net/http"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/logger"
	"github.com/csecl/interviewhub/internal/pkg/observability"
	"github.com/gin-gonic/gin"
)

// HandleAPIError maps an error to its status code and writes the standard
// error body. Unexpected errors are logged and reported to Sentry.
func HandleAPIError(c *gin.Context, err error) {
	var (
		status int
		code   dto.ErrorCode
		msg    string
	)

	switch {
	case errors.Is(err, apperrors.ErrValidationFailed):
		status, code, msg = http.StatusBadRequest, dto.ErrorCodeValidationFailed, "Validation failed"
	case errors.Is(err, apperrors.ErrBadRequest):
		status, code, msg = http.StatusBadRequest, dto.ErrorCodeBadRequest, "Bad request"
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		status, code, msg = http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, "Invalid credentials"
	case errors.Is(err, apperrors.ErrTokenExpired):
		status, code, msg = http.StatusUnauthorized, dto.ErrorCodeExpiredToken, "Token expired"
	case errors.Is(err, apperrors.ErrTokenInvalid):
		status, code, msg = http.StatusUnauthorized, dto.ErrorCodeInvalidToken, "Invalid token"
	case errors.Is(err, apperrors.ErrMissingIdentity):
		status, code, msg = http.StatusUnauthorized, dto.ErrorCodeMissingIdentity, "User identity is required"
	case errors.Is(err, apperrors.ErrUnauthorized):
		status, code, msg = http.StatusUnauthorized, dto.ErrorCodeUnauthorized, "Authentication required"
	case errors.Is(err, apperrors.ErrPermissionDenied):
		status, code, msg = http.StatusForbidden, dto.ErrorCodeForbidden, "Permission denied"
	case errors.Is(err, apperrors.ErrResourceNotFound):
		status, code, msg = http.StatusNotFound, dto.ErrorCodeResourceNotFound, "Resource not found"
	case errors.Is(err, apperrors.ErrConflict):
		status, code, msg = http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, "Resource already exists"
	default:
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error")
		observability.CaptureErr(err)

		errorDetail := dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(errorDetail))
		return
	}

	errorDetail := dto.NewErrorDetail(code, apperrors.Message(err, msg))
	var ce *apperrors.CustomError
	if errors.As(err, &ce) && ce.Details != nil {
		errorDetail = errorDetail.WithDetails(ce.Details)
	}
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(errorDetail))
}
