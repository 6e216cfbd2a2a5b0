package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/pkg/apperrors"
	"github.com/csecl/interviewhub/internal/pkg/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) dto.ErrorResponse {
	t.Helper()
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHandleAPIError_StatusMapping(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   dto.ErrorCode
	}{
		{apperrors.NewValidationError("title is required"), http.StatusBadRequest, dto.ErrorCodeValidationFailed},
		{apperrors.ErrMissingIdentity, http.StatusUnauthorized, dto.ErrorCodeMissingIdentity},
		{apperrors.NewForbiddenError("nope"), http.StatusForbidden, dto.ErrorCodeForbidden},
		{apperrors.ErrPostNotFound, http.StatusNotFound, dto.ErrorCodeResourceNotFound},
		{apperrors.ErrApplicationAlreadyExists, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists},
		{errors.New("boom"), http.StatusInternalServerError, dto.ErrorCodeInternalServer},
	}

	for _, tt := range tests {
		rec := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(rec)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		HandleAPIError(c, tt.err)

		assert.Equal(t, tt.status, rec.Code, tt.err.Error())
		body := decodeError(t, rec)
		assert.False(t, body.Success)
		assert.Equal(t, tt.code, body.Error.Code)
	}
}

func TestHandleAPIError_UsesCustomMessage(t *testing.T) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	HandleAPIError(c, apperrors.ErrPostNotFound)
	assert.Equal(t, "post not found", decodeError(t, rec).Message)
}

func TestIdentityMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(UserIdentity())
	r.POST("/issue", EnsureUserID(true), func(c *gin.Context) { c.String(200, CurrentUserID(c)) })
	r.POST("/need", RequireUserID(), func(c *gin.Context) { c.String(200, CurrentUserID(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/issue", nil))
	assert.Equal(t, 200, rec.Code)
	assert.Len(t, rec.Body.String(), 36)
	assert.Equal(t, rec.Body.String(), rec.Header().Get(UserIDHeader))

	req := httptest.NewRequest(http.MethodPost, "/issue", nil)
	req.Header.Set(UserIDHeader, "alice")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "alice", rec.Body.String())

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/need", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeMissingIdentity, decodeError(t, rec).Error.Code)
}

func TestAdminAuth(t *testing.T) {
	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "k", AccessTokenExp: time.Hour, TokenIssuer: "interviewhub"})
	token, _, err := jwtService.GenerateAccessToken("admin")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/admin", NewAuthMiddleware(jwtService).AdminAuth(), func(c *gin.Context) { c.String(200, AdminUsername(c)) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, dto.ErrorCodeInvalidToken, decodeError(t, rec).Error.Code)

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", rec.Body.String())
}
