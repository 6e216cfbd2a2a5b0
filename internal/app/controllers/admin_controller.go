package controllers

import (
	"net/http"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminController handles admin login, the result gate and announcements
type AdminController struct {
	auth          *services.AdminAuthService
	results       *services.ResultService
	notifications *services.NotificationService
	logger        zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(auth *services.AdminAuthService, results *services.ResultService, notifications *services.NotificationService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		auth:          auth,
		results:       results,
		notifications: notifications,
		logger:        logger,
	}
}

// Login handles admin login
// @Summary Admin login
// @Tags admin
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.LoginResponse} "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /admin/auth/login [post]
func (c *AdminController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.auth.Login(ctx.Request.Context(), req.Username, req.Password)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Login successful"))
}

// ReleaseResults opens the result gate
// @Summary Release interview results
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ResultGateResponse} "Results released"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/results/release [post]
func (c *AdminController) ReleaseResults(ctx *gin.Context) {
	if err := c.results.Release(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ResultGateResponse{Released: true}, "Results released"))
}

// HideResults closes the result gate
// @Summary Hide interview results
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ResultGateResponse} "Results hidden"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/results/hide [post]
func (c *AdminController) HideResults(ctx *gin.Context) {
	if err := c.results.Hide(ctx.Request.Context()); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ResultGateResponse{Released: false}, "Results hidden"))
}

// ResultStatus reports whether results are released
// @Summary Result gate status
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.ResultGateResponse} "Result status retrieved"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/results/status [get]
func (c *AdminController) ResultStatus(ctx *gin.Context) {
	released, err := c.results.Released(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.ResultGateResponse{Released: released}, "Result status retrieved"))
}

// CreateAnnouncement publishes an announcement
// @Summary Publish an announcement
// @Description Without recipientIds a single broadcast is written, otherwise one notification per id.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAnnouncementRequest true "Announcement"
// @Success 201 {object} dto.APIResponse{data=dto.AnnouncementResponse} "Announcement published"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/announcements [post]
func (c *AdminController) CreateAnnouncement(ctx *gin.Context) {
	var req dto.CreateAnnouncementRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	created, err := c.notifications.CreateAnnouncement(ctx.Request.Context(), req.Message, req.RecipientIDs, middleware.AdminUsername(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.AnnouncementResponse{Created: created}, "Announcement published"))
}
