package controllers

import (
	"net/http"

	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// NotificationController serves a user's notification feed
type NotificationController struct {
	notifications *services.NotificationService
	logger        zerolog.Logger
}

// NewNotificationController creates a new NotificationController
func NewNotificationController(notifications *services.NotificationService, logger zerolog.Logger) *NotificationController {
	return &NotificationController{
		notifications: notifications,
		logger:        logger,
	}
}

// List handles retrieving the caller's feed
// @Summary List notifications
// @Description Targeted notifications plus broadcasts, newest first. Callers without an identity get an empty feed.
// @Tags notifications
// @Produce json
// @Param X-User-ID header string false "Client identity"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Param unreadOnly query bool false "Only unread notifications"
// @Success 200 {object} dto.APIResponse{data=[]dto.NotificationResponse,pagination=dto.PaginationInfo} "Notifications retrieved successfully"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /notifications [get]
func (c *NotificationController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	unreadOnly := helpers.ParseBoolQuery(ctx, "unreadOnly")

	items, p, err := c.notifications.List(ctx.Request.Context(), middleware.CurrentUserID(ctx), page, size, unreadOnly)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(dto.FromNotifications(items), p.Info(), "Notifications retrieved successfully"))
}

// UnreadCount handles the unread badge
// @Summary Count unread notifications
// @Description Counts unread notifications targeted at the caller. Broadcasts are not counted.
// @Tags notifications
// @Produce json
// @Param X-User-ID header string false "Client identity"
// @Success 200 {object} dto.APIResponse{data=dto.UnreadCountResponse} "Unread count retrieved successfully"
// @Router /notifications/unread-count [get]
func (c *NotificationController) UnreadCount(ctx *gin.Context) {
	n, err := c.notifications.UnreadCount(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UnreadCountResponse{UnreadCount: n}, "Unread count retrieved successfully"))
}

// MarkRead handles marking one notification as read
// @Summary Mark a notification as read
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "Client identity"
// @Param id path int true "Notification ID"
// @Success 200 {object} dto.APIResponse "Notification marked as read"
// @Failure 401 {object} dto.ErrorResponse "Missing identity"
// @Failure 403 {object} dto.ErrorResponse "Not the recipient"
// @Failure 404 {object} dto.ErrorResponse "Notification not found"
// @Router /notifications/{id}/read [post]
func (c *NotificationController) MarkRead(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.notifications.MarkRead(ctx.Request.Context(), id, middleware.CurrentUserID(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Notification marked as read"))
}

// MarkAllRead handles marking the caller's whole feed as read
// @Summary Mark all notifications as read
// @Tags notifications
// @Produce json
// @Param X-User-ID header string true "Client identity"
// @Success 200 {object} dto.APIResponse{data=dto.MarkAllReadResponse} "Notifications marked as read"
// @Failure 401 {object} dto.ErrorResponse "Missing identity"
// @Router /notifications/read-all [post]
func (c *NotificationController) MarkAllRead(ctx *gin.Context) {
	updated, err := c.notifications.MarkAllRead(ctx.Request.Context(), middleware.CurrentUserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.MarkAllReadResponse{Updated: updated}, "Notifications marked as read"))
}
