package controllers

import (
	"bytes"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/csecl/interviewhub/internal/app/models"
	"github.com/csecl/interviewhub/internal/app/models/dto"
	"github.com/csecl/interviewhub/internal/app/services"
	"github.com/csecl/interviewhub/internal/middleware"
	"github.com/csecl/interviewhub/internal/pkg/export"
	"github.com/csecl/interviewhub/internal/pkg/helpers"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ApplicationController handles interview applications and result queries
type ApplicationController struct {
	applications *services.ApplicationService
	results      *services.ResultService
	logger       zerolog.Logger
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applications *services.ApplicationService, results *services.ResultService, logger zerolog.Logger) *ApplicationController {
	return &ApplicationController{
		applications: applications,
		results:      results,
		logger:       logger,
	}
}

// Submit handles a student's application
// @Summary Submit an application
// @Description Stores a new interview application. Each student number may apply once.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.ApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application submitted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Student number already applied"
// @Router /applications [post]
func (c *ApplicationController) Submit(ctx *gin.Context) {
	var req dto.ApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applications.Submit(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app, "Application submitted successfully"))
}

// QueryResult handles a student's result lookup
// @Summary Query an interview result
// @Description Returns not_released, in_progress, passed or failed for a student number.
// @Tags applications
// @Accept json
// @Produce json
// @Param request body dto.ResultQueryRequest true "Student number"
// @Success 200 {object} dto.APIResponse{data=models.ResultOutcome} "Result retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /applications/result [post]
func (c *ApplicationController) QueryResult(ctx *gin.Context) {
	var req dto.ResultQueryRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}
	c.respondResult(ctx, req.Number)
}

// AdminQueryResult is QueryResult for administrators
// @Summary Query a result as admin
// @Tags admin-applications
// @Produce json
// @Security BearerAuth
// @Param number query string true "Student number"
// @Success 200 {object} dto.APIResponse{data=models.ResultOutcome} "Result retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing number"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/result [get]
func (c *ApplicationController) AdminQueryResult(ctx *gin.Context) {
	c.respondResult(ctx, ctx.Query("number"))
}

func (c *ApplicationController) respondResult(ctx *gin.Context, number string) {
	outcome, err := c.results.Query(ctx.Request.Context(), number)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(outcome, outcome.Message))
}

func applicationFilter(ctx *gin.Context) models.ApplicationFilter {
	return models.ApplicationFilter{
		Keyword:   strings.TrimSpace(ctx.Query("keyword")),
		Direction: strings.TrimSpace(ctx.Query("direction")),
		Grade:     strings.TrimSpace(ctx.Query("grade")),
	}
}

// List handles the admin application list
// @Summary List applications
// @Tags admin-applications
// @Produce json
// @Security BearerAuth
// @Param keyword query string false "Student number contains"
// @Param direction query string false "Follow direction contains"
// @Param grade query string false "Grade"
// @Param page query int false "Page number (default: 1)"
// @Param pageSize query int false "Page size (default: 10)"
// @Success 200 {object} dto.APIResponse{data=[]models.Application,pagination=dto.PaginationInfo} "Applications retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	apps, p, err := c.applications.List(ctx.Request.Context(), applicationFilter(ctx), page, size)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewPaginatedResponse(apps, p.Info(), "Applications retrieved successfully"))
}

// SearchByName handles searching applications by applicant name
// @Summary Search applications by name
// @Tags admin-applications
// @Produce json
// @Security BearerAuth
// @Param name query string true "Name contains"
// @Success 200 {object} dto.APIResponse{data=[]models.Application} "Applications retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Missing name"
// @Router /admin/applications/by-name [get]
func (c *ApplicationController) SearchByName(ctx *gin.Context) {
	apps, err := c.applications.SearchByName(ctx.Request.Context(), ctx.Query("name"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(apps, "Applications retrieved successfully"))
}

// Export streams the filtered applications as an xlsx workbook
// @Summary Export applications
// @Tags admin-applications
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param keyword query string false "Student number contains"
// @Param direction query string false "Follow direction contains"
// @Param grade query string false "Grade"
// @Success 200 {file} file "Workbook"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Router /admin/applications/export [get]
func (c *ApplicationController) Export(ctx *gin.Context) {
	var buf bytes.Buffer
	if err := c.applications.Export(ctx.Request.Context(), &buf, applicationFilter(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(time.Now())))
	ctx.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// Create handles an application entered by an administrator
// @Summary Create an application
// @Tags admin-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ApplicationRequest true "Application"
// @Success 201 {object} dto.APIResponse{data=models.Application} "Application created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request"
// @Failure 409 {object} dto.ErrorResponse "Student number already applied"
// @Router /admin/applications [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	var req dto.ApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applications.Submit(ctx.Request.Context(), req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(app, "Application created successfully"))
}

// Get handles retrieving one application
// @Summary Get an application
// @Tags admin-applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [get]
func (c *ApplicationController) Get(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	app, err := c.applications.Get(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app, "Application retrieved successfully"))
}

// Update handles editing an application
// @Summary Update an application
// @Description Replaces the applicant-supplied fields. The score and remark are kept.
// @Tags admin-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ApplicationRequest true "Application"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Application updated successfully"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Failure 409 {object} dto.ErrorResponse "Student number already applied"
// @Router /admin/applications/{id} [put]
func (c *ApplicationController) Update(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ApplicationRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applications.Update(ctx.Request.Context(), id, req.ToModel())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app, "Application updated successfully"))
}

// Delete handles removing an application
// @Summary Delete an application
// @Tags admin-applications
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse "Application deleted successfully"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	if err := c.applications.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Application deleted successfully"))
}

// Score handles assigning the interview score
// @Summary Score an application
// @Tags admin-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.ScoreRequest true "Score"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Score saved successfully"
// @Failure 400 {object} dto.ErrorResponse "Score out of range"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id}/score [post]
func (c *ApplicationController) Score(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.ScoreRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applications.Score(ctx.Request.Context(), id, req.Score)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app, "Score saved successfully"))
}

// Remark handles the admin remark
// @Summary Set the admin remark
// @Tags admin-applications
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Application ID"
// @Param request body dto.RemarkRequest true "Remark"
// @Success 200 {object} dto.APIResponse{data=models.Application} "Remark saved successfully"
// @Failure 404 {object} dto.ErrorResponse "Application not found"
// @Router /admin/applications/{id}/remark [post]
func (c *ApplicationController) Remark(ctx *gin.Context) {
	id, ok := pathID(ctx, "id")
	if !ok {
		return
	}

	var req dto.RemarkRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	app, err := c.applications.Remark(ctx.Request.Context(), id, req.Remark)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(app, "Remark saved successfully"))
}
