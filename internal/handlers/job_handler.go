package handlers

import (
	"net/http"

	"homepro_backend/internal/middleware"
	"homepro_backend/internal/models"
	"homepro_backend/internal/services"
	"homepro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	*BaseHandler
	jobService services.JobService
}

func NewJobHandler(base *BaseHandler, jobService services.JobService) *JobHandler {
	return &JobHandler{
		BaseHandler: base,
		jobService:  jobService,
	}
}

func (h *JobHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobs := r.Group("/jobs")
	jobs.Use(middleware.AuthMiddleware())
	{
		jobs.GET("/:jobId", h.GetJob)

		// Professionals browse the open jobs in their trade.
		jobs.GET("", middleware.RoleMiddleware(models.UserRoleProfessional), h.ListOpenJobs)
	}

	clientJobs := r.Group("/jobs")
	clientJobs.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		clientJobs.POST("", h.CreateJob)
		clientJobs.PUT("/:jobId", h.UpdateJob)
		clientJobs.PATCH("/:jobId/status", h.UpdateJobStatus)
		clientJobs.POST("/:jobId/review", h.ReviewJob)
	}

	// The caller's own jobs live under /my to keep /jobs/:jobId unambiguous.
	my := r.Group("/my")
	my.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleClient))
	{
		my.GET("/jobs", h.ListMyJobs)
	}
}

func (h *JobHandler) CreateJob(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.CreateJob(c.Request.Context(), clientID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, job)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.jobService.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

func (h *JobHandler) ListMyJobs(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	jobs, err := h.jobService.ListClientJobs(c.Request.Context(), clientID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs.Jobs,
		"total": jobs.Total,
		"page":  page,
	})
}

func (h *JobHandler) ListOpenJobs(c *gin.Context) {
	profession := c.Query("profession")
	page, pageSize := ParsePagination(c)

	jobs, err := h.jobService.ListOpenJobs(c.Request.Context(), profession, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"jobs":  jobs.Jobs,
		"total": jobs.Total,
		"page":  page,
	})
}

func (h *JobHandler) UpdateJob(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.UpdateJob(c.Request.Context(), c.Param("jobId"), clientID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}

// UpdateJobStatus answers 200 for an in-place change and 201 when the reopen
// path created a new job, so API clients can tell they got a fresh resource.
func (h *JobHandler) UpdateJobStatus(c *gin.Context) {
	var req dto.UpdateJobStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.jobService.UpdateJobStatus(c.Request.Context(), c.Param("jobId"), req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if result.Kind == dto.TransitionCloned {
		c.JSON(http.StatusCreated, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *JobHandler) ReviewJob(c *gin.Context) {
	clientID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReviewJobRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	job, err := h.jobService.ReviewJob(c.Request.Context(), c.Param("jobId"), clientID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, job)
}
