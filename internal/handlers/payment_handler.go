package handlers

import (
	"net/http"

	"homepro_backend/internal/middleware"
	"homepro_backend/internal/models"
	"homepro_backend/internal/services"
	"homepro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
	}
}

func (h *PaymentHandler) RegisterRoutes(r *gin.RouterGroup) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.POST("/link",
			middleware.RoleMiddleware(models.UserRoleProfessional),
			h.LinkCustomer,
		)
		payments.POST("/jobs/:jobId/deduct-cut",
			middleware.RequireRoles(models.UserRoleProfessional, models.UserRoleAdmin),
			h.DeductCut,
		)
		payments.GET("/jobs/:jobId/transaction", h.GetJobTransaction)
	}
}

func (h *PaymentHandler) LinkCustomer(c *gin.Context) {
	professionalID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.LinkCustomerRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.LinkCustomer(c.Request.Context(), professionalID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) DeductCut(c *gin.Context) {
	resp, err := h.paymentService.DeductCut(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *PaymentHandler) GetJobTransaction(c *gin.Context) {
	tx, err := h.paymentService.GetJobTransaction(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, tx)
}
