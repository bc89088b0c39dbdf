package handlers

import (
	"net/http"

	"homepro_backend/internal/middleware"
	"homepro_backend/internal/models"
	"homepro_backend/internal/services"
	"homepro_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type QuoteHandler struct {
	*BaseHandler
	quoteService services.QuoteService
}

func NewQuoteHandler(base *BaseHandler, quoteService services.QuoteService) *QuoteHandler {
	return &QuoteHandler{
		BaseHandler:  base,
		quoteService: quoteService,
	}
}

func (h *QuoteHandler) RegisterRoutes(r *gin.RouterGroup) {
	jobQuotes := r.Group("/jobs/:jobId/quotes")
	{
		jobQuotes.POST("",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(models.UserRoleProfessional),
			h.SubmitQuote,
		)
		jobQuotes.GET("",
			middleware.AuthMiddleware(),
			middleware.RoleMiddleware(models.UserRoleClient),
			h.ListJobQuotes,
		)
	}

	quotes := r.Group("/quotes")
	quotes.Use(middleware.AuthMiddleware())
	{
		quotes.GET("/:quoteId", h.GetQuote)
		quotes.PATCH("/:quoteId/status",
			middleware.RoleMiddleware(models.UserRoleClient),
			h.UpdateQuoteStatus,
		)
	}

	my := r.Group("/my")
	my.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleProfessional))
	{
		my.GET("/quotes", h.ListMyQuotes)
	}
}

func (h *QuoteHandler) SubmitQuote(c *gin.Context) {
	professionalID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitQuoteRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	quote, err := h.quoteService.SubmitQuote(c.Request.Context(), professionalID, c.Param("jobId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, quote)
}

func (h *QuoteHandler) GetQuote(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	quote, err := h.quoteService.GetQuote(c.Request.Context(), c.Param("quoteId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}

func (h *QuoteHandler) ListJobQuotes(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	quotes, err := h.quoteService.ListJobQuotes(c.Request.Context(), c.Param("jobId"), requesterID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHandler) ListMyQuotes(c *gin.Context) {
	professionalID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	quotes, err := h.quoteService.ListProfessionalQuotes(c.Request.Context(), professionalID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quotes)
}

func (h *QuoteHandler) UpdateQuoteStatus(c *gin.Context) {
	requesterID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateQuoteStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	quote, err := h.quoteService.UpdateQuoteStatus(c.Request.Context(), c.Param("quoteId"), requesterID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, quote)
}
