package handler

import (
	appbusiness "github.com/bizdesk/backend/internal/application/business"
	"github.com/gin-gonic/gin"
)

// BusinessHandler handles business unit HTTP requests
type BusinessHandler struct {
	BaseHandler
	businessService *appbusiness.BusinessService
}

// NewBusinessHandler creates a new business handler
func NewBusinessHandler(businessService *appbusiness.BusinessService) *BusinessHandler {
	return &BusinessHandler{businessService: businessService}
}

// Create creates a new business unit
func (h *BusinessHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req appbusiness.CreateBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.businessService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns one business unit
func (h *BusinessHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.businessService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns the business units visible to the principal
func (h *BusinessHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.businessService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}
