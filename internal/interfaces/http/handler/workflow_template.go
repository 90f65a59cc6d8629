package handler

import (
	appbusiness "github.com/bizdesk/backend/internal/application/business"
	"github.com/gin-gonic/gin"
)

// WorkflowTemplateHandler handles workflow template HTTP requests
type WorkflowTemplateHandler struct {
	BaseHandler
	templateService *appbusiness.WorkflowTemplateService
}

// NewWorkflowTemplateHandler creates a new workflow template handler
func NewWorkflowTemplateHandler(templateService *appbusiness.WorkflowTemplateService) *WorkflowTemplateHandler {
	return &WorkflowTemplateHandler{templateService: templateService}
}

// Create creates a new workflow template
func (h *WorkflowTemplateHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req appbusiness.CreateWorkflowTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.templateService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Get returns one workflow template
func (h *WorkflowTemplateHandler) Get(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.templateService.GetByID(c.Request.Context(), principal, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// List returns the workflow templates visible to the principal
func (h *WorkflowTemplateHandler) List(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.templateService.List(c.Request.Context(), principal, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Update changes a workflow template's name and steps
func (h *WorkflowTemplateHandler) Update(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req appbusiness.UpdateWorkflowTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.templateService.Update(c.Request.Context(), principal, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// Delete soft-deletes a workflow template
func (h *WorkflowTemplateHandler) Delete(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.templateService.SoftDelete(c.Request.Context(), principal, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
