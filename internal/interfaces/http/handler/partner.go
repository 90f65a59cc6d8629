package handler

import (
	appaccess "github.com/bizdesk/backend/internal/application/access"
	"github.com/gin-gonic/gin"
)

// PartnerHandler handles partner management HTTP requests
type PartnerHandler struct {
	BaseHandler
	partnerService *appaccess.PartnerService
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(partnerService *appaccess.PartnerService) *PartnerHandler {
	return &PartnerHandler{partnerService: partnerService}
}

// Create registers an existing user as a partner
func (h *PartnerHandler) Create(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req appaccess.CreatePartnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.partnerService.Create(c.Request.Context(), principal, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// AssignBusiness grants a partner access to a business
func (h *PartnerHandler) AssignBusiness(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	partnerID, ok := parseID(c)
	if !ok {
		return
	}
	var req appaccess.AssignBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.partnerService.AssignBusiness(c.Request.Context(), principal, partnerID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GrantContent grants a partner access to a content type
func (h *PartnerHandler) GrantContent(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	partnerID, ok := parseID(c)
	if !ok {
		return
	}
	var req appaccess.GrantContentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.partnerService.GrantContent(c.Request.Context(), principal, partnerID, req); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Access returns the resolved access set for a partner user
func (h *PartnerHandler) Access(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.partnerService.AccessOf(c.Request.Context(), principal, userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
