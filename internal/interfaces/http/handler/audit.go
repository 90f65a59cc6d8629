package handler

import (
	"time"

	appaudit "github.com/bizdesk/backend/internal/application/audit"
	"github.com/gin-gonic/gin"
)

// AuditHandler handles audit log and version history HTTP requests
type AuditHandler struct {
	BaseHandler
	queryService *appaudit.QueryService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(queryService *appaudit.QueryService) *AuditHandler {
	return &AuditHandler{queryService: queryService}
}

// LogsByUser returns the audit trail of a single actor
func (h *AuditHandler) LogsByUser(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	userID, ok := parseID(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.queryService.LogsByUser(c.Request.Context(), principal, userID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// LogsByEntity returns the audit trail of a single record
func (h *AuditHandler) LogsByEntity(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	entity := c.Param("entity")
	if entity == "" {
		h.BadRequest(c, "Entity type is required")
		return
	}
	entityID, ok := parseID(c)
	if !ok {
		return
	}
	filter, ok := bindListFilter(c)
	if !ok {
		return
	}

	result, err := h.queryService.LogsByEntity(c.Request.Context(), principal, entity, entityID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Versions returns the full version history of a record
func (h *AuditHandler) Versions(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	entity := c.Param("entity")
	if entity == "" {
		h.BadRequest(c, "Entity type is required")
		return
	}
	entityID, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.queryService.VersionsOf(c.Request.Context(), principal, entity, entityID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// AsOf returns the latest version of a record at or before a point in time.
// The timestamp comes from the "at" query parameter in RFC 3339 form.
func (h *AuditHandler) AsOf(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	entity := c.Param("entity")
	if entity == "" {
		h.BadRequest(c, "Entity type is required")
		return
	}
	entityID, ok := parseID(c)
	if !ok {
		return
	}
	at, err := time.Parse(time.RFC3339, c.Query("at"))
	if err != nil {
		h.BadRequest(c, "Invalid 'at' timestamp, expected RFC 3339")
		return
	}

	result, err := h.queryService.AsOf(c.Request.Context(), principal, entity, entityID, at)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
