package settings

import (
	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/pkg/response"
)

// Handler exposes the admin feature-flag endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the settings endpoints on an admin-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/settings", h.get)
	rg.PUT("/settings", h.update)
}

func (h *Handler) get(c *gin.Context) {
	settings, err := h.svc.Get()
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "Settings retrieved successfully", gin.H{"settings": settings})
}

func (h *Handler) update(c *gin.Context) {
	var dto UpdateDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Invalid request body")
		return
	}
	if dto.Empty() {
		response.BadRequest(c, response.CodeNoFieldsProvided, "No valid settings fields provided")
		return
	}

	settings, err := h.svc.Update(dto)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "Settings updated successfully", gin.H{"settings": settings})
}
