package feedback

import (
	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/pkg/response"
)

type SubmitDTO struct {
	Name    string `json:"name"    binding:"required"`
	Email   string `json:"email"   binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Handler exposes the feedback endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the public submit route and the admin listing.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, adminMW gin.HandlerFunc) {
	grp := rg.Group("/feedback")
	grp.POST("", h.submit)
	grp.GET("", authMW, adminMW, h.list)
}

func (h *Handler) submit(c *gin.Context) {
	var dto SubmitDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Name, a valid email and a message are required")
		return
	}

	entry, err := h.svc.Submit(dto.Name, dto.Email, dto.Message)
	if err != nil {
		response.InternalError(c)
		return
	}
	response.Created(c, "Feedback submitted successfully", gin.H{"feedback": entry})
}

func (h *Handler) list(c *gin.Context) {
	entries, err := h.svc.List()
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "Feedback retrieved successfully", gin.H{"feedback": entries})
}
