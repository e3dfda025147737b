package admin

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/middleware"
	"github.com/textora/core/internal/pkg/pagination"
	"github.com/textora/core/internal/pkg/response"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Handler exposes the admin reporting and user-management endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the admin endpoints on an admin-guarded group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stats", h.stats)
	rg.GET("/users", h.users)
	rg.PUT("/block/:userId", h.toggleBlock)
}

func (h *Handler) stats(c *gin.Context) {
	stats, err := h.svc.Stats()
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "Statistics retrieved successfully", stats)
}

func (h *Handler) users(c *gin.Context) {
	q, err := pagination.Parse(c, defaultPageSize, maxPageSize)
	if err != nil {
		response.BadRequest(c, response.CodeInvalidPagination, "Invalid pagination parameters")
		return
	}

	users, page, err := h.svc.Users(q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "Users retrieved successfully", gin.H{
		"users":      users,
		"pagination": page,
	})
}

func (h *Handler) toggleBlock(c *gin.Context) {
	user, err := h.svc.ToggleBlock(middleware.CurrentUserID(c), c.Param("userId"))
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.NotFound(c, "User not found")
		case errors.Is(err, ErrSelfBlock):
			response.BadRequest(c, response.CodeSelfBlock, "You cannot block yourself")
		default:
			response.InternalError(c)
		}
		return
	}

	state := "unblocked"
	if user.IsBlocked {
		state = "blocked"
	}
	response.OK(c, fmt.Sprintf("User %s successfully", state), gin.H{
		"userId":    user.ID,
		"isBlocked": user.IsBlocked,
	})
}
