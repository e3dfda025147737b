package history

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/middleware"
	"github.com/textora/core/internal/pkg/pagination"
	"github.com/textora/core/internal/pkg/response"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// Handler exposes the history ledger endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the history endpoints behind authentication.
// The clear route is registered before :id so Gin does not treat "clear"
// as an entry id.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	grp := rg.Group("/history", authMW)
	grp.GET("/my", h.list)
	grp.DELETE("/clear", h.clear)
	grp.DELETE("/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	q, err := pagination.Parse(c, defaultPageSize, maxPageSize)
	if err != nil {
		response.BadRequest(c, response.CodeInvalidPagination, "Invalid pagination parameters")
		return
	}

	entries, page, err := h.svc.List(middleware.CurrentUserID(c), q)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, "History retrieved successfully", gin.H{
		"history":    entries,
		"pagination": page,
	})
}

func (h *Handler) delete(c *gin.Context) {
	err := h.svc.Delete(middleware.CurrentUserID(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			response.NotFound(c, "History entry not found")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, "History entry deleted successfully", nil)
}

func (h *Handler) clear(c *gin.Context) {
	if err := h.svc.Clear(middleware.CurrentUserID(c)); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, "All history cleared successfully", nil)
}
