package auth

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/textora/core/internal/middleware"
	"github.com/textora/core/internal/models"
	"github.com/textora/core/internal/pkg/jwt"
	"github.com/textora/core/internal/pkg/response"
)

const forgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// Handler exposes the authentication endpoints.
type Handler struct {
	svc    *Service
	ttl    time.Duration
	secure bool
}

func NewHandler(svc *Service, ttl time.Duration, secureCookies bool) *Handler {
	if ttl <= 0 {
		ttl = jwt.DefaultTTL
	}
	return &Handler{svc: svc, ttl: ttl, secure: secureCookies}
}

// RegisterRoutes mounts the auth endpoints. rateMW guards the
// credential-handling routes; authMW guards /me.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW, rateMW gin.HandlerFunc) {
	grp := rg.Group("/auth")
	grp.POST("/register", rateMW, h.register)
	grp.POST("/login", rateMW, h.login)
	grp.POST("/forgot-password", rateMW, h.forgotPassword)
	grp.POST("/reset-password/:token", rateMW, h.resetPassword)
	grp.GET("/me", authMW, h.me)
}

func (h *Handler) register(c *gin.Context) {
	var dto RegisterDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Name, email and password are required")
		return
	}
	if !passwordStrong(dto.Password) {
		response.BadRequest(c, response.CodeValidationError,
			"Password must contain at least one uppercase letter, one lowercase letter and one number")
		return
	}

	user, err := h.svc.Register(dto)
	if err != nil {
		if errors.Is(err, errDuplicateEmail) {
			response.BadRequest(c, response.CodeDuplicateEmail, "An account with this email already exists")
			return
		}
		response.InternalError(c)
		return
	}

	response.Created(c, "User registered successfully", gin.H{"user": user.Public()})
}

func (h *Handler) login(c *gin.Context) {
	var dto LoginDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "Email and password are required")
		return
	}

	user, err := h.svc.Login(dto)
	if err != nil {
		switch {
		case errors.Is(err, errUserNotFound), errors.Is(err, errWrongPassword):
			response.Unauthorized(c, response.CodeInvalidCredentials, "Invalid email or password")
		case errors.Is(err, errAccountBlocked):
			response.Forbidden(c, response.CodeAccountBlocked, "Your account has been blocked. Please contact support.")
		case errors.Is(err, errRoleMismatch):
			response.Forbidden(c, response.CodeRoleMismatch, "You do not have access to this area")
		default:
			response.InternalError(c)
		}
		return
	}

	token, err := jwt.Sign(user.ID, user.Role, h.ttl)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.SetCookie(middleware.SessionCookie, token, int(h.ttl/time.Second), "/", "", h.secure, true)

	redirectPath := "/dashboard"
	if user.Role == models.RoleAdmin {
		redirectPath = "/admin/dashboard"
	}

	response.OK(c, "Login successful", gin.H{
		"token":        token,
		"user":         user.Public(),
		"redirectPath": redirectPath,
	})
}

func (h *Handler) forgotPassword(c *gin.Context) {
	var dto ForgotPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "A valid email is required")
		return
	}

	if err := h.svc.ForgotPassword(dto.Email); err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, forgotPasswordMessage, nil)
}

func (h *Handler) resetPassword(c *gin.Context) {
	var dto ResetPasswordDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BadRequest(c, response.CodeValidationError, "A new password of at least 6 characters is required")
		return
	}
	if !passwordStrong(dto.Password) {
		response.BadRequest(c, response.CodeValidationError,
			"Password must contain at least one uppercase letter, one lowercase letter and one number")
		return
	}

	if err := h.svc.ResetPassword(c.Param("token"), dto.Password); err != nil {
		if errors.Is(err, errInvalidResetLink) {
			response.BadRequest(c, response.CodeValidationError, "Reset link is invalid or has expired")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, "Password has been reset successfully", nil)
}

func (h *Handler) me(c *gin.Context) {
	user, err := h.svc.Me(middleware.CurrentUserID(c))
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			response.Unauthorized(c, response.CodeUnauthenticated, "Authentication required")
			return
		}
		response.InternalError(c)
		return
	}
	response.OK(c, "User retrieved successfully", gin.H{"user": user.Public()})
}
