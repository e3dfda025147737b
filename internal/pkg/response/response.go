package response

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Machine-readable error codes carried in the envelope's "error" field.
const (
	CodeValidationError      = "VALIDATION_ERROR"
	CodeDuplicateEmail       = "DUPLICATE_EMAIL"
	CodeInvalidCredentials   = "INVALID_CREDENTIALS"
	CodeAccountBlocked       = "ACCOUNT_BLOCKED"
	CodeRoleMismatch         = "ROLE_MISMATCH"
	CodeUnauthenticated      = "UNAUTHENTICATED"
	CodeAdminRequired        = "ADMIN_REQUIRED"
	CodeFeatureDisabled      = "FEATURE_DISABLED"
	CodeRateLimited          = "RATE_LIMITED"
	CodeInvalidPagination    = "INVALID_PAGINATION"
	CodeNotFound             = "NOT_FOUND"
	CodeNoFieldsProvided     = "NO_FIELDS_PROVIDED"
	CodeSelfBlock            = "SELF_BLOCK"
	CodeMLUnavailable        = "ML_SERVICE_UNAVAILABLE"
	CodeLanguageNotSupported = "LANGUAGE_NOT_SUPPORTED"
	CodeInternalError        = "INTERNAL_ERROR"
)

// Pagination is the page descriptor embedded in paginated payloads.
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`
	TotalPages   int   `json:"totalPages"`
	TotalRecords int64 `json:"totalRecords"`
	HasNext      bool  `json:"hasNext"`
	HasPrev      bool  `json:"hasPrev"`
}

type envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK sends a 200 success envelope.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Message: message, Data: data})
}

// Created sends a 201 success envelope.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Message: message, Data: data})
}

// Error sends a failure envelope with the given status and machine code.
func Error(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, envelope{Success: false, Error: code, Message: message})
}

// BadRequest sends a 400 failure envelope.
func BadRequest(c *gin.Context, code, message string) {
	Error(c, http.StatusBadRequest, code, message)
}

// Unauthorized sends a 401 failure envelope.
func Unauthorized(c *gin.Context, code, message string) {
	Error(c, http.StatusUnauthorized, code, message)
}

// Forbidden sends a 403 failure envelope.
func Forbidden(c *gin.Context, code, message string) {
	Error(c, http.StatusForbidden, code, message)
}

// NotFound sends a 404 failure envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// TooManyRequests sends a 429 failure envelope with a Retry-After hint.
func TooManyRequests(c *gin.Context, retryAfter time.Duration) {
	secs := int(retryAfter.Round(time.Second) / time.Second)
	if secs < 1 {
		secs = 1
	}
	c.Header("Retry-After", strconv.Itoa(secs))
	Error(c, http.StatusTooManyRequests, CodeRateLimited, "Too many requests. Please try again later.")
}

// InternalError sends a 500 failure envelope without leaking error details.
func InternalError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, CodeInternalError, "An error occurred while processing your request.")
}
