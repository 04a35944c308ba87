package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/instanti8/api/internal/models"
)

// RespondError aborts the request with a {"detail": ...} body
func RespondError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, models.ErrorResponse{Detail: detail})
}

// Unprocessable sends a 422 error for request bodies that fail validation
func Unprocessable(c *gin.Context, detail string) {
	RespondError(c, http.StatusUnprocessableEntity, detail)
}

// InternalError sends a 500 error carrying the error text
func InternalError(c *gin.Context, err error) {
	_ = c.Error(err)
	RespondError(c, http.StatusInternalServerError, err.Error())
}

// TooManyRequests sends a 429 error with a retry hint in seconds
func TooManyRequests(c *gin.Context, retryAfter string) {
	c.Header("Retry-After", retryAfter)
	RespondError(c, http.StatusTooManyRequests, "Too many requests, please try again later")
}

// NotFound handles unmatched routes
func NotFound(c *gin.Context) {
	RespondError(c, http.StatusNotFound, "Not Found")
}

// MethodNotAllowed handles routes matched with the wrong method
func MethodNotAllowed(c *gin.Context) {
	RespondError(c, http.StatusMethodNotAllowed, "Method Not Allowed")
}
