package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Recovery turns panics into a 500 {"detail": ...} response
func Recovery(logger *zap.Logger) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		detail := fmt.Sprint(recovered)
		if err, ok := recovered.(error); ok {
			detail = err.Error()
		}
		logger.Error("panic recovered",
			zap.String("detail", detail),
			zap.String("path", c.Request.URL.Path),
			zap.String("request_id", GetRequestID(c)),
		)
		RespondError(c, http.StatusInternalServerError, detail)
	})
}
