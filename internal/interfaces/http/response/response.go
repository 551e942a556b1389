package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/pkg/logger"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Error sends an error response. Internal failures are logged and rendered without detail.
func Error(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	c.JSON(appErr.Status, body(appErr))
}

// Abort sends an error response and stops the handler chain
func Abort(c *gin.Context, err error) {
	appErr := domainerrors.FromError(err)
	c.AbortWithStatusJSON(appErr.Status, body(appErr))
}

func body(appErr *domainerrors.AppError) gin.H {
	h := gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
	}
	if appErr.Field != "" {
		h["field"] = appErr.Field
	}
	return h
}
