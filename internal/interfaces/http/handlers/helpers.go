package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	domainerrors "jobboard.backend/internal/domain/errors"
	"jobboard.backend/internal/interfaces/http/response"
	"jobboard.backend/pkg/validation"
)

// bindJSON decodes the body into input and reports the first violated rule
func bindJSON(c *gin.Context, input interface{}) bool {
	if err := c.ShouldBindJSON(input); err != nil {
		fe := validation.FirstError(err)
		message := fe.Message
		if fe.Field != "" {
			message = fe.Field + " " + fe.Message
		}
		response.Error(c, domainerrors.Validation(fe.Field, message))
		return false
	}
	return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, domainerrors.Validation(name, name+" must be a valid UUID"))
		return uuid.Nil, false
	}
	return id, true
}
