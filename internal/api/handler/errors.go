package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/netooze/jobapi/internal/api/dto"
)

// writeError aborts the request with the structured error envelope. The HTTP
// status mirrors the code inside the body.
func writeError(c *gin.Context, code int, message string) {
	c.AbortWithStatusJSON(code, dto.ErrorResponse{
		Error: dto.ErrorBody{
			Code:    code,
			Message: message,
		},
	})
}
