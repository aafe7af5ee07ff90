package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Error string `json:"error" example:"Unauthorized"`
	Code  string `json:"code,omitempty" example:"UNAUTHORIZED"`
}

// SuccessResponse acknowledges a mutation that has no payload of its own.
type SuccessResponse struct {
	Success bool `json:"success" example:"true"`
}

// SendError writes an error response
func SendError(c *gin.Context, status int, code, message string) {
	c.JSON(status, ErrorResponse{
		Error: message,
		Code:  code,
	})
}

// SendSuccess writes {"success": true} with the given status.
func SendSuccess(c *gin.Context, status int) {
	c.JSON(status, SuccessResponse{Success: true})
}
