package response

import (
	"github.com/gin-gonic/gin"
)

// ErrorBody is the wire shape of every failed request. Error is always set;
// RequestID and Details are additions that never replace it.
type ErrorBody struct {
	Error     string            `json:"error"`
	RequestID string            `json:"request_id,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
}

// Error writes an error body and aborts the handler chain.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	ctx.AbortWithStatusJSON(status, ErrorBody{
		Error:     message,
		RequestID: ctx.GetString("request_id"),
		Details:   details,
	})
}

// OK writes a 200 JSON body.
func OK(ctx *gin.Context, body any) {
	ctx.JSON(200, body)
}
