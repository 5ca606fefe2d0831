package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/codetrail/bootcamp-api/pkg/apperr"
)

type APIResponse[T any] struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id"`
	Success   bool        `json:"success"`
	Message   string      `json:"message,omitempty"`
	Data      T           `json:"data,omitempty"`
	Meta      interface{} `json:"meta,omitempty"`
	Error     interface{} `json:"error,omitempty"`
}

// Success writes a success envelope to the response.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	if status == 0 {
		status = http.StatusOK
	}
	ctx.JSON(status, APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   true,
		Message:   message,
		Data:      data,
		Meta:      meta,
	})
}

// Error writes a failure envelope with an explicit status.
func Error[T any](ctx *gin.Context, status int, message string, err interface{}) {
	ctx.JSON(status, envelope[T](ctx, status, message, err))
}

// AbortError writes a failure envelope and aborts the middleware chain.
func AbortError[T any](ctx *gin.Context, status int, message string, err interface{}) {
	ctx.AbortWithStatusJSON(status, envelope[T](ctx, status, message, err))
}

// Fail is the single translation point from the error taxonomy to HTTP:
// kind picks the status, the taxonomy message is the body, anything outside
// the taxonomy becomes a generic 500.
func Fail(ctx *gin.Context, err error) {
	Error[any](ctx, apperr.Status(err), apperr.PublicMessage(err), nil)
}

func envelope[T any](ctx *gin.Context, status int, message string, err interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusBadRequest
	}
	return APIResponse[T]{
		Status:    status,
		Timestamp: time.Now(),
		RequestID: ctx.GetString("request_id"),
		Success:   false,
		Message:   message,
		Error:     err,
	}
}
