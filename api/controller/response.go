package controller

import (
	"errors"
	"net/http"

	"github.com/Muhammed-Anees-P/go-mongo-generic/domain"
	"github.com/gin-gonic/gin"
)

// SuccessResponse writes the standard success envelope, keying the payload
// under name.
func SuccessResponse(ctx *gin.Context, name string, data interface{}, total int) {
	ctx.JSON(http.StatusOK, gin.H{
		"status": "ok",
		name:     data,
		"total":  total,
	})
}

// ErrorResponse writes the standard error envelope.
func ErrorResponse(ctx *gin.Context, status int, code string, message string) {
	ctx.JSON(status, gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}

// RenderError maps a repository error onto the wire: not-found to 404,
// bad-request to 400, anything unclassified to 500.
func RenderError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		ErrorResponse(ctx, domain.StatusOf(err), "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrBadRequest):
		ErrorResponse(ctx, domain.StatusOf(err), "BAD_REQUEST", err.Error())
	default:
		ErrorResponse(ctx, http.StatusInternalServerError, "SERVER_ERROR", err.Error())
	}
}
