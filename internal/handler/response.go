package handler

import (
	"errors"
	"net/http"

	"github.com/blues/cfe/internal/engine"
	"github.com/gin-gonic/gin"
)

// SuccessResponse 成功响应
func SuccessResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	c.JSON(statusCode, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// ErrorResponse 错误响应
func ErrorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Data:    nil,
	})
}

// EngineErrorResponse 引擎错误响应，按错误类别映射HTTP状态码，
// 调用方凭code区分"永远不允许"和"现在还不允许"
func EngineErrorResponse(c *gin.Context, err error) {
	var ee *engine.EngineError
	if !errors.As(err, &ee) {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	status := http.StatusInternalServerError
	switch ee.Category {
	case engine.CategoryValidation:
		status = http.StatusBadRequest
	case engine.CategoryNotFound:
		status = http.StatusNotFound
	case engine.CategoryAuthorization:
		status = http.StatusForbidden
	case engine.CategoryState:
		status = http.StatusConflict
	case engine.CategoryFinancial:
		status = http.StatusUnprocessableEntity
	case engine.CategoryTransfer:
		status = http.StatusBadGateway
	}

	c.JSON(status, Response{
		Success: false,
		Message: ee.Message,
		Code:    ee.Code,
		Data:    nil,
	})
}
