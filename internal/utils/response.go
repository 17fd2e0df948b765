package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response 统一API响应结构
type Response struct {
	Code    int         `json:"code"`             // 状态码
	Message string      `json:"message"`          // 消息
	Detail  string      `json:"detail,omitempty"` // 错误详情
	Data    interface{} `json:"data"`             // 数据
	Success bool        `json:"success"`          // 是否成功
}

// Success 返回成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
		Success: true,
	})
}

// Error 返回错误响应，detail 同时作为 message
func Error(c *gin.Context, code int, detail string) {
	c.AbortWithStatusJSON(code, Response{
		Code:    code,
		Message: detail,
		Detail:  detail,
		Data:    nil,
		Success: false,
	})
}

// BadRequest 返回400错误
func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, detail)
}

// Unauthorized 返回401错误
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not authenticated"
	}
	Error(c, http.StatusUnauthorized, detail)
}

// NotFound 返回404错误
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Not Found"
	}
	Error(c, http.StatusNotFound, detail)
}

// UnprocessableEntity 返回422错误（请求体校验失败）
func UnprocessableEntity(c *gin.Context, detail string) {
	Error(c, http.StatusUnprocessableEntity, detail)
}

// InternalServerError 返回500错误
func InternalServerError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal Server Error"
	}
	Error(c, http.StatusInternalServerError, detail)
}
