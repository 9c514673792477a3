// Package dto holds the HTTP request and response shapes
package dto

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "docgen-api/pkg/errors"
)

// PreviewResponse carries the produced agreement text
type PreviewResponse struct {
	Data string `json:"data"`
}

// ErrorResponse is the single error shape of the API
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Detail  string                 `json:"detail,omitempty"`
	Errors  []apperrors.FieldError `json:"errors,omitempty"`
	TraceID string                 `json:"trace_id,omitempty"`
}

// Preview writes 200 {"data": text}
func Preview(c *gin.Context, text string) {
	c.JSON(http.StatusOK, PreviewResponse{Data: text})
}

// Attachment writes data as a file download
func Attachment(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", "attachment; filename="+name)
	c.Data(http.StatusOK, contentType, data)
}

// Error aborts the request with the response for err
func Error(c *gin.Context, err error) {
	appErr := apperrors.AsAppError(err)
	detail := appErr.Detail
	if detail == "" {
		detail = appErr.Message
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, ErrorResponse{
		Code:    string(appErr.Code),
		Message: appErr.Message,
		Detail:  detail,
		Errors:  appErr.Fields,
		TraceID: c.GetString("trace_id"),
	})
}

// NotFound answers for unregistered routes
func NotFound(c *gin.Context) {
	Error(c, apperrors.New(apperrors.CodeNotFound, "resource not found").WithDetail("Not Found"))
}

// InternalError answers with the generic internal error
func InternalError(c *gin.Context) {
	Error(c, apperrors.New(apperrors.CodeInternalError, "internal server error").
		WithDetail("An internal server error occurred."))
}
