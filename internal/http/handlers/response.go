// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the response helpers shared by every endpoint: the error
// envelope, the mapping from service errors to HTTP statuses, and thin
// success writers.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "busy",
//	  "message": "a question is already being answered"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-coach-backend/internal/http/middleware"
	"github.com/tbourn/go-coach-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"document not found"`
}

// fail aborts the request with a structured error. Server errors (>=500)
// are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail() for the router's fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// serviceErrors maps service sentinels to their HTTP status and code.
var serviceErrors = []struct {
	err    error
	status int
	code   string
}{
	{services.ErrBusy, http.StatusConflict, ErrCodeBusy},
	{services.ErrEmptyPrompt, http.StatusBadRequest, ErrCodeBadRequest},
	{services.ErrTooLong, http.StatusBadRequest, ErrCodeTooLong},
	{services.ErrUnknownCategory, http.StatusBadRequest, ErrCodeUnknownCategory},
	{services.ErrInvalidSettings, http.StatusUnprocessableEntity, ErrCodeInvalidSettings},
	{services.ErrDocumentNotFound, http.StatusNotFound, ErrCodeNotFound},
}

// failErr translates err into the envelope. Unknown errors become 500 with
// fallbackCode and a generic message; the cause is logged, not returned.
func failErr(c *gin.Context, err error, fallbackCode string) {
	for _, m := range serviceErrors {
		if errors.Is(err, m.err) {
			fail(c, m.status, m.code, err.Error())
			return
		}
	}
	middleware.LoggerFrom(c).Error().Err(err).Str("code", fallbackCode).Msg("unexpected service error")
	fail(c, http.StatusInternalServerError, fallbackCode, "internal server error")
}

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
