package utils

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes used in the response envelope.
const (
	CodeValidation   = "ValidationError"
	CodeUnauthorized = "Unauthorized"
	CodeNotFound     = "NotFound"
	CodeConflict     = "Conflict"
	CodeServerError  = "ServerError"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// JSONError writes the uniform error envelope. Every failure response goes
// through here so clients see exactly one shape.
func JSONError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{"error": apiError{Code: code, Message: message}})
}

// AbortError is JSONError for middleware, stopping the handler chain.
func AbortError(c *gin.Context, status int, code, message string) {
	JSONError(c, status, code, message)
	c.Abort()
}

func BadRequest(c *gin.Context, message string) {
	JSONError(c, http.StatusBadRequest, CodeValidation, message)
}

func NotFound(c *gin.Context, message string) {
	JSONError(c, http.StatusNotFound, CodeNotFound, message)
}

func Conflict(c *gin.Context, message string) {
	JSONError(c, http.StatusConflict, CodeConflict, message)
}

// ServerError logs the internal error and responds with a generic message;
// internals are never leaked to the client.
func ServerError(c *gin.Context, err error, message string) {
	log.Printf("%s: %v", message, err)
	JSONError(c, http.StatusInternalServerError, CodeServerError, message)
}
