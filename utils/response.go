package utils

import "github.com/gin-gonic/gin"

// Response helpers matching the API's wire shapes: errors are always under an
// "error" key, either a plain message or a field->message map.

// Error writes a JSON error body with the given status.
func Error(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"error": message})
}

// FieldErrors writes an aggregated validation failure: every failing field
// mapped to its message, with a 400 status.
func FieldErrors(ctx *gin.Context, fields map[string]string) {
	ctx.JSON(400, gin.H{"error": fields})
}

// Message writes a JSON message body with the given status.
func Message(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, gin.H{"message": message})
}
