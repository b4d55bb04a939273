package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RespondError aborts the request with the standard error envelope.
func RespondError(c *gin.Context, status int, message string, err error) {
	body := gin.H{
		"status":  "error",
		"message": message,
	}
	if err != nil {
		body["error"] = err.Error()
	}
	c.AbortWithStatusJSON(status, body)
}

// RespondValidation aborts with field-level messages, the way a form is
// re-rendered with its errors.
func RespondValidation(c *gin.Context, fields map[string]string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"status":  "error",
		"message": "Validation failed",
		"errors":  fields,
	})
}

// RespondOK writes the success envelope around data.
func RespondOK(c *gin.Context, status int, data interface{}) {
	c.JSON(status, gin.H{
		"status": "success",
		"data":   data,
	})
}
