package response

import (
	"vidtube/internal/pkg/apperr"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}, message string) {
	c.JSON(statusCode, gin.H{
		"success":    true,
		"statusCode": statusCode,
		"data":       data,
		"message":    message,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"statusCode": statusCode,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success":    false,
		"statusCode": statusCode,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Fail writes err using the uniform error shape. The cause of internal errors
// is attached to the gin context for the error logger and never sent out.
func Fail(c *gin.Context, err error) {
	appErr := apperr.As(err)
	if appErr.Kind == apperr.KindInternal {
		_ = c.Error(err)
	}
	if appErr.Details != nil {
		ErrorWithDetails(c, appErr.Kind.Status(), appErr.Code, appErr.Message, appErr.Details)
		return
	}
	Error(c, appErr.Kind.Status(), appErr.Code, appErr.Message)
}

// Abort is Fail for middleware: the remaining handlers are skipped.
func Abort(c *gin.Context, err error) {
	Fail(c, err)
	c.Abort()
}
