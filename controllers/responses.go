package controllers

import (
	"net/http"

	"github.com/forgeflow/forgeflow-api/services"
	"github.com/forgeflow/forgeflow-api/utils"
	"github.com/gin-gonic/gin"
)

// errorResponse writes the standard error envelope
func errorResponse(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// respondServiceError maps a service-layer error onto an HTTP response.
// Every failure is a blocking notification to the caller; nothing is
// retried server-side.
func respondServiceError(c *gin.Context, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		errorResponse(c, http.StatusBadRequest, e.Code, e.Message)
	case *utils.FileUploadError:
		errorResponse(c, http.StatusBadRequest, e.Code, e.Message)
	case *services.StoreError:
		if e.Code == services.ErrCodeNotFound {
			errorResponse(c, http.StatusNotFound, e.Code, e.Message)
			return
		}
		errorResponse(c, http.StatusInternalServerError, e.Code, e.Message)
	case *services.UploadError:
		// Missing bucket and unconfigured storage both have a recovery
		// path: resubmit the order without a file.
		if e.Code == services.ErrCodeBucketMissing || e.Code == services.ErrCodeNotConfigured {
			errorResponse(c, http.StatusConflict, e.Code, e.Message)
			return
		}
		errorResponse(c, http.StatusBadGateway, e.Code, e.Message)
	default:
		errorResponse(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}
