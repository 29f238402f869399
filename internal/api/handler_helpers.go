package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/response"
)

// HandleError logs the failure with its request ID and always writes an
// error body; no path returns without a response.
func HandleError(c *gin.Context, logger internal.Logger, err error, status int, msg string) {
	requestID := c.GetString("request_id")
	logger.Errorf("[request_id=%s] %s: %v", requestID, msg, err)
	var resp *internal.AppError
	switch status {
	case 400:
		resp = response.BadRequest(msg + ": " + err.Error())
	case 404:
		resp = response.NotFound(msg + ": " + err.Error())
	case 500:
		resp = response.InternalError(msg + ": " + err.Error())
	default:
		resp = response.NewAppError(status, msg+": "+err.Error())
	}
	c.JSON(status, resp)
}
