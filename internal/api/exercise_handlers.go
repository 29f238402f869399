package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jylee2/exercise-tracker/internal/response"
	"github.com/jylee2/exercise-tracker/internal/service"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

func PostExercise(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.ExerciseRequest
		if err := c.ShouldBind(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request")
			return
		}

		if err := service.ValidateExerciseRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		entry, err := service.BuildExercise(&req, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.AppendExercise(c.Request.Context(), app.Users(), req.UserID, entry)
		if errors.Is(err, storage.ErrUserNotFound) {
			HandleError(c, app.Logger(), err, 404, "Unknown userId")
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to save exercise")
			return
		}

		c.JSON(http.StatusOK, response.NewExerciseAdded(user, entry))
	}
}

func GetLog(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q service.LogQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		if err := service.ValidateLogQuery(&q); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := app.Users().FindUserByID(c.Request.Context(), q.UserID)
		if errors.Is(err, storage.ErrUserNotFound) {
			HandleError(c, app.Logger(), err, 404, "Unknown userId")
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch log")
			return
		}

		entries, err := service.WindowLog(user.Log, &q, time.Now())
		if err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid query")
			return
		}

		c.JSON(http.StatusOK, response.NewUserLog(user, entries))
	}
}
