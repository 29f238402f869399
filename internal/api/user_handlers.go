package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jylee2/exercise-tracker/internal/response"
	"github.com/jylee2/exercise-tracker/internal/service"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

func PostUser(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req service.UserRequest
		if err := c.ShouldBind(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid request")
			return
		}

		if err := service.ValidateUserRequest(&req); err != nil {
			HandleError(c, app.Logger(), err, 400, "Validation failed")
			return
		}

		user, err := service.CreateUser(c.Request.Context(), app.Users(), &req)
		if errors.Is(err, storage.ErrUsernameTaken) {
			// Legacy contract: the conflict is reported in-band with a 200
			// status, not a 409.
			app.Logger().Infof("[request_id=%s] username %q already taken", c.GetString("request_id"), req.Username)
			c.JSON(http.StatusOK, response.UsernameTaken())
			return
		}
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to create user")
			return
		}

		c.JSON(http.StatusOK, response.NewUserSummary(user))
	}
}

func GetUsers(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := app.Users().ListUsers(c.Request.Context())
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch users")
			return
		}

		c.JSON(http.StatusOK, response.NewUserSummaries(users))
	}
}
