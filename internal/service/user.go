package service

import (
	"context"

	"github.com/go-playground/validator/v10"

	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

var validate = validator.New()

type UserRequest struct {
	Username string `form:"username" json:"username" validate:"required"`
}

func ValidateUserRequest(req *UserRequest) error {
	return validate.Struct(req)
}

func CreateUser(ctx context.Context, users storage.UserRepository, req *UserRequest) (*internal.User, error) {
	user := &internal.User{
		Username: req.Username,
		Log:      []internal.Exercise{},
	}
	if err := users.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}
