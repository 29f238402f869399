package api

import (
	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/storage"
)

type App interface {
	Logger() internal.Logger
	Users() storage.UserRepository
}
