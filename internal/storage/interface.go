package storage

import (
	"context"
	"errors"

	"github.com/jylee2/exercise-tracker/internal"
)

var (
	// ErrUsernameTaken is returned when a create collides with an existing
	// username. Backends enforce this atomically, not check-then-act.
	ErrUsernameTaken = errors.New("storage: username already taken")

	// ErrUserNotFound is returned for unknown or malformed user ids.
	ErrUserNotFound = errors.New("storage: user not found")
)

type UserRepository interface {
	// CreateUser inserts the user and assigns its ID.
	CreateUser(ctx context.Context, user *internal.User) error

	// ListUsers returns all users projected to id and username.
	ListUsers(ctx context.Context) ([]internal.User, error)

	// FindUserByID returns the full user document.
	FindUserByID(ctx context.Context, id string) (*internal.User, error)

	// AppendExercise atomically appends the entry to the user's log and
	// returns the post-update user identity. Concurrent appends to the same
	// user must not lose entries.
	AppendExercise(ctx context.Context, id string, entry *internal.Exercise) (*internal.User, error)

	// Close flushes pending state and releases the backend connection.
	Close(ctx context.Context) error
}
