package storage

import (
	"context"
	"fmt"

	"github.com/jylee2/exercise-tracker/internal"
	"github.com/jylee2/exercise-tracker/internal/config"
)

func NewRepository(ctx context.Context, cfg *config.Config, logger internal.Logger) (UserRepository, error) {
	switch cfg.DBType {
	case "mongo":
		return NewMongoStorage(ctx, cfg.MongoURI, cfg.MongoDB, logger)
	case "postgres":
		return NewPostgresStorage(ctx, cfg.DBDSN, logger)
	case "file":
		return NewFileStorage(cfg.UsersFile, logger)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", cfg.DBType)
	}
}
