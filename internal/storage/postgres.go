package storage

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/jylee2/exercise-tracker/internal"
)

const uniqueViolation = "23505"

// PostgresStorage keeps the same document shape as the mongo backend: one
// row per user with the exercise log held in a jsonb column.
type PostgresStorage struct {
	pool   *pgxpool.Pool
	logger internal.Logger
}

func NewPostgresStorage(ctx context.Context, dsn string, logger internal.Logger) (*PostgresStorage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		logger.Errorf("failed to connect to postgres: %v", err)
		return nil, err
	}
	_, err = pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS users (
		id TEXT PRIMARY KEY,
		username TEXT NOT NULL UNIQUE,
		log JSONB NOT NULL DEFAULT '[]'::jsonb
	)`)
	if err != nil {
		logger.Errorf("failed to ensure users table: %v", err)
		pool.Close()
		return nil, err
	}
	return &PostgresStorage{pool: pool, logger: logger}, nil
}

func (p *PostgresStorage) CreateUser(ctx context.Context, user *internal.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Log == nil {
		user.Log = []internal.Exercise{}
	}
	_, err := p.pool.Exec(ctx, `INSERT INTO users (id, username, log) VALUES ($1, $2, '[]'::jsonb)`,
		user.ID.Hex(), user.Username)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrUsernameTaken
		}
		p.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (p *PostgresStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	rows, err := p.pool.Query(ctx, `SELECT id, username FROM users ORDER BY id`)
	if err != nil {
		p.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer rows.Close()

	users := []internal.User{}
	for rows.Next() {
		var idHex string
		var u internal.User
		if err := rows.Scan(&idHex, &u.Username); err != nil {
			p.logger.Errorf("failed to scan user: %v", err)
			return nil, err
		}
		if u.ID, err = primitive.ObjectIDFromHex(idHex); err != nil {
			p.logger.Errorf("malformed user id %q: %v", idHex, err)
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (p *PostgresStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	row := p.pool.QueryRow(ctx, `SELECT id, username, log FROM users WHERE id = $1`, id)
	var idHex string
	var logRaw []byte
	var u internal.User
	if err := row.Scan(&idHex, &u.Username, &logRaw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		p.logger.Errorf("failed to find user %s: %v", id, err)
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		p.logger.Errorf("malformed user id %q: %v", idHex, err)
		return nil, err
	}
	u.ID = oid
	if err := json.Unmarshal(logRaw, &u.Log); err != nil {
		p.logger.Errorf("failed to decode log for user %s: %v", id, err)
		return nil, err
	}
	return &u, nil
}

func (p *PostgresStorage) AppendExercise(ctx context.Context, id string, entry *internal.Exercise) (*internal.User, error) {
	buf, err := json.Marshal(entry)
	if err != nil {
		return nil, err
	}
	// jsonb || object appends the object to the array in a single statement,
	// so concurrent appends cannot lose entries.
	row := p.pool.QueryRow(ctx,
		`UPDATE users SET log = log || $2::jsonb WHERE id = $1 RETURNING id, username`,
		id, string(buf))
	var idHex string
	var u internal.User
	if err := row.Scan(&idHex, &u.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		p.logger.Errorf("failed to append exercise for user %s: %v", id, err)
		return nil, err
	}
	oid, err := primitive.ObjectIDFromHex(idHex)
	if err != nil {
		p.logger.Errorf("malformed user id %q: %v", idHex, err)
		return nil, err
	}
	u.ID = oid
	return &u, nil
}

func (p *PostgresStorage) Close(ctx context.Context) error {
	p.pool.Close()
	return nil
}

// --- Compile-time assertions ---
var _ UserRepository = (*PostgresStorage)(nil)
