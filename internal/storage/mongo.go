package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jylee2/exercise-tracker/internal"
)

type MongoStorage struct {
	client *mongo.Client
	users  *mongo.Collection
	logger internal.Logger
}

func NewMongoStorage(ctx context.Context, uri, dbName string, logger internal.Logger) (*MongoStorage, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		logger.Errorf("failed to connect to mongo: %v", err)
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		logger.Errorf("failed to ping mongo: %v", err)
		return nil, err
	}

	users := client.Database(dbName).Collection("users")
	// Duplicate usernames are rejected by the store itself, so two racing
	// creates cannot both succeed.
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := users.Indexes().CreateOne(ctx, index); err != nil {
		logger.Errorf("failed to create username index: %v", err)
		return nil, err
	}

	return &MongoStorage{client: client, users: users, logger: logger}, nil
}

func (m *MongoStorage) CreateUser(ctx context.Context, user *internal.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Log == nil {
		user.Log = []internal.Exercise{}
	}
	if _, err := m.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrUsernameTaken
		}
		m.logger.Errorf("failed to insert user: %v", err)
		return err
	}
	return nil
}

func (m *MongoStorage) ListUsers(ctx context.Context) ([]internal.User, error) {
	opts := options.Find().SetProjection(bson.M{"username": 1})
	cursor, err := m.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		m.logger.Errorf("failed to query users: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	users := []internal.User{}
	if err := cursor.All(ctx, &users); err != nil {
		m.logger.Errorf("failed to decode users: %v", err)
		return nil, err
	}
	return users, nil
}

func (m *MongoStorage) FindUserByID(ctx context.Context, id string) (*internal.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	var user internal.User
	if err := m.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&user); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		m.logger.Errorf("failed to find user %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}

func (m *MongoStorage) AppendExercise(ctx context.Context, id string, entry *internal.Exercise) (*internal.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(bson.M{"username": 1})
	var user internal.User
	err = m.users.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$push": bson.M{"log": entry}},
		opts,
	).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		m.logger.Errorf("failed to append exercise for user %s: %v", id, err)
		return nil, err
	}
	return &user, nil
}

func (m *MongoStorage) Close(ctx context.Context) error {
	return m.client.Disconnect(ctx)
}

// --- Compile-time assertions ---
var _ UserRepository = (*MongoStorage)(nil)
