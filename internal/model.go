package internal

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Username string             `bson:"username" json:"username"`
	Log      []Exercise         `bson:"log" json:"log"`
}

type Exercise struct {
	Description string    `bson:"description" json:"description"`
	Duration    int       `bson:"duration" json:"duration"` // minutes
	Date        time.Time `bson:"date" json:"date"`         // date-only, midnight UTC
}
