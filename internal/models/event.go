package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Event is a fire-and-forget analytics record captured from the storefront UI.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Path      string             `bson:"path,omitempty" json:"path,omitempty"`
	Meta      map[string]string  `bson:"meta,omitempty" json:"meta,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}
