package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Customer is an entry in the florist's customer book. UserID is set when the
// customer also has a storefront login account.
type Customer struct {
	ID          primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	Name        string              `bson:"name" json:"name"`
	PhoneNumber string              `bson:"phoneNumber" json:"phoneNumber"`
	Address     string              `bson:"address,omitempty" json:"address,omitempty"`
	UserID      *primitive.ObjectID `bson:"userId,omitempty" json:"userId,omitempty"`
	CreatedAt   time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time           `bson:"updatedAt" json:"updatedAt"`
}
