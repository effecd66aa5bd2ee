package handlers

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Rickychen930/giftforyou-sub002/internal/models"
)

var errCustomerNotFound = errors.New("customer not found")

// bouquetSnapshot is the trusted (name, price) pair denormalized onto an order
// at write time.
type bouquetSnapshot struct {
	Name  string
	Price int
}

func lookupBouquetSnapshot(ctx context.Context, db *mongo.Database, id string) (bouquetSnapshot, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return bouquetSnapshot{}, err
	}

	var bouquet models.Bouquet
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "price": 1})
	if err := db.Collection("bouquets").FindOne(ctx, bson.M{"_id": objectID}, opts).Decode(&bouquet); err != nil {
		return bouquetSnapshot{}, err
	}

	return bouquetSnapshot{
		Name:  clampString(bouquet.Name, maxBouquetNameLen),
		Price: clampAmount(float64(bouquet.Price)),
	}, nil
}

// resolveBouquetSnapshot collapses a failed catalog lookup to the
// caller-supplied fallback. An order must never fail to be written just
// because the catalog is unreachable.
func resolveBouquetSnapshot(snap bouquetSnapshot, err error, fallbackName string, fallbackPrice int) bouquetSnapshot {
	if err != nil {
		return bouquetSnapshot{
			Name:  clampString(fallbackName, maxBouquetNameLen),
			Price: fallbackPrice,
		}
	}
	return snap
}

// customerContact is the authoritative buyer snapshot resolved from a linked
// customer record.
type customerContact struct {
	Name        string
	PhoneNumber string
	Address     string
}

func lookupCustomerContact(ctx context.Context, db *mongo.Database, id string) (customerContact, error) {
	objectID, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return customerContact{}, errCustomerNotFound
	}

	var customer models.Customer
	if err := db.Collection("customers").FindOne(ctx, bson.M{"_id": objectID}).Decode(&customer); err != nil {
		if err == mongo.ErrNoDocuments {
			return customerContact{}, errCustomerNotFound
		}
		return customerContact{}, err
	}

	return customerContact{
		Name:        clampString(customer.Name, maxBuyerNameLen),
		PhoneNumber: clampString(customer.PhoneNumber, maxPhoneNumberLen),
		Address:     clampString(customer.Address, maxAddressLen),
	}, nil
}
