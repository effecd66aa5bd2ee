package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ActivityEntry is one immutable audit-log record on an order. Entries are only
// ever appended; the oldest are dropped once the log grows past its cap.
type ActivityEntry struct {
	At      time.Time `bson:"at" json:"at"`
	Kind    string    `bson:"kind" json:"kind"`
	Message string    `bson:"message" json:"message"`
}

// Order is the persisted order document. Buyer and bouquet fields are
// denormalized snapshots taken at write time so old orders stay readable even
// after the customer or bouquet changes.
type Order struct {
	ID                primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	CustomerID        string             `bson:"customerId,omitempty" json:"customerId,omitempty"`
	BuyerName         string             `bson:"buyerName" json:"buyerName"`
	PhoneNumber       string             `bson:"phoneNumber" json:"phoneNumber"`
	Address           string             `bson:"address" json:"address"`
	BouquetID         string             `bson:"bouquetId" json:"bouquetId"`
	BouquetName       string             `bson:"bouquetName" json:"bouquetName"`
	BouquetPrice      int                `bson:"bouquetPrice" json:"bouquetPrice"`
	DeliveryPrice     int                `bson:"deliveryPrice" json:"deliveryPrice"`
	DownPaymentAmount int                `bson:"downPaymentAmount" json:"downPaymentAmount"`
	AdditionalPayment int                `bson:"additionalPayment" json:"additionalPayment"`
	TotalAmount       int                `bson:"totalAmount" json:"totalAmount"`
	PaymentStatus     string             `bson:"paymentStatus" json:"paymentStatus"`
	PaymentMethod     string             `bson:"paymentMethod" json:"paymentMethod"`
	OrderStatus       string             `bson:"orderStatus" json:"orderStatus"`
	DeliveryAt        *time.Time         `bson:"deliveryAt,omitempty" json:"deliveryAt,omitempty"`
	Activity          []ActivityEntry    `bson:"activity" json:"activity"`
	CreatedAt         time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt         time.Time          `bson:"updatedAt" json:"updatedAt"`
}
